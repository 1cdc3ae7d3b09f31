package profiles

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/siptrack/siptrack/backend/go-services/internal/apperrors"
	"github.com/siptrack/siptrack/backend/go-services/internal/models"
)

func TestEnsure_CreatesOnFirstReference(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	p, err := svc.Ensure(ctx, "sub-abcdef123456", "x@example.com")
	require.NoError(t, err)
	require.Equal(t, "sub-abcdef123456", p.ID)
	require.Equal(t, "x@example.com", p.Username)
	require.Equal(t, "x@example.com", p.Email)
	require.True(t, p.Active)
	require.Equal(t, 1, repo.Len())
}

func TestEnsure_PlaceholderUsernameWithoutEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	p, err := svc.Ensure(context.Background(), "f3a9c81d-0000-4000-8000-1234567890ab", "")
	require.NoError(t, err)
	require.Equal(t, "user_f3a9c81d", p.Username)
	require.Empty(t, p.Email)
}

func TestEnsure_Idempotent(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Ensure(ctx, "sub-1", "a@example.com")
	require.NoError(t, err)

	// second call returns the stored profile unchanged, even with a
	// different email claim: ensure is not a sync
	second, err := svc.Ensure(ctx, "sub-1", "b@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "a@example.com", second.Email)
	require.Equal(t, 1, repo.Len())
}

func TestEnsure_EmptyIdentityRejected(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	_, err := svc.Ensure(context.Background(), "", "")
	require.True(t, errors.Is(err, apperrors.ErrValidation))
}

// racingRepo simulates losing the create race: the profile is absent on the
// first read, the insert hits the uniqueness constraint, and the re-read
// finds the row the concurrent winner inserted.
type racingRepo struct {
	reads   int
	creates int
	winner  *models.Profile
}

func (r *racingRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	r.reads++
	if r.reads == 1 {
		return nil, apperrors.ErrNotFound
	}
	cp := *r.winner
	return &cp, nil
}

func (r *racingRepo) Create(ctx context.Context, p *models.Profile) error {
	r.creates++
	return fmt.Errorf("%w: profiles_pkey", apperrors.ErrDuplicateKey)
}

func TestEnsure_DuplicateKeyRaceResolvesToWinner(t *testing.T) {
	winner := &models.Profile{ID: "sub-1", Username: "winner", Active: true}
	repo := &racingRepo{winner: winner}
	svc := NewService(repo)

	p, err := svc.Ensure(context.Background(), "sub-1", "loser@example.com")
	require.NoError(t, err)
	require.Equal(t, "winner", p.Username)
	require.Equal(t, 2, repo.reads)
	require.Equal(t, 1, repo.creates)
}

func TestEnsure_SharedEmailClaimFallsBackToPlaceholder(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Ensure(ctx, "sub-first123", "shared@example.com")
	require.NoError(t, err)
	require.Equal(t, "shared@example.com", first.Username)

	// a different subject presenting the same email claim must still get a
	// profile: the username/email conflict resolves to a placeholder
	second, err := svc.Ensure(ctx, "sub-second456", "shared@example.com")
	require.NoError(t, err)
	require.Equal(t, "sub-second456", second.ID)
	require.Equal(t, "user_sub-seco", second.Username)
	require.Empty(t, second.Email)
	require.Equal(t, 2, repo.Len())

	// later calls find the stored fallback row
	again, err := svc.Ensure(ctx, "sub-second456", "shared@example.com")
	require.NoError(t, err)
	require.Equal(t, second.ID, again.ID)
	require.Equal(t, second.Username, again.Username)
	require.Equal(t, 2, repo.Len())
}

func TestEnsure_UsernameTakenByRegistration(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	// a user who signed up with their email as username
	_, err := svc.Register(ctx, "alice@example.com", "", "s3cret")
	require.NoError(t, err)

	// a token for a distinct subject carrying that email still provisions
	p, err := svc.Ensure(ctx, "sub-alice9999", "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "sub-alice9999", p.ID)
	require.Equal(t, "user_sub-alic", p.Username)
	require.Equal(t, 2, repo.Len())
}

func TestRegister(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	p, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "alice", p.Username)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte("s3cret")))

	// duplicate username rejected
	_, err = svc.Register(ctx, "alice", "", "other")
	require.True(t, errors.Is(err, apperrors.ErrDuplicateKey), "got %v", err)

	// missing fields rejected
	_, err = svc.Register(ctx, "", "", "pw")
	require.True(t, errors.Is(err, apperrors.ErrValidation))
	_, err = svc.Register(ctx, "bob", "", "")
	require.True(t, errors.Is(err, apperrors.ErrValidation))
}

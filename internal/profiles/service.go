package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/siptrack/siptrack/backend/go-services/internal/apperrors"
	"github.com/siptrack/siptrack/backend/go-services/internal/models"
	"github.com/siptrack/siptrack/backend/go-services/pkg/metrics"
)

// Service encapsulates profile business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Ensure returns the profile for the given identity, creating it on first
// reference. An existing profile is returned unchanged even when the email
// claim differs from the stored value; this call is an idempotent ensure,
// not a sync. Concurrent first-calls are resolved by the primary key: the
// losing writer sees a duplicate-key conflict and re-reads. A conflict on
// username or email instead (the claim is already taken by a different
// profile) falls back to a placeholder username without the email.
func (s *Service) Ensure(ctx context.Context, identityID, email string) (*models.Profile, error) {
	if identityID == "" {
		return nil, fmt.Errorf("%w: empty identity id", apperrors.ErrValidation)
	}

	p, err := s.repo.GetByID(ctx, identityID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	username := email
	if username == "" {
		username = "user_" + shortID(identityID)
	}
	p = &models.Profile{
		ID:        identityID,
		Username:  username,
		Email:     email,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	err = s.repo.Create(ctx, p)
	if err == nil {
		metrics.ProfilesProvisioned.Inc()
		return p, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicateKey) {
		return nil, err
	}

	// The conflict is either our own id (a concurrent first call won the
	// insert) or a username/email already claimed by a different profile.
	// A re-read distinguishes the two.
	existing, getErr := s.repo.GetByID(ctx, identityID)
	if getErr == nil {
		return existing, nil
	}
	if !errors.Is(getErr, apperrors.ErrNotFound) {
		return nil, getErr
	}

	// Claim taken by someone else: retry with a placeholder username and
	// drop the colliding email so the row is keyed by identity alone.
	p.Username = "user_" + shortID(identityID)
	p.Email = ""
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return s.repo.GetByID(ctx, identityID)
		}
		return nil, err
	}
	metrics.ProfilesProvisioned.Inc()
	return p, nil
}

// Register creates a profile from an explicit signup. The password is
// bcrypt-hashed before storage; a taken username surfaces as
// apperrors.ErrDuplicateKey.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.Profile, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &models.Profile{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// shortID returns the first 8 characters of id, used for placeholder
// usernames when the token carries no email claim.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

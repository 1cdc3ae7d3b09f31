package profiles

import (
	"context"
	"fmt"
	"sync"

	"github.com/siptrack/siptrack/backend/go-services/internal/apperrors"
	"github.com/siptrack/siptrack/backend/go-services/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests. It enforces
// the same uniqueness constraints as the profiles table (id, username and
// non-null email).
type MemoryRepository struct {
	mu        sync.RWMutex
	byID      map[string]*models.Profile
	usernames map[string]string // username -> id
	emails    map[string]string // email -> id
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:      make(map[string]*models.Profile),
		usernames: make(map[string]string),
		emails:    make(map[string]string),
	}
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepository) Create(ctx context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byID[p.ID]; exists {
		return fmt.Errorf("%w: profiles_pkey", apperrors.ErrDuplicateKey)
	}
	if _, exists := m.usernames[p.Username]; exists {
		return fmt.Errorf("%w: profiles_username_key", apperrors.ErrDuplicateKey)
	}
	if p.Email != "" {
		if _, exists := m.emails[p.Email]; exists {
			return fmt.Errorf("%w: profiles_email_key", apperrors.ErrDuplicateKey)
		}
	}
	cp := *p
	m.byID[p.ID] = &cp
	m.usernames[p.Username] = p.ID
	if p.Email != "" {
		m.emails[p.Email] = p.ID
	}
	return nil
}

// Len reports the number of stored profiles. Test helper.
func (m *MemoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

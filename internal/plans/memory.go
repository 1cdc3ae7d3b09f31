package plans

import (
	"context"
	"sync"

	"github.com/siptrack/siptrack/backend/go-services/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	store  []models.Plan
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (m *MemoryRepository) Create(ctx context.Context, p *models.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID
	m.nextID++
	m.store = append(m.store, *p)
	return nil
}

func (m *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Plan
	for _, p := range m.store {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/siptrack/siptrack/backend/go-services/internal/apperrors"
	"github.com/siptrack/siptrack/backend/go-services/internal/models"
)

// Service encapsulates plan business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Create validates and persists a new plan owned by ownerID. The monthly
// amount must be strictly positive; the start date may lie in the future.
func (s *Service) Create(ctx context.Context, ownerID, schemeName string, monthlyAmount decimal.Decimal, startDate models.Date) (*models.Plan, error) {
	if schemeName == "" {
		return nil, fmt.Errorf("%w: scheme_name is required", apperrors.ErrValidation)
	}
	if !monthlyAmount.IsPositive() {
		return nil, fmt.Errorf("%w: monthly_amount must be greater than zero", apperrors.ErrValidation)
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("%w: start_date is required", apperrors.ErrValidation)
	}

	p := &models.Plan{
		SchemeName:    schemeName,
		MonthlyAmount: monthlyAmount,
		StartDate:     startDate,
		OwnerID:       ownerID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Summary lists the owner's plans and reduces them to per-scheme rows as of
// today. An owner with no plans gets an empty slice.
func (s *Service) Summary(ctx context.Context, ownerID string, today models.Date) ([]models.SummaryRow, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return Summarize(list, today), nil
}

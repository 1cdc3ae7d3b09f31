package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is one systematic investment plan: a fixed monthly contribution to a
// named scheme, starting on a calendar date. Plans are immutable once created.
type Plan struct {
	ID            int64           `json:"id"`
	SchemeName    string          `json:"scheme_name"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	StartDate     Date            `json:"start_date"`
	OwnerID       string          `json:"owner_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SummaryRow is the derived per-scheme aggregate returned by the summary
// endpoint. It is never persisted.
type SummaryRow struct {
	SchemeName     string          `json:"scheme_name"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	MonthsInvested int             `json:"months_invested"`
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/siptrack/siptrack/backend/go-services/internal/config"
	"github.com/siptrack/siptrack/backend/go-services/internal/models"
	"github.com/siptrack/siptrack/backend/go-services/internal/plans"
	"github.com/siptrack/siptrack/backend/go-services/internal/profiles"
	"github.com/siptrack/siptrack/backend/go-services/pkg/metrics"
	"github.com/siptrack/siptrack/backend/go-services/pkg/middleware"
)

// CreateSIPRequest is the create-plan payload
type CreateSIPRequest struct {
	SchemeName    string          `json:"scheme_name" binding:"required"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	StartDate     models.Date     `json:"start_date" binding:"required"`
}

// SIPHandler holds dependencies for the plan endpoints
type SIPHandler struct {
	cfg      *config.Config
	profiles *profiles.Service
	plans    *plans.Service
	now      func() time.Time
}

func NewSIPHandler(cfg *config.Config, p *profiles.Service, pl *plans.Service) *SIPHandler {
	return &SIPHandler{cfg: cfg, profiles: p, plans: pl, now: time.Now}
}

// Register routes under /sips. The middleware chain is applied in order;
// callers pass auth first so anything after it (e.g. a per-user rate
// limiter) sees the authenticated identity.
func (h *SIPHandler) Register(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	g := rg.Group("/sips", mw...)
	g.POST("", h.Create)
	g.GET("/summary", h.Summary)
}

// Create provisions the caller's profile if absent and persists a new plan.
func (h *SIPHandler) Create(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req CreateSIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.Database.Timeout)
	defer cancel()

	profile, err := h.profiles.Ensure(ctx, id.Subject, id.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	plan, err := h.plans.Create(ctx, profile.ID, req.SchemeName, req.MonthlyAmount, req.StartDate)
	if err != nil {
		writeError(c, err)
		return
	}

	metrics.PlansCreated.Inc()
	c.JSON(http.StatusCreated, plan)
}

// Summary returns the caller's per-scheme investment aggregate as of today.
func (h *SIPHandler) Summary(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.Database.Timeout)
	defer cancel()

	// provisioning on read keeps the first authenticated GET from 404ing
	profile, err := h.profiles.Ensure(ctx, id.Subject, id.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	rows, err := h.plans.Summary(ctx, profile.ID, models.DateOf(h.now()))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siptrack/siptrack/backend/go-services/internal/apperrors"
	"github.com/siptrack/siptrack/backend/go-services/internal/config"
	"github.com/siptrack/siptrack/backend/go-services/internal/profiles"
)

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// UserHandler holds dependencies for the registration endpoint
type UserHandler struct {
	cfg      *config.Config
	profiles *profiles.Service
}

func NewUserHandler(cfg *config.Config, p *profiles.Service) *UserHandler {
	return &UserHandler{cfg: cfg, profiles: p}
}

// Register routes under /users
func (h *UserHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/users", h.Create)
}

// Create registers a new profile with a username and password.
func (h *UserHandler) Create(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.Database.Timeout)
	defer cancel()

	p, err := h.profiles.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already registered"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

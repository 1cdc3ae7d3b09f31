package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siptrack/siptrack/backend/go-services/internal/apperrors"
	"github.com/siptrack/siptrack/backend/go-services/pkg/logger"
)

// writeError maps service-layer errors onto HTTP responses. Foreign-key
// violations are a calling-contract bug, so they log loudly and surface as
// plain 500s without detail.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateKey):
		c.JSON(http.StatusConflict, gin.H{"error": "resource already exists"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case errors.Is(err, apperrors.ErrForeignKey):
		logger.Errorf("referential integrity violation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	case errors.Is(err, apperrors.ErrPersistence):
		logger.Errorf("persistence failure: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	default:
		logger.Errorf("unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

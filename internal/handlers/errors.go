package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError writes the status and body for a service error. failMsg is used for
// anything that is not a known ledger error.
func respondError(c *gin.Context, logger *slog.Logger, err error, failMsg string) {
	var fundsErr *apperrors.InsufficientFundsError
	switch {
	case errors.As(err, &fundsErr):
		logger.Warn(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     err.Error(),
			"account":   fundsErr.Account,
			"available": fundsErr.Available,
			"requested": fundsErr.Requested,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrAlreadyRolledOver):
		logger.Warn(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		logger.Warn(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Concurrent update, please retry"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
	}
}

// bindError answers a request whose body or query could not be bound.
func bindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

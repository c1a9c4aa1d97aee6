package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	userIDKey      = contextKey("userID")
	accessLevelKey = contextKey("accessLevel")
	loggerCtxKey   = contextKey("logger")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetActorFromContext builds the ledger actor from the identity placed by AuthMiddleware.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	level, _ := c.Request.Context().Value(accessLevelKey).(domain.AccessLevel)
	if level == "" {
		level = domain.AccessMember
	}
	return domain.Actor{Ref: domain.ActorRef(userID), Level: level}, true
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger when none was stored.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

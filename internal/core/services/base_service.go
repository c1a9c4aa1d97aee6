package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock domain.Clock
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// Now returns the current time from the injected clock.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

// CurrentPeriodKey returns the key of the month the clock is in.
func (s *BaseService) CurrentPeriodKey() domain.PeriodKey {
	return domain.PeriodKeyOf(s.Now())
}

// AuthorizeAdmin fails with ErrForbidden unless the actor has system-wide access.
func (s *BaseService) AuthorizeAdmin(ctx context.Context, actor domain.Actor, action string) error {
	if actor.IsAdmin() {
		return nil
	}
	s.LogDebug(ctx, "Actor does not have admin access",
		slog.String("actor", string(actor.Ref)),
		slog.String("access_level", string(actor.Level)),
		slog.String("action", action))
	return apperrors.ErrForbidden
}

// location returns the location the clock reports time in.
func (s *BaseService) location() *time.Location {
	return s.Now().Location()
}

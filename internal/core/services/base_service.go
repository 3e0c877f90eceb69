package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/api-diengcyber/transaksi-sub000/internal/apperrors"
	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	"github.com/api-diengcyber/transaksi-sub000/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
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

// withTx runs fn inside tx when the caller supplied one. Otherwise it opens a
// transaction, commits it when fn succeeds and rolls it back when it does not.
func withTx(ctx context.Context, tm portsrepo.TransactionManager, tx pgx.Tx, fn func(pgx.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}
	own, err := tm.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tm.Rollback(ctx, own) }()

	if err := fn(own); err != nil {
		return err
	}
	if err := tm.Commit(ctx, own); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// requireStore rejects calls without a store scope.
func requireStore(storeID string) error {
	if err := domain.ValidateStoreID(storeID); err != nil {
		return apperrors.NewAppError(apperrors.ErrValidation, "invalid store id", err)
	}
	return nil
}

func isRetryable(err error) bool {
	return errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrTransient)
}

package services

import (
	"context"
	"time"

	"github.com/api-diengcyber/transaksi-sub000/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// GetFinancialReport aggregates the store's journal details between the
	// start of startDate and the end of endDate into per-account balances.
	GetFinancialReport(ctx context.Context, storeID string, startDate, endDate time.Time) ([]domain.FinancialReportRow, error)
}

package reporting

import (
	"context"
	"math"
	"time"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const reconcileEpsilon = 1e-6

// TransactionFilter narrows the ledger listing.
type TransactionFilter struct {
	TenantId *uuid.UUID
	Type     string
	Status   string
	Page     int
	Limit    int
}

// ReconciliationReport compares the replayed ledger against the stored balance.
type ReconciliationReport struct {
	TenantId      uuid.UUID
	LedgerBalance float64
	WalletBalance float64
	Transactions  int
	Consistent    bool
}

// Aggregator serves read-only rollups over committed ledger data. It holds no
// state and never writes.
type Aggregator struct {
	logger logger.ILogger
}

func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetTransactions lists ledger entries, newest first.
func (a *Aggregator) GetTransactions(ctx context.Context, uow unitofwork.UnitOfWork, filter TransactionFilter) ([]*entity.Transaction, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	var filterSpecs []specification.Specification
	if filter.TenantId != nil {
		filterSpecs = append(filterSpecs, specification.TenantOwnedBy{TenantID: *filter.TenantId})
	}
	if filter.Type != "" {
		filterSpecs = append(filterSpecs, specification.ByType{Type: filter.Type})
	}
	if filter.Status != "" {
		filterSpecs = append(filterSpecs, specification.ByStatus{Status: filter.Status})
	}

	total, err := uow.TransactionRepository().Count(ctx, filterSpecs...)
	if err != nil {
		return nil, 0, apperror.PersistenceFailure(err)
	}

	listSpecs := append(filterSpecs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: filter.Limit, Offset: offset},
	)
	txns, err := uow.TransactionRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, 0, apperror.PersistenceFailure(err)
	}
	return txns, total, nil
}

// GetUsageStats rolls up one tenant's completed debits for a period.
func (a *Aggregator) GetUsageStats(ctx context.Context, uow unitofwork.UnitOfWork, tenantId uuid.UUID, from, to time.Time) (*entity.UsageStats, error) {
	stats, err := uow.TransactionRepository().GetUsageStats(ctx, tenantId, from, to)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	return stats, nil
}

// GetRevenueStats rolls up platform-wide revenue for a period.
func (a *Aggregator) GetRevenueStats(ctx context.Context, uow unitofwork.UnitOfWork, from, to time.Time) (*entity.RevenueStats, error) {
	stats, err := uow.TransactionRepository().GetRevenueStats(ctx, from, to)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	return stats, nil
}

// VerifyReconciliation replays a tenant's ledger in commit order and checks
// the sum of signed credit deltas against the wallet's stored balance.
func (a *Aggregator) VerifyReconciliation(ctx context.Context, uow unitofwork.UnitOfWork, tenantId uuid.UUID) (*ReconciliationReport, error) {
	wallet, err := uow.WalletRepository().FindOne(ctx, specification.TenantOwnedBy{TenantID: tenantId})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if wallet == nil {
		return nil, apperror.NotFound("wallet for tenant %s not found", tenantId)
	}

	txns, err := uow.TransactionRepository().FindAll(ctx,
		specification.TenantOwnedBy{TenantID: tenantId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	ledgerBalance := entity.Reconcile(txns)
	report := &ReconciliationReport{
		TenantId:      tenantId,
		LedgerBalance: ledgerBalance,
		WalletBalance: wallet.CreditBalance,
		Transactions:  len(txns),
		Consistent:    math.Abs(ledgerBalance-wallet.CreditBalance) <= reconcileEpsilon,
	}
	if !report.Consistent {
		a.logger.Warn("BILLING", "Ledger reconciliation mismatch", map[string]interface{}{
			"tenantId":      tenantId.String(),
			"ledgerBalance": ledgerBalance,
			"walletBalance": wallet.CreditBalance,
		})
	}
	return report, nil
}

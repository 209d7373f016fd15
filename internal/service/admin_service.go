package service

import (
	"context"
	"fmt"
	"time"

	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"
	"messaging-backoffice-be/pkg/billing/allocation"
	"messaging-backoffice-be/pkg/billing/refund"
	"messaging-backoffice-be/pkg/billing/reporting"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error)

	// Manual ledger operations
	AdjustCredits(ctx context.Context, tenantId uuid.UUID, req *dto.AdjustCreditsRequest, adminId uuid.UUID) (*dto.TransactionResponse, error)
	RefundTransaction(ctx context.Context, transactionId uuid.UUID, req *dto.RefundTransactionRequest, adminId uuid.UUID) (*dto.TransactionResponse, error)
	AllocatePlanCredits(ctx context.Context, tenantId uuid.UUID, req *dto.AllocatePlanCreditsRequest) (*dto.TransactionResponse, error)

	// Ledger reads
	GetTransactions(ctx context.Context, query *dto.TransactionListQuery) (*dto.TransactionListResponse, error)
	VerifyReconciliation(ctx context.Context, tenantId uuid.UUID) (*dto.ReconciliationResponse, error)

	// Reporting
	GetUsageStats(ctx context.Context, tenantId uuid.UUID, query *dto.StatsPeriodQuery) (*dto.UsageStatsResponse, error)
	GetRevenueStats(ctx context.Context, query *dto.StatsPeriodQuery) (*dto.RevenueStatsResponse, error)

	// Trails
	GetAuditLogs(ctx context.Context, tenantId *uuid.UUID, page, limit int) (*dto.AuditLogListResponse, error)
	GetSystemLogs(ctx context.Context, level string, page, limit int) ([]logger.LogEntry, error)
	GetSystemLogDetail(ctx context.Context, logId string) (*logger.LogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger

	walletService IWalletService
	auditService  IAuditService

	refundCoordinator *refund.Coordinator
	allocator         *allocation.Allocator
	aggregator        *reporting.Aggregator
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	walletService IWalletService,
	auditService IAuditService,
	refundCoordinator *refund.Coordinator,
	allocator *allocation.Allocator,
	aggregator *reporting.Aggregator,
) IAdminService {
	return &adminService{
		uowFactory:        uowFactory,
		logger:            logger,
		walletService:     walletService,
		auditService:      auditService,
		refundCoordinator: refundCoordinator,
		allocator:         allocator,
		aggregator:        aggregator,
	}
}

// parsePeriod turns the from/to query strings into a concrete window.
// Missing bounds default to the last 30 days.
func parsePeriod(query *dto.StatsPeriodQuery) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if query != nil && query.From != "" {
		parsed, err := time.Parse("2006-01-02", query.From)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date %q, expected YYYY-MM-DD", query.From)
		}
		from = parsed
	}
	if query != nil && query.To != "" {
		parsed, err := time.Parse("2006-01-02", query.To)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date %q, expected YYYY-MM-DD", query.To)
		}
		// Inclusive end of day.
		to = parsed.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return from, to, fmt.Errorf("from must precede to")
	}
	return from, to, nil
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalTenants, err := uow.TenantRepository().Count(ctx)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	activeTenants, err := uow.TenantRepository().Count(ctx, specification.ByStatus{Status: string(entity.TenantStatusActive)})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	suspendedWallets, err := uow.WalletRepository().Count(ctx, specification.ByStatus{Status: string(entity.WalletStatusSuspended)})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	depletedWallets, err := uow.WalletRepository().Count(ctx, specification.ByStatus{Status: string(entity.WalletStatusDepleted)})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	now := time.Now().UTC()
	revenue, err := s.aggregator.GetRevenueStats(ctx, uow, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.aggregator.GetTransactions(ctx, uow, reporting.TransactionFilter{Limit: 10})
	if err != nil {
		return nil, err
	}

	stats := &dto.AdminDashboardStats{
		TotalTenants:       int(totalTenants),
		ActiveTenants:      int(activeTenants),
		SuspendedWallets:   int(suspendedWallets),
		DepletedWallets:    int(depletedWallets),
		Revenue:            toRevenueStatsResponse(revenue),
		RecentTransactions: make([]dto.TransactionResponse, 0, len(recent)),
	}
	for _, t := range recent {
		stats.RecentTransactions = append(stats.RecentTransactions, *toTransactionResponse(t))
	}
	return stats, nil
}

func (s *adminService) AdjustCredits(ctx context.Context, tenantId uuid.UUID, req *dto.AdjustCreditsRequest, adminId uuid.UUID) (*dto.TransactionResponse, error) {
	return s.walletService.Adjust(ctx, tenantId, req, adminId)
}

func (s *adminService) RefundTransaction(ctx context.Context, transactionId uuid.UUID, req *dto.RefundTransactionRequest, adminId uuid.UUID) (*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	txn, err := s.refundCoordinator.Refund(ctx, uow, refund.Request{
		TransactionId: transactionId,
		Credits:       req.Credits,
		Reason:        req.Reason,
		AdminId:       &adminId,
	})
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, dto.AuditEventMessage{
		TenantId:      txn.TenantId,
		ActorType:     "admin",
		ActorId:       &adminId,
		Action:        "transaction.refunded",
		TransactionId: &txn.Id,
		CreditsAmount: txn.CreditsAmount,
		BalanceBefore: txn.BalanceBefore,
		BalanceAfter:  txn.BalanceAfter,
		Detail: map[string]interface{}{
			"original_transaction_id": transactionId.String(),
			"reason":                  req.Reason,
		},
	})
	return toTransactionResponse(txn), nil
}

func (s *adminService) AllocatePlanCredits(ctx context.Context, tenantId uuid.UUID, req *dto.AllocatePlanCreditsRequest) (*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	txn, err := s.allocator.AllocateMonthly(ctx, uow, tenantId, req.Credits)
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, dto.AuditEventMessage{
		TenantId:      tenantId,
		ActorType:     "system",
		Action:        "wallet.plan_allocated",
		TransactionId: &txn.Id,
		CreditsAmount: txn.CreditsAmount,
		BalanceBefore: txn.BalanceBefore,
		BalanceAfter:  txn.BalanceAfter,
	})
	return toTransactionResponse(txn), nil
}

func (s *adminService) GetTransactions(ctx context.Context, query *dto.TransactionListQuery) (*dto.TransactionListResponse, error) {
	filter := reporting.TransactionFilter{
		Type:   query.Type,
		Status: query.Status,
		Page:   query.Page,
		Limit:  query.Limit,
	}
	if query.TenantId != "" {
		tenantId, err := uuid.Parse(query.TenantId)
		if err != nil {
			return nil, apperror.ValidationFailed(fmt.Errorf("invalid tenant_id %q", query.TenantId))
		}
		filter.TenantId = &tenantId
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	txns, total, err := s.aggregator.GetTransactions(ctx, uow, filter)
	if err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	res := &dto.TransactionListResponse{
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
	}
	for _, t := range txns {
		res.Transactions = append(res.Transactions, *toTransactionResponse(t))
	}
	return res, nil
}

func (s *adminService) VerifyReconciliation(ctx context.Context, tenantId uuid.UUID) (*dto.ReconciliationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	report, err := s.aggregator.VerifyReconciliation(ctx, uow, tenantId)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationResponse{
		TenantId:      report.TenantId,
		LedgerBalance: report.LedgerBalance,
		WalletBalance: report.WalletBalance,
		Transactions:  report.Transactions,
		Consistent:    report.Consistent,
	}, nil
}

func (s *adminService) GetUsageStats(ctx context.Context, tenantId uuid.UUID, query *dto.StatsPeriodQuery) (*dto.UsageStatsResponse, error) {
	from, to, err := parsePeriod(query)
	if err != nil {
		return nil, apperror.ValidationFailed(err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats, err := s.aggregator.GetUsageStats(ctx, uow, tenantId, from, to)
	if err != nil {
		return nil, err
	}

	res := &dto.UsageStatsResponse{
		TenantId:     stats.TenantId,
		From:         stats.From,
		To:           stats.To,
		Messages:     stats.Messages,
		CreditsUsed:  stats.CreditsUsed,
		MetaCost:     stats.MetaCost,
		MarkupEarned: stats.MarkupEarned,
		ByCategory:   make([]dto.CategoryUsageResponse, 0, len(stats.ByCategory)),
	}
	for _, c := range stats.ByCategory {
		res.ByCategory = append(res.ByCategory, dto.CategoryUsageResponse{
			Category:     string(c.Category),
			Messages:     c.Messages,
			CreditsUsed:  c.CreditsUsed,
			MetaCost:     c.MetaCost,
			MarkupEarned: c.MarkupEarned,
		})
	}
	return res, nil
}

func (s *adminService) GetRevenueStats(ctx context.Context, query *dto.StatsPeriodQuery) (*dto.RevenueStatsResponse, error) {
	from, to, err := parsePeriod(query)
	if err != nil {
		return nil, apperror.ValidationFailed(err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats, err := s.aggregator.GetRevenueStats(ctx, uow, from, to)
	if err != nil {
		return nil, err
	}
	res := toRevenueStatsResponse(stats)
	return &res, nil
}

func (s *adminService) GetAuditLogs(ctx context.Context, tenantId *uuid.UUID, page, limit int) (*dto.AuditLogListResponse, error) {
	return s.auditService.GetLogs(ctx, tenantId, page, limit)
}

func (s *adminService) GetSystemLogs(ctx context.Context, level string, page, limit int) ([]logger.LogEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit
	return s.logger.GetLogs(level, limit, offset)
}

func (s *adminService) GetSystemLogDetail(ctx context.Context, logId string) (*logger.LogEntry, error) {
	entry, err := s.logger.GetLogById(logId)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NotFound("log entry %s not found", logId)
	}
	return entry, nil
}

func toRevenueStatsResponse(stats *entity.RevenueStats) dto.RevenueStatsResponse {
	res := dto.RevenueStatsResponse{
		From:              stats.From,
		To:                stats.To,
		CreditsPurchased:  stats.CreditsPurchased,
		CurrencyCollected: stats.CurrencyCollected,
		CreditsUsed:       stats.CreditsUsed,
		CreditsRefunded:   stats.CreditsRefunded,
		MarkupEarned:      stats.MarkupEarned,
		TopTenants:        make([]dto.TenantRevenueResponse, 0, len(stats.TopTenants)),
	}
	for _, t := range stats.TopTenants {
		res.TopTenants = append(res.TopTenants, dto.TenantRevenueResponse{
			TenantId:          t.TenantId,
			CreditsPurchased:  t.CreditsPurchased,
			CurrencyCollected: t.CurrencyCollected,
		})
	}
	return res
}

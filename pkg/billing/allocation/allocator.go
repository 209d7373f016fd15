package allocation

import (
	"context"
	"time"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/unitofwork"
	billingEvents "messaging-backoffice-be/pkg/billing/events"

	"github.com/google/uuid"
)

// Allocator grants the monthly plan allowance. It is invoked by a scheduled
// external trigger and reuses the same atomic credit primitive as purchases;
// it holds no state of its own.
type Allocator struct {
	logger    logger.ILogger
	publisher billingEvents.Publisher
}

func NewAllocator(logger logger.ILogger, publisher billingEvents.Publisher) *Allocator {
	return &Allocator{
		logger:    logger,
		publisher: publisher,
	}
}

// nextResetDate is the first day of the month after t, in UTC.
func nextResetDate(t time.Time) time.Time {
	year, month, _ := t.UTC().Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// AllocateMonthly sets the plan allowance, zeroes the used counter, advances
// the reset date and credits the wallet with a plan_allocation ledger entry,
// all in one transaction.
func (a *Allocator) AllocateMonthly(ctx context.Context, uow unitofwork.UnitOfWork, tenantId uuid.UUID, credits float64) (*entity.Transaction, error) {
	if credits <= 0 {
		return nil, apperror.InvalidAmount("plan allocation must be positive, got %.4f", credits)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().FindOneForUpdate(ctx, tenantId)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if wallet == nil {
		return nil, apperror.NotFound("wallet for tenant %s not found", tenantId)
	}

	now := time.Now()
	result, err := wallet.ApplyCredit(credits, 0, now)
	if err != nil {
		return nil, err
	}

	wallet.PlanCreditsMonthly = credits
	wallet.PlanCreditsUsed = 0
	reset := nextResetDate(now)
	wallet.PlanCreditsResetDate = &reset

	txn := &entity.Transaction{
		Id:            uuid.New(),
		WalletId:      wallet.Id,
		TenantId:      wallet.TenantId,
		Type:          entity.TransactionTypePlanAllocation,
		Status:        entity.TransactionStatusCompleted,
		CreditsAmount: credits,
		Currency:      wallet.Currency,
		BalanceBefore: result.BalanceBefore,
		BalanceAfter:  result.BalanceAfter,
		Description:   "monthly plan credit allocation",
		CreatedAt:     now,
	}
	if err := txn.Validate(); err != nil {
		return nil, apperror.ValidationFailed(err)
	}

	if err := uow.TransactionRepository().Create(ctx, txn); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if err := uow.WalletRepository().Update(ctx, wallet); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	a.logger.Info("BILLING", "Monthly plan credits allocated", map[string]interface{}{
		"tenantId":     tenantId.String(),
		"credits":      credits,
		"balanceAfter": result.BalanceAfter,
		"resetDate":    reset.Format(time.RFC3339),
	})
	a.publisher.PublishPlanCreditsAllocated(ctx, tenantId, txn.Id, credits, 0)

	return txn, nil
}

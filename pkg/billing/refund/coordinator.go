package refund

import (
	"context"
	"math"
	"time"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"
	billingEvents "messaging-backoffice-be/pkg/billing/events"

	"github.com/google/uuid"
)

// Request describes one refund attempt. A nil Credits refunds the full
// original amount.
type Request struct {
	TransactionId uuid.UUID
	Credits       *float64
	Reason        string
	AdminId       *uuid.UUID
}

// Coordinator reverses a committed ledger entry through the wallet credit
// path and flips the original row to refunded, all in one transaction.
type Coordinator struct {
	logger    logger.ILogger
	publisher billingEvents.Publisher
}

func NewCoordinator(logger logger.ILogger, publisher billingEvents.Publisher) *Coordinator {
	return &Coordinator{
		logger:    logger,
		publisher: publisher,
	}
}

// Refund credits the wallet and marks the original transaction refunded.
// A second refund of the same transaction fails with AlreadyRefunded: the
// status recheck runs under the wallet row lock, so two concurrent attempts
// serialize and the loser sees the flipped status.
func (c *Coordinator) Refund(ctx context.Context, uow unitofwork.UnitOfWork, req Request) (*entity.Transaction, error) {
	original, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: req.TransactionId})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if original == nil {
		return nil, apperror.NotFound("transaction %s not found", req.TransactionId)
	}
	if original.Status == entity.TransactionStatusRefunded {
		return nil, apperror.AlreadyRefunded("transaction %s is already refunded", req.TransactionId)
	}
	if !original.Refundable() {
		return nil, apperror.InvalidAmount("transaction %s (%s/%s) is not refundable", req.TransactionId, original.Type, original.Status)
	}

	maxCredits := math.Abs(original.CreditsAmount)
	refundCredits := maxCredits
	if req.Credits != nil {
		refundCredits = *req.Credits
		if refundCredits <= 0 || refundCredits > maxCredits {
			return nil, apperror.InvalidAmount("refund of %.4f credits is outside (0, %.4f]", refundCredits, maxCredits)
		}
	}
	var refundCurrency float64
	if maxCredits > 0 {
		refundCurrency = refundCredits / maxCredits * math.Abs(original.CurrencyAmount)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().FindOneForUpdate(ctx, original.TenantId)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if wallet == nil {
		return nil, apperror.NotFound("wallet for tenant %s not found", original.TenantId)
	}

	// Recheck under the row lock. A concurrent refund that committed first
	// has already flipped the status.
	current, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: original.Id})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if current == nil || current.Status == entity.TransactionStatusRefunded {
		return nil, apperror.AlreadyRefunded("transaction %s is already refunded", req.TransactionId)
	}

	now := time.Now()
	result, err := wallet.ApplyCredit(refundCredits, refundCurrency, now)
	if err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "refund"
	}
	refundTxn := &entity.Transaction{
		Id:                   uuid.New(),
		WalletId:             wallet.Id,
		TenantId:             wallet.TenantId,
		Type:                 entity.TransactionTypeRefund,
		Status:               entity.TransactionStatusCompleted,
		CreditsAmount:        refundCredits,
		CurrencyAmount:       refundCurrency,
		Currency:             wallet.Currency,
		BalanceBefore:        result.BalanceBefore,
		BalanceAfter:         result.BalanceAfter,
		Description:          reason,
		RelatedTransactionId: &original.Id,
		AdjustedByAdminId:    req.AdminId,
		CreatedAt:            now,
	}
	if err := refundTxn.Validate(); err != nil {
		return nil, apperror.ValidationFailed(err)
	}

	if err := uow.TransactionRepository().Create(ctx, refundTxn); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if err := uow.TransactionRepository().MarkRefunded(ctx, original.Id); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if err := uow.WalletRepository().Update(ctx, wallet); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	c.logger.Info("BILLING", "Refund issued", map[string]interface{}{
		"tenantId":              wallet.TenantId.String(),
		"originalTransactionId": original.Id.String(),
		"refundTransactionId":   refundTxn.Id.String(),
		"credits":               refundCredits,
		"balanceAfter":          result.BalanceAfter,
		"reason":                reason,
	})
	c.publisher.PublishRefundIssued(ctx, wallet.TenantId, refundTxn.Id, original.Id, refundCredits, reason)

	return refundTxn, nil
}

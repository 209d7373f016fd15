package events

import (
	"context"
	"time"

	"messaging-backoffice-be/internal/pkg/logger"
	pkgEvents "messaging-backoffice-be/pkg/events"
	pkgNats "messaging-backoffice-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for wallet and ledger operations.
type Publisher interface {
	PublishCreditsAdded(ctx context.Context, tenantId, transactionId uuid.UUID, credits, balanceAfter float64, source string)
	PublishCreditsDebited(ctx context.Context, tenantId, transactionId uuid.UUID, credits, balanceAfter float64, category string)
	PublishLowBalance(ctx context.Context, tenantId uuid.UUID, balance, threshold float64)
	PublishWalletDepleted(ctx context.Context, tenantId uuid.UUID, lastTransactionId uuid.UUID)
	PublishRefundIssued(ctx context.Context, tenantId, refundTransactionId, originalTransactionId uuid.UUID, credits float64, reason string)
	PublishAutoRechargeTriggered(ctx context.Context, tenantId uuid.UUID, balance, threshold, rechargeAmount float64)
	PublishPlanCreditsAllocated(ctx context.Context, tenantId, transactionId uuid.UUID, allocated, expired float64)
	PublishPaymentFailed(ctx context.Context, tenantId uuid.UUID, orderId, gatewayStatus string)
}

// NatsPublisher implements Publisher using NATS JetStream.
type NatsPublisher struct {
	publisher *pkgNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pkgNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("BILLING", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishCreditsAdded emits CREDITS_ADDED after a committed credit.
func (p *NatsPublisher) PublishCreditsAdded(ctx context.Context, tenantId, transactionId uuid.UUID, credits, balanceAfter float64, source string) {
	now := time.Now()
	p.publish(ctx, "CREDITS_ADDED", map[string]interface{}{
		"tenant_id":      tenantId,
		"transaction_id": transactionId,
		"credits":        credits,
		"balance_after":  balanceAfter,
		"source":         source,
		"entity_type":    "wallet_transaction",
		"entity_id":      transactionId.String(),
		"occurred_at":    now,
	})
}

// PublishCreditsDebited emits CREDITS_DEBITED after a committed debit.
func (p *NatsPublisher) PublishCreditsDebited(ctx context.Context, tenantId, transactionId uuid.UUID, credits, balanceAfter float64, category string) {
	now := time.Now()
	p.publish(ctx, "CREDITS_DEBITED", map[string]interface{}{
		"tenant_id":      tenantId,
		"transaction_id": transactionId,
		"credits":        credits,
		"balance_after":  balanceAfter,
		"category":       category,
		"entity_type":    "wallet_transaction",
		"entity_id":      transactionId.String(),
		"occurred_at":    now,
	})
}

// PublishLowBalance emits LOW_BALANCE once per threshold crossing.
func (p *NatsPublisher) PublishLowBalance(ctx context.Context, tenantId uuid.UUID, balance, threshold float64) {
	now := time.Now()
	p.publish(ctx, "LOW_BALANCE", map[string]interface{}{
		"tenant_id":   tenantId,
		"balance":     balance,
		"threshold":   threshold,
		"entity_type": "wallet",
		"entity_id":   tenantId.String(),
		"occurred_at": now,
	})
}

// PublishWalletDepleted emits WALLET_DEPLETED when a debit exhausts the balance.
func (p *NatsPublisher) PublishWalletDepleted(ctx context.Context, tenantId uuid.UUID, lastTransactionId uuid.UUID) {
	now := time.Now()
	p.publish(ctx, "WALLET_DEPLETED", map[string]interface{}{
		"tenant_id":           tenantId,
		"last_transaction_id": lastTransactionId,
		"entity_type":         "wallet",
		"entity_id":           tenantId.String(),
		"occurred_at":         now,
	})
}

// PublishRefundIssued emits REFUND_ISSUED after a committed refund.
func (p *NatsPublisher) PublishRefundIssued(ctx context.Context, tenantId, refundTransactionId, originalTransactionId uuid.UUID, credits float64, reason string) {
	now := time.Now()
	p.publish(ctx, "REFUND_ISSUED", map[string]interface{}{
		"tenant_id":               tenantId,
		"refund_transaction_id":   refundTransactionId,
		"original_transaction_id": originalTransactionId,
		"credits":                 credits,
		"reason":                  reason,
		"entity_type":             "wallet_transaction",
		"entity_id":               refundTransactionId.String(),
		"occurred_at":             now,
	})
}

// PublishAutoRechargeTriggered emits AUTO_RECHARGE_TRIGGERED when a debit
// drops the balance through the recharge threshold.
func (p *NatsPublisher) PublishAutoRechargeTriggered(ctx context.Context, tenantId uuid.UUID, balance, threshold, rechargeAmount float64) {
	now := time.Now()
	p.publish(ctx, "AUTO_RECHARGE_TRIGGERED", map[string]interface{}{
		"tenant_id":       tenantId,
		"balance":         balance,
		"threshold":       threshold,
		"recharge_amount": rechargeAmount,
		"entity_type":     "wallet",
		"entity_id":       tenantId.String(),
		"occurred_at":     now,
	})
}

// PublishPlanCreditsAllocated emits PLAN_CREDITS_ALLOCATED after a monthly
// allocation cycle commits.
func (p *NatsPublisher) PublishPlanCreditsAllocated(ctx context.Context, tenantId, transactionId uuid.UUID, allocated, expired float64) {
	now := time.Now()
	p.publish(ctx, "PLAN_CREDITS_ALLOCATED", map[string]interface{}{
		"tenant_id":      tenantId,
		"transaction_id": transactionId,
		"allocated":      allocated,
		"expired":        expired,
		"entity_type":    "wallet_transaction",
		"entity_id":      transactionId.String(),
		"occurred_at":    now,
	})
}

// PublishPaymentFailed emits PAYMENT_FAILED when the gateway reports a
// denied, cancelled or expired top-up order.
func (p *NatsPublisher) PublishPaymentFailed(ctx context.Context, tenantId uuid.UUID, orderId, gatewayStatus string) {
	now := time.Now()
	p.publish(ctx, "PAYMENT_FAILED", map[string]interface{}{
		"tenant_id":      tenantId,
		"order_id":       orderId,
		"gateway_status": gatewayStatus,
		"entity_type":    "payment_order",
		"entity_id":      orderId,
		"occurred_at":    now,
	})
}

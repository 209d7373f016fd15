package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification types surfaced to the admin console inbox.
const (
	NotificationLowBalance     = "wallet.low_balance"
	NotificationWalletDepleted = "wallet.depleted"
	NotificationCreditsAdded   = "wallet.credits_added"
	NotificationRefundIssued   = "wallet.refund_issued"
	NotificationPaymentFailed  = "payment.failed"
)

type Notification struct {
	Id        uuid.UUID
	TenantId  *uuid.UUID
	TypeCode  string
	Title     string
	Message   string
	Metadata  map[string]interface{}
	IsRead    bool
	CreatedAt time.Time
}

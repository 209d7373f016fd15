package model

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WalletId uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantId uuid.UUID `gorm:"type:uuid;not null;index"`

	Type   string `gorm:"type:transaction_type;not null;index"`
	Status string `gorm:"type:transaction_status;not null;default:'completed';index"`

	CreditsAmount  float64 `gorm:"type:numeric(18,4);not null"`
	CurrencyAmount float64 `gorm:"type:numeric(18,4);not null;default:0"`
	Currency       string  `gorm:"type:varchar(3);not null;default:'INR'"`

	BalanceBefore float64 `gorm:"type:numeric(18,4);not null"`
	BalanceAfter  float64 `gorm:"type:numeric(18,4);not null"`

	MetaCost       float64 `gorm:"type:numeric(18,6);not null;default:0"`
	PlatformMarkup float64 `gorm:"type:numeric(18,6);not null;default:0"`
	Category       *string `gorm:"type:conversation_category"`

	Description          string     `gorm:"type:text"`
	RelatedTransactionId *uuid.UUID `gorm:"type:uuid;index"`

	PaymentId      *string    `gorm:"type:varchar(255);index"`
	PaymentMethod  *string    `gorm:"type:varchar(100)"`
	TopUpPackageId *uuid.UUID `gorm:"type:uuid"`

	// MessageId carries the debit idempotency key; uniqueness for debits is
	// enforced by a partial index created in cmd/migrate.
	ConversationId *string `gorm:"type:varchar(255);index"`
	MessageId      *string `gorm:"type:varchar(255);index"`
	ContactId      *string `gorm:"type:varchar(255)"`
	ContactCountry *string `gorm:"type:varchar(2)"`

	AdjustedByAdminId *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time `gorm:"default:now();not null;index"`
}

func (Transaction) TableName() string {
	return "wallet_transactions"
}

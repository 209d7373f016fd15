package model

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	CreditBalance   float64 `gorm:"type:numeric(18,4);not null;default:0"`
	CurrencyBalance float64 `gorm:"type:numeric(18,4);not null;default:0"`
	Currency        string  `gorm:"type:varchar(3);not null;default:'INR'"`

	PlanCreditsMonthly   float64    `gorm:"type:numeric(18,4);not null;default:0"`
	PlanCreditsUsed      float64    `gorm:"type:numeric(18,4);not null;default:0"`
	PlanCreditsResetDate *time.Time `gorm:"type:timestamptz"`

	LowBalanceThreshold float64    `gorm:"type:numeric(18,4);not null;default:0"`
	LowBalanceAlertSent bool       `gorm:"not null;default:false"`
	LowBalanceAlertAt   *time.Time `gorm:"type:timestamptz"`

	AutoRechargeEnabled         bool       `gorm:"not null;default:false"`
	AutoRechargeThreshold       float64    `gorm:"type:numeric(18,4);not null;default:0"`
	AutoRechargeAmount          float64    `gorm:"type:numeric(18,4);not null;default:0"`
	AutoRechargePaymentMethodId *string    `gorm:"type:varchar(255)"`
	AutoRechargePackageId       *uuid.UUID `gorm:"type:uuid"`
	AutoRechargeFailureCount    int        `gorm:"not null;default:0"`

	Status           string     `gorm:"type:wallet_status;not null;default:'active';index"`
	SuspensionReason *string    `gorm:"type:text"`
	SuspendedAt      *time.Time `gorm:"type:timestamptz"`

	TotalCreditsAdded  float64 `gorm:"type:numeric(18,4);not null;default:0"`
	TotalCreditsUsed   float64 `gorm:"type:numeric(18,4);not null;default:0"`
	TotalConversations int64   `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Wallet) TableName() string {
	return "wallets"
}

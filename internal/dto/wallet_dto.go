package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Wallet ---

type WalletResponse struct {
	Id                    uuid.UUID  `json:"id"`
	TenantId              uuid.UUID  `json:"tenant_id"`
	CreditBalance         float64    `json:"credit_balance"`
	CurrencyBalance       float64    `json:"currency_balance"`
	Currency              string     `json:"currency"`
	PlanCreditsMonthly    float64    `json:"plan_credits_monthly"`
	PlanCreditsUsed       float64    `json:"plan_credits_used"`
	PlanCreditsResetDate  *time.Time `json:"plan_credits_reset_date,omitempty"`
	LowBalanceThreshold   float64    `json:"low_balance_threshold"`
	AutoRechargeEnabled   bool       `json:"auto_recharge_enabled"`
	AutoRechargeThreshold float64    `json:"auto_recharge_threshold"`
	AutoRechargeAmount    float64    `json:"auto_recharge_amount"`
	Status                string     `json:"status"`
	SuspensionReason      *string    `json:"suspension_reason,omitempty"`
	TotalCreditsAdded     float64    `json:"total_credits_added"`
	TotalCreditsUsed      float64    `json:"total_credits_used"`
	TotalConversations    int64      `json:"total_conversations"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type CreditWalletRequest struct {
	Credits        float64    `json:"credits" validate:"required,gt=0"`
	CurrencyAmount float64    `json:"currency_amount" validate:"gte=0"`
	Reason         string     `json:"reason,omitempty"`
	PaymentId      *string    `json:"payment_id,omitempty"`
	PaymentMethod  *string    `json:"payment_method,omitempty"`
	TopUpPackageId *uuid.UUID `json:"top_up_package_id,omitempty"`
}

type DebitWalletRequest struct {
	Category       string  `json:"category" validate:"required,oneof=marketing utility authentication service"`
	MessageId      string  `json:"message_id" validate:"required"`
	ConversationId *string `json:"conversation_id,omitempty"`
	ContactId      *string `json:"contact_id,omitempty"`
	ContactCountry string  `json:"contact_country" validate:"required,len=2|eq=*"`
}

type UpdateWalletSettingsRequest struct {
	LowBalanceThreshold         *float64 `json:"low_balance_threshold,omitempty" validate:"omitempty,gte=0"`
	AutoRechargeEnabled         *bool    `json:"auto_recharge_enabled,omitempty"`
	AutoRechargeThreshold       *float64 `json:"auto_recharge_threshold,omitempty" validate:"omitempty,gte=0"`
	AutoRechargeAmount          *float64 `json:"auto_recharge_amount,omitempty" validate:"omitempty,gt=0"`
	AutoRechargePaymentMethodId *string  `json:"auto_recharge_payment_method_id,omitempty"`
	AutoRechargePackageId       *string  `json:"auto_recharge_package_id,omitempty" validate:"omitempty,uuid"`
}

type SuspendWalletRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// --- Ledger ---

type TransactionResponse struct {
	Id                   uuid.UUID  `json:"id"`
	WalletId             uuid.UUID  `json:"wallet_id"`
	TenantId             uuid.UUID  `json:"tenant_id"`
	Type                 string     `json:"type"`
	Status               string     `json:"status"`
	CreditsAmount        float64    `json:"credits_amount"`
	CurrencyAmount       float64    `json:"currency_amount"`
	Currency             string     `json:"currency"`
	BalanceBefore        float64    `json:"balance_before"`
	BalanceAfter         float64    `json:"balance_after"`
	MetaCost             float64    `json:"meta_cost,omitempty"`
	PlatformMarkup       float64    `json:"platform_markup,omitempty"`
	Category             *string    `json:"category,omitempty"`
	Description          string     `json:"description,omitempty"`
	RelatedTransactionId *uuid.UUID `json:"related_transaction_id,omitempty"`
	PaymentId            *string    `json:"payment_id,omitempty"`
	MessageId            *string    `json:"message_id,omitempty"`
	ConversationId       *string    `json:"conversation_id,omitempty"`
	ContactCountry       *string    `json:"contact_country,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

type TransactionListQuery struct {
	TenantId string `query:"tenant_id"`
	Type     string `query:"type"`
	Status   string `query:"status"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

// DebitResponse reports whether the debit was freshly applied, matched a
// previously applied idempotency key, or was free of charge (no ledger row).
type DebitResponse struct {
	Transaction    *TransactionResponse `json:"transaction,omitempty"`
	AlreadyApplied bool                 `json:"already_applied"`
	Free           bool                 `json:"free"`
}

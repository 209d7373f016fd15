package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Auth ---

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token string            `json:"token"`
	Admin AdminUserResponse `json:"admin"`
}

type AdminCreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=superadmin operator"`
}

type AdminUserResponse struct {
	Id          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// --- Manual Ledger Operations ---

type AdjustCreditsRequest struct {
	Credits float64 `json:"credits" validate:"required,gt=0"`
	Reason  string  `json:"reason" validate:"required,min=3"`
}

type RefundTransactionRequest struct {
	Credits *float64 `json:"credits,omitempty" validate:"omitempty,gt=0"`
	Reason  string   `json:"reason" validate:"required,min=3"`
}

type AllocatePlanCreditsRequest struct {
	Credits float64 `json:"credits" validate:"required,gt=0"`
}

// --- Dashboards & Reporting ---

type StatsPeriodQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

type CategoryUsageResponse struct {
	Category     string  `json:"category"`
	Messages     int64   `json:"messages"`
	CreditsUsed  float64 `json:"credits_used"`
	MetaCost     float64 `json:"meta_cost"`
	MarkupEarned float64 `json:"markup_earned"`
}

type UsageStatsResponse struct {
	TenantId     uuid.UUID               `json:"tenant_id"`
	From         time.Time               `json:"from"`
	To           time.Time               `json:"to"`
	Messages     int64                   `json:"messages"`
	CreditsUsed  float64                 `json:"credits_used"`
	MetaCost     float64                 `json:"meta_cost"`
	MarkupEarned float64                 `json:"markup_earned"`
	ByCategory   []CategoryUsageResponse `json:"by_category"`
}

type TenantRevenueResponse struct {
	TenantId          uuid.UUID `json:"tenant_id"`
	CreditsPurchased  float64   `json:"credits_purchased"`
	CurrencyCollected float64   `json:"currency_collected"`
}

type RevenueStatsResponse struct {
	From              time.Time               `json:"from"`
	To                time.Time               `json:"to"`
	CreditsPurchased  float64                 `json:"credits_purchased"`
	CurrencyCollected float64                 `json:"currency_collected"`
	CreditsUsed       float64                 `json:"credits_used"`
	CreditsRefunded   float64                 `json:"credits_refunded"`
	MarkupEarned      float64                 `json:"markup_earned"`
	TopTenants        []TenantRevenueResponse `json:"top_tenants"`
}

type AdminDashboardStats struct {
	TotalTenants       int                   `json:"total_tenants"`
	ActiveTenants      int                   `json:"active_tenants"`
	SuspendedWallets   int                   `json:"suspended_wallets"`
	DepletedWallets    int                   `json:"depleted_wallets"`
	Revenue            RevenueStatsResponse  `json:"revenue"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

type ReconciliationResponse struct {
	TenantId      uuid.UUID `json:"tenant_id"`
	LedgerBalance float64   `json:"ledger_balance"`
	WalletBalance float64   `json:"wallet_balance"`
	Transactions  int       `json:"transactions"`
	Consistent    bool      `json:"consistent"`
}

// --- Audit Trail ---

type AuditLogResponse struct {
	Id            uuid.UUID              `json:"id"`
	TenantId      uuid.UUID              `json:"tenant_id"`
	ActorType     string                 `json:"actor_type"`
	ActorId       *uuid.UUID             `json:"actor_id,omitempty"`
	Action        string                 `json:"action"`
	TransactionId *uuid.UUID             `json:"transaction_id,omitempty"`
	CreditsAmount float64                `json:"credits_amount"`
	BalanceBefore float64                `json:"balance_before"`
	BalanceAfter  float64                `json:"balance_after"`
	Detail        map[string]interface{} `json:"detail,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

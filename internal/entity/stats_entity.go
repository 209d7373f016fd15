package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryUsage is one row of a tenant's usage rollup for a period.
type CategoryUsage struct {
	Category     ConversationCategory
	Messages     int64
	CreditsUsed  float64
	MetaCost     float64
	MarkupEarned float64
}

// UsageStats is the per-tenant usage rollup over committed ledger data.
type UsageStats struct {
	TenantId     uuid.UUID
	From         time.Time
	To           time.Time
	Messages     int64
	CreditsUsed  float64
	MetaCost     float64
	MarkupEarned float64
	ByCategory   []CategoryUsage
}

// TenantRevenue is one tenant's contribution within a revenue period.
type TenantRevenue struct {
	TenantId          uuid.UUID
	CreditsPurchased  float64
	CurrencyCollected float64
}

// RevenueStats is the platform-wide revenue rollup over committed ledger data.
type RevenueStats struct {
	From              time.Time
	To                time.Time
	CreditsPurchased  float64
	CurrencyCollected float64
	CreditsUsed       float64
	CreditsRefunded   float64
	MarkupEarned      float64
	TopTenants        []TenantRevenue
}

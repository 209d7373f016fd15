package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Pricing Entries (admin reference data) ---

type PricingEntryRequest struct {
	CountryCode            string     `json:"country_code" validate:"required,len=2|eq=*"`
	Category               string     `json:"category" validate:"required,oneof=marketing utility authentication service"`
	MetaCostUsd            float64    `json:"meta_cost_usd" validate:"gte=0"`
	PlatformCredits        float64    `json:"platform_credits" validate:"gte=0"`
	PlatformCurrencyAmount float64    `json:"platform_currency_amount" validate:"gte=0"`
	MarkupPercentage       float64    `json:"markup_percentage" validate:"gte=0"`
	IsFree                 bool       `json:"is_free"`
	IsActive               bool       `json:"is_active"`
	EffectiveFrom          *time.Time `json:"effective_from,omitempty"`
	EffectiveTo            *time.Time `json:"effective_to,omitempty"`
}

type PricingEntryResponse struct {
	Id                     uuid.UUID  `json:"id"`
	CountryCode            string     `json:"country_code"`
	Category               string     `json:"category"`
	MetaCostUsd            float64    `json:"meta_cost_usd"`
	PlatformCredits        float64    `json:"platform_credits"`
	PlatformCurrencyAmount float64    `json:"platform_currency_amount"`
	MarkupPercentage       float64    `json:"markup_percentage"`
	IsFree                 bool       `json:"is_free"`
	IsActive               bool       `json:"is_active"`
	EffectiveFrom          *time.Time `json:"effective_from,omitempty"`
	EffectiveTo            *time.Time `json:"effective_to,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// --- Price Resolution ---

type ResolvePriceQuery struct {
	CountryCode string `query:"country_code" validate:"required"`
	Category    string `query:"category" validate:"required,oneof=marketing utility authentication service"`
}

type ResolvePriceResponse struct {
	Credits        float64 `json:"credits"`
	CurrencyAmount float64 `json:"currency_amount"`
	MetaCost       float64 `json:"meta_cost"`
	Markup         float64 `json:"markup"`
	IsFree         bool    `json:"is_free"`
	Source         string  `json:"source"`
}

// --- Top-Up Packages ---

type TopUpPackageRequest struct {
	Name         string  `json:"name" validate:"required"`
	Credits      float64 `json:"credits" validate:"required,gt=0"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Currency     string  `json:"currency" validate:"omitempty,len=3"`
	BonusCredits float64 `json:"bonus_credits" validate:"gte=0"`
	IsActive     bool    `json:"is_active"`
	SortOrder    int     `json:"sort_order"`
}

type TopUpPackageResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Credits      float64   `json:"credits"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	BonusCredits float64   `json:"bonus_credits"`
	IsActive     bool      `json:"is_active"`
	SortOrder    int       `json:"sort_order"`
}

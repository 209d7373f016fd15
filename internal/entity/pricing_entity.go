package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConversationCategory string

const (
	CategoryMarketing      ConversationCategory = "marketing"
	CategoryUtility        ConversationCategory = "utility"
	CategoryAuthentication ConversationCategory = "authentication"
	CategoryService        ConversationCategory = "service"
)

// WildcardCountry is the country code of the global default pricing scope.
const WildcardCountry = "*"

func ValidCategory(c ConversationCategory) bool {
	switch c {
	case CategoryMarketing, CategoryUtility, CategoryAuthentication, CategoryService:
		return true
	}
	return false
}

// PricingEntry is reference data keyed by (countryCode, category), unique.
type PricingEntry struct {
	Id          uuid.UUID
	CountryCode string
	Category    ConversationCategory

	MetaCostUsd            float64
	PlatformCredits        float64
	PlatformCurrencyAmount float64
	MarkupPercentage       float64

	IsFree   bool
	IsActive bool

	EffectiveFrom *time.Time
	EffectiveTo   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveAt reports whether the entry may be used for a conversation billed
// at the given instant. Nil bounds leave that side of the window open.
func (p *PricingEntry) EffectiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.EffectiveFrom != nil && now.Before(*p.EffectiveFrom) {
		return false
	}
	if p.EffectiveTo != nil && now.After(*p.EffectiveTo) {
		return false
	}
	return true
}

package memory

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"messaging-backoffice-be/internal/entity"
)

// PricingCache keeps resolved pricing entries in process memory so the hot
// debit path does not hit the pricing table on every message. Entries expire
// after five minutes, which bounds how stale a price update can be.
type PricingCache struct {
	cache *cache.Cache
}

func NewPricingCache() *PricingCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &PricingCache{
		cache: c,
	}
}

func pricingKey(countryCode string, category entity.ConversationCategory) string {
	return fmt.Sprintf("pricing:%s:%s", countryCode, category)
}

func (r *PricingCache) Save(countryCode string, category entity.ConversationCategory, entry *entity.PricingEntry) {
	r.cache.Set(pricingKey(countryCode, category), entry, cache.DefaultExpiration)
}

func (r *PricingCache) Get(countryCode string, category entity.ConversationCategory) (*entity.PricingEntry, bool) {
	if x, found := r.cache.Get(pricingKey(countryCode, category)); found {
		return x.(*entity.PricingEntry), true
	}
	return nil, false
}

// Flush drops every cached entry. Called after admin pricing mutations so the
// next resolution reads the fresh row.
func (r *PricingCache) Flush() {
	r.cache.Flush()
}

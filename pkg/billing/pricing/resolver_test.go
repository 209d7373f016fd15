package pricing

import (
	"context"
	"testing"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/memory"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(string) (*logger.LogEntry, error) { return nil, nil }

// The cache-hit paths never touch the database, so a nil unit of work proves
// the hot path stays in memory.
func TestResolveFromCache(t *testing.T) {
	ctx := context.Background()

	t.Run("country entry", func(t *testing.T) {
		cache := memory.NewPricingCache()
		cache.Save("IN", entity.CategoryUtility, &entity.PricingEntry{
			CountryCode:            "IN",
			Category:               entity.CategoryUtility,
			MetaCostUsd:            0.0014,
			PlatformCredits:        0.125,
			PlatformCurrencyAmount: 0.125,
			IsActive:               true,
		})
		r := NewResolver(cache, nopLogger{})

		res, err := r.Resolve(ctx, nil, "IN", entity.CategoryUtility)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Credits != 0.125 {
			t.Errorf("Credits = %.4f, want 0.125", res.Credits)
		}
		if res.Source != "country" {
			t.Errorf("Source = %q, want country", res.Source)
		}
		if res.IsFree {
			t.Error("IsFree = true, want false")
		}
	})

	t.Run("wildcard entry reports wildcard source", func(t *testing.T) {
		cache := memory.NewPricingCache()
		cache.Save("BR", entity.CategoryMarketing, &entity.PricingEntry{
			CountryCode:     entity.WildcardCountry,
			Category:        entity.CategoryMarketing,
			PlatformCredits: 1.25,
			IsActive:        true,
		})
		r := NewResolver(cache, nopLogger{})

		res, err := r.Resolve(ctx, nil, "BR", entity.CategoryMarketing)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Source != "wildcard" {
			t.Errorf("Source = %q, want wildcard", res.Source)
		}
	})

	t.Run("free entry yields zero cost", func(t *testing.T) {
		cache := memory.NewPricingCache()
		cache.Save("IN", entity.CategoryService, &entity.PricingEntry{
			CountryCode: "IN",
			Category:    entity.CategoryService,
			IsFree:      true,
			IsActive:    true,
		})
		r := NewResolver(cache, nopLogger{})

		res, err := r.Resolve(ctx, nil, "IN", entity.CategoryService)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsFree {
			t.Error("IsFree = false, want true")
		}
		if res.Credits != 0 {
			t.Errorf("Credits = %.4f, want 0", res.Credits)
		}
	})

	t.Run("cached negative result falls back to default", func(t *testing.T) {
		cache := memory.NewPricingCache()
		cache.Save("ZZ", entity.CategoryMarketing, nil)
		r := NewResolver(cache, nopLogger{})

		res, err := r.Resolve(ctx, nil, "ZZ", entity.CategoryMarketing)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Source != "default" {
			t.Errorf("Source = %q, want default", res.Source)
		}
		if res.Credits != defaultCredits {
			t.Errorf("Credits = %.4f, want %v", res.Credits, defaultCredits)
		}
	})

	t.Run("default keeps service conversations free", func(t *testing.T) {
		cache := memory.NewPricingCache()
		cache.Save("ZZ", entity.CategoryService, nil)
		r := NewResolver(cache, nopLogger{})

		res, err := r.Resolve(ctx, nil, "ZZ", entity.CategoryService)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsFree {
			t.Error("IsFree = false, want true")
		}
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		r := NewResolver(memory.NewPricingCache(), nopLogger{})
		if _, err := r.Resolve(ctx, nil, "IN", "promotional"); err == nil {
			t.Fatal("expected error for unknown category")
		}
	})
}

func TestInvalidateFlushesCache(t *testing.T) {
	cache := memory.NewPricingCache()
	cache.Save("IN", entity.CategoryUtility, &entity.PricingEntry{
		CountryCode:     "IN",
		Category:        entity.CategoryUtility,
		PlatformCredits: 0.125,
		IsActive:        true,
	})
	r := NewResolver(cache, nopLogger{})

	r.Invalidate()

	if _, found := cache.Get("IN", entity.CategoryUtility); found {
		t.Error("cache still holds entries after Invalidate")
	}
}

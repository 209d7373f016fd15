package pricing

import (
	"context"
	"fmt"
	"time"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/memory"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"
)

// Fallback used when neither a country entry nor a wildcard entry exists.
// Service conversations are free by default, everything else costs one credit.
const (
	defaultCredits        = 1
	defaultCurrencyAmount = 1
	defaultMetaCost       = 0.01
)

// Resolution is the cost of one conversation in a given scope.
type Resolution struct {
	Credits        float64
	CurrencyAmount float64
	MetaCost       float64
	Markup         float64
	IsFree         bool
	// Source records which scope produced the price: "country", "wildcard"
	// or "default".
	Source string
}

// Resolver answers "what does one conversation cost". Resolution has no side
// effects and is safe to call concurrently; the only shared state is the
// go-cache instance, which is safe for concurrent use.
type Resolver struct {
	cache  *memory.PricingCache
	logger logger.ILogger
}

func NewResolver(cache *memory.PricingCache, logger logger.ILogger) *Resolver {
	return &Resolver{
		cache:  cache,
		logger: logger,
	}
}

// Resolve walks the scope chain (countryCode, category) -> ('*', category) ->
// hard-coded default. A missing entry is never an error; the default always
// yields a usable price.
func (r *Resolver) Resolve(ctx context.Context, uow unitofwork.UnitOfWork, countryCode string, category entity.ConversationCategory) (*Resolution, error) {
	if !entity.ValidCategory(category) {
		return nil, apperror.ValidationFailed(fmt.Errorf("unknown conversation category %q", category))
	}
	now := time.Now()

	if entry, found := r.cache.Get(countryCode, category); found {
		if entry == nil {
			return r.fallback(category), nil
		}
		// A cached entry can age out of its effectivity window before the
		// cache TTL expires; recheck before using it.
		if entry.EffectiveAt(now) {
			return resolutionFrom(entry, countryCode), nil
		}
	}

	entry, err := r.lookup(ctx, uow, countryCode, category, now)
	if err != nil {
		return nil, err
	}
	// Negative results are cached too; a missing row is the common case for
	// small deployments that only seed the wildcard scope.
	r.cache.Save(countryCode, category, entry)

	if entry == nil {
		return r.fallback(category), nil
	}
	return resolutionFrom(entry, countryCode), nil
}

func (r *Resolver) lookup(ctx context.Context, uow unitofwork.UnitOfWork, countryCode string, category entity.ConversationCategory, now time.Time) (*entity.PricingEntry, error) {
	repo := uow.PricingRepository()

	entry, err := repo.FindOne(ctx,
		specification.PricingScope{CountryCode: countryCode, Category: string(category)},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if entry != nil && entry.EffectiveAt(now) {
		return entry, nil
	}

	if countryCode != entity.WildcardCountry {
		entry, err = repo.FindOne(ctx,
			specification.PricingScope{CountryCode: entity.WildcardCountry, Category: string(category)},
			specification.ActiveOnly{},
		)
		if err != nil {
			return nil, apperror.PersistenceFailure(err)
		}
		if entry != nil && entry.EffectiveAt(now) {
			return entry, nil
		}
	}

	return nil, nil
}

func (r *Resolver) fallback(category entity.ConversationCategory) *Resolution {
	isFree := category == entity.CategoryService
	if isFree {
		return &Resolution{IsFree: true, Source: "default"}
	}
	return &Resolution{
		Credits:        defaultCredits,
		CurrencyAmount: defaultCurrencyAmount,
		MetaCost:       defaultMetaCost,
		Markup:         defaultCredits - defaultMetaCost,
		Source:         "default",
	}
}

func resolutionFrom(entry *entity.PricingEntry, requestedCountry string) *Resolution {
	source := "country"
	if entry.CountryCode == entity.WildcardCountry && requestedCountry != entity.WildcardCountry {
		source = "wildcard"
	}
	if entry.IsFree {
		return &Resolution{IsFree: true, Source: source}
	}
	return &Resolution{
		Credits:        entry.PlatformCredits,
		CurrencyAmount: entry.PlatformCurrencyAmount,
		MetaCost:       entry.MetaCostUsd,
		Markup:         entry.PlatformCredits - entry.MetaCostUsd,
		Source:         source,
	}
}

// Invalidate drops cached prices after an admin mutation.
func (r *Resolver) Invalidate() {
	r.cache.Flush()
	r.logger.Info("PRICING", "Pricing cache flushed", nil)
}

package service

import (
	"context"
	"fmt"
	"time"

	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"
	"messaging-backoffice-be/pkg/billing/pricing"

	"github.com/google/uuid"
)

type IPricingService interface {
	Resolve(ctx context.Context, query *dto.ResolvePriceQuery) (*dto.ResolvePriceResponse, error)
	ListEntries(ctx context.Context) ([]dto.PricingEntryResponse, error)
	CreateEntry(ctx context.Context, req *dto.PricingEntryRequest) (*dto.PricingEntryResponse, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, req *dto.PricingEntryRequest) (*dto.PricingEntryResponse, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	ListPackages(ctx context.Context, activeOnly bool) ([]dto.TopUpPackageResponse, error)
	CreatePackage(ctx context.Context, req *dto.TopUpPackageRequest) (*dto.TopUpPackageResponse, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, req *dto.TopUpPackageRequest) (*dto.TopUpPackageResponse, error)
	DeletePackage(ctx context.Context, id uuid.UUID) error
}

type pricingService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *pricing.Resolver
	logger     logger.ILogger
}

func NewPricingService(uowFactory unitofwork.RepositoryFactory, resolver *pricing.Resolver, logger logger.ILogger) IPricingService {
	return &pricingService{
		uowFactory: uowFactory,
		resolver:   resolver,
		logger:     logger,
	}
}

func (s *pricingService) Resolve(ctx context.Context, query *dto.ResolvePriceQuery) (*dto.ResolvePriceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	res, err := s.resolver.Resolve(ctx, uow, query.CountryCode, entity.ConversationCategory(query.Category))
	if err != nil {
		return nil, err
	}
	return &dto.ResolvePriceResponse{
		Credits:        res.Credits,
		CurrencyAmount: res.CurrencyAmount,
		MetaCost:       res.MetaCost,
		Markup:         res.Markup,
		IsFree:         res.IsFree,
		Source:         res.Source,
	}, nil
}

func (s *pricingService) ListEntries(ctx context.Context) ([]dto.PricingEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.PricingRepository().FindAll(ctx,
		specification.OrderBy{Field: "country_code", Desc: false},
	)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	res := make([]dto.PricingEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toPricingEntryResponse(e))
	}
	return res, nil
}

func (s *pricingService) CreateEntry(ctx context.Context, req *dto.PricingEntryRequest) (*dto.PricingEntryResponse, error) {
	if !entity.ValidCategory(entity.ConversationCategory(req.Category)) {
		return nil, apperror.ValidationFailed(fmt.Errorf("unknown conversation category %q", req.Category))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.PricingRepository().FindOne(ctx,
		specification.PricingScope{CountryCode: req.CountryCode, Category: req.Category},
	)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if existing != nil {
		return nil, apperror.ValidationFailed(fmt.Errorf("pricing entry for (%s, %s) already exists", req.CountryCode, req.Category))
	}

	now := time.Now()
	entry := &entity.PricingEntry{
		Id:                     uuid.New(),
		CountryCode:            req.CountryCode,
		Category:               entity.ConversationCategory(req.Category),
		MetaCostUsd:            req.MetaCostUsd,
		PlatformCredits:        req.PlatformCredits,
		PlatformCurrencyAmount: req.PlatformCurrencyAmount,
		MarkupPercentage:       req.MarkupPercentage,
		IsFree:                 req.IsFree,
		IsActive:               req.IsActive,
		EffectiveFrom:          req.EffectiveFrom,
		EffectiveTo:            req.EffectiveTo,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := uow.PricingRepository().Create(ctx, entry); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	s.resolver.Invalidate()
	res := toPricingEntryResponse(entry)
	return &res, nil
}

func (s *pricingService) UpdateEntry(ctx context.Context, id uuid.UUID, req *dto.PricingEntryRequest) (*dto.PricingEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.PricingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if entry == nil {
		return nil, apperror.NotFound("pricing entry %s not found", id)
	}

	entry.MetaCostUsd = req.MetaCostUsd
	entry.PlatformCredits = req.PlatformCredits
	entry.PlatformCurrencyAmount = req.PlatformCurrencyAmount
	entry.MarkupPercentage = req.MarkupPercentage
	entry.IsFree = req.IsFree
	entry.IsActive = req.IsActive
	entry.EffectiveFrom = req.EffectiveFrom
	entry.EffectiveTo = req.EffectiveTo
	entry.UpdatedAt = time.Now()

	if err := uow.PricingRepository().Update(ctx, entry); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	s.resolver.Invalidate()
	res := toPricingEntryResponse(entry)
	return &res, nil
}

func (s *pricingService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PricingRepository().Delete(ctx, id); err != nil {
		return apperror.PersistenceFailure(err)
	}
	s.resolver.Invalidate()
	return nil
}

func (s *pricingService) ListPackages(ctx context.Context, activeOnly bool) ([]dto.TopUpPackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{
		specification.OrderBy{Field: "sort_order", Desc: false},
	}
	if activeOnly {
		specs = append(specs, specification.ActiveOnly{})
	}
	packages, err := uow.PackageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	res := make([]dto.TopUpPackageResponse, 0, len(packages))
	for _, p := range packages {
		res = append(res, toPackageResponse(p))
	}
	return res, nil
}

func (s *pricingService) CreatePackage(ctx context.Context, req *dto.TopUpPackageRequest) (*dto.TopUpPackageResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	now := time.Now()
	pkg := &entity.TopUpPackage{
		Id:           uuid.New(),
		Name:         req.Name,
		Credits:      req.Credits,
		Price:        req.Price,
		Currency:     currency,
		BonusCredits: req.BonusCredits,
		IsActive:     req.IsActive,
		SortOrder:    req.SortOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PackageRepository().Create(ctx, pkg); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	res := toPackageResponse(pkg)
	return &res, nil
}

func (s *pricingService) UpdatePackage(ctx context.Context, id uuid.UUID, req *dto.TopUpPackageRequest) (*dto.TopUpPackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if pkg == nil {
		return nil, apperror.NotFound("top-up package %s not found", id)
	}

	pkg.Name = req.Name
	pkg.Credits = req.Credits
	pkg.Price = req.Price
	if req.Currency != "" {
		pkg.Currency = req.Currency
	}
	pkg.BonusCredits = req.BonusCredits
	pkg.IsActive = req.IsActive
	pkg.SortOrder = req.SortOrder
	pkg.UpdatedAt = time.Now()

	if err := uow.PackageRepository().Update(ctx, pkg); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	res := toPackageResponse(pkg)
	return &res, nil
}

func (s *pricingService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PackageRepository().Delete(ctx, id); err != nil {
		return apperror.PersistenceFailure(err)
	}
	return nil
}

func toPricingEntryResponse(e *entity.PricingEntry) dto.PricingEntryResponse {
	return dto.PricingEntryResponse{
		Id:                     e.Id,
		CountryCode:            e.CountryCode,
		Category:               string(e.Category),
		MetaCostUsd:            e.MetaCostUsd,
		PlatformCredits:        e.PlatformCredits,
		PlatformCurrencyAmount: e.PlatformCurrencyAmount,
		MarkupPercentage:       e.MarkupPercentage,
		IsFree:                 e.IsFree,
		IsActive:               e.IsActive,
		EffectiveFrom:          e.EffectiveFrom,
		EffectiveTo:            e.EffectiveTo,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
}

func toPackageResponse(p *entity.TopUpPackage) dto.TopUpPackageResponse {
	return dto.TopUpPackageResponse{
		Id:           p.Id,
		Name:         p.Name,
		Credits:      p.Credits,
		Price:        p.Price,
		Currency:     p.Currency,
		BonusCredits: p.BonusCredits,
		IsActive:     p.IsActive,
		SortOrder:    p.SortOrder,
	}
}

package mapper

import (
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/model"
)

type PricingMapper struct{}

func NewPricingMapper() *PricingMapper {
	return &PricingMapper{}
}

func (m *PricingMapper) ToEntity(p *model.PricingEntry) *entity.PricingEntry {
	if p == nil {
		return nil
	}
	return &entity.PricingEntry{
		Id:                     p.Id,
		CountryCode:            p.CountryCode,
		Category:               entity.ConversationCategory(p.Category),
		MetaCostUsd:            p.MetaCostUsd,
		PlatformCredits:        p.PlatformCredits,
		PlatformCurrencyAmount: p.PlatformCurrencyAmount,
		MarkupPercentage:       p.MarkupPercentage,
		IsFree:                 p.IsFree,
		IsActive:               p.IsActive,
		EffectiveFrom:          p.EffectiveFrom,
		EffectiveTo:            p.EffectiveTo,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func (m *PricingMapper) ToModel(p *entity.PricingEntry) *model.PricingEntry {
	if p == nil {
		return nil
	}
	return &model.PricingEntry{
		Id:                     p.Id,
		CountryCode:            p.CountryCode,
		Category:               string(p.Category),
		MetaCostUsd:            p.MetaCostUsd,
		PlatformCredits:        p.PlatformCredits,
		PlatformCurrencyAmount: p.PlatformCurrencyAmount,
		MarkupPercentage:       p.MarkupPercentage,
		IsFree:                 p.IsFree,
		IsActive:               p.IsActive,
		EffectiveFrom:          p.EffectiveFrom,
		EffectiveTo:            p.EffectiveTo,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

type PackageMapper struct{}

func NewPackageMapper() *PackageMapper {
	return &PackageMapper{}
}

func (m *PackageMapper) ToEntity(p *model.TopUpPackage) *entity.TopUpPackage {
	if p == nil {
		return nil
	}
	return &entity.TopUpPackage{
		Id:           p.Id,
		Name:         p.Name,
		Credits:      p.Credits,
		Price:        p.Price,
		Currency:     p.Currency,
		BonusCredits: p.BonusCredits,
		IsActive:     p.IsActive,
		SortOrder:    p.SortOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *PackageMapper) ToModel(p *entity.TopUpPackage) *model.TopUpPackage {
	if p == nil {
		return nil
	}
	return &model.TopUpPackage{
		Id:           p.Id,
		Name:         p.Name,
		Credits:      p.Credits,
		Price:        p.Price,
		Currency:     p.Currency,
		BonusCredits: p.BonusCredits,
		IsActive:     p.IsActive,
		SortOrder:    p.SortOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

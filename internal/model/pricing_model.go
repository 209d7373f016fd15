package model

import (
	"time"

	"github.com/google/uuid"
)

type PricingEntry struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CountryCode string    `gorm:"type:varchar(2);not null;uniqueIndex:idx_pricing_country_category"`
	Category    string    `gorm:"type:conversation_category;not null;uniqueIndex:idx_pricing_country_category"`

	MetaCostUsd            float64 `gorm:"type:numeric(18,6);not null;default:0"`
	PlatformCredits        float64 `gorm:"type:numeric(18,4);not null;default:1"`
	PlatformCurrencyAmount float64 `gorm:"type:numeric(18,4);not null;default:1"`
	MarkupPercentage       float64 `gorm:"type:numeric(8,4);not null;default:0"`

	IsFree   bool `gorm:"not null;default:false"`
	IsActive bool `gorm:"not null;default:true"`

	EffectiveFrom *time.Time `gorm:"type:timestamptz"`
	EffectiveTo   *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PricingEntry) TableName() string {
	return "pricing_entries"
}

type TopUpPackage struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Credits      float64   `gorm:"type:numeric(18,4);not null"`
	Price        float64   `gorm:"type:numeric(18,4);not null"`
	Currency     string    `gorm:"type:varchar(3);not null;default:'INR'"`
	BonusCredits float64   `gorm:"type:numeric(18,4);not null;default:0"`
	IsActive     bool      `gorm:"not null;default:true"`
	SortOrder    int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (TopUpPackage) TableName() string {
	return "top_up_packages"
}

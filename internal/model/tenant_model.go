package model

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Slug         string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ContactEmail string    `gorm:"type:varchar(255);not null"`
	Country      string    `gorm:"type:varchar(2);not null;default:'IN'"`
	Currency     string    `gorm:"type:varchar(3);not null;default:'INR'"`
	Status       string    `gorm:"type:tenant_status;not null;default:'active';index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Tenant) TableName() string {
	return "tenants"
}

type Channel struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"type:channel_type;not null"`
	Identifier string    `gorm:"type:varchar(255);not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Channel) TableName() string {
	return "channels"
}

type FeatureFlag struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feature_tenant_key"`
	Key       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_feature_tenant_key"`
	Enabled   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (FeatureFlag) TableName() string {
	return "feature_flags"
}

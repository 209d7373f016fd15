package entity

import (
	"time"

	"github.com/google/uuid"
)

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is one customer organization on the messaging platform.
type Tenant struct {
	Id           uuid.UUID
	Name         string
	Slug         string
	ContactEmail string
	Country      string
	Currency     string
	Status       TenantStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ChannelType string

const (
	ChannelWhatsApp ChannelType = "whatsapp"
	ChannelSMS      ChannelType = "sms"
	ChannelEmail    ChannelType = "email"
)

// Channel is a messaging channel connector owned by a tenant. Thin CRUD data;
// connector credentials and delivery live outside this back office.
type Channel struct {
	Id         uuid.UUID
	TenantId   uuid.UUID
	Type       ChannelType
	Identifier string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FeatureFlag toggles one named capability for a tenant.
type FeatureFlag struct {
	Id        uuid.UUID
	TenantId  uuid.UUID
	Key       string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

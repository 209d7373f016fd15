package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Tenants ---

type TenantCreateRequest struct {
	Name         string `json:"name" validate:"required"`
	Slug         string `json:"slug" validate:"required,lowercase,alphanum|containsany=-"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Country      string `json:"country" validate:"omitempty,len=2"`
	Currency     string `json:"currency" validate:"omitempty,len=3"`
}

type TenantUpdateRequest struct {
	Name         *string `json:"name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	Country      *string `json:"country,omitempty" validate:"omitempty,len=2"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=active suspended"`
}

type TenantResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ContactEmail string    `json:"contact_email"`
	Country      string    `json:"country"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TenantListResponse struct {
	Tenants []TenantResponse `json:"tenants"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// --- Channels ---

type ChannelCreateRequest struct {
	Type       string `json:"type" validate:"required,oneof=whatsapp sms email"`
	Identifier string `json:"identifier" validate:"required"`
}

type ChannelUpdateRequest struct {
	Identifier *string `json:"identifier,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type ChannelResponse struct {
	Id         uuid.UUID `json:"id"`
	TenantId   uuid.UUID `json:"tenant_id"`
	Type       string    `json:"type"`
	Identifier string    `json:"identifier"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// --- Feature Flags ---

type FeatureFlagUpsertRequest struct {
	Key     string `json:"key" validate:"required"`
	Enabled bool   `json:"enabled"`
}

type FeatureFlagResponse struct {
	Id        uuid.UUID `json:"id"`
	TenantId  uuid.UUID `json:"tenant_id"`
	Key       string    `json:"key"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

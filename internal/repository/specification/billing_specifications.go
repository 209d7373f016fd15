package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type TenantOwnedBy struct {
	TenantID uuid.UUID
}

func (s TenantOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tenant_id = ?", s.TenantID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByType struct {
	Type string
}

func (s ByType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByMessageId matches the debit idempotency key.
type ByMessageId struct {
	MessageId string
}

func (s ByMessageId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("message_id = ?", s.MessageId)
}

type ByPaymentId struct {
	PaymentId string
}

func (s ByPaymentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payment_id = ?", s.PaymentId)
}

type CreatedBetween struct {
	From time.Time
	To   time.Time
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ? AND created_at < ?", s.From, s.To)
}

// PricingScope matches one (countryCode, category) pricing key.
type PricingScope struct {
	CountryCode string
	Category    string
}

func (s PricingScope) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("country_code = ? AND category = ?", s.CountryCode, s.Category)
}

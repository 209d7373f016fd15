package entity

import (
	"time"

	"github.com/google/uuid"
)

// TopUpPackage is a purchasable credit bundle shown at checkout.
type TopUpPackage struct {
	Id           uuid.UUID
	Name         string
	Credits      float64
	Price        float64
	Currency     string
	BonusCredits float64
	IsActive     bool
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "superadmin"
	AdminRoleOperator   AdminRole = "operator"
)

// AdminUser is an operator of the back-office console.
type AdminUser struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         AdminRole
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuditLog mirrors a balance mutation in human-readable form. The ledger's own
// transaction row is the primary record; this is the secondary trail.
type AuditLog struct {
	Id            uuid.UUID
	TenantId      uuid.UUID
	ActorType     string // "admin", "system", "pipeline"
	ActorId       *uuid.UUID
	Action        string
	TransactionId *uuid.UUID
	CreditsAmount float64
	BalanceBefore float64
	BalanceAfter  float64
	Detail        map[string]interface{}
	CreatedAt     time.Time
}

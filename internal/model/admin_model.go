package model

import (
	"time"

	"github.com/google/uuid"

	"gorm.io/datatypes"
)

type AdminUser struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName     string     `gorm:"type:varchar(255);not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:admin_role;not null;default:'operator'"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time `gorm:"type:timestamptz"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

type AuditLog struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	ActorType     string         `gorm:"type:varchar(50);not null"`
	ActorId       *uuid.UUID     `gorm:"type:uuid"`
	Action        string         `gorm:"type:varchar(100);not null;index"`
	TransactionId *uuid.UUID     `gorm:"type:uuid;index"`
	CreditsAmount float64        `gorm:"type:numeric(18,4);not null;default:0"`
	BalanceBefore float64        `gorm:"type:numeric(18,4);not null;default:0"`
	BalanceAfter  float64        `gorm:"type:numeric(18,4);not null;default:0"`
	Detail        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"default:now();not null;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

package model

import (
	"time"

	"github.com/google/uuid"

	"gorm.io/datatypes"
)

// Notification is one alert row shown in the admin console inbox.
type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantId  *uuid.UUID     `gorm:"type:uuid;index" json:"tenant_id,omitempty"`
	TypeCode  string         `gorm:"type:varchar(100);not null;index" json:"type_code"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	IsRead    bool           `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time      `gorm:"default:now();not null" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

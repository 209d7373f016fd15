package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/model"
)

type AdminMapper struct{}

func NewAdminMapper() *AdminMapper {
	return &AdminMapper{}
}

func (m *AdminMapper) ToEntity(a *model.AdminUser) *entity.AdminUser {
	if a == nil {
		return nil
	}
	return &entity.AdminUser{
		Id:           a.Id,
		Email:        a.Email,
		FullName:     a.FullName,
		PasswordHash: a.PasswordHash,
		Role:         entity.AdminRole(a.Role),
		IsActive:     a.IsActive,
		LastLoginAt:  a.LastLoginAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AdminMapper) ToModel(a *entity.AdminUser) *model.AdminUser {
	if a == nil {
		return nil
	}
	return &model.AdminUser{
		Id:           a.Id,
		Email:        a.Email,
		FullName:     a.FullName,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		IsActive:     a.IsActive,
		LastLoginAt:  a.LastLoginAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) ToEntity(a *model.AuditLog) *entity.AuditLog {
	if a == nil {
		return nil
	}
	var detail map[string]interface{}
	if len(a.Detail) > 0 {
		_ = json.Unmarshal(a.Detail, &detail)
	}
	return &entity.AuditLog{
		Id:            a.Id,
		TenantId:      a.TenantId,
		ActorType:     a.ActorType,
		ActorId:       a.ActorId,
		Action:        a.Action,
		TransactionId: a.TransactionId,
		CreditsAmount: a.CreditsAmount,
		BalanceBefore: a.BalanceBefore,
		BalanceAfter:  a.BalanceAfter,
		Detail:        detail,
		CreatedAt:     a.CreatedAt,
	}
}

func (m *AuditMapper) ToModel(a *entity.AuditLog) *model.AuditLog {
	if a == nil {
		return nil
	}
	var detail datatypes.JSON
	if a.Detail != nil {
		raw, err := json.Marshal(a.Detail)
		if err == nil {
			detail = datatypes.JSON(raw)
		}
	}
	return &model.AuditLog{
		Id:            a.Id,
		TenantId:      a.TenantId,
		ActorType:     a.ActorType,
		ActorId:       a.ActorId,
		Action:        a.Action,
		TransactionId: a.TransactionId,
		CreditsAmount: a.CreditsAmount,
		BalanceBefore: a.BalanceBefore,
		BalanceAfter:  a.BalanceAfter,
		Detail:        detail,
		CreatedAt:     a.CreatedAt,
	}
}

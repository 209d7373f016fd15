package mapper

import (
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/model"
)

type TenantMapper struct{}

func NewTenantMapper() *TenantMapper {
	return &TenantMapper{}
}

func (m *TenantMapper) ToEntity(t *model.Tenant) *entity.Tenant {
	if t == nil {
		return nil
	}
	return &entity.Tenant{
		Id:           t.Id,
		Name:         t.Name,
		Slug:         t.Slug,
		ContactEmail: t.ContactEmail,
		Country:      t.Country,
		Currency:     t.Currency,
		Status:       entity.TenantStatus(t.Status),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (m *TenantMapper) ToModel(t *entity.Tenant) *model.Tenant {
	if t == nil {
		return nil
	}
	return &model.Tenant{
		Id:           t.Id,
		Name:         t.Name,
		Slug:         t.Slug,
		ContactEmail: t.ContactEmail,
		Country:      t.Country,
		Currency:     t.Currency,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type ChannelMapper struct{}

func NewChannelMapper() *ChannelMapper {
	return &ChannelMapper{}
}

func (m *ChannelMapper) ToEntity(c *model.Channel) *entity.Channel {
	if c == nil {
		return nil
	}
	return &entity.Channel{
		Id:         c.Id,
		TenantId:   c.TenantId,
		Type:       entity.ChannelType(c.Type),
		Identifier: c.Identifier,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *ChannelMapper) ToModel(c *entity.Channel) *model.Channel {
	if c == nil {
		return nil
	}
	return &model.Channel{
		Id:         c.Id,
		TenantId:   c.TenantId,
		Type:       string(c.Type),
		Identifier: c.Identifier,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

type FeatureFlagMapper struct{}

func NewFeatureFlagMapper() *FeatureFlagMapper {
	return &FeatureFlagMapper{}
}

func (m *FeatureFlagMapper) ToEntity(f *model.FeatureFlag) *entity.FeatureFlag {
	if f == nil {
		return nil
	}
	return &entity.FeatureFlag{
		Id:        f.Id,
		TenantId:  f.TenantId,
		Key:       f.Key,
		Enabled:   f.Enabled,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (m *FeatureFlagMapper) ToModel(f *entity.FeatureFlag) *model.FeatureFlag {
	if f == nil {
		return nil
	}
	return &model.FeatureFlag{
		Id:        f.Id,
		TenantId:  f.TenantId,
		Key:       f.Key,
		Enabled:   f.Enabled,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

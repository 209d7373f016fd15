package contract

import (
	"context"

	"github.com/google/uuid"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/repository/specification"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	Update(ctx context.Context, tenant *entity.Tenant) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tenant, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tenant, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ChannelRepository interface {
	Create(ctx context.Context, channel *entity.Channel) error
	Update(ctx context.Context, channel *entity.Channel) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Channel, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Channel, error)
}

type FeatureFlagRepository interface {
	Upsert(ctx context.Context, flag *entity.FeatureFlag) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeatureFlag, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeatureFlag, error)
}

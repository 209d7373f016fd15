package contract

import (
	"context"

	"github.com/google/uuid"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/repository/specification"
)

type PricingRepository interface {
	Create(ctx context.Context, entry *entity.PricingEntry) error
	Update(ctx context.Context, entry *entity.PricingEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PricingEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PricingEntry, error)
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.TopUpPackage) error
	Update(ctx context.Context, pkg *entity.TopUpPackage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TopUpPackage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TopUpPackage, error)
}

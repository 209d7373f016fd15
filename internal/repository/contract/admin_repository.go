package contract

import (
	"context"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/repository/specification"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.AdminUser) error
	Update(ctx context.Context, admin *entity.AdminUser) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AdminUser, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminUser, error)
}

type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

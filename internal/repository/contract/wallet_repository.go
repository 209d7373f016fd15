package contract

import (
	"context"

	"github.com/google/uuid"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/repository/specification"
)

type WalletRepository interface {
	Create(ctx context.Context, wallet *entity.Wallet) error
	Update(ctx context.Context, wallet *entity.Wallet) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Wallet, error)
	// FindOneForUpdate locks the wallet row (SELECT ... FOR UPDATE) for the
	// duration of the surrounding unit-of-work transaction.
	FindOneForUpdate(ctx context.Context, tenantId uuid.UUID) (*entity.Wallet, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Wallet, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

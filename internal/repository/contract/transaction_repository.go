package contract

import (
	"context"
	"time"

	"github.com/google/uuid"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/repository/specification"
)

// TransactionRepository is the append-only ledger. Rows are never updated
// except for the completed -> refunded status flip.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	MarkRefunded(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	GetUsageStats(ctx context.Context, tenantId uuid.UUID, from, to time.Time) (*entity.UsageStats, error)
	GetRevenueStats(ctx context.Context, from, to time.Time) (*entity.RevenueStats, error)
}

package implementation

import (
	"context"
	"errors"
	"time"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/mapper"
	"messaging-backoffice-be/internal/model"
	"messaging-backoffice-be/internal/repository/contract"
	"messaging-backoffice-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TransactionMapper
}

func NewTransactionRepository(db *gorm.DB) contract.TransactionRepository {
	return &TransactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewTransactionMapper(),
	}
}

func (r *TransactionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TransactionRepositoryImpl) Create(ctx context.Context, txn *entity.Transaction) error {
	m := r.mapper.ToModel(txn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*txn = *r.mapper.ToEntity(m)
	return nil
}

func (r *TransactionRepositoryImpl) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("status", string(entity.TransactionStatusRefunded)).Error
}

func (r *TransactionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	var m model.Transaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	var models []*model.Transaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Transaction, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *TransactionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Transaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type usageRow struct {
	Category     *string
	Messages     int64
	CreditsUsed  float64
	MetaCost     float64
	MarkupEarned float64
}

// GetUsageStats rolls up completed debits for one tenant, grouped by
// conversation category. Pending and failed rows never count.
func (r *TransactionRepositoryImpl) GetUsageStats(ctx context.Context, tenantId uuid.UUID, from, to time.Time) (*entity.UsageStats, error) {
	var rows []usageRow
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select(`category,
			COUNT(*) AS messages,
			COALESCE(SUM(-credits_amount), 0) AS credits_used,
			COALESCE(SUM(meta_cost), 0) AS meta_cost,
			COALESCE(SUM(platform_markup), 0) AS markup_earned`).
		Where("tenant_id = ?", tenantId).
		Where("type = ?", string(entity.TransactionTypeDebit)).
		Where("status = ?", string(entity.TransactionStatusCompleted)).
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &entity.UsageStats{
		TenantId: tenantId,
		From:     from,
		To:       to,
	}
	for _, row := range rows {
		usage := entity.CategoryUsage{
			Messages:     row.Messages,
			CreditsUsed:  row.CreditsUsed,
			MetaCost:     row.MetaCost,
			MarkupEarned: row.MarkupEarned,
		}
		if row.Category != nil {
			usage.Category = entity.ConversationCategory(*row.Category)
		}
		stats.ByCategory = append(stats.ByCategory, usage)
		stats.Messages += row.Messages
		stats.CreditsUsed += row.CreditsUsed
		stats.MetaCost += row.MetaCost
		stats.MarkupEarned += row.MarkupEarned
	}
	return stats, nil
}

type revenueTotalsRow struct {
	CreditsPurchased  float64
	CurrencyCollected float64
	CreditsUsed       float64
	CreditsRefunded   float64
	MarkupEarned      float64
}

type tenantRevenueRow struct {
	TenantId          uuid.UUID
	CreditsPurchased  float64
	CurrencyCollected float64
}

// GetRevenueStats rolls up platform-wide revenue over committed ledger rows
// and ranks the top contributing tenants by currency collected.
func (r *TransactionRepositoryImpl) GetRevenueStats(ctx context.Context, from, to time.Time) (*entity.RevenueStats, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&model.Transaction{}).
			Where("status = ?", string(entity.TransactionStatusCompleted)).
			Where("created_at >= ? AND created_at < ?", from, to)
	}

	var totals revenueTotalsRow
	err := base().
		Select(`COALESCE(SUM(CASE WHEN type = 'credit' THEN credits_amount ELSE 0 END), 0) AS credits_purchased,
			COALESCE(SUM(CASE WHEN type = 'credit' THEN currency_amount ELSE 0 END), 0) AS currency_collected,
			COALESCE(SUM(CASE WHEN type = 'debit' THEN -credits_amount ELSE 0 END), 0) AS credits_used,
			COALESCE(SUM(CASE WHEN type = 'refund' THEN credits_amount ELSE 0 END), 0) AS credits_refunded,
			COALESCE(SUM(CASE WHEN type = 'debit' THEN platform_markup ELSE 0 END), 0) AS markup_earned`).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var tenants []tenantRevenueRow
	err = base().
		Select(`tenant_id,
			COALESCE(SUM(credits_amount), 0) AS credits_purchased,
			COALESCE(SUM(currency_amount), 0) AS currency_collected`).
		Where("type = ?", string(entity.TransactionTypeCredit)).
		Group("tenant_id").
		Order("currency_collected DESC").
		Limit(10).
		Scan(&tenants).Error
	if err != nil {
		return nil, err
	}

	stats := &entity.RevenueStats{
		From:              from,
		To:                to,
		CreditsPurchased:  totals.CreditsPurchased,
		CurrencyCollected: totals.CurrencyCollected,
		CreditsUsed:       totals.CreditsUsed,
		CreditsRefunded:   totals.CreditsRefunded,
		MarkupEarned:      totals.MarkupEarned,
	}
	for _, t := range tenants {
		stats.TopTenants = append(stats.TopTenants, entity.TenantRevenue{
			TenantId:          t.TenantId,
			CreditsPurchased:  t.CreditsPurchased,
			CurrencyCollected: t.CurrencyCollected,
		})
	}
	return stats, nil
}

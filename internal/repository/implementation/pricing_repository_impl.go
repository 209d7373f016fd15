package implementation

import (
	"context"
	"errors"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/mapper"
	"messaging-backoffice-be/internal/model"
	"messaging-backoffice-be/internal/repository/contract"
	"messaging-backoffice-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PricingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PricingMapper
}

func NewPricingRepository(db *gorm.DB) contract.PricingRepository {
	return &PricingRepositoryImpl{
		db:     db,
		mapper: mapper.NewPricingMapper(),
	}
}

func (r *PricingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PricingRepositoryImpl) Create(ctx context.Context, entry *entity.PricingEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *PricingRepositoryImpl) Update(ctx context.Context, entry *entity.PricingEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *PricingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PricingEntry{}, id).Error
}

func (r *PricingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PricingEntry, error) {
	var m model.PricingEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PricingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PricingEntry, error) {
	var models []*model.PricingEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.PricingEntry, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

type PackageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PackageMapper
}

func NewPackageRepository(db *gorm.DB) contract.PackageRepository {
	return &PackageRepositoryImpl{
		db:     db,
		mapper: mapper.NewPackageMapper(),
	}
}

func (r *PackageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PackageRepositoryImpl) Create(ctx context.Context, pkg *entity.TopUpPackage) error {
	m := r.mapper.ToModel(pkg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*pkg = *r.mapper.ToEntity(m)
	return nil
}

func (r *PackageRepositoryImpl) Update(ctx context.Context, pkg *entity.TopUpPackage) error {
	m := r.mapper.ToModel(pkg)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*pkg = *r.mapper.ToEntity(m)
	return nil
}

func (r *PackageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TopUpPackage{}, id).Error
}

func (r *PackageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TopUpPackage, error) {
	var m model.TopUpPackage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PackageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TopUpPackage, error) {
	var models []*model.TopUpPackage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TopUpPackage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

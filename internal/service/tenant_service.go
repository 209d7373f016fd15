package service

import (
	"context"
	"fmt"
	"time"

	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITenantService interface {
	Create(ctx context.Context, req *dto.TenantCreateRequest) (*dto.TenantResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.TenantUpdateRequest) (*dto.TenantResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error)
	List(ctx context.Context, status string, page, limit int) (*dto.TenantListResponse, error)

	CreateChannel(ctx context.Context, tenantId uuid.UUID, req *dto.ChannelCreateRequest) (*dto.ChannelResponse, error)
	UpdateChannel(ctx context.Context, tenantId, channelId uuid.UUID, req *dto.ChannelUpdateRequest) (*dto.ChannelResponse, error)
	DeleteChannel(ctx context.Context, tenantId, channelId uuid.UUID) error
	ListChannels(ctx context.Context, tenantId uuid.UUID) ([]dto.ChannelResponse, error)

	UpsertFeatureFlag(ctx context.Context, tenantId uuid.UUID, req *dto.FeatureFlagUpsertRequest) (*dto.FeatureFlagResponse, error)
	ListFeatureFlags(ctx context.Context, tenantId uuid.UUID) ([]dto.FeatureFlagResponse, error)
}

type tenantService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewTenantService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) ITenantService {
	return &tenantService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *tenantService) Create(ctx context.Context, req *dto.TenantCreateRequest) (*dto.TenantResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.TenantRepository().FindOne(ctx, specification.Filter("slug", req.Slug))
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if existing != nil {
		return nil, apperror.ValidationFailed(fmt.Errorf("tenant slug %q is already taken", req.Slug))
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	now := time.Now()
	tenant := &entity.Tenant{
		Id:           uuid.New(),
		Name:         req.Name,
		Slug:         req.Slug,
		ContactEmail: req.ContactEmail,
		Country:      req.Country,
		Currency:     currency,
		Status:       entity.TenantStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.TenantRepository().Create(ctx, tenant); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	s.logger.Info("TENANT", "Tenant created", map[string]interface{}{
		"tenant_id": tenant.Id.String(),
		"slug":      tenant.Slug,
	})
	res := toTenantResponse(tenant)
	return &res, nil
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, req *dto.TenantUpdateRequest) (*dto.TenantResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tenant, err := uow.TenantRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if tenant == nil {
		return nil, apperror.NotFound("tenant %s not found", id)
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.ContactEmail != nil {
		tenant.ContactEmail = *req.ContactEmail
	}
	if req.Country != nil {
		tenant.Country = *req.Country
	}
	if req.Status != nil {
		tenant.Status = entity.TenantStatus(*req.Status)
	}
	tenant.UpdatedAt = time.Now()

	if err := uow.TenantRepository().Update(ctx, tenant); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	if req.Status != nil {
		s.logger.Info("TENANT", "Tenant status changed", map[string]interface{}{
			"tenant_id": tenant.Id.String(),
			"status":    string(tenant.Status),
		})
	}
	res := toTenantResponse(tenant)
	return &res, nil
}

func (s *tenantService) GetById(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tenant, err := uow.TenantRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if tenant == nil {
		return nil, apperror.NotFound("tenant %s not found", id)
	}
	res := toTenantResponse(tenant)
	return &res, nil
}

func (s *tenantService) List(ctx context.Context, status string, page, limit int) (*dto.TenantListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var filterSpecs []specification.Specification
	if status != "" {
		filterSpecs = append(filterSpecs, specification.ByStatus{Status: status})
	}

	total, err := uow.TenantRepository().Count(ctx, filterSpecs...)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	listSpecs := append(filterSpecs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	tenants, err := uow.TenantRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	res := &dto.TenantListResponse{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Tenants: make([]dto.TenantResponse, 0, len(tenants)),
	}
	for _, t := range tenants {
		res.Tenants = append(res.Tenants, toTenantResponse(t))
	}
	return res, nil
}

func (s *tenantService) CreateChannel(ctx context.Context, tenantId uuid.UUID, req *dto.ChannelCreateRequest) (*dto.ChannelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.requireTenant(ctx, uow, tenantId); err != nil {
		return nil, err
	}

	now := time.Now()
	channel := &entity.Channel{
		Id:         uuid.New(),
		TenantId:   tenantId,
		Type:       entity.ChannelType(req.Type),
		Identifier: req.Identifier,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uow.ChannelRepository().Create(ctx, channel); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	res := toChannelResponse(channel)
	return &res, nil
}

func (s *tenantService) UpdateChannel(ctx context.Context, tenantId, channelId uuid.UUID, req *dto.ChannelUpdateRequest) (*dto.ChannelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	channel, err := uow.ChannelRepository().FindOne(ctx,
		specification.ByID{ID: channelId},
		specification.TenantOwnedBy{TenantID: tenantId},
	)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if channel == nil {
		return nil, apperror.NotFound("channel %s not found", channelId)
	}

	if req.Identifier != nil {
		channel.Identifier = *req.Identifier
	}
	if req.IsActive != nil {
		channel.IsActive = *req.IsActive
	}
	channel.UpdatedAt = time.Now()

	if err := uow.ChannelRepository().Update(ctx, channel); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	res := toChannelResponse(channel)
	return &res, nil
}

func (s *tenantService) DeleteChannel(ctx context.Context, tenantId, channelId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	channel, err := uow.ChannelRepository().FindOne(ctx,
		specification.ByID{ID: channelId},
		specification.TenantOwnedBy{TenantID: tenantId},
	)
	if err != nil {
		return apperror.PersistenceFailure(err)
	}
	if channel == nil {
		return apperror.NotFound("channel %s not found", channelId)
	}
	if err := uow.ChannelRepository().Delete(ctx, channelId); err != nil {
		return apperror.PersistenceFailure(err)
	}
	return nil
}

func (s *tenantService) ListChannels(ctx context.Context, tenantId uuid.UUID) ([]dto.ChannelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	channels, err := uow.ChannelRepository().FindAll(ctx,
		specification.TenantOwnedBy{TenantID: tenantId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	res := make([]dto.ChannelResponse, 0, len(channels))
	for _, c := range channels {
		res = append(res, toChannelResponse(c))
	}
	return res, nil
}

func (s *tenantService) UpsertFeatureFlag(ctx context.Context, tenantId uuid.UUID, req *dto.FeatureFlagUpsertRequest) (*dto.FeatureFlagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.requireTenant(ctx, uow, tenantId); err != nil {
		return nil, err
	}

	now := time.Now()
	flag := &entity.FeatureFlag{
		Id:        uuid.New(),
		TenantId:  tenantId,
		Key:       req.Key,
		Enabled:   req.Enabled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.FeatureFlagRepository().Upsert(ctx, flag); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	// Re-read so the response carries the surviving row's id on conflict.
	stored, err := uow.FeatureFlagRepository().FindOne(ctx,
		specification.TenantOwnedBy{TenantID: tenantId},
		specification.Filter("key", req.Key),
	)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if stored == nil {
		return nil, apperror.PersistenceFailure(fmt.Errorf("feature flag %s vanished after upsert", req.Key))
	}

	return &dto.FeatureFlagResponse{
		Id:        stored.Id,
		TenantId:  stored.TenantId,
		Key:       stored.Key,
		Enabled:   stored.Enabled,
		UpdatedAt: stored.UpdatedAt,
	}, nil
}

func (s *tenantService) ListFeatureFlags(ctx context.Context, tenantId uuid.UUID) ([]dto.FeatureFlagResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	flags, err := uow.FeatureFlagRepository().FindAll(ctx,
		specification.TenantOwnedBy{TenantID: tenantId},
		specification.OrderBy{Field: "key", Desc: false},
	)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	res := make([]dto.FeatureFlagResponse, 0, len(flags))
	for _, f := range flags {
		res = append(res, dto.FeatureFlagResponse{
			Id:        f.Id,
			TenantId:  f.TenantId,
			Key:       f.Key,
			Enabled:   f.Enabled,
			UpdatedAt: f.UpdatedAt,
		})
	}
	return res, nil
}

func (s *tenantService) requireTenant(ctx context.Context, uow unitofwork.UnitOfWork, tenantId uuid.UUID) error {
	tenant, err := uow.TenantRepository().FindOne(ctx, specification.ByID{ID: tenantId})
	if err != nil {
		return apperror.PersistenceFailure(err)
	}
	if tenant == nil {
		return apperror.NotFound("tenant %s not found", tenantId)
	}
	return nil
}

func toTenantResponse(t *entity.Tenant) dto.TenantResponse {
	return dto.TenantResponse{
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

func toChannelResponse(c *entity.Channel) dto.ChannelResponse {
	return dto.ChannelResponse{
		Id:         c.Id,
		TenantId:   c.TenantId,
		Type:       string(c.Type),
		Identifier: c.Identifier,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}

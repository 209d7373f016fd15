package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	CreateAdmin(ctx context.Context, req *dto.AdminCreateRequest) (*dto.AdminUserResponse, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*dto.AdminUserResponse, error)
	ListAdmins(ctx context.Context) ([]dto.AdminUserResponse, error)
	DeactivateAdmin(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return []byte(secret)
}

func (s *authService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	admin, err := uow.AdminRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if admin == nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}
	if !admin.IsActive {
		return nil, apperror.Unauthorized("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	claims := jwt.MapClaims{
		"admin_id": admin.Id.String(),
		"role":     string(admin.Role),
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(jwtSecret())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	admin.UpdatedAt = now
	if err := uow.AdminRepository().Update(ctx, admin); err != nil {
		s.logger.Warn("AUTH", "Failed to record last login", map[string]interface{}{
			"admin_id": admin.Id.String(),
			"error":    err.Error(),
		})
	}

	s.logger.Info("AUTH", "Admin logged in", map[string]interface{}{
		"admin_id": admin.Id.String(),
		"role":     string(admin.Role),
	})

	return &dto.AdminLoginResponse{
		Token: signedToken,
		Admin: toAdminResponse(admin),
	}, nil
}

func (s *authService) CreateAdmin(ctx context.Context, req *dto.AdminCreateRequest) (*dto.AdminUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.AdminRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if existing != nil {
		return nil, apperror.ValidationFailed(fmt.Errorf("email %s is already registered", req.Email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	admin := &entity.AdminUser{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         entity.AdminRole(req.Role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.AdminRepository().Create(ctx, admin); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	s.logger.Info("AUTH", "Admin account created", map[string]interface{}{
		"admin_id": admin.Id.String(),
		"role":     string(admin.Role),
	})
	res := toAdminResponse(admin)
	return &res, nil
}

func (s *authService) GetAdmin(ctx context.Context, id uuid.UUID) (*dto.AdminUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	admin, err := uow.AdminRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if admin == nil {
		return nil, apperror.NotFound("admin %s not found", id)
	}
	res := toAdminResponse(admin)
	return &res, nil
}

func (s *authService) ListAdmins(ctx context.Context) ([]dto.AdminUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	admins, err := uow.AdminRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: false})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	res := make([]dto.AdminUserResponse, 0, len(admins))
	for _, a := range admins {
		res = append(res, toAdminResponse(a))
	}
	return res, nil
}

func (s *authService) DeactivateAdmin(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	admin, err := uow.AdminRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.PersistenceFailure(err)
	}
	if admin == nil {
		return apperror.NotFound("admin %s not found", id)
	}
	admin.IsActive = false
	admin.UpdatedAt = time.Now()
	if err := uow.AdminRepository().Update(ctx, admin); err != nil {
		return apperror.PersistenceFailure(err)
	}
	return nil
}

func toAdminResponse(a *entity.AdminUser) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		Id:          a.Id,
		Email:       a.Email,
		FullName:    a.FullName,
		Role:        string(a.Role),
		IsActive:    a.IsActive,
		LastLoginAt: a.LastLoginAt,
	}
}

package unitofwork

import (
	"context"

	"messaging-backoffice-be/internal/repository/contract"
)

// UnitOfWork scopes a set of repositories to one database transaction.
// Callers Begin, do their work through the accessors, then Commit; a deferred
// Rollback after a successful Commit returns an error that is ignored.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TenantRepository() contract.TenantRepository
	ChannelRepository() contract.ChannelRepository
	FeatureFlagRepository() contract.FeatureFlagRepository

	WalletRepository() contract.WalletRepository
	TransactionRepository() contract.TransactionRepository
	PricingRepository() contract.PricingRepository
	PackageRepository() contract.PackageRepository

	AdminRepository() contract.AdminRepository
	AuditRepository() contract.AuditRepository
	NotificationRepository() contract.NotificationRepository
}

package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"
	"messaging-backoffice-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	return unitofwork.NewRepositoryFactory(gormDB)
}

func createTestTenant(t *testing.T, factory unitofwork.RepositoryFactory) *entity.Tenant {
	t.Helper()
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)

	tenant := &entity.Tenant{
		Id:           uuid.New(),
		Name:         "Ledger Test Tenant",
		Slug:         fmt.Sprintf("ledger-test-%s", uuid.New().String()[:8]),
		ContactEmail: "billing@ledger-test.example",
		Country:      "IN",
		Currency:     "INR",
		Status:       entity.TenantStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, uow.TenantRepository().Create(ctx, tenant))
	return tenant
}

func TestUnitOfWorkWiring(t *testing.T) {
	factory := setupFactory(t)
	uow := factory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.TenantRepository())
	assert.NotNil(t, uow.WalletRepository())
	assert.NotNil(t, uow.TransactionRepository())
	assert.NotNil(t, uow.PricingRepository())
	assert.NotNil(t, uow.PackageRepository())
	assert.NotNil(t, uow.AdminRepository())
	assert.NotNil(t, uow.AuditRepository())
	assert.NotNil(t, uow.NotificationRepository())
}

// TestWalletLedgerRoundTrip drives a wallet through credit, debit and refund
// the same way the service layer does, then replays the ledger and checks it
// agrees with the stored balance.
func TestWalletLedgerRoundTrip(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()
	tenant := createTestTenant(t, factory)

	// 1. Lazy wallet creation
	uow := factory.NewUnitOfWork(ctx)
	wallet := entity.NewWallet(tenant.Id, tenant.Currency)
	require.NoError(t, uow.WalletRepository().Create(ctx, wallet))

	// 2. Credit 100 under the row lock
	uow = factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	locked, err := uow.WalletRepository().FindOneForUpdate(ctx, tenant.Id)
	require.NoError(t, err)
	require.NotNil(t, locked)

	creditRes, err := locked.ApplyCredit(100, 100, time.Now())
	require.NoError(t, err)

	creditTxn := &entity.Transaction{
		Id:             uuid.New(),
		WalletId:       locked.Id,
		TenantId:       tenant.Id,
		Type:           entity.TransactionTypeCredit,
		Status:         entity.TransactionStatusCompleted,
		CreditsAmount:  100,
		CurrencyAmount: 100,
		Currency:       locked.Currency,
		BalanceBefore:  creditRes.BalanceBefore,
		BalanceAfter:   creditRes.BalanceAfter,
		Description:    "integration test top-up",
		CreatedAt:      time.Now(),
	}
	require.NoError(t, creditTxn.Validate())
	require.NoError(t, uow.TransactionRepository().Create(ctx, creditTxn))
	require.NoError(t, uow.WalletRepository().Update(ctx, locked))
	require.NoError(t, uow.Commit())

	// 3. Debit 30 for a delivered conversation
	messageId := fmt.Sprintf("wamid.%s", uuid.New().String())
	uow = factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	locked, err = uow.WalletRepository().FindOneForUpdate(ctx, tenant.Id)
	require.NoError(t, err)

	debitRes, err := locked.ApplyDebit(30, 30, time.Now())
	require.NoError(t, err)

	category := entity.CategoryMarketing
	debitTxn := &entity.Transaction{
		Id:             uuid.New(),
		WalletId:       locked.Id,
		TenantId:       tenant.Id,
		Type:           entity.TransactionTypeDebit,
		Status:         entity.TransactionStatusCompleted,
		CreditsAmount:  -30,
		CurrencyAmount: -30,
		Currency:       locked.Currency,
		BalanceBefore:  debitRes.BalanceBefore,
		BalanceAfter:   debitRes.BalanceAfter,
		Category:       &category,
		MessageId:      &messageId,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, debitTxn.Validate())
	require.NoError(t, uow.TransactionRepository().Create(ctx, debitTxn))
	require.NoError(t, uow.WalletRepository().Update(ctx, locked))
	require.NoError(t, uow.Commit())

	assert.Equal(t, float64(70), locked.CreditBalance)

	// 4. A second completed debit for the same message must hit the partial
	// unique index.
	uow = factory.NewUnitOfWork(ctx)
	dup := *debitTxn
	dup.Id = uuid.New()
	err = uow.TransactionRepository().Create(ctx, &dup)
	assert.Error(t, err, "duplicate debit for one message should violate the ledger index")

	// 5. Refund flip
	uow = factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.TransactionRepository().MarkRefunded(ctx, debitTxn.Id))
	flipped, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: debitTxn.Id})
	require.NoError(t, err)
	require.NotNil(t, flipped)
	assert.Equal(t, entity.TransactionStatusRefunded, flipped.Status)

	// 6. Ledger replay agrees with the stored balance
	txns, err := uow.TransactionRepository().FindAll(ctx,
		specification.TenantOwnedBy{TenantID: tenant.Id},
		specification.OrderBy{Field: "created_at"},
	)
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	stored, err := uow.WalletRepository().FindOne(ctx, specification.Filter("tenant_id", tenant.Id))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.InDelta(t, entity.Reconcile(txns), stored.CreditBalance, 1e-6)
}

// TestTransactionLookupByPaymentId covers the settlement idempotency probe.
func TestTransactionLookupByPaymentId(t *testing.T) {
	factory := setupFactory(t)
	ctx := context.Background()
	tenant := createTestTenant(t, factory)

	uow := factory.NewUnitOfWork(ctx)
	wallet := entity.NewWallet(tenant.Id, tenant.Currency)
	require.NoError(t, uow.WalletRepository().Create(ctx, wallet))

	paymentId := fmt.Sprintf("order-%s", uuid.New().String())
	txn := &entity.Transaction{
		Id:            uuid.New(),
		WalletId:      wallet.Id,
		TenantId:      tenant.Id,
		Type:          entity.TransactionTypeCredit,
		Status:        entity.TransactionStatusCompleted,
		CreditsAmount: 500,
		Currency:      wallet.Currency,
		BalanceBefore: 0,
		BalanceAfter:  500,
		PaymentId:     &paymentId,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, uow.TransactionRepository().Create(ctx, txn))

	found, err := uow.TransactionRepository().FindOne(ctx, specification.ByPaymentId{PaymentId: paymentId})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, txn.Id, found.Id)

	missing, err := uow.TransactionRepository().FindOne(ctx, specification.ByPaymentId{PaymentId: "order-unknown"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

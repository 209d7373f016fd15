package refund

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/contract"
	"messaging-backoffice-be/internal/repository/specification"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(string) (*logger.LogEntry, error) { return nil, nil }

type nopPublisher struct{}

func (nopPublisher) PublishCreditsAdded(context.Context, uuid.UUID, uuid.UUID, float64, float64, string) {
}
func (nopPublisher) PublishCreditsDebited(context.Context, uuid.UUID, uuid.UUID, float64, float64, string) {
}
func (nopPublisher) PublishLowBalance(context.Context, uuid.UUID, float64, float64)  {}
func (nopPublisher) PublishWalletDepleted(context.Context, uuid.UUID, uuid.UUID)     {}
func (nopPublisher) PublishRefundIssued(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, float64, string) {
}
func (nopPublisher) PublishAutoRechargeTriggered(context.Context, uuid.UUID, float64, float64, float64) {
}
func (nopPublisher) PublishPlanCreditsAllocated(context.Context, uuid.UUID, uuid.UUID, float64, float64) {
}
func (nopPublisher) PublishPaymentFailed(context.Context, uuid.UUID, string, string) {}

// ledgerState is one consistent wallet + ledger snapshot.
type ledgerState struct {
	wallet *entity.Wallet
	txns   map[uuid.UUID]*entity.Transaction
}

func (s *ledgerState) clone() *ledgerState {
	w := *s.wallet
	txns := make(map[uuid.UUID]*entity.Transaction, len(s.txns))
	for id, t := range s.txns {
		c := *t
		txns[id] = &c
	}
	return &ledgerState{wallet: &w, txns: txns}
}

// memoryUnitOfWork gives Begin/Commit/Rollback real transactional semantics
// over an in-memory snapshot: writes land on a staged copy that only replaces
// the committed state on Commit.
type memoryUnitOfWork struct {
	committed *ledgerState
	staged    *ledgerState

	txnCreateErr error
	commitErr    error
}

func newMemoryUnitOfWork(wallet *entity.Wallet, txns ...*entity.Transaction) *memoryUnitOfWork {
	state := &ledgerState{wallet: wallet, txns: map[uuid.UUID]*entity.Transaction{}}
	for _, t := range txns {
		state.txns[t.Id] = t
	}
	return &memoryUnitOfWork{committed: state}
}

func (u *memoryUnitOfWork) state() *ledgerState {
	if u.staged != nil {
		return u.staged
	}
	return u.committed
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error {
	u.staged = u.committed.clone()
	return nil
}

func (u *memoryUnitOfWork) Commit() error {
	if u.commitErr != nil {
		return u.commitErr
	}
	u.committed = u.staged
	u.staged = nil
	return nil
}

func (u *memoryUnitOfWork) Rollback() error {
	u.staged = nil
	return nil
}

func (u *memoryUnitOfWork) WalletRepository() contract.WalletRepository {
	return memoryWalletRepository{uow: u}
}

func (u *memoryUnitOfWork) TransactionRepository() contract.TransactionRepository {
	return memoryTransactionRepository{uow: u}
}

func (u *memoryUnitOfWork) TenantRepository() contract.TenantRepository             { return nil }
func (u *memoryUnitOfWork) ChannelRepository() contract.ChannelRepository           { return nil }
func (u *memoryUnitOfWork) FeatureFlagRepository() contract.FeatureFlagRepository   { return nil }
func (u *memoryUnitOfWork) PricingRepository() contract.PricingRepository           { return nil }
func (u *memoryUnitOfWork) PackageRepository() contract.PackageRepository           { return nil }
func (u *memoryUnitOfWork) AdminRepository() contract.AdminRepository               { return nil }
func (u *memoryUnitOfWork) AuditRepository() contract.AuditRepository               { return nil }
func (u *memoryUnitOfWork) NotificationRepository() contract.NotificationRepository { return nil }

type memoryWalletRepository struct{ uow *memoryUnitOfWork }

func (r memoryWalletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	w := *wallet
	r.uow.state().wallet = &w
	return nil
}

func (r memoryWalletRepository) Update(ctx context.Context, wallet *entity.Wallet) error {
	w := *wallet
	r.uow.state().wallet = &w
	return nil
}

func (r memoryWalletRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Wallet, error) {
	w := *r.uow.state().wallet
	return &w, nil
}

func (r memoryWalletRepository) FindOneForUpdate(ctx context.Context, tenantId uuid.UUID) (*entity.Wallet, error) {
	stored := r.uow.state().wallet
	if stored.TenantId != tenantId {
		return nil, nil
	}
	w := *stored
	return &w, nil
}

func (r memoryWalletRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Wallet, error) {
	return nil, nil
}

func (r memoryWalletRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type memoryTransactionRepository struct{ uow *memoryUnitOfWork }

func (r memoryTransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	if r.uow.txnCreateErr != nil {
		return r.uow.txnCreateErr
	}
	c := *txn
	r.uow.state().txns[txn.Id] = &c
	return nil
}

func (r memoryTransactionRepository) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	t, ok := r.uow.state().txns[id]
	if !ok {
		return fmt.Errorf("transaction %s not found", id)
	}
	t.Status = entity.TransactionStatusRefunded
	return nil
}

func (r memoryTransactionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			if t, found := r.uow.state().txns[byID.ID]; found {
				c := *t
				return &c, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r memoryTransactionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r memoryTransactionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r memoryTransactionRepository) GetUsageStats(ctx context.Context, tenantId uuid.UUID, from, to time.Time) (*entity.UsageStats, error) {
	return nil, nil
}

func (r memoryTransactionRepository) GetRevenueStats(ctx context.Context, from, to time.Time) (*entity.RevenueStats, error) {
	return nil, nil
}

// debitedWallet returns a wallet that spent debitCredits out of an initial
// balance, plus the completed debit row recording it.
func debitedWallet(initial, debitCredits float64) (*entity.Wallet, *entity.Transaction) {
	tenantId := uuid.New()
	wallet := entity.NewWallet(tenantId, "INR")

	now := time.Now()
	if _, err := wallet.ApplyCredit(initial, initial, now); err != nil {
		panic(err)
	}
	res, err := wallet.ApplyDebit(debitCredits, debitCredits, now)
	if err != nil {
		panic(err)
	}

	category := entity.CategoryMarketing
	messageId := fmt.Sprintf("wamid.%s", uuid.New().String())
	debit := &entity.Transaction{
		Id:             uuid.New(),
		WalletId:       wallet.Id,
		TenantId:       tenantId,
		Type:           entity.TransactionTypeDebit,
		Status:         entity.TransactionStatusCompleted,
		CreditsAmount:  -debitCredits,
		CurrencyAmount: -debitCredits,
		Currency:       wallet.Currency,
		BalanceBefore:  res.BalanceBefore,
		BalanceAfter:   res.BalanceAfter,
		Category:       &category,
		MessageId:      &messageId,
		CreatedAt:      now,
	}
	return wallet, debit
}

func newTestCoordinator() *Coordinator {
	return NewCoordinator(nopLogger{}, nopPublisher{})
}

func TestRefundFullAmount(t *testing.T) {
	ctx := context.Background()
	wallet, debit := debitedWallet(100, 30)
	uow := newMemoryUnitOfWork(wallet, debit)

	refundTxn, err := newTestCoordinator().Refund(ctx, uow, Request{TransactionId: debit.Id})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if refundTxn.Type != entity.TransactionTypeRefund {
		t.Errorf("Type = %s, want refund", refundTxn.Type)
	}
	if refundTxn.CreditsAmount != 30 {
		t.Errorf("CreditsAmount = %.4f, want 30", refundTxn.CreditsAmount)
	}
	if refundTxn.RelatedTransactionId == nil || *refundTxn.RelatedTransactionId != debit.Id {
		t.Error("refund row does not point back at the original")
	}

	if got := uow.committed.wallet.CreditBalance; got != 100 {
		t.Errorf("committed balance = %.4f, want 100", got)
	}
	if got := uow.committed.txns[debit.Id].Status; got != entity.TransactionStatusRefunded {
		t.Errorf("original status = %s, want refunded", got)
	}
	if len(uow.committed.txns) != 2 {
		t.Errorf("ledger holds %d rows, want 2", len(uow.committed.txns))
	}
}

func TestRefundReactivatesDepletedWallet(t *testing.T) {
	ctx := context.Background()
	wallet, debit := debitedWallet(30, 30)
	if wallet.Status != entity.WalletStatusDepleted {
		t.Fatalf("precondition: wallet status = %s, want depleted", wallet.Status)
	}
	uow := newMemoryUnitOfWork(wallet, debit)

	if _, err := newTestCoordinator().Refund(ctx, uow, Request{TransactionId: debit.Id}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := uow.committed.wallet.Status; got != entity.WalletStatusActive {
		t.Errorf("wallet status = %s, want active after refund", got)
	}
	if got := uow.committed.wallet.CreditBalance; got != 30 {
		t.Errorf("committed balance = %.4f, want 30", got)
	}
}

// Refunding the same transaction twice succeeds once; the repeat fails with
// AlreadyRefunded and moves no money.
func TestRefundTwiceFailsSecondAttempt(t *testing.T) {
	ctx := context.Background()
	wallet, debit := debitedWallet(100, 30)
	uow := newMemoryUnitOfWork(wallet, debit)
	coordinator := newTestCoordinator()

	if _, err := coordinator.Refund(ctx, uow, Request{TransactionId: debit.Id}); err != nil {
		t.Fatalf("first refund failed: %v", err)
	}

	_, err := coordinator.Refund(ctx, uow, Request{TransactionId: debit.Id})
	if !errors.Is(err, apperror.ErrAlreadyRefunded) {
		t.Fatalf("second refund error = %v, want AlreadyRefunded", err)
	}

	if got := uow.committed.wallet.CreditBalance; got != 100 {
		t.Errorf("committed balance = %.4f, want 100 after exactly one refund", got)
	}
	if len(uow.committed.txns) != 2 {
		t.Errorf("ledger holds %d rows, want 2", len(uow.committed.txns))
	}
}

func TestPartialRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("within bounds", func(t *testing.T) {
		wallet, debit := debitedWallet(100, 30)
		uow := newMemoryUnitOfWork(wallet, debit)

		credits := 10.0
		refundTxn, err := newTestCoordinator().Refund(ctx, uow, Request{TransactionId: debit.Id, Credits: &credits})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if refundTxn.CreditsAmount != 10 {
			t.Errorf("CreditsAmount = %.4f, want 10", refundTxn.CreditsAmount)
		}
		if refundTxn.CurrencyAmount != 10 {
			t.Errorf("CurrencyAmount = %.4f, want 10 (proportional)", refundTxn.CurrencyAmount)
		}
		if got := uow.committed.wallet.CreditBalance; got != 80 {
			t.Errorf("committed balance = %.4f, want 80", got)
		}
	})

	t.Run("exceeding the original", func(t *testing.T) {
		wallet, debit := debitedWallet(100, 30)
		uow := newMemoryUnitOfWork(wallet, debit)

		credits := 40.0
		_, err := newTestCoordinator().Refund(ctx, uow, Request{TransactionId: debit.Id, Credits: &credits})
		if !errors.Is(err, apperror.ErrInvalidAmount) {
			t.Fatalf("error = %v, want InvalidAmount", err)
		}
		if got := uow.committed.wallet.CreditBalance; got != 70 {
			t.Errorf("committed balance = %.4f, want 70 untouched", got)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		wallet, debit := debitedWallet(100, 30)
		uow := newMemoryUnitOfWork(wallet, debit)

		credits := 0.0
		_, err := newTestCoordinator().Refund(ctx, uow, Request{TransactionId: debit.Id, Credits: &credits})
		if !errors.Is(err, apperror.ErrInvalidAmount) {
			t.Fatalf("error = %v, want InvalidAmount", err)
		}
	})
}

func TestRefundRejectsIneligibleOriginals(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown transaction", func(t *testing.T) {
		wallet, debit := debitedWallet(100, 30)
		uow := newMemoryUnitOfWork(wallet, debit)

		_, err := newTestCoordinator().Refund(ctx, uow, Request{TransactionId: uuid.New()})
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Fatalf("error = %v, want NotFound", err)
		}
	})

	t.Run("completed credit", func(t *testing.T) {
		wallet, debit := debitedWallet(100, 30)
		credit := &entity.Transaction{
			Id:            uuid.New(),
			WalletId:      wallet.Id,
			TenantId:      wallet.TenantId,
			Type:          entity.TransactionTypeCredit,
			Status:        entity.TransactionStatusCompleted,
			CreditsAmount: 100,
			Currency:      wallet.Currency,
			BalanceBefore: 0,
			BalanceAfter:  100,
			CreatedAt:     time.Now(),
		}
		uow := newMemoryUnitOfWork(wallet, debit, credit)

		_, err := newTestCoordinator().Refund(ctx, uow, Request{TransactionId: credit.Id})
		if !errors.Is(err, apperror.ErrInvalidAmount) {
			t.Fatalf("error = %v, want InvalidAmount for a credit original", err)
		}
		if got := uow.committed.wallet.CreditBalance; got != 70 {
			t.Errorf("committed balance = %.4f, want 70 untouched", got)
		}
	})

	t.Run("pending debit", func(t *testing.T) {
		wallet, debit := debitedWallet(100, 30)
		debit.Status = entity.TransactionStatusPending
		uow := newMemoryUnitOfWork(wallet, debit)

		_, err := newTestCoordinator().Refund(ctx, uow, Request{TransactionId: debit.Id})
		if !errors.Is(err, apperror.ErrInvalidAmount) {
			t.Fatalf("error = %v, want InvalidAmount for a pending original", err)
		}
	})
}

// A failure at any point inside the unit of work must leave the committed
// state untouched: no refund row, no status flip, no balance change.
func TestRefundRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()

	assertUntouched := func(t *testing.T, uow *memoryUnitOfWork, debitId uuid.UUID) {
		t.Helper()
		if got := uow.committed.wallet.CreditBalance; got != 70 {
			t.Errorf("committed balance = %.4f, want 70", got)
		}
		if got := uow.committed.txns[debitId].Status; got != entity.TransactionStatusCompleted {
			t.Errorf("original status = %s, want completed", got)
		}
		if len(uow.committed.txns) != 1 {
			t.Errorf("ledger holds %d rows, want 1", len(uow.committed.txns))
		}
	}

	t.Run("ledger write fails", func(t *testing.T) {
		wallet, debit := debitedWallet(100, 30)
		uow := newMemoryUnitOfWork(wallet, debit)
		uow.txnCreateErr = errors.New("connection reset")

		_, err := newTestCoordinator().Refund(ctx, uow, Request{TransactionId: debit.Id})
		if !errors.Is(err, apperror.ErrPersistenceFailure) {
			t.Fatalf("error = %v, want PersistenceFailure", err)
		}
		assertUntouched(t, uow, debit.Id)
	})

	t.Run("commit fails", func(t *testing.T) {
		wallet, debit := debitedWallet(100, 30)
		uow := newMemoryUnitOfWork(wallet, debit)
		uow.commitErr = errors.New("deadlock detected")

		_, err := newTestCoordinator().Refund(ctx, uow, Request{TransactionId: debit.Id})
		if !errors.Is(err, apperror.ErrPersistenceFailure) {
			t.Fatalf("error = %v, want PersistenceFailure", err)
		}
		assertUntouched(t, uow, debit.Id)
	})
}

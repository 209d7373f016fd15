package entity

import (
	"testing"

	"github.com/google/uuid"
)

func TestTransactionValidate(t *testing.T) {
	base := func() *Transaction {
		return &Transaction{
			Id:            uuid.New(),
			WalletId:      uuid.New(),
			TenantId:      uuid.New(),
			Type:          TransactionTypeCredit,
			Status:        TransactionStatusCompleted,
			CreditsAmount: 100,
			BalanceBefore: 50,
			BalanceAfter:  150,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{
			name:   "valid credit",
			mutate: func(_ *Transaction) {},
		},
		{
			name: "valid debit",
			mutate: func(tx *Transaction) {
				tx.Type = TransactionTypeDebit
				tx.CreditsAmount = -0.88
				tx.BalanceBefore = 10
				tx.BalanceAfter = 9.12
			},
		},
		{
			name:    "unknown type",
			mutate:  func(tx *Transaction) { tx.Type = "chargeback" },
			wantErr: true,
		},
		{
			name:    "unknown status",
			mutate:  func(tx *Transaction) { tx.Status = "settled" },
			wantErr: true,
		},
		{
			name: "debit with positive delta",
			mutate: func(tx *Transaction) {
				tx.Type = TransactionTypeDebit
				tx.CreditsAmount = 5
				tx.BalanceBefore = 10
				tx.BalanceAfter = 15
			},
			wantErr: true,
		},
		{
			name: "credit with negative delta",
			mutate: func(tx *Transaction) {
				tx.CreditsAmount = -100
				tx.BalanceBefore = 150
				tx.BalanceAfter = 50
			},
			wantErr: true,
		},
		{
			name:    "snapshot mismatch",
			mutate:  func(tx *Transaction) { tx.BalanceAfter = 151 },
			wantErr: true,
		},
		{
			name: "snapshot tolerates float rounding",
			mutate: func(tx *Transaction) {
				tx.CreditsAmount = 0.1 + 0.2
				tx.BalanceBefore = 0
				tx.BalanceAfter = 0.3
			},
		},
		{
			name: "zero amount plan allocation",
			mutate: func(tx *Transaction) {
				tx.Type = TransactionTypePlanAllocation
				tx.CreditsAmount = 0
				tx.BalanceBefore = 50
				tx.BalanceAfter = 50
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := base()
			tt.mutate(tx)
			err := tx.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRefundable(t *testing.T) {
	tests := []struct {
		name   string
		txType TransactionType
		status TransactionStatus
		want   bool
	}{
		{"completed debit", TransactionTypeDebit, TransactionStatusCompleted, true},
		{"completed credit", TransactionTypeCredit, TransactionStatusCompleted, false},
		{"already refunded debit", TransactionTypeDebit, TransactionStatusRefunded, false},
		{"pending debit", TransactionTypeDebit, TransactionStatusPending, false},
		{"completed refund", TransactionTypeRefund, TransactionStatusCompleted, false},
		{"completed adjustment", TransactionTypeAdjustment, TransactionStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Transaction{Type: tt.txType, Status: tt.status}
			if got := tx.Refundable(); got != tt.want {
				t.Errorf("Refundable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	txns := []*Transaction{
		{Type: TransactionTypeCredit, Status: TransactionStatusCompleted, CreditsAmount: 100},
		{Type: TransactionTypeDebit, Status: TransactionStatusCompleted, CreditsAmount: -30},
		// Refunded original still moved the balance when it committed.
		{Type: TransactionTypeDebit, Status: TransactionStatusRefunded, CreditsAmount: -10},
		{Type: TransactionTypeRefund, Status: TransactionStatusCompleted, CreditsAmount: 10},
		// Entries that never moved the balance.
		{Type: TransactionTypeCredit, Status: TransactionStatusPending, CreditsAmount: 500},
		{Type: TransactionTypeCredit, Status: TransactionStatusFailed, CreditsAmount: 500},
		{Type: TransactionTypeCredit, Status: TransactionStatusCancelled, CreditsAmount: 500},
	}

	if got := Reconcile(txns); got != 70 {
		t.Errorf("Reconcile() = %.4f, want 70", got)
	}

	if got := Reconcile(nil); got != 0 {
		t.Errorf("Reconcile(nil) = %.4f, want 0", got)
	}
}

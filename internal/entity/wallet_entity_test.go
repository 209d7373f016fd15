package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func activeWallet(balance float64) *Wallet {
	w := NewWallet(uuid.New(), "INR")
	w.CreditBalance = balance
	return w
}

func TestApplyDebit(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		wallet      *Wallet
		credits     float64
		wantErr     bool
		wantBalance float64
		wantStatus  WalletStatus
		wantDeplete bool
		wantAlert   bool
	}{
		{
			name:        "simple debit",
			wallet:      activeWallet(100),
			credits:     30,
			wantBalance: 70,
			wantStatus:  WalletStatusActive,
		},
		{
			name:    "zero amount rejected",
			wallet:  activeWallet(100),
			credits: 0,
			wantErr: true,
		},
		{
			name:    "negative amount rejected",
			wallet:  activeWallet(100),
			credits: -5,
			wantErr: true,
		},
		{
			name:    "insufficient balance",
			wallet:  activeWallet(10),
			credits: 10.5,
			wantErr: true,
		},
		{
			name: "suspended wallet cannot be debited",
			wallet: func() *Wallet {
				w := activeWallet(100)
				w.Suspend("fraud review", now)
				return w
			}(),
			credits: 10,
			wantErr: true,
		},
		{
			name:        "debit to zero marks depleted",
			wallet:      activeWallet(25),
			credits:     25,
			wantBalance: 0,
			wantStatus:  WalletStatusDepleted,
			wantDeplete: true,
		},
		{
			name: "crossing low balance threshold latches alert",
			wallet: func() *Wallet {
				w := activeWallet(100)
				w.LowBalanceThreshold = 50
				return w
			}(),
			credits:     60,
			wantBalance: 40,
			wantStatus:  WalletStatusActive,
			wantAlert:   true,
		},
		{
			name: "alert already sent is not re-triggered",
			wallet: func() *Wallet {
				w := activeWallet(40)
				w.LowBalanceThreshold = 50
				w.LowBalanceAlertSent = true
				return w
			}(),
			credits:     10,
			wantBalance: 30,
			wantStatus:  WalletStatusActive,
			wantAlert:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.wallet.CreditBalance
			res, err := tt.wallet.ApplyDebit(tt.credits, tt.credits, now)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wallet.CreditBalance != before {
					t.Fatalf("failed debit mutated balance: %.4f -> %.4f", before, tt.wallet.CreditBalance)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wallet.CreditBalance != tt.wantBalance {
				t.Errorf("balance = %.4f, want %.4f", tt.wallet.CreditBalance, tt.wantBalance)
			}
			if tt.wallet.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", tt.wallet.Status, tt.wantStatus)
			}
			if res.Depleted != tt.wantDeplete {
				t.Errorf("Depleted = %v, want %v", res.Depleted, tt.wantDeplete)
			}
			if res.LowBalanceTriggered != tt.wantAlert {
				t.Errorf("LowBalanceTriggered = %v, want %v", res.LowBalanceTriggered, tt.wantAlert)
			}
			if res.BalanceBefore != before || res.BalanceAfter != tt.wallet.CreditBalance {
				t.Errorf("result snapshot %.4f -> %.4f does not match wallet %.4f -> %.4f",
					res.BalanceBefore, res.BalanceAfter, before, tt.wallet.CreditBalance)
			}
		})
	}
}

func TestApplyCredit(t *testing.T) {
	now := time.Now()

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		w := activeWallet(10)
		if _, err := w.ApplyCredit(0, 0, now); err == nil {
			t.Error("expected error for zero credit")
		}
		if _, err := w.ApplyCredit(-1, -1, now); err == nil {
			t.Error("expected error for negative credit")
		}
	})

	t.Run("depleted wallet reactivates on credit", func(t *testing.T) {
		w := activeWallet(5)
		if _, err := w.ApplyDebit(5, 5, now); err != nil {
			t.Fatalf("setup debit failed: %v", err)
		}
		if w.Status != WalletStatusDepleted {
			t.Fatalf("setup: status = %s, want depleted", w.Status)
		}

		res, err := w.ApplyCredit(100, 100, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Reactivated {
			t.Error("Reactivated = false, want true")
		}
		if w.Status != WalletStatusActive {
			t.Errorf("status = %s, want active", w.Status)
		}
		if w.SuspensionReason != nil {
			t.Error("suspension reason not cleared")
		}
	})

	t.Run("admin suspension survives credits", func(t *testing.T) {
		w := activeWallet(10)
		w.Suspend("chargeback dispute", now)

		if _, err := w.ApplyCredit(100, 100, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.Status != WalletStatusSuspended {
			t.Errorf("status = %s, want suspended", w.Status)
		}
	})

	t.Run("alert gate resets once balance clears threshold", func(t *testing.T) {
		w := activeWallet(40)
		w.LowBalanceThreshold = 50
		w.LowBalanceAlertSent = true

		if _, err := w.ApplyCredit(60, 60, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.LowBalanceAlertSent {
			t.Error("alert gate not reset after balance recovered")
		}
	})

	t.Run("lifetime counters accumulate", func(t *testing.T) {
		w := activeWallet(0)
		w.ApplyCredit(100, 100, now)
		w.ApplyDebit(30, 30, now)
		w.ApplyCredit(50, 50, now)

		if w.TotalCreditsAdded != 150 {
			t.Errorf("TotalCreditsAdded = %.4f, want 150", w.TotalCreditsAdded)
		}
		if w.TotalCreditsUsed != 30 {
			t.Errorf("TotalCreditsUsed = %.4f, want 30", w.TotalCreditsUsed)
		}
		if w.TotalConversations != 1 {
			t.Errorf("TotalConversations = %d, want 1", w.TotalConversations)
		}
	})
}

func TestReactivate(t *testing.T) {
	now := time.Now()

	t.Run("positive balance goes active", func(t *testing.T) {
		w := activeWallet(10)
		w.Suspend("manual review", now)
		w.Reactivate(now)
		if w.Status != WalletStatusActive {
			t.Errorf("status = %s, want active", w.Status)
		}
	})

	t.Run("zero balance goes depleted", func(t *testing.T) {
		w := activeWallet(0)
		w.Suspend("manual review", now)
		w.Reactivate(now)
		if w.Status != WalletStatusDepleted {
			t.Errorf("status = %s, want depleted", w.Status)
		}
	})
}

func TestHasEnoughCredits(t *testing.T) {
	w := activeWallet(10)
	if !w.HasEnoughCredits(10) {
		t.Error("exact balance should be spendable")
	}
	if w.HasEnoughCredits(10.0001) {
		t.Error("balance below requested amount should not be spendable")
	}
	w.Status = WalletStatusSuspended
	if w.HasEnoughCredits(1) {
		t.Error("suspended wallet should never report spendable credits")
	}
}

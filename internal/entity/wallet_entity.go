package entity

import (
	"time"

	"github.com/google/uuid"

	"messaging-backoffice-be/internal/pkg/apperror"
)

type WalletStatus string

const (
	WalletStatusActive    WalletStatus = "active"
	WalletStatusSuspended WalletStatus = "suspended"
	WalletStatusDepleted  WalletStatus = "depleted"
)

// Wallet holds the spendable credit balance for one tenant. Exactly one wallet
// exists per tenant; it is created lazily on first access.
type Wallet struct {
	Id       uuid.UUID
	TenantId uuid.UUID

	CreditBalance   float64
	CurrencyBalance float64
	Currency        string

	PlanCreditsMonthly   float64
	PlanCreditsUsed      float64
	PlanCreditsResetDate *time.Time

	LowBalanceThreshold float64
	LowBalanceAlertSent bool
	LowBalanceAlertAt   *time.Time

	AutoRechargeEnabled         bool
	AutoRechargeThreshold       float64
	AutoRechargeAmount          float64
	AutoRechargePaymentMethodId *string
	AutoRechargePackageId       *uuid.UUID
	AutoRechargeFailureCount    int

	Status           WalletStatus
	SuspensionReason *string
	SuspendedAt      *time.Time

	TotalCreditsAdded  float64
	TotalCreditsUsed   float64
	TotalConversations int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWallet returns the lazily-created zero-balance wallet for a tenant.
func NewWallet(tenantId uuid.UUID, currency string) *Wallet {
	now := time.Now()
	return &Wallet{
		Id:            uuid.New(),
		TenantId:      tenantId,
		CreditBalance: 0,
		Currency:      currency,
		Status:        WalletStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// HasEnoughCredits reports whether a debit of n credits could succeed right now.
func (w *Wallet) HasEnoughCredits(n float64) bool {
	return w.Status == WalletStatusActive && w.CreditBalance >= n
}

// NeedsAutoRecharge reports whether the auto-recharge trigger condition holds.
func (w *Wallet) NeedsAutoRecharge() bool {
	return w.AutoRechargeEnabled &&
		w.AutoRechargePaymentMethodId != nil &&
		w.CreditBalance <= w.AutoRechargeThreshold
}

// ShouldSendLowBalanceAlert reports whether the one-shot low-balance alert is due.
func (w *Wallet) ShouldSendLowBalanceAlert() bool {
	return w.LowBalanceThreshold > 0 &&
		w.CreditBalance < w.LowBalanceThreshold &&
		!w.LowBalanceAlertSent
}

// CreditResult captures the state transition performed by ApplyCredit.
type CreditResult struct {
	BalanceBefore float64
	BalanceAfter  float64
	Reactivated   bool
}

// ApplyCredit increases the balance and updates the derived wallet state.
// The caller persists the wallet and the matching ledger row in one unit of work.
func (w *Wallet) ApplyCredit(credits, currencyAmount float64, now time.Time) (CreditResult, error) {
	if credits <= 0 {
		return CreditResult{}, apperror.InvalidAmount("credit amount must be positive, got %.4f", credits)
	}

	res := CreditResult{BalanceBefore: w.CreditBalance}

	w.CreditBalance += credits
	w.CurrencyBalance += currencyAmount
	w.TotalCreditsAdded += credits

	if w.Status == WalletStatusDepleted {
		w.Status = WalletStatusActive
		w.SuspensionReason = nil
		w.SuspendedAt = nil
		res.Reactivated = true
	}

	// Alert gate resets once the balance clears the threshold again.
	if w.LowBalanceAlertSent && w.CreditBalance >= w.LowBalanceThreshold {
		w.LowBalanceAlertSent = false
		w.LowBalanceAlertAt = nil
	}

	w.UpdatedAt = now
	res.BalanceAfter = w.CreditBalance
	return res, nil
}

// DebitResult captures the state transition performed by ApplyDebit.
type DebitResult struct {
	BalanceBefore       float64
	BalanceAfter        float64
	Depleted            bool
	LowBalanceTriggered bool
}

// ApplyDebit decreases the balance, latching the low-balance alert and the
// depleted status where the post-debit balance requires it.
func (w *Wallet) ApplyDebit(credits, currencyAmount float64, now time.Time) (DebitResult, error) {
	if credits <= 0 {
		return DebitResult{}, apperror.InvalidAmount("debit amount must be positive, got %.4f", credits)
	}
	if w.Status != WalletStatusActive {
		return DebitResult{}, apperror.InsufficientCredits("wallet is %s and cannot be debited", w.Status)
	}
	if w.CreditBalance < credits {
		return DebitResult{}, apperror.InsufficientCredits("balance %.4f is below requested debit %.4f", w.CreditBalance, credits)
	}

	res := DebitResult{BalanceBefore: w.CreditBalance}

	w.CreditBalance -= credits
	w.CurrencyBalance -= currencyAmount
	w.TotalCreditsUsed += credits
	w.TotalConversations++

	if w.ShouldSendLowBalanceAlert() {
		w.LowBalanceAlertSent = true
		t := now
		w.LowBalanceAlertAt = &t
		res.LowBalanceTriggered = true
	}

	if w.CreditBalance <= 0 {
		w.Status = WalletStatusDepleted
		reason := "credit balance depleted"
		w.SuspensionReason = &reason
		t := now
		w.SuspendedAt = &t
		res.Depleted = true
	}

	w.UpdatedAt = now
	res.BalanceAfter = w.CreditBalance
	return res, nil
}

// Suspend puts the wallet into the administrative suspended state.
func (w *Wallet) Suspend(reason string, now time.Time) {
	w.Status = WalletStatusSuspended
	w.SuspensionReason = &reason
	w.SuspendedAt = &now
	w.UpdatedAt = now
}

// Reactivate clears an administrative suspension. A wallet with a non-positive
// balance goes back to depleted, not active.
func (w *Wallet) Reactivate(now time.Time) {
	if w.CreditBalance > 0 {
		w.Status = WalletStatusActive
		w.SuspensionReason = nil
		w.SuspendedAt = nil
	} else {
		w.Status = WalletStatusDepleted
	}
	w.UpdatedAt = now
}

package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeCredit         TransactionType = "credit"
	TransactionTypeDebit          TransactionType = "debit"
	TransactionTypeRefund         TransactionType = "refund"
	TransactionTypePlanAllocation TransactionType = "plan_allocation"
	TransactionTypeExpiry         TransactionType = "expiry"
	TransactionTypeAdjustment     TransactionType = "adjustment"
	TransactionTypeBonus          TransactionType = "bonus"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// snapshotEpsilon absorbs float64 rounding when checking balance snapshots.
const snapshotEpsilon = 1e-6

// Transaction is one immutable ledger entry. It is created and committed in the
// same unit of work as the wallet balance change it records. The only permitted
// mutation after commit is the completed -> refunded status flip.
type Transaction struct {
	Id       uuid.UUID
	WalletId uuid.UUID
	TenantId uuid.UUID

	Type   TransactionType
	Status TransactionStatus

	// CreditsAmount is the signed ledger delta: negative for debits,
	// non-negative for every other type.
	CreditsAmount  float64
	CurrencyAmount float64
	Currency       string

	BalanceBefore float64
	BalanceAfter  float64

	// Debit pricing context.
	MetaCost       float64
	PlatformMarkup float64
	Category       *ConversationCategory

	Description          string
	RelatedTransactionId *uuid.UUID

	PaymentId      *string
	PaymentMethod  *string
	TopUpPackageId *uuid.UUID

	ConversationId *string
	MessageId      *string
	ContactId      *string
	ContactCountry *string

	AdjustedByAdminId *uuid.UUID

	CreatedAt time.Time
}

func validTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypeCredit, TransactionTypeDebit, TransactionTypeRefund,
		TransactionTypePlanAllocation, TransactionTypeExpiry,
		TransactionTypeAdjustment, TransactionTypeBonus:
		return true
	}
	return false
}

func validTransactionStatus(s TransactionStatus) bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed,
		TransactionStatusRefunded, TransactionStatusCancelled:
		return true
	}
	return false
}

// Validate checks the closed enumerations, the sign convention and the
// balance snapshot invariant balanceAfter == balanceBefore + creditsAmount.
func (t *Transaction) Validate() error {
	if !validTransactionType(t.Type) {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if !validTransactionStatus(t.Status) {
		return fmt.Errorf("invalid transaction status %q", t.Status)
	}
	if t.Type == TransactionTypeDebit {
		if t.CreditsAmount >= 0 {
			return fmt.Errorf("debit transaction must carry a negative credits amount, got %.4f", t.CreditsAmount)
		}
	} else if t.CreditsAmount < 0 {
		return fmt.Errorf("%s transaction must carry a non-negative credits amount, got %.4f", t.Type, t.CreditsAmount)
	}
	if math.Abs(t.BalanceBefore+t.CreditsAmount-t.BalanceAfter) > snapshotEpsilon {
		return fmt.Errorf("balance snapshot mismatch: %.4f + %.4f != %.4f", t.BalanceBefore, t.CreditsAmount, t.BalanceAfter)
	}
	return nil
}

// Refundable reports whether this entry may serve as the original of a refund.
// Only completed debits qualify: a refund returns spent credits to the wallet,
// and crediting entries have nothing to return through this path.
func (t *Transaction) Refundable() bool {
	return t.Type == TransactionTypeDebit && t.Status == TransactionStatusCompleted
}

// Reconcile replays committed entries in the order given and returns the
// resulting balance starting from zero. Pending, failed and cancelled entries
// never moved the balance and are skipped.
func Reconcile(txns []*Transaction) float64 {
	var balance float64
	for _, t := range txns {
		switch t.Status {
		case TransactionStatusCompleted, TransactionStatusRefunded:
			balance += t.CreditsAmount
		}
	}
	return balance
}

package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		sentinel   *AppError
		wantStatus int
	}{
		{"not found", NotFound("tenant %s not found", "x"), ErrNotFound, fiber.StatusNotFound},
		{"insufficient credits", InsufficientCredits("balance too low"), ErrInsufficientCredits, fiber.StatusPaymentRequired},
		{"invalid amount", InvalidAmount("got %.2f", -1.0), ErrInvalidAmount, fiber.StatusBadRequest},
		{"already refunded", AlreadyRefunded("transaction flipped"), ErrAlreadyRefunded, fiber.StatusConflict},
		{"conflict", Conflict("debit for message %s is already in flight", "wamid.1"), ErrConflict, fiber.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel %s) = false, want true", tt.err, tt.sentinel.Code)
			}
			if tt.err.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", tt.err.Status, tt.wantStatus)
			}
		})
	}
}

// A conflict is a retryable race, not a bad request: callers that branch on
// ErrInvalidAmount must not catch it.
func TestConflictIsNotInvalidAmount(t *testing.T) {
	err := Conflict("debit for message %s is already in flight", "wamid.1")
	if errors.Is(err, ErrInvalidAmount) {
		t.Error("conflict matched ErrInvalidAmount")
	}

	wrapped := fmt.Errorf("handling debit: %w", err)
	if !errors.Is(wrapped, ErrConflict) {
		t.Error("wrapped conflict no longer matches ErrConflict")
	}
}

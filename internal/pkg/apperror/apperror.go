package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced by the wallet/ledger core and the admin surface.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeInsufficientCredits = "INSUFFICIENT_CREDITS"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeAlreadyRefunded     = "ALREADY_REFUNDED"
	CodeConflict            = "CONFLICT"
	CodePersistenceFailure  = "PERSISTENCE_FAILURE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeValidationFailed    = "VALIDATION_FAILED"
)

// AppError is a typed failure carried from the service layer to the HTTP boundary.
type AppError struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code so callers can use errors.Is with the
// sentinel constructors below.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func NotFound(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeNotFound, Status: fiber.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func InsufficientCredits(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeInsufficientCredits, Status: fiber.StatusPaymentRequired, Message: fmt.Sprintf(format, args...)}
}

func InvalidAmount(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeInvalidAmount, Status: fiber.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func AlreadyRefunded(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeAlreadyRefunded, Status: fiber.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

// Conflict marks a concurrency collision (e.g. a second request racing the
// same idempotency key) that is safe to retry once the first attempt settles.
func Conflict(format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeConflict, Status: fiber.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

func PersistenceFailure(err error) *AppError {
	return &AppError{Code: CodePersistenceFailure, Status: fiber.StatusInternalServerError, Message: "storage operation failed", Err: err}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Status: fiber.StatusUnauthorized, Message: message}
}

func ValidationFailed(err error) *AppError {
	return &AppError{Code: CodeValidationFailed, Status: fiber.StatusBadRequest, Message: err.Error(), Err: err}
}

// Sentinels for errors.Is checks without constructing a new message.
var (
	ErrNotFound            = &AppError{Code: CodeNotFound}
	ErrInsufficientCredits = &AppError{Code: CodeInsufficientCredits}
	ErrInvalidAmount       = &AppError{Code: CodeInvalidAmount}
	ErrAlreadyRefunded     = &AppError{Code: CodeAlreadyRefunded}
	ErrConflict            = &AppError{Code: CodeConflict}
	ErrPersistenceFailure  = &AppError{Code: CodePersistenceFailure}
)

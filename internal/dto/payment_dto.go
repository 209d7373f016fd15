package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Top-Up Checkout (Midtrans Snap) ---

type CheckoutRequest struct {
	TopUpPackageId uuid.UUID `json:"top_up_package_id" validate:"required"`
}

type CheckoutResponse struct {
	OrderId     string  `json:"order_id"`
	Token       string  `json:"token"`
	RedirectUrl string  `json:"redirect_url"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// MidtransNotification is the gateway webhook payload; SignatureKey is the
// SHA512 of order_id + status_code + gross_amount + server key.
type MidtransNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	OrderId           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status"`
}

type WebhookAckResponse struct {
	OrderId     string     `json:"order_id"`
	Applied     bool       `json:"applied"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

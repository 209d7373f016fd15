package dto

import "github.com/google/uuid"

// AuditEventMessage is the payload carried on the in-process audit topic.
// Every balance mutation publishes one; the consumer mirrors it into the
// audit_logs table.
type AuditEventMessage struct {
	TenantId      uuid.UUID              `json:"tenant_id"`
	ActorType     string                 `json:"actor_type"`
	ActorId       *uuid.UUID             `json:"actor_id,omitempty"`
	Action        string                 `json:"action"`
	TransactionId *uuid.UUID             `json:"transaction_id,omitempty"`
	CreditsAmount float64                `json:"credits_amount"`
	BalanceBefore float64                `json:"balance_before"`
	BalanceAfter  float64                `json:"balance_after"`
	Detail        map[string]interface{} `json:"detail,omitempty"`
}

package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// AuditTopic is the in-process topic carrying audit mirror entries. The
// ledger's own rows are the primary record; losing an audit message never
// breaks reconciliation.
const AuditTopic = "audit.entries"

type IAuditService interface {
	// Record publishes one audit entry. Fire-and-forget: the mutation that
	// triggered it has already committed.
	Record(ctx context.Context, msg dto.AuditEventMessage)
	// Consume drains the audit topic into the audit_logs table.
	Consume(ctx context.Context) error
	GetLogs(ctx context.Context, tenantId *uuid.UUID, page, limit int) (*dto.AuditLogListResponse, error)
}

type auditService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IAuditService {
	return &auditService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *auditService) Record(ctx context.Context, auditMsg dto.AuditEventMessage) {
	payload, err := json.Marshal(auditMsg)
	if err != nil {
		s.logger.Error("AUDIT", "Failed to marshal audit entry", map[string]interface{}{"error": err.Error()})
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(AuditTopic, msg); err != nil {
		s.logger.Error("AUDIT", "Failed to publish audit entry", map[string]interface{}{
			"error":  err.Error(),
			"action": auditMsg.Action,
		})
	}
}

func (s *auditService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, AuditTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *auditService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AuditEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry := &entity.AuditLog{
		Id:            uuid.New(),
		TenantId:      payload.TenantId,
		ActorType:     payload.ActorType,
		ActorId:       payload.ActorId,
		Action:        payload.Action,
		TransactionId: payload.TransactionId,
		CreditsAmount: payload.CreditsAmount,
		BalanceBefore: payload.BalanceBefore,
		BalanceAfter:  payload.BalanceAfter,
		Detail:        payload.Detail,
		CreatedAt:     time.Now(),
	}
	if err := uow.AuditRepository().Create(ctx, entry); err != nil {
		log.Printf("[ERROR] Failed to persist audit entry: %v", err)
		msg.Nack() // Retry
		return
	}

	msg.Ack()
}

func (s *auditService) GetLogs(ctx context.Context, tenantId *uuid.UUID, page, limit int) (*dto.AuditLogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var filterSpecs []specification.Specification
	if tenantId != nil {
		filterSpecs = append(filterSpecs, specification.TenantOwnedBy{TenantID: *tenantId})
	}

	total, err := uow.AuditRepository().Count(ctx, filterSpecs...)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	listSpecs := append(filterSpecs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	logs, err := uow.AuditRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	res := &dto.AuditLogListResponse{
		Total: total,
		Page:  page,
		Limit: limit,
		Logs:  make([]dto.AuditLogResponse, 0, len(logs)),
	}
	for _, l := range logs {
		res.Logs = append(res.Logs, dto.AuditLogResponse{
			Id:            l.Id,
			TenantId:      l.TenantId,
			ActorType:     l.ActorType,
			ActorId:       l.ActorId,
			Action:        l.Action,
			TransactionId: l.TransactionId,
			CreditsAmount: l.CreditsAmount,
			BalanceBefore: l.BalanceBefore,
			BalanceAfter:  l.BalanceAfter,
			Detail:        l.Detail,
			CreatedAt:     l.CreatedAt,
		})
	}
	return res, nil
}

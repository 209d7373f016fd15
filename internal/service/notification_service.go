package service

import (
	"context"
	"fmt"
	"time"

	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/pkg/mailer"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"
	"messaging-backoffice-be/pkg/events"
	pkgNats "messaging-backoffice-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery pushes inbox entries to connected admin consoles.
// Implemented by the WebSocket hub.
type NotificationDelivery interface {
	Broadcast(notification entity.Notification)
}

type INotificationService interface {
	// Start attaches the durable billing-stream consumer. Events published
	// while the back office was down are replayed on reconnect.
	Start() error
	GetNotifications(ctx context.Context, tenantId *uuid.UUID, page, limit int) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
}

type notificationService struct {
	uowFactory   unitofwork.RepositoryFactory
	subscriber   *pkgNats.Subscriber
	delivery     NotificationDelivery
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pkgNats.Subscriber,
	delivery NotificationDelivery,
	emailService mailer.IEmailService,
	logger logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory:   uowFactory,
		subscriber:   subscriber,
		delivery:     delivery,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *notificationService) Start() error {
	if s.subscriber == nil {
		s.logger.Warn("NOTIFICATION", "No event subscriber configured, inbox disabled", nil)
		return nil
	}
	if err := s.subscriber.Subscribe(pkgNats.SubjectPrefix+".>", "notification-worker", s.handleEvent); err != nil {
		return fmt.Errorf("failed to start notification subscriber: %w", err)
	}
	s.logger.Info("NOTIFICATION", "Notification service listening on billing stream", nil)
	return nil
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	tenantId := parsePayloadUUID(payload, "tenant_id")

	var notif *entity.Notification
	switch event.EventType() {
	case "LOW_BALANCE":
		notif = &entity.Notification{
			TypeCode: entity.NotificationLowBalance,
			Title:    "Low credit balance",
			Message: fmt.Sprintf("Balance dropped to %.2f credits (threshold %.2f)",
				payloadFloat(payload, "balance"), payloadFloat(payload, "threshold")),
		}
		s.sendAlertEmail(ctx, tenantId, func(email, name string) error {
			return s.emailService.SendLowBalanceAlert(email, name,
				payloadFloat(payload, "balance"), payloadFloat(payload, "threshold"))
		})
	case "WALLET_DEPLETED":
		notif = &entity.Notification{
			TypeCode: entity.NotificationWalletDepleted,
			Title:    "Credits exhausted",
			Message:  "Wallet balance reached zero, billable conversations are blocked",
		}
		s.sendAlertEmail(ctx, tenantId, func(email, name string) error {
			return s.emailService.SendWalletDepletedAlert(email, name)
		})
	case "CREDITS_ADDED":
		notif = &entity.Notification{
			TypeCode: entity.NotificationCreditsAdded,
			Title:    "Credits added",
			Message: fmt.Sprintf("%.2f credits added, balance is now %.2f",
				payloadFloat(payload, "credits"), payloadFloat(payload, "balance_after")),
		}
	case "REFUND_ISSUED":
		notif = &entity.Notification{
			TypeCode: entity.NotificationRefundIssued,
			Title:    "Refund issued",
			Message:  fmt.Sprintf("%.2f credits refunded", payloadFloat(payload, "credits")),
		}
	case "PAYMENT_FAILED":
		orderId, _ := payload["order_id"].(string)
		gatewayStatus, _ := payload["gateway_status"].(string)
		notif = &entity.Notification{
			TypeCode: entity.NotificationPaymentFailed,
			Title:    "Top-up payment failed",
			Message:  fmt.Sprintf("Order %s failed at the gateway (%s), no credits added", orderId, gatewayStatus),
		}
		s.sendAlertEmail(ctx, tenantId, func(email, name string) error {
			return s.emailService.SendPaymentFailedAlert(email, name, orderId, gatewayStatus)
		})
	default:
		// Debits and allocations are high volume and visible in the ledger;
		// they don't get inbox entries.
		return nil
	}

	notif.Id = uuid.New()
	notif.TenantId = tenantId
	notif.Metadata = payload
	notif.CreatedAt = time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, notif); err != nil {
		s.logger.Error("NOTIFICATION", "Failed to persist notification", map[string]interface{}{
			"type":  notif.TypeCode,
			"error": err.Error(),
		})
		return err // Nak: the stream redelivers
	}

	if s.delivery != nil {
		s.delivery.Broadcast(*notif)
	}
	return nil
}

// sendAlertEmail mails the tenant contact in the background. Email delivery
// failures never block event processing.
func (s *notificationService) sendAlertEmail(ctx context.Context, tenantId *uuid.UUID, send func(email, name string) error) {
	if s.emailService == nil || tenantId == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tenant, err := uow.TenantRepository().FindOne(ctx, specification.ByID{ID: *tenantId})
	if err != nil || tenant == nil || tenant.ContactEmail == "" {
		return
	}

	email := tenant.ContactEmail
	name := tenant.Name
	go func() {
		if err := send(email, name); err != nil {
			s.logger.Warn("NOTIFICATION", "Failed to send alert email", map[string]interface{}{
				"tenant_id": tenantId.String(),
				"error":     err.Error(),
			})
		}
	}()
}

func (s *notificationService) GetNotifications(ctx context.Context, tenantId *uuid.UUID, page, limit int) (*dto.NotificationListResponse, error) {
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

	unread, err := uow.NotificationRepository().Count(ctx, append(filterSpecs, specification.Filter("is_read", false))...)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	listSpecs := append(filterSpecs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	notifications, err := uow.NotificationRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	res := &dto.NotificationListResponse{
		Unread:        unread,
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
	}
	for _, n := range notifications {
		res.Notifications = append(res.Notifications, dto.NotificationResponse{
			Id:        n.Id,
			TenantId:  n.TenantId,
			TypeCode:  n.TypeCode,
			Title:     n.Title,
			Message:   n.Message,
			Metadata:  n.Metadata,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return res, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().MarkRead(ctx, id); err != nil {
		return apperror.PersistenceFailure(err)
	}
	return nil
}

func parsePayloadUUID(payload map[string]interface{}, key string) *uuid.UUID {
	raw, ok := payload[key].(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func payloadFloat(payload map[string]interface{}, key string) float64 {
	v, _ := payload[key].(float64)
	return v
}

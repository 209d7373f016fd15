package service

import (
	"context"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"
	billingEvents "messaging-backoffice-be/pkg/billing/events"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/redis/go-redis/v9"
)

const (
	orderContextPrefix = "payment:order:"
	// Snap tokens expire after 24h; the context outlives the token so late
	// settlement notifications still resolve.
	orderContextTTL = 72 * time.Hour
)

// orderContext ties a gateway order id back to the tenant and package that
// initiated it. Stored in Redis at checkout, consumed by the webhook.
type orderContext struct {
	TenantId  uuid.UUID `json:"tenant_id"`
	PackageId uuid.UUID `json:"package_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
}

type IPaymentService interface {
	Checkout(ctx context.Context, tenantId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransNotification) (*dto.WebhookAckResponse, error)
}

type paymentService struct {
	uowFactory    unitofwork.RepositoryFactory
	walletService IWalletService
	publisher     billingEvents.Publisher
	rdb           *redis.Client
	logger        logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	walletService IWalletService,
	publisher billingEvents.Publisher,
	rdb *redis.Client,
	logger logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory:    uowFactory,
		walletService: walletService,
		publisher:     publisher,
		rdb:           rdb,
		logger:        logger,
	}
}

func newSnapClient() snap.Client {
	var client snap.Client
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	client.New(os.Getenv("MIDTRANS_SERVER_KEY"), env)
	return client
}

func (s *paymentService) Checkout(ctx context.Context, tenantId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: req.TopUpPackageId})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if pkg == nil || !pkg.IsActive {
		return nil, apperror.NotFound("top-up package %s not found", req.TopUpPackageId)
	}

	tenant, err := uow.TenantRepository().FindOne(ctx, specification.ByID{ID: tenantId})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if tenant == nil {
		return nil, apperror.NotFound("tenant %s not found", tenantId)
	}

	orderId := uuid.New().String()
	orderCtx := orderContext{
		TenantId:  tenantId,
		PackageId: pkg.Id,
		Amount:    pkg.Price,
		Currency:  pkg.Currency,
	}
	payload, err := json.Marshal(orderCtx)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, orderContextPrefix+orderId, payload, orderContextTTL).Err(); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	client := newSnapClient()
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: int64(pkg.Price),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: tenant.Name,
			Email: tenant.ContactEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    pkg.Id.String(),
				Price: int64(pkg.Price),
				Qty:   1,
				Name:  pkg.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := client.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	s.logger.Info("PAYMENT", "Top-up checkout created", map[string]interface{}{
		"tenant_id":  tenantId.String(),
		"order_id":   orderId,
		"package_id": pkg.Id.String(),
		"amount":     pkg.Price,
	})

	return &dto.CheckoutResponse{
		OrderId:     orderId,
		Token:       snapResp.Token,
		RedirectUrl: snapResp.RedirectURL,
		Amount:      pkg.Price,
		Currency:    pkg.Currency,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransNotification) (*dto.WebhookAckResponse, error) {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return nil, fmt.Errorf("payment gateway not configured")
	}

	// signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expected {
		s.logger.Warn("PAYMENT", "Webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return nil, apperror.Unauthorized("invalid signature")
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		return s.settleOrder(ctx, req)
	case "deny", "cancel", "expire":
		return s.failOrder(ctx, req)
	default:
		// pending and anything unknown: acknowledge without applying.
		return &dto.WebhookAckResponse{OrderId: req.OrderId, Applied: false}, nil
	}
}

func (s *paymentService) settleOrder(ctx context.Context, req *dto.MidtransNotification) (*dto.WebhookAckResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The ledger row is the durable idempotency record: gateways retry
	// notifications, a settled order must credit exactly once.
	existing, err := uow.TransactionRepository().FindOne(ctx, specification.ByPaymentId{PaymentId: req.OrderId})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if existing != nil {
		return &dto.WebhookAckResponse{
			OrderId:     req.OrderId,
			Applied:     false,
			ProcessedAt: &existing.CreatedAt,
		}, nil
	}

	orderCtx, err := s.loadOrderContext(ctx, req.OrderId)
	if err != nil {
		return nil, err
	}

	pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: orderCtx.PackageId})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if pkg == nil {
		return nil, apperror.NotFound("top-up package %s not found", orderCtx.PackageId)
	}

	orderId := req.OrderId
	paymentMethod := req.PaymentType
	txn, err := s.walletService.Credit(ctx, orderCtx.TenantId, &dto.CreditWalletRequest{
		Credits:        pkg.Credits + pkg.BonusCredits,
		CurrencyAmount: orderCtx.Amount,
		Reason:         fmt.Sprintf("top-up purchase: %s", pkg.Name),
		PaymentId:      &orderId,
		PaymentMethod:  &paymentMethod,
		TopUpPackageId: &pkg.Id,
	})
	if err != nil {
		return nil, err
	}

	s.rdb.Del(ctx, orderContextPrefix+req.OrderId)

	s.logger.Info("PAYMENT", "Top-up settled", map[string]interface{}{
		"tenant_id":      orderCtx.TenantId.String(),
		"order_id":       req.OrderId,
		"transaction_id": txn.Id.String(),
		"credits":        pkg.Credits + pkg.BonusCredits,
	})
	return &dto.WebhookAckResponse{
		OrderId:     req.OrderId,
		Applied:     true,
		ProcessedAt: &txn.CreatedAt,
	}, nil
}

func (s *paymentService) failOrder(ctx context.Context, req *dto.MidtransNotification) (*dto.WebhookAckResponse, error) {
	orderCtx, err := s.loadOrderContext(ctx, req.OrderId)
	if err != nil {
		// Context already expired or order unknown: nothing to roll back,
		// the wallet was never credited.
		s.logger.Warn("PAYMENT", "Failed order without context", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return &dto.WebhookAckResponse{OrderId: req.OrderId, Applied: false}, nil
	}

	s.rdb.Del(ctx, orderContextPrefix+req.OrderId)

	s.logger.Info("PAYMENT", "Top-up failed at gateway", map[string]interface{}{
		"tenant_id": orderCtx.TenantId.String(),
		"order_id":  req.OrderId,
		"status":    req.TransactionStatus,
	})
	s.publisher.PublishPaymentFailed(ctx, orderCtx.TenantId, req.OrderId, req.TransactionStatus)

	return &dto.WebhookAckResponse{OrderId: req.OrderId, Applied: false}, nil
}

func (s *paymentService) loadOrderContext(ctx context.Context, orderId string) (*orderContext, error) {
	raw, err := s.rdb.Get(ctx, orderContextPrefix+orderId).Bytes()
	if err == redis.Nil {
		return nil, apperror.NotFound("order %s not found", orderId)
	}
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	var orderCtx orderContext
	if err := json.Unmarshal(raw, &orderCtx); err != nil {
		return nil, fmt.Errorf("corrupt order context for %s: %w", orderId, err)
	}
	return &orderCtx, nil
}

package bootstrap

import (
	"context"
	"log"

	"messaging-backoffice-be/internal/config"
	"messaging-backoffice-be/internal/controller"
	"messaging-backoffice-be/internal/handler"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/pkg/mailer"
	"messaging-backoffice-be/internal/repository/memory"
	"messaging-backoffice-be/internal/repository/unitofwork"
	"messaging-backoffice-be/internal/service"
	"messaging-backoffice-be/internal/websocket"
	"messaging-backoffice-be/pkg/billing/allocation"
	billingEvents "messaging-backoffice-be/pkg/billing/events"
	"messaging-backoffice-be/pkg/billing/pricing"
	"messaging-backoffice-be/pkg/billing/refund"
	"messaging-backoffice-be/pkg/billing/reporting"

	pkgNats "messaging-backoffice-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	TenantController  controller.ITenantController
	WalletController  controller.IWalletController
	PricingController controller.IPricingController
	PaymentController controller.IPaymentController
	AdminController   controller.IAdminController

	// Background workers (exposed for main.go to run)
	AuditService service.IAuditService

	// WebSockets & notification feed
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderEmail,
	)

	// 2. Event bus for the audit trail
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub for the admin console feed
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Billing domain components
	pricingCache := memory.NewPricingCache()
	priceResolver := pricing.NewResolver(pricingCache, sysLogger)
	billingPublisher := billingEvents.NewNatsPublisher(natsPub, sysLogger)
	refundCoordinator := refund.NewCoordinator(sysLogger, billingPublisher)
	allocator := allocation.NewAllocator(sysLogger, billingPublisher)
	aggregator := reporting.NewAggregator(sysLogger)

	// 4. Services
	auditService := service.NewAuditService(pubSub, uowFactory, sysLogger)

	authService := service.NewAuthService(uowFactory, sysLogger)
	tenantService := service.NewTenantService(uowFactory, sysLogger)
	walletService := service.NewWalletService(
		uowFactory,
		priceResolver,
		billingPublisher,
		auditService,
		rdb,
		sysLogger,
	)
	pricingService := service.NewPricingService(uowFactory, priceResolver, sysLogger)
	paymentService := service.NewPaymentService(
		uowFactory,
		walletService,
		billingPublisher,
		rdb,
		sysLogger,
	)
	adminService := service.NewAdminService(
		uowFactory,
		sysLogger,
		walletService,
		auditService,
		refundCoordinator,
		allocator,
		aggregator,
	)

	// 4.5 Notification system
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, emailService, wsLogger)
	if natsSub != nil {
		go func() {
			if err := notifService.Start(); err != nil {
				sysLogger.Error("BOOTSTRAP", "Notification worker failed to start", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		AuditService:        auditService,

		AuthController:    controller.NewAuthController(authService),
		TenantController:  controller.NewTenantController(tenantService),
		WalletController:  controller.NewWalletController(walletService),
		PricingController: controller.NewPricingController(pricingService),
		PaymentController: controller.NewPaymentController(paymentService),
		AdminController:   controller.NewAdminController(adminService, notifService),
	}
}

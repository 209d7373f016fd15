package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/apperror"
	"messaging-backoffice-be/internal/pkg/logger"
	"messaging-backoffice-be/internal/repository/specification"
	"messaging-backoffice-be/internal/repository/unitofwork"
	billingEvents "messaging-backoffice-be/pkg/billing/events"
	"messaging-backoffice-be/pkg/billing/pricing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	debitGuardPrefix = "wallet:debit:"
	debitGuardTTL    = 24 * time.Hour
)

type IWalletService interface {
	GetOrCreate(ctx context.Context, tenantId uuid.UUID) (*dto.WalletResponse, error)
	Credit(ctx context.Context, tenantId uuid.UUID, req *dto.CreditWalletRequest) (*dto.TransactionResponse, error)
	Debit(ctx context.Context, tenantId uuid.UUID, req *dto.DebitWalletRequest) (*dto.DebitResponse, error)
	Adjust(ctx context.Context, tenantId uuid.UUID, req *dto.AdjustCreditsRequest, adminId uuid.UUID) (*dto.TransactionResponse, error)
	UpdateSettings(ctx context.Context, tenantId uuid.UUID, req *dto.UpdateWalletSettingsRequest) (*dto.WalletResponse, error)
	Suspend(ctx context.Context, tenantId uuid.UUID, reason string, adminId uuid.UUID) (*dto.WalletResponse, error)
	Reactivate(ctx context.Context, tenantId uuid.UUID, adminId uuid.UUID) (*dto.WalletResponse, error)
}

type walletService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *pricing.Resolver
	publisher  billingEvents.Publisher
	audit      IAuditService
	rdb        *redis.Client
	logger     logger.ILogger
}

func NewWalletService(
	uowFactory unitofwork.RepositoryFactory,
	resolver *pricing.Resolver,
	publisher billingEvents.Publisher,
	audit IAuditService,
	rdb *redis.Client,
	logger logger.ILogger,
) IWalletService {
	return &walletService{
		uowFactory: uowFactory,
		resolver:   resolver,
		publisher:  publisher,
		audit:      audit,
		rdb:        rdb,
		logger:     logger,
	}
}

func (s *walletService) GetOrCreate(ctx context.Context, tenantId uuid.UUID) (*dto.WalletResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	wallet, err := s.getOrCreateWallet(ctx, uow, tenantId)
	if err != nil {
		return nil, err
	}
	return toWalletResponse(wallet), nil
}

// getOrCreateWallet runs outside any transaction. A concurrent first access
// loses the insert race on the tenant_id unique index and falls back to
// reading the winner's row.
func (s *walletService) getOrCreateWallet(ctx context.Context, uow unitofwork.UnitOfWork, tenantId uuid.UUID) (*entity.Wallet, error) {
	wallet, err := uow.WalletRepository().FindOne(ctx, specification.TenantOwnedBy{TenantID: tenantId})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if wallet != nil {
		return wallet, nil
	}

	tenant, err := uow.TenantRepository().FindOne(ctx, specification.ByID{ID: tenantId})
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if tenant == nil {
		return nil, apperror.NotFound("tenant %s not found", tenantId)
	}

	currency := tenant.Currency
	if currency == "" {
		currency = "INR"
	}
	wallet = entity.NewWallet(tenantId, currency)
	if err := uow.WalletRepository().Create(ctx, wallet); err != nil {
		// Lost the race: another request created the row first.
		existing, findErr := uow.WalletRepository().FindOne(ctx, specification.TenantOwnedBy{TenantID: tenantId})
		if findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, apperror.PersistenceFailure(err)
	}

	s.logger.Info("WALLET", "Wallet created", map[string]interface{}{
		"tenantId": tenantId.String(),
		"currency": currency,
	})
	return wallet, nil
}

func (s *walletService) Credit(ctx context.Context, tenantId uuid.UUID, req *dto.CreditWalletRequest) (*dto.TransactionResponse, error) {
	description := req.Reason
	if description == "" {
		description = "credit purchase"
	}
	txn, err := s.applyCredit(ctx, tenantId, creditParams{
		txnType:        entity.TransactionTypeCredit,
		credits:        req.Credits,
		currencyAmount: req.CurrencyAmount,
		description:    description,
		paymentId:      req.PaymentId,
		paymentMethod:  req.PaymentMethod,
		topUpPackageId: req.TopUpPackageId,
		actorType:      "system",
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(txn), nil
}

func (s *walletService) Adjust(ctx context.Context, tenantId uuid.UUID, req *dto.AdjustCreditsRequest, adminId uuid.UUID) (*dto.TransactionResponse, error) {
	txn, err := s.applyCredit(ctx, tenantId, creditParams{
		txnType:     entity.TransactionTypeAdjustment,
		credits:     req.Credits,
		description: req.Reason,
		actorType:   "admin",
		adminId:     &adminId,
	})
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(txn), nil
}

type creditParams struct {
	txnType        entity.TransactionType
	credits        float64
	currencyAmount float64
	description    string
	paymentId      *string
	paymentMethod  *string
	topUpPackageId *uuid.UUID
	actorType      string
	adminId        *uuid.UUID
}

// applyCredit is the shared atomic primitive behind purchases, bonuses,
// manual adjustments and plan allocations: lock the wallet row, mutate the
// balance, append the ledger entry, commit.
func (s *walletService) applyCredit(ctx context.Context, tenantId uuid.UUID, p creditParams) (*entity.Transaction, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.getOrCreateWallet(ctx, uow, tenantId); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().FindOneForUpdate(ctx, tenantId)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if wallet == nil {
		return nil, apperror.NotFound("wallet for tenant %s not found", tenantId)
	}

	now := time.Now()
	result, err := wallet.ApplyCredit(p.credits, p.currencyAmount, now)
	if err != nil {
		return nil, err
	}

	txn := &entity.Transaction{
		Id:                uuid.New(),
		WalletId:          wallet.Id,
		TenantId:          wallet.TenantId,
		Type:              p.txnType,
		Status:            entity.TransactionStatusCompleted,
		CreditsAmount:     p.credits,
		CurrencyAmount:    p.currencyAmount,
		Currency:          wallet.Currency,
		BalanceBefore:     result.BalanceBefore,
		BalanceAfter:      result.BalanceAfter,
		Description:       p.description,
		PaymentId:         p.paymentId,
		PaymentMethod:     p.paymentMethod,
		TopUpPackageId:    p.topUpPackageId,
		AdjustedByAdminId: p.adminId,
		CreatedAt:         now,
	}
	if err := txn.Validate(); err != nil {
		return nil, apperror.ValidationFailed(err)
	}

	if err := uow.TransactionRepository().Create(ctx, txn); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if err := uow.WalletRepository().Update(ctx, wallet); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	s.logger.Info("WALLET", "Credits added", map[string]interface{}{
		"tenantId":     tenantId.String(),
		"type":         string(p.txnType),
		"credits":      p.credits,
		"balanceAfter": result.BalanceAfter,
	})
	s.publisher.PublishCreditsAdded(ctx, tenantId, txn.Id, p.credits, result.BalanceAfter, string(p.txnType))
	s.audit.Record(ctx, dto.AuditEventMessage{
		TenantId:      tenantId,
		ActorType:     p.actorType,
		ActorId:       p.adminId,
		Action:        "wallet." + string(p.txnType),
		TransactionId: &txn.Id,
		CreditsAmount: p.credits,
		BalanceBefore: result.BalanceBefore,
		BalanceAfter:  result.BalanceAfter,
		Detail:        map[string]interface{}{"description": p.description},
	})

	return txn, nil
}

func (s *walletService) Debit(ctx context.Context, tenantId uuid.UUID, req *dto.DebitWalletRequest) (*dto.DebitResponse, error) {
	category := entity.ConversationCategory(req.Category)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// A retried send must recognize an already-applied debit instead of
	// double-charging. The ledger row is the durable record; Redis is a fast
	// guard in front of it.
	if existing, err := s.findAppliedDebit(ctx, uow, req.MessageId); err != nil {
		return nil, err
	} else if existing != nil {
		return &dto.DebitResponse{Transaction: toTransactionResponse(existing), AlreadyApplied: true}, nil
	}

	resolution, err := s.resolver.Resolve(ctx, uow, req.ContactCountry, category)
	if err != nil {
		return nil, err
	}
	if resolution.IsFree {
		return &dto.DebitResponse{Free: true}, nil
	}

	if _, err := s.getOrCreateWallet(ctx, uow, tenantId); err != nil {
		return nil, err
	}

	guardKey := debitGuardPrefix + req.MessageId
	if s.rdb != nil {
		acquired, err := s.rdb.SetNX(ctx, guardKey, tenantId.String(), debitGuardTTL).Result()
		if err == nil && !acquired {
			// Another request holds or completed this message id; re-read
			// the ledger for the committed row.
			if existing, findErr := s.findAppliedDebit(ctx, uow, req.MessageId); findErr == nil && existing != nil {
				return &dto.DebitResponse{Transaction: toTransactionResponse(existing), AlreadyApplied: true}, nil
			}
			return nil, apperror.Conflict("debit for message %s is already in flight", req.MessageId)
		}
	}

	txn, wallet, result, err := s.applyDebit(ctx, uow, tenantId, req, resolution, category)
	if err != nil {
		// Release the guard so a retry can succeed once the cause clears.
		if s.rdb != nil {
			s.rdb.Del(ctx, guardKey)
		}
		return nil, err
	}

	s.logger.Info("WALLET", "Credits debited", map[string]interface{}{
		"tenantId":     tenantId.String(),
		"messageId":    req.MessageId,
		"credits":      resolution.Credits,
		"balanceAfter": result.BalanceAfter,
	})
	s.publisher.PublishCreditsDebited(ctx, tenantId, txn.Id, resolution.Credits, result.BalanceAfter, string(category))
	s.audit.Record(ctx, dto.AuditEventMessage{
		TenantId:      tenantId,
		ActorType:     "pipeline",
		Action:        "wallet.debit",
		TransactionId: &txn.Id,
		CreditsAmount: -resolution.Credits,
		BalanceBefore: result.BalanceBefore,
		BalanceAfter:  result.BalanceAfter,
		Detail: map[string]interface{}{
			"messageId": req.MessageId,
			"category":  string(category),
			"country":   req.ContactCountry,
		},
	})
	s.emitBalanceAlerts(ctx, tenantId, txn, wallet, result)

	return &dto.DebitResponse{Transaction: toTransactionResponse(txn)}, nil
}

func (s *walletService) findAppliedDebit(ctx context.Context, uow unitofwork.UnitOfWork, messageId string) (*entity.Transaction, error) {
	existing, err := uow.TransactionRepository().FindOne(ctx,
		specification.ByMessageId{MessageId: messageId},
		specification.ByType{Type: string(entity.TransactionTypeDebit)},
	)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	return existing, nil
}

func (s *walletService) applyDebit(ctx context.Context, uow unitofwork.UnitOfWork, tenantId uuid.UUID, req *dto.DebitWalletRequest, resolution *pricing.Resolution, category entity.ConversationCategory) (*entity.Transaction, *entity.Wallet, entity.DebitResult, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, entity.DebitResult{}, apperror.PersistenceFailure(err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().FindOneForUpdate(ctx, tenantId)
	if err != nil {
		return nil, nil, entity.DebitResult{}, apperror.PersistenceFailure(err)
	}
	if wallet == nil {
		return nil, nil, entity.DebitResult{}, apperror.NotFound("wallet for tenant %s not found", tenantId)
	}

	now := time.Now()
	result, err := wallet.ApplyDebit(resolution.Credits, resolution.CurrencyAmount, now)
	if err != nil {
		return nil, nil, entity.DebitResult{}, err
	}
	if wallet.PlanCreditsMonthly > 0 {
		wallet.PlanCreditsUsed = math.Min(wallet.PlanCreditsMonthly, wallet.PlanCreditsUsed+resolution.Credits)
	}

	messageId := req.MessageId
	country := req.ContactCountry
	txn := &entity.Transaction{
		Id:             uuid.New(),
		WalletId:       wallet.Id,
		TenantId:       wallet.TenantId,
		Type:           entity.TransactionTypeDebit,
		Status:         entity.TransactionStatusCompleted,
		CreditsAmount:  -resolution.Credits,
		CurrencyAmount: -resolution.CurrencyAmount,
		Currency:       wallet.Currency,
		BalanceBefore:  result.BalanceBefore,
		BalanceAfter:   result.BalanceAfter,
		MetaCost:       resolution.MetaCost,
		PlatformMarkup: resolution.Credits - resolution.MetaCost,
		Category:       &category,
		Description:    fmt.Sprintf("%s conversation", category),
		ConversationId: req.ConversationId,
		MessageId:      &messageId,
		ContactId:      req.ContactId,
		ContactCountry: &country,
		CreatedAt:      now,
	}
	if err := txn.Validate(); err != nil {
		return nil, nil, entity.DebitResult{}, apperror.ValidationFailed(err)
	}

	if err := uow.TransactionRepository().Create(ctx, txn); err != nil {
		return nil, nil, entity.DebitResult{}, apperror.PersistenceFailure(err)
	}
	if err := uow.WalletRepository().Update(ctx, wallet); err != nil {
		return nil, nil, entity.DebitResult{}, apperror.PersistenceFailure(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, nil, entity.DebitResult{}, apperror.PersistenceFailure(err)
	}

	return txn, wallet, result, nil
}

func (s *walletService) emitBalanceAlerts(ctx context.Context, tenantId uuid.UUID, txn *entity.Transaction, wallet *entity.Wallet, result entity.DebitResult) {
	if result.LowBalanceTriggered {
		s.publisher.PublishLowBalance(ctx, tenantId, result.BalanceAfter, wallet.LowBalanceThreshold)
	}
	if result.Depleted {
		s.publisher.PublishWalletDepleted(ctx, tenantId, txn.Id)
	}
	if wallet.NeedsAutoRecharge() {
		s.publisher.PublishAutoRechargeTriggered(ctx, tenantId, wallet.CreditBalance, wallet.AutoRechargeThreshold, wallet.AutoRechargeAmount)
	}
}

func (s *walletService) UpdateSettings(ctx context.Context, tenantId uuid.UUID, req *dto.UpdateWalletSettingsRequest) (*dto.WalletResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.getOrCreateWallet(ctx, uow, tenantId); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().FindOneForUpdate(ctx, tenantId)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if wallet == nil {
		return nil, apperror.NotFound("wallet for tenant %s not found", tenantId)
	}

	if req.LowBalanceThreshold != nil && *req.LowBalanceThreshold != wallet.LowBalanceThreshold {
		wallet.LowBalanceThreshold = *req.LowBalanceThreshold
		// A new threshold re-arms the one-shot alert.
		wallet.LowBalanceAlertSent = false
		wallet.LowBalanceAlertAt = nil
	}
	if req.AutoRechargeEnabled != nil {
		wallet.AutoRechargeEnabled = *req.AutoRechargeEnabled
	}
	if req.AutoRechargeThreshold != nil {
		wallet.AutoRechargeThreshold = *req.AutoRechargeThreshold
	}
	if req.AutoRechargeAmount != nil {
		wallet.AutoRechargeAmount = *req.AutoRechargeAmount
	}
	if req.AutoRechargePaymentMethodId != nil {
		wallet.AutoRechargePaymentMethodId = req.AutoRechargePaymentMethodId
	}
	if req.AutoRechargePackageId != nil {
		packageId, err := uuid.Parse(*req.AutoRechargePackageId)
		if err != nil {
			return nil, apperror.ValidationFailed(fmt.Errorf("invalid auto recharge package id: %w", err))
		}
		wallet.AutoRechargePackageId = &packageId
	}
	wallet.UpdatedAt = time.Now()

	if err := uow.WalletRepository().Update(ctx, wallet); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	return toWalletResponse(wallet), nil
}

func (s *walletService) Suspend(ctx context.Context, tenantId uuid.UUID, reason string, adminId uuid.UUID) (*dto.WalletResponse, error) {
	return s.transition(ctx, tenantId, adminId, "wallet.suspend", func(w *entity.Wallet, now time.Time) {
		w.Suspend(reason, now)
	})
}

func (s *walletService) Reactivate(ctx context.Context, tenantId uuid.UUID, adminId uuid.UUID) (*dto.WalletResponse, error) {
	return s.transition(ctx, tenantId, adminId, "wallet.reactivate", func(w *entity.Wallet, now time.Time) {
		w.Reactivate(now)
	})
}

func (s *walletService) transition(ctx context.Context, tenantId, adminId uuid.UUID, action string, mutate func(*entity.Wallet, time.Time)) (*dto.WalletResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	defer uow.Rollback()

	wallet, err := uow.WalletRepository().FindOneForUpdate(ctx, tenantId)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if wallet == nil {
		return nil, apperror.NotFound("wallet for tenant %s not found", tenantId)
	}

	mutate(wallet, time.Now())

	if err := uow.WalletRepository().Update(ctx, wallet); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	s.audit.Record(ctx, dto.AuditEventMessage{
		TenantId:      tenantId,
		ActorType:     "admin",
		ActorId:       &adminId,
		Action:        action,
		BalanceBefore: wallet.CreditBalance,
		BalanceAfter:  wallet.CreditBalance,
		Detail:        map[string]interface{}{"status": string(wallet.Status)},
	})

	return toWalletResponse(wallet), nil
}

// --- DTO mapping ---

func toWalletResponse(w *entity.Wallet) *dto.WalletResponse {
	return &dto.WalletResponse{
		Id:                    w.Id,
		TenantId:              w.TenantId,
		CreditBalance:         w.CreditBalance,
		CurrencyBalance:       w.CurrencyBalance,
		Currency:              w.Currency,
		PlanCreditsMonthly:    w.PlanCreditsMonthly,
		PlanCreditsUsed:       w.PlanCreditsUsed,
		PlanCreditsResetDate:  w.PlanCreditsResetDate,
		LowBalanceThreshold:   w.LowBalanceThreshold,
		AutoRechargeEnabled:   w.AutoRechargeEnabled,
		AutoRechargeThreshold: w.AutoRechargeThreshold,
		AutoRechargeAmount:    w.AutoRechargeAmount,
		Status:                string(w.Status),
		SuspensionReason:      w.SuspensionReason,
		TotalCreditsAdded:     w.TotalCreditsAdded,
		TotalCreditsUsed:      w.TotalCreditsUsed,
		TotalConversations:    w.TotalConversations,
		CreatedAt:             w.CreatedAt,
		UpdatedAt:             w.UpdatedAt,
	}
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	var category *string
	if t.Category != nil {
		c := string(*t.Category)
		category = &c
	}
	return &dto.TransactionResponse{
		Id:                   t.Id,
		WalletId:             t.WalletId,
		TenantId:             t.TenantId,
		Type:                 string(t.Type),
		Status:               string(t.Status),
		CreditsAmount:        t.CreditsAmount,
		CurrencyAmount:       t.CurrencyAmount,
		Currency:             t.Currency,
		BalanceBefore:        t.BalanceBefore,
		BalanceAfter:         t.BalanceAfter,
		MetaCost:             t.MetaCost,
		PlatformMarkup:       t.PlatformMarkup,
		Category:             category,
		Description:          t.Description,
		RelatedTransactionId: t.RelatedTransactionId,
		PaymentId:            t.PaymentId,
		MessageId:            t.MessageId,
		ConversationId:       t.ConversationId,
		ContactCountry:       t.ContactCountry,
		CreatedAt:            t.CreatedAt,
	}
}

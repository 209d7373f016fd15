package mapper

import (
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/model"
)

type WalletMapper struct{}

func NewWalletMapper() *WalletMapper {
	return &WalletMapper{}
}

func (m *WalletMapper) ToEntity(w *model.Wallet) *entity.Wallet {
	if w == nil {
		return nil
	}
	return &entity.Wallet{
		Id:                          w.Id,
		TenantId:                    w.TenantId,
		CreditBalance:               w.CreditBalance,
		CurrencyBalance:             w.CurrencyBalance,
		Currency:                    w.Currency,
		PlanCreditsMonthly:          w.PlanCreditsMonthly,
		PlanCreditsUsed:             w.PlanCreditsUsed,
		PlanCreditsResetDate:        w.PlanCreditsResetDate,
		LowBalanceThreshold:         w.LowBalanceThreshold,
		LowBalanceAlertSent:         w.LowBalanceAlertSent,
		LowBalanceAlertAt:           w.LowBalanceAlertAt,
		AutoRechargeEnabled:         w.AutoRechargeEnabled,
		AutoRechargeThreshold:       w.AutoRechargeThreshold,
		AutoRechargeAmount:          w.AutoRechargeAmount,
		AutoRechargePaymentMethodId: w.AutoRechargePaymentMethodId,
		AutoRechargePackageId:       w.AutoRechargePackageId,
		AutoRechargeFailureCount:    w.AutoRechargeFailureCount,
		Status:                      entity.WalletStatus(w.Status),
		SuspensionReason:            w.SuspensionReason,
		SuspendedAt:                 w.SuspendedAt,
		TotalCreditsAdded:           w.TotalCreditsAdded,
		TotalCreditsUsed:            w.TotalCreditsUsed,
		TotalConversations:          w.TotalConversations,
		CreatedAt:                   w.CreatedAt,
		UpdatedAt:                   w.UpdatedAt,
	}
}

func (m *WalletMapper) ToModel(w *entity.Wallet) *model.Wallet {
	if w == nil {
		return nil
	}
	return &model.Wallet{
		Id:                          w.Id,
		TenantId:                    w.TenantId,
		CreditBalance:               w.CreditBalance,
		CurrencyBalance:             w.CurrencyBalance,
		Currency:                    w.Currency,
		PlanCreditsMonthly:          w.PlanCreditsMonthly,
		PlanCreditsUsed:             w.PlanCreditsUsed,
		PlanCreditsResetDate:        w.PlanCreditsResetDate,
		LowBalanceThreshold:         w.LowBalanceThreshold,
		LowBalanceAlertSent:         w.LowBalanceAlertSent,
		LowBalanceAlertAt:           w.LowBalanceAlertAt,
		AutoRechargeEnabled:         w.AutoRechargeEnabled,
		AutoRechargeThreshold:       w.AutoRechargeThreshold,
		AutoRechargeAmount:          w.AutoRechargeAmount,
		AutoRechargePaymentMethodId: w.AutoRechargePaymentMethodId,
		AutoRechargePackageId:       w.AutoRechargePackageId,
		AutoRechargeFailureCount:    w.AutoRechargeFailureCount,
		Status:                      string(w.Status),
		SuspensionReason:            w.SuspensionReason,
		SuspendedAt:                 w.SuspendedAt,
		TotalCreditsAdded:           w.TotalCreditsAdded,
		TotalCreditsUsed:            w.TotalCreditsUsed,
		TotalConversations:          w.TotalConversations,
		CreatedAt:                   w.CreatedAt,
		UpdatedAt:                   w.UpdatedAt,
	}
}

type TransactionMapper struct{}

func NewTransactionMapper() *TransactionMapper {
	return &TransactionMapper{}
}

func (m *TransactionMapper) ToEntity(t *model.Transaction) *entity.Transaction {
	if t == nil {
		return nil
	}
	var category *entity.ConversationCategory
	if t.Category != nil {
		c := entity.ConversationCategory(*t.Category)
		category = &c
	}
	return &entity.Transaction{
		Id:                   t.Id,
		WalletId:             t.WalletId,
		TenantId:             t.TenantId,
		Type:                 entity.TransactionType(t.Type),
		Status:               entity.TransactionStatus(t.Status),
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
		PaymentMethod:        t.PaymentMethod,
		TopUpPackageId:       t.TopUpPackageId,
		ConversationId:       t.ConversationId,
		MessageId:            t.MessageId,
		ContactId:            t.ContactId,
		ContactCountry:       t.ContactCountry,
		AdjustedByAdminId:    t.AdjustedByAdminId,
		CreatedAt:            t.CreatedAt,
	}
}

func (m *TransactionMapper) ToModel(t *entity.Transaction) *model.Transaction {
	if t == nil {
		return nil
	}
	var category *string
	if t.Category != nil {
		c := string(*t.Category)
		category = &c
	}
	return &model.Transaction{
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
		PaymentMethod:        t.PaymentMethod,
		TopUpPackageId:       t.TopUpPackageId,
		ConversationId:       t.ConversationId,
		MessageId:            t.MessageId,
		ContactId:            t.ContactId,
		ContactCountry:       t.ContactCountry,
		AdjustedByAdminId:    t.AdjustedByAdminId,
		CreatedAt:            t.CreatedAt,
	}
}

package controller

import (
	"strconv"

	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/serverutils"
	"messaging-backoffice-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	adminService        service.IAdminService
	notificationService service.INotificationService
}

func NewAdminController(adminService service.IAdminService, notificationService service.INotificationService) IAdminController {
	return &adminController{
		adminService:        adminService,
		notificationService: notificationService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", serverutils.JwtMiddleware)

	// Dashboard & reporting
	h.Get("/dashboard", c.GetDashboardStats)
	h.Get("/transactions", c.GetTransactions)
	h.Get("/tenants/:tenantId/usage", c.GetUsageStats)
	h.Get("/revenue", c.GetRevenueStats)
	h.Get("/tenants/:tenantId/reconciliation", c.VerifyReconciliation)

	// Manual ledger operations
	h.Post("/tenants/:tenantId/credits/adjust", serverutils.RequireRole(string(entity.AdminRoleSuperAdmin)), c.AdjustCredits)
	h.Post("/transactions/:id/refund", c.RefundTransaction)
	h.Post("/tenants/:tenantId/credits/allocate", c.AllocatePlanCredits)

	// Trails
	h.Get("/audit-logs", c.GetAuditLogs)
	h.Get("/logs", c.GetSystemLogs)
	h.Get("/logs/:id", c.GetSystemLogDetail)

	// Inbox
	h.Get("/notifications", c.GetNotifications)
	h.Put("/notifications/:id/read", c.MarkNotificationRead)
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	stats, err := c.adminService.GetDashboardStats(ctx.Context())
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats", stats))
}

func (c *adminController) GetTransactions(ctx *fiber.Ctx) error {
	var query dto.TransactionListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}

	res, err := c.adminService.GetTransactions(ctx.Context(), &query)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Transaction list", res))
}

func (c *adminController) GetUsageStats(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var query dto.StatsPeriodQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}

	res, err := c.adminService.GetUsageStats(ctx.Context(), tenantId, &query)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Usage stats", res))
}

func (c *adminController) GetRevenueStats(ctx *fiber.Ctx) error {
	var query dto.StatsPeriodQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}

	res, err := c.adminService.GetRevenueStats(ctx.Context(), &query)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Revenue stats", res))
}

func (c *adminController) VerifyReconciliation(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	res, err := c.adminService.VerifyReconciliation(ctx.Context(), tenantId)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Reconciliation report", res))
}

func (c *adminController) AdjustCredits(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var req dto.AdjustCreditsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.adminService.AdjustCredits(ctx.Context(), tenantId, &req, adminIdLocal(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Credits adjusted", res))
}

func (c *adminController) RefundTransaction(ctx *fiber.Ctx) error {
	transactionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid transaction ID"))
	}

	var req dto.RefundTransactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.adminService.RefundTransaction(ctx.Context(), transactionId, &req, adminIdLocal(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Refund issued", res))
}

func (c *adminController) AllocatePlanCredits(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var req dto.AllocatePlanCreditsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.adminService.AllocatePlanCredits(ctx.Context(), tenantId, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Plan credits allocated", res))
}

func (c *adminController) GetAuditLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))

	var tenantId *uuid.UUID
	if raw := ctx.Query("tenant_id", ""); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant_id"))
		}
		tenantId = &parsed
	}

	res, err := c.adminService.GetAuditLogs(ctx.Context(), tenantId, page, limit)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Audit log", res))
}

func (c *adminController) GetSystemLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	level := ctx.Query("level", "")

	res, err := c.adminService.GetSystemLogs(ctx.Context(), level, page, limit)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", res))
}

func (c *adminController) GetSystemLogDetail(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetSystemLogDetail(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", res))
}

func (c *adminController) GetNotifications(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))

	var tenantId *uuid.UUID
	if raw := ctx.Query("tenant_id", ""); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant_id"))
		}
		tenantId = &parsed
	}

	res, err := c.notificationService.GetNotifications(ctx.Context(), tenantId, page, limit)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Notifications", res))
}

func (c *adminController) MarkNotificationRead(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid notification ID"))
	}

	if err := c.notificationService.MarkAsRead(ctx.Context(), id); err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notification marked as read", nil))
}

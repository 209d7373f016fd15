package controller

import (
	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/pkg/serverutils"
	"messaging-backoffice-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWalletController interface {
	RegisterRoutes(r fiber.Router)
}

type walletController struct {
	walletService service.IWalletService
}

func NewWalletController(walletService service.IWalletService) IWalletController {
	return &walletController{
		walletService: walletService,
	}
}

func (c *walletController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tenants/:tenantId/wallet", serverutils.JwtMiddleware)

	h.Get("/", c.GetWallet)
	h.Post("/debit", c.Debit)
	h.Post("/credit", c.Credit)
	h.Patch("/settings", c.UpdateSettings)
	h.Post("/suspend", c.Suspend)
	h.Post("/reactivate", c.Reactivate)
}

func adminIdLocal(ctx *fiber.Ctx) uuid.UUID {
	adminIdStr, _ := ctx.Locals("admin_id").(string)
	adminId, _ := uuid.Parse(adminIdStr)
	return adminId
}

func (c *walletController) GetWallet(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	res, err := c.walletService.GetOrCreate(ctx.Context(), tenantId)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Wallet", res))
}

// Debit is called by the message delivery pipeline once per billable
// conversation. Retries with the same message_id are acknowledged without
// charging twice.
func (c *walletController) Debit(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var req dto.DebitWalletRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.walletService.Debit(ctx.Context(), tenantId, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Debit processed", res))
}

func (c *walletController) Credit(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var req dto.CreditWalletRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.walletService.Credit(ctx.Context(), tenantId, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Credits added", res))
}

func (c *walletController) UpdateSettings(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var req dto.UpdateWalletSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.walletService.UpdateSettings(ctx.Context(), tenantId, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Wallet settings updated", res))
}

func (c *walletController) Suspend(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var req dto.SuspendWalletRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.walletService.Suspend(ctx.Context(), tenantId, req.Reason, adminIdLocal(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Wallet suspended", res))
}

func (c *walletController) Reactivate(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	res, err := c.walletService.Reactivate(ctx.Context(), tenantId, adminIdLocal(ctx))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Wallet reactivated", res))
}

package controller

import (
	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/pkg/serverutils"
	"messaging-backoffice-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{
		paymentService: paymentService,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	// The gateway calls the webhook unauthenticated; the signature check
	// inside the service is the trust boundary.
	r.Post("/payments/webhook/midtrans", c.HandleWebhook)

	h := r.Group("/tenants/:tenantId/payments", serverutils.JwtMiddleware)
	h.Post("/checkout", c.Checkout)
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.paymentService.Checkout(ctx.Context(), tenantId, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) HandleWebhook(ctx *fiber.Ctx) error {
	var req dto.MidtransNotification
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid notification body"))
	}

	res, err := c.paymentService.HandleNotification(ctx.Context(), &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Notification processed", res))
}

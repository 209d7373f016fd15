package controller

import (
	"strconv"

	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/pkg/serverutils"
	"messaging-backoffice-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITenantController interface {
	RegisterRoutes(r fiber.Router)
}

type tenantController struct {
	tenantService service.ITenantService
}

func NewTenantController(tenantService service.ITenantService) ITenantController {
	return &tenantController{
		tenantService: tenantService,
	}
}

func (c *tenantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tenants", serverutils.JwtMiddleware)

	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Get("/:tenantId", c.GetById)
	h.Put("/:tenantId", c.Update)

	h.Get("/:tenantId/channels", c.ListChannels)
	h.Post("/:tenantId/channels", c.CreateChannel)
	h.Put("/:tenantId/channels/:channelId", c.UpdateChannel)
	h.Delete("/:tenantId/channels/:channelId", c.DeleteChannel)

	h.Get("/:tenantId/features", c.ListFeatureFlags)
	h.Put("/:tenantId/features", c.UpsertFeatureFlag)
}

func tenantIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(ctx.Params("tenantId"))
}

func (c *tenantController) List(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	status := ctx.Query("status", "")

	res, err := c.tenantService.List(ctx.Context(), status, page, limit)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Tenant list", res))
}

func (c *tenantController) Create(ctx *fiber.Ctx) error {
	var req dto.TenantCreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.tenantService.Create(ctx.Context(), &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Tenant created", res))
}

func (c *tenantController) GetById(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	res, err := c.tenantService.GetById(ctx.Context(), tenantId)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Tenant detail", res))
}

func (c *tenantController) Update(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var req dto.TenantUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.tenantService.Update(ctx.Context(), tenantId, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Tenant updated", res))
}

func (c *tenantController) ListChannels(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	res, err := c.tenantService.ListChannels(ctx.Context(), tenantId)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Channel list", res))
}

func (c *tenantController) CreateChannel(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var req dto.ChannelCreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.tenantService.CreateChannel(ctx.Context(), tenantId, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Channel created", res))
}

func (c *tenantController) UpdateChannel(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}
	channelId, err := uuid.Parse(ctx.Params("channelId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid channel ID"))
	}

	var req dto.ChannelUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.tenantService.UpdateChannel(ctx.Context(), tenantId, channelId, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Channel updated", res))
}

func (c *tenantController) DeleteChannel(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}
	channelId, err := uuid.Parse(ctx.Params("channelId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid channel ID"))
	}

	if err := c.tenantService.DeleteChannel(ctx.Context(), tenantId, channelId); err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Channel deleted", nil))
}

func (c *tenantController) ListFeatureFlags(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	res, err := c.tenantService.ListFeatureFlags(ctx.Context(), tenantId)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature flags", res))
}

func (c *tenantController) UpsertFeatureFlag(ctx *fiber.Ctx) error {
	tenantId, err := tenantIdParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid tenant ID"))
	}

	var req dto.FeatureFlagUpsertRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.tenantService.UpsertFeatureFlag(ctx.Context(), tenantId, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature flag saved", res))
}

package controller

import (
	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/serverutils"
	"messaging-backoffice-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPricingController interface {
	RegisterRoutes(r fiber.Router)
}

type pricingController struct {
	pricingService service.IPricingService
}

func NewPricingController(pricingService service.IPricingService) IPricingController {
	return &pricingController{
		pricingService: pricingService,
	}
}

func (c *pricingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/pricing", serverutils.JwtMiddleware)

	h.Get("/resolve", c.Resolve)
	h.Get("/entries", c.ListEntries)

	// Price table mutations are superadmin-only.
	manage := h.Group("/entries", serverutils.RequireRole(string(entity.AdminRoleSuperAdmin)))
	manage.Post("/", c.CreateEntry)
	manage.Put("/:id", c.UpdateEntry)
	manage.Delete("/:id", c.DeleteEntry)

	p := r.Group("/packages", serverutils.JwtMiddleware)
	p.Get("/", c.ListPackages)
	managePkg := p.Group("/", serverutils.RequireRole(string(entity.AdminRoleSuperAdmin)))
	managePkg.Post("/", c.CreatePackage)
	managePkg.Put("/:id", c.UpdatePackage)
	managePkg.Delete("/:id", c.DeletePackage)
}

func (c *pricingController) Resolve(ctx *fiber.Ctx) error {
	var query dto.ResolvePriceQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.pricingService.Resolve(ctx.Context(), &query)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Resolved price", res))
}

func (c *pricingController) ListEntries(ctx *fiber.Ctx) error {
	res, err := c.pricingService.ListEntries(ctx.Context())
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Pricing entries", res))
}

func (c *pricingController) CreateEntry(ctx *fiber.Ctx) error {
	var req dto.PricingEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.pricingService.CreateEntry(ctx.Context(), &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Pricing entry created", res))
}

func (c *pricingController) UpdateEntry(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid entry ID"))
	}

	var req dto.PricingEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.pricingService.UpdateEntry(ctx.Context(), id, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Pricing entry updated", res))
}

func (c *pricingController) DeleteEntry(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid entry ID"))
	}

	if err := c.pricingService.DeleteEntry(ctx.Context(), id); err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Pricing entry deleted", nil))
}

func (c *pricingController) ListPackages(ctx *fiber.Ctx) error {
	activeOnly := ctx.QueryBool("active", true)

	res, err := c.pricingService.ListPackages(ctx.Context(), activeOnly)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Top-up packages", res))
}

func (c *pricingController) CreatePackage(ctx *fiber.Ctx) error {
	var req dto.TopUpPackageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.pricingService.CreatePackage(ctx.Context(), &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Package created", res))
}

func (c *pricingController) UpdatePackage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid package ID"))
	}

	var req dto.TopUpPackageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.pricingService.UpdatePackage(ctx.Context(), id, &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Package updated", res))
}

func (c *pricingController) DeletePackage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid package ID"))
	}

	if err := c.pricingService.DeletePackage(ctx.Context(), id); err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Package deleted", nil))
}

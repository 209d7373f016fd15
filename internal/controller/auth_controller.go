package controller

import (
	"messaging-backoffice-be/internal/dto"
	"messaging-backoffice-be/internal/entity"
	"messaging-backoffice-be/internal/pkg/serverutils"
	"messaging-backoffice-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{
		authService: authService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)

	h.Use(serverutils.JwtMiddleware)
	h.Get("/me", c.Me)

	// Admin account management is superadmin-only.
	admins := h.Group("/admins", serverutils.RequireRole(string(entity.AdminRoleSuperAdmin)))
	admins.Get("/", c.ListAdmins)
	admins.Post("/", c.CreateAdmin)
	admins.Delete("/:id", c.DeactivateAdmin)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	adminIdStr, _ := ctx.Locals("admin_id").(string)
	adminId, err := uuid.Parse(adminIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid admin ID"))
	}

	res, err := c.authService.GetAdmin(ctx.Context(), adminId)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Current admin", res))
}

func (c *authController) ListAdmins(ctx *fiber.Ctx) error {
	res, err := c.authService.ListAdmins(ctx.Context())
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Admin list", res))
}

func (c *authController) CreateAdmin(ctx *fiber.Ctx) error {
	var req dto.AdminCreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.authService.CreateAdmin(ctx.Context(), &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Admin created", res))
}

func (c *authController) DeactivateAdmin(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid admin ID"))
	}

	if err := c.authService.DeactivateAdmin(ctx.Context(), id); err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Admin deactivated", nil))
}

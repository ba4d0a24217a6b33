package handlers

import (
	"finance-tracker/internal/dto"
	"finance-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	financeService *service.FinanceService
	validator      *RequestValidator
	logger         *zap.Logger
}

func NewCategoryHandler(financeService *service.FinanceService, validator *RequestValidator, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		financeService: financeService,
		validator:      validator,
		logger:         logger,
	}
}

// ListCategories godoc
// @Summary List categories
// @Description List active categories, optionally of one type
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param type query string false "Category type" Enums(income, expense, savings_income, savings_expense)
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/categories [get]
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.financeService.ListCategories(c.UserContext(), c.Query("type"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.NewCategoryListResponse(categories))
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.IDStatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return writeError(c, h.logger, err)
	}

	id, err := h.financeService.CreateCategory(c.UserContext(), req.Name, req.Type, req.Color)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.IDStatusResponse{ID: id, Status: dto.StatusCreated})
}

// DeactivateCategory godoc
// @Summary Deactivate a category
// @Description Hide a category from listings. Existing transactions keep it.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.IDStatusResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) DeactivateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if err := h.financeService.DeactivateCategory(c.UserContext(), id); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(dto.IDStatusResponse{ID: id, Status: dto.StatusDeactivated})
}

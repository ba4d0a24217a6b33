package handlers

import (
	"finance-tracker/internal/dto"
	"finance-tracker/internal/period"
	"finance-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	financeService *service.FinanceService
	validator      *RequestValidator
	logger         *zap.Logger
}

func NewAnalyticsHandler(financeService *service.FinanceService, validator *RequestValidator, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		financeService: financeService,
		validator:      validator,
		logger:         logger,
	}
}

// Analytics godoc
// @Summary Period analytics
// @Description Totals, per-category breakdown and daily series for a period. Savings are excluded from ordinary totals unless include_savings is true.
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AnalyticsRequest true "Period selection"
// @Success 200 {object} models.Analytics
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/analytics [post]
func (h *AnalyticsHandler) Analytics(c *fiber.Ctx) error {
	return h.compute(c, false)
}

// SavingsAnalytics godoc
// @Summary Period analytics including savings
// @Description Same as /api/analytics with include_savings forced to true
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AnalyticsRequest true "Period selection"
// @Success 200 {object} models.Analytics
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/analytics/savings [post]
func (h *AnalyticsHandler) SavingsAnalytics(c *fiber.Ctx) error {
	return h.compute(c, true)
}

func (h *AnalyticsHandler) compute(c *fiber.Ctx, forceSavings bool) error {
	var req dto.AnalyticsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body: "+err.Error())
		}
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return writeError(c, h.logger, err)
	}

	q, err := periodQuery(req.Period, req.StartDate, req.EndDate)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	includeSavings := forceSavings
	if !forceSavings && req.IncludeSavings != nil {
		includeSavings = *req.IncludeSavings
	}

	report, err := h.financeService.Analytics(c.UserContext(), q, includeSavings)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(report)
}

// Periods godoc
// @Summary Supported periods
// @Description List period tokens with display labels
// @Tags analytics
// @Produce json
// @Success 200 {array} period.Option
// @Router /api/periods [get]
func (h *AnalyticsHandler) Periods(c *fiber.Ctx) error {
	return c.JSON(period.Options())
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

package handlers

import (
	"strconv"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/period"
	"finance-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	financeService *service.FinanceService
	validator      *RequestValidator
	logger         *zap.Logger
}

func NewTransactionHandler(financeService *service.FinanceService, validator *RequestValidator, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		financeService: financeService,
		validator:      validator,
		logger:         logger,
	}
}

// parseDateParam returns nil for an empty value.
func parseDateParam(name, value string) (*models.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return nil, apperr.Validation(name + ": " + err.Error())
	}
	return &d, nil
}

func periodQuery(token, start, end string) (service.PeriodQuery, error) {
	if token == "" {
		token = period.Month
	}
	startDate, err := parseDateParam("start_date", start)
	if err != nil {
		return service.PeriodQuery{}, err
	}
	endDate, err := parseDateParam("end_date", end)
	if err != nil {
		return service.PeriodQuery{}, err
	}
	return service.PeriodQuery{Period: token, StartDate: startDate, EndDate: endDate}, nil
}

// ListTransactions godoc
// @Summary List transactions
// @Description List transactions in a period with their category, newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param period query string false "Period token" default(month)
// @Param start_date query string false "Start date for custom period (YYYY-MM-DD)"
// @Param end_date query string false "End date for custom period (YYYY-MM-DD)"
// @Param include_savings query bool false "Include savings transactions" default(true)
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	q, err := periodQuery(c.Query("period"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	includeSavings := true
	if raw := c.Query("include_savings"); raw != "" {
		includeSavings, err = strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "include_savings must be a boolean")
		}
	}

	transactions, err := h.financeService.ListTransactions(c.UserContext(), q, includeSavings)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(dto.NewTransactionListResponse(transactions))
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	t, err := h.financeService.GetTransaction(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(dto.NewTransactionResponse(*t))
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.IDStatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return writeError(c, h.logger, err)
	}

	id, err := h.financeService.CreateTransaction(c.UserContext(), req.ToModel())
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.IDStatusResponse{ID: id, Status: dto.StatusCreated})
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Change only the fields present in the body
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.IDStatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return writeError(c, h.logger, err)
	}

	if _, err := h.financeService.UpdateTransaction(c.UserContext(), id, req.ToPatch()); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(dto.IDStatusResponse{ID: id, Status: dto.StatusUpdated})
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.IDStatusResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if _, err := h.financeService.DeleteTransaction(c.UserContext(), id); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(dto.IDStatusResponse{ID: id, Status: dto.StatusDeleted})
}

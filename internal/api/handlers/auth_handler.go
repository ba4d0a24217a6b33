package handlers

import (
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/service"
	"finance-tracker/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

func (h *AuthHandler) tokenResponse(token string) dto.TokenResponse {
	return dto.TokenResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: h.authService.TokenLifetime(),
	}
}

// Status godoc
// @Summary Password status
// @Description Report whether a password has been configured
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/status [get]
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	set, err := h.authService.Status(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.AuthStatusResponse{PasswordSet: set})
}

// Setup godoc
// @Summary Set the initial password
// @Description Configure the password once and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SetupRequest true "Setup request"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/auth/setup [post]
func (h *AuthHandler) Setup(c *fiber.Ctx) error {
	var req dto.SetupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	token, err := h.authService.Setup(c.UserContext(), req.Password, req.ConfirmPassword)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(h.tokenResponse(token))
}

// Login godoc
// @Summary Log in
// @Description Exchange the password for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	token, err := h.authService.Login(c.UserContext(), req.Password)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(h.tokenResponse(token))
}

// Verify godoc
// @Summary Verify a token
// @Description Check a token passed in the body, the Authorization header or the token query parameter
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyRequest false "Token to verify"
// @Success 200 {object} dto.VerifyResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/verify [post]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	token := req.Token
	if token == "" {
		token = middleware.ExtractToken(c)
	}

	claims, err := h.authService.Verify(token)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(dto.VerifyResponse{
		Valid:     true,
		ExpiresAt: claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
	})
}

// ChangePassword godoc
// @Summary Change the password
// @Description Replace the password after checking the current one
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Change password request"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	err := h.authService.ChangePassword(c.UserContext(), req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(dto.MessageResponse{Message: "password changed"})
}

package handlers

import (
	"errors"
	"strconv"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const internalErrorDetail = "internal server error"

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindAuth:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders err as {"detail": ...}. Store failures and untagged
// errors are logged with their cause and answered with a short message.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logger.Error("Request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: internalErrorDetail})
	}

	if appErr.Kind == apperr.KindDataAccess {
		logger.Error("Database error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(appErr.Err),
		)
	}
	if appErr.Kind == apperr.KindInternal {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: internalErrorDetail})
	}

	return c.Status(StatusFor(appErr.Kind)).JSON(dto.ErrorResponse{Detail: appErr.Message})
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: detail})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid id: " + c.Params("id"))
	}
	return id, nil
}

package serverutils

import (
	"errors"

	"pdf-hint-be/internal/constant"
	"pdf-hint-be/internal/repository/memory"
	"pdf-hint-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of controllers into
// JSON envelopes. Model failures become user-facing "try again" responses;
// they are never retried here.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		if errors.Is(err, memory.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse("Session not found"))
		}

		if modelErr, ok := llm.AsModelError(err); ok {
			return ctx.Status(modelErrorStatus(modelErr)).JSON(ErrorResponse(modelErrorMessage(modelErr)))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}

func modelErrorStatus(err *llm.ModelError) int {
	switch err.Kind {
	case llm.ErrorKindRateLimited:
		return fiber.StatusTooManyRequests
	case llm.ErrorKindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}

func modelErrorMessage(err *llm.ModelError) string {
	switch err.Kind {
	case llm.ErrorKindRateLimited:
		return "The service is experiencing high demand. Please wait a moment and try again."
	case llm.ErrorKindInvalidRequest:
		return "The assistant could not process this question. Please try rephrasing it."
	default:
		return constant.ModelFailureReplyV1
	}
}

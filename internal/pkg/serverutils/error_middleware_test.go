package serverutils

import (
	"net/http/httptest"
	"testing"

	"pdf-hint-be/internal/repository/memory"
	"pdf-hint-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

func newErrorApp(err error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/t", func(ctx *fiber.Ctx) error {
		return err
	})
	return app
}

func TestErrorHandlerMiddlewareStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "session not found",
			err:        memory.ErrSessionNotFound,
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "model rate limited",
			err:        &llm.ModelError{Kind: llm.ErrorKindRateLimited, StatusCode: 429, Message: "quota"},
			wantStatus: fiber.StatusTooManyRequests,
		},
		{
			name:       "model unavailable",
			err:        &llm.ModelError{Kind: llm.ErrorKindUnavailable, StatusCode: 503, Message: "down"},
			wantStatus: fiber.StatusServiceUnavailable,
		},
		{
			name:       "model rejected the assembled request",
			err:        &llm.ModelError{Kind: llm.ErrorKindInvalidRequest, StatusCode: 400, Message: "bad prompt"},
			wantStatus: fiber.StatusBadGateway,
		},
		{
			name:       "unclassified model failure",
			err:        &llm.ModelError{Kind: llm.ErrorKindUnknown, Message: "empty response"},
			wantStatus: fiber.StatusBadGateway,
		},
		{
			name:       "fiber error keeps its code",
			err:        fiber.NewError(fiber.StatusBadRequest, "validation failed"),
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newErrorApp(tt.err)

			res, err := app.Test(httptest.NewRequest("GET", "/t", nil))
			if err != nil {
				t.Fatalf("Test() error = %v", err)
			}
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", res.StatusCode, tt.wantStatus)
			}
		})
	}
}

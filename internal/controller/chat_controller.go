package controller

import (
	"pdf-hint-be/internal/dto"
	"pdf-hint-be/internal/pkg/serverutils"
	"pdf-hint-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	SessionInfo(ctx *fiber.Ctx) error
	Cleanup(ctx *fiber.Ctx) error
}

type chatController struct {
	service     service.IChatService
	rateLimiter fiber.Handler
}

func NewChatController(service service.IChatService, rateLimiter fiber.Handler) IChatController {
	return &chatController{
		service:     service,
		rateLimiter: rateLimiter,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.rateLimiter, c.Chat)
	r.Get("/history/:session_id", c.History)
	r.Post("/clear/:session_id", c.Clear)
	r.Get("/session/:session_id", c.SessionInfo)
	r.Post("/cleanup", c.Cleanup)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session_id")

	res, err := c.service.GetHistory(sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session_id")
	return ctx.JSON(c.service.ClearHistory(sessionId))
}

func (c *chatController) SessionInfo(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session_id")

	res, err := c.service.SessionInfo(sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) Cleanup(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Cleanup())
}

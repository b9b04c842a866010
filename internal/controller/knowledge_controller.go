package controller

import (
	"pdf-hint-be/internal/dto"
	"pdf-hint-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	AssignmentQuestions(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledge service.IKnowledgeService
	chat      service.IChatService
}

func NewKnowledgeController(knowledge service.IKnowledgeService, chat service.IChatService) IKnowledgeController {
	return &knowledgeController{
		knowledge: knowledge,
		chat:      chat,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	r.Get("/assignment-questions", c.AssignmentQuestions)
	r.Get("/stats", c.Stats)
}

func (c *knowledgeController) AssignmentQuestions(ctx *fiber.Ctx) error {
	return ctx.JSON(c.knowledge.ListAssignmentQuestions())
}

func (c *knowledgeController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.StatsResponse{
		KnowledgeBase: c.knowledge.Stats(),
		ChatSessions:  c.chat.Stats(),
	})
}

// Health is registered at the root, outside the /api group.
func (c *knowledgeController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.knowledge.Health())
}

// FILE: internal/controller/generation_controller.go
package controller

import (
	"auditpath-quiz-be/internal/pkg/serverutils"
	"auditpath-quiz-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	GenerateChunk(ctx *fiber.Ctx) error
	GenerateFollowUp(ctx *fiber.Ctx) error
	GenerateArchiveRefresh(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
}

func NewGenerationController(generationService service.IGenerationService) IGenerationController {
	return &generationController{
		generationService: generationService,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("chunks/:id", c.GenerateChunk)
	h.Post("chunks/:id/archive-refresh", c.GenerateArchiveRefresh)
	h.Post("questions/:id/followup", c.GenerateFollowUp)
}

// GenerateChunk enqueues the async pipeline; progress arrives over /ws.
func (c *generationController) GenerateChunk(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	chunkId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chunk id")
	}

	res, err := c.generationService.Enqueue(ctx.Context(), userId, chunkId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Generation queued", res))
}

func (c *generationController) GenerateFollowUp(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	questionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid question id")
	}

	question, err := c.generationService.GenerateFollowUp(ctx.Context(), userId, questionId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Follow-up generated", fiber.Map{
		"question_id": question.Id,
	}))
}

func (c *generationController) GenerateArchiveRefresh(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	chunkId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chunk id")
	}

	if err := c.generationService.GenerateArchiveRefresh(ctx.Context(), userId, chunkId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Archive refresh generated", nil))
}

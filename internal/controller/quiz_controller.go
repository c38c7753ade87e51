// FILE: internal/controller/quiz_controller.go
package controller

import (
	"auditpath-quiz-be/internal/dto"
	"auditpath-quiz-be/internal/pkg/serverutils"
	"auditpath-quiz-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQuizController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	GetQueue(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	TestResults(ctx *fiber.Ctx) error
}

type quizController struct {
	quizService service.IQuizService
}

func NewQuizController(quizService service.IQuizService) IQuizController {
	return &quizController{
		quizService: quizService,
	}
}

func (c *quizController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/quiz/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("session/:courseId/start", c.StartSession)
	h.Get("queue", c.GetQueue)
	h.Post("submit", c.Submit)
	h.Post("test-results", c.TestResults)
}

func (c *quizController) StartSession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	courseId, err := uuid.Parse(ctx.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course id")
	}

	res, err := c.quizService.StartSession(ctx.Context(), userId, courseId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start session", res))
}

func (c *quizController) GetQueue(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	courseId, err := uuid.Parse(ctx.Query("course_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course id")
	}

	req := dto.ReviewQueueRequest{
		CourseId: courseId,
		Limit:    ctx.QueryInt("limit", 0),
	}
	if target := ctx.Query("target_chunk_id"); target != "" {
		chunkId, err := uuid.Parse(target)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid target chunk id")
		}
		req.TargetChunkId = &chunkId
	}

	res, err := c.quizService.GetReviewQueue(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get queue", res))
}

func (c *quizController) Submit(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SubmitAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.quizService.SubmitAnswer(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit answer", res))
}

func (c *quizController) TestResults(ctx *fiber.Ctx) error {
	var req dto.TestResultsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.quizService.TestResults(&req)
	return ctx.JSON(serverutils.SuccessResponse("Success compute results", res))
}

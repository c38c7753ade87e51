package handler

import (
	"context"
	"encoding/json"
	"os"

	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/dto"
	"auditpath-quiz-be/internal/pkg/logger"
	"auditpath-quiz-be/internal/pkg/mailer"
	"auditpath-quiz-be/internal/repository/specification"
	"auditpath-quiz-be/internal/repository/unitofwork"
	internalWS "auditpath-quiz-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ProgressHandler owns the realtime side of generation: the websocket
// endpoint clients connect to, and the bridge worker that moves progress
// events from the in-process bus onto user sockets.
type ProgressHandler struct {
	pubSub       *gochannel.GoChannel
	hub          *internalWS.Hub
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewProgressHandler(
	pubSub *gochannel.GoChannel,
	hub *internalWS.Hub,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	log logger.ILogger,
) *ProgressHandler {
	return &ProgressHandler{
		pubSub:       pubSub,
		hub:          hub,
		uowFactory:   uowFactory,
		emailService: emailService,
		logger:       log,
	}
}

// Start runs the bridge worker until the context is cancelled.
func (h *ProgressHandler) Start(ctx context.Context) error {
	messages, err := h.pubSub.Subscribe(ctx, constant.TopicGenerationProgress)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var progress dto.GenerationProgressMessage
			if err := json.Unmarshal(msg.Payload, &progress); err != nil {
				h.logger.Warn("ProgressHandler", "Malformed progress message", map[string]interface{}{"error": err.Error()})
				msg.Ack()
				continue
			}

			h.hub.Send(progress.UserId, "generation_progress", progress)

			if progress.Stage == constant.StageCompleted {
				h.notifyCompletion(ctx, progress)
			}

			msg.Ack()
		}
	}()

	return nil
}

// notifyCompletion sends the "questions ready" email. Best effort: a mail
// failure never disturbs the progress stream.
func (h *ProgressHandler) notifyCompletion(ctx context.Context, progress dto.GenerationProgressMessage) {
	if h.emailService == nil {
		return
	}

	uow := h.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: progress.UserId})
	if err != nil || user == nil {
		return
	}
	chunk, err := uow.ChunkRepository().FindOne(ctx, specification.ByID{ID: progress.ChunkId})
	if err != nil || chunk == nil {
		return
	}

	if err := h.emailService.SendGenerationCompleted(user.Email, chunk.Title, progress.Current); err != nil {
		h.logger.Warn("ProgressHandler", "Completion mail failed", map[string]interface{}{
			"user_id": progress.UserId,
			"error":   err.Error(),
		})
	}
}

// ServeWs authenticates the handshake from a query token or bearer header
// and upgrades the connection.
func (h *ProgressHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("ProgressHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ProgressHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("ProgressHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket endpoint.
func (h *ProgressHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}

package controller

import (
	"errors"

	"doc-chat-shell/internal/dto"
	"doc-chat-shell/internal/mapper"
	"doc-chat-shell/internal/pkg/serverutils"
	"doc-chat-shell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Transcript(ctx *fiber.Ctx) error
}

type chatController struct {
	conversation service.IConversationService
	mapper       *mapper.ConversationMapper
}

func NewChatController(conversation service.IConversationService, convMapper *mapper.ConversationMapper) IChatController {
	return &chatController{
		conversation: conversation,
		mapper:       convMapper,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.Send)
	h.Get("transcript", c.Transcript)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	transcript, err := c.conversation.Send(ctx.Context(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrSendInFlight) {
			return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", c.mapper.TranscriptToDTO(transcript)))
}

func (c *chatController) Transcript(ctx *fiber.Ctx) error {
	transcript := c.conversation.Snapshot()

	return ctx.JSON(serverutils.SuccessResponse("Success show transcript", c.mapper.TranscriptToDTO(transcript)))
}

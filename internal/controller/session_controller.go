package controller

import (
	"doc-chat-shell/internal/dto"
	"doc-chat-shell/internal/mapper"
	"doc-chat-shell/internal/pkg/serverutils"
	"doc-chat-shell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	New(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	coordinator service.ICoordinatorService
	mapper      *mapper.ConversationMapper
}

func NewSessionController(coordinator service.ICoordinatorService, convMapper *mapper.ConversationMapper) ISessionController {
	return &sessionController{
		coordinator: coordinator,
		mapper:      convMapper,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Get("", c.List)
	h.Post("", c.New)
	h.Post(":id/select", c.Select)
	h.Delete(":id", c.Delete)
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	res := dto.SessionListResponse{
		Selected: c.coordinator.SelectedSession(),
		Sessions: c.mapper.SummariesToDTO(c.coordinator.Summaries()),
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) New(ctx *fiber.Ctx) error {
	transcript := c.coordinator.NewConversation(ctx.Context())

	return ctx.JSON(serverutils.SuccessResponse("Success create conversation", c.mapper.TranscriptToDTO(transcript)))
}

func (c *sessionController) Select(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session id is required")
	}

	transcript := c.coordinator.Select(ctx.Context(), id)

	return ctx.JSON(serverutils.SuccessResponse("Success select session", c.mapper.TranscriptToDTO(transcript)))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session id is required")
	}

	// Deletion is confirmed on the UI side; the flag makes the mutating
	// request explicit so a stray DELETE cannot wipe history.
	if ctx.Query("confirm") != "true" {
		return fiber.NewError(fiber.StatusBadRequest, "deletion requires confirm=true")
	}

	if err := c.coordinator.Delete(ctx.Context(), id); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "failed to delete session")
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

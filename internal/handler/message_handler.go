package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/ourmatches-backend/internal/models"
	"github.com/sefazor/ourmatches-backend/internal/service"
	"github.com/sefazor/ourmatches-backend/pkg/utils"
)

type MessageHandler struct {
	messageService *service.MessageService
	validator      *utils.Validator
}

func NewMessageHandler(messageService *service.MessageService, validator *utils.Validator) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validator:      validator,
	}
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	username, ok := currentUsername(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	message, err := h.messageService.SendMessage(username, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(message, "Message sent"))
}

// GetMessages lists one mailbox container, paged, newest first.
func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	username, ok := currentUsername(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var params models.MessageParams
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid query parameters"))
	}

	result, err := h.messageService.GetMessagesForUser(username, params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	addPaginationHeader(c, result.Header())
	return c.JSON(result.Items)
}

// GetThread returns the conversation with another user, oldest first, and
// marks the requester's unread messages as read.
func (h *MessageHandler) GetThread(c *fiber.Ctx) error {
	username, ok := currentUsername(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	thread, err := h.messageService.GetThread(username, c.Params("username"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(thread, ""))
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/ourmatches-backend/internal/models"
	"github.com/sefazor/ourmatches-backend/internal/service"
)

type LikesHandler struct {
	likesService *service.LikesService
}

func NewLikesHandler(likesService *service.LikesService) *LikesHandler {
	return &LikesHandler{
		likesService: likesService,
	}
}

func (h *LikesHandler) AddLike(c *fiber.Ctx) error {
	username, ok := currentUsername(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.likesService.AddLike(username, c.Params("username")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(nil, "Liked"))
}

func (h *LikesHandler) GetLikes(c *fiber.Ctx) error {
	username, ok := currentUsername(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var params models.LikesParams
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid query parameters"))
	}

	result, err := h.likesService.GetLikes(username, params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	addPaginationHeader(c, result.Header())
	return c.JSON(result.Items)
}

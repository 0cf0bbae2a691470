package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/sefazor/ourmatches-backend/internal/models"
	"github.com/sefazor/ourmatches-backend/internal/service"
	"gorm.io/gorm"
)

type MemberHandler struct {
	memberService *service.MemberService
}

func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// GetMembers serves the member listing through the ORM route.
func (h *MemberHandler) GetMembers(c *fiber.Ctx) error {
	username, ok := currentUsername(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	params := models.NewUserParams()
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid query parameters"))
	}

	result, err := h.memberService.GetMembers(username, params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	addPaginationHeader(c, result.Header())
	return c.JSON(result.Items)
}

// GetMembersSQL serves the same listing through the raw-SQL route.
func (h *MemberHandler) GetMembersSQL(c *fiber.Ctx) error {
	username, ok := currentUsername(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	params := models.NewUserParams()
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid query parameters"))
	}

	result, err := h.memberService.GetMembersSQL(c.UserContext(), username, params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	addPaginationHeader(c, result.Header())
	return c.JSON(result.Items)
}

func (h *MemberHandler) GetMember(c *fiber.Ctx) error {
	member, err := h.memberService.GetMember(c.Params("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(member, ""))
}

func (h *MemberHandler) GetMemberSQL(c *fiber.Ctx) error {
	member, err := h.memberService.GetMemberSQL(c.UserContext(), c.Params("username"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(member, ""))
}

func (h *MemberHandler) UpdateProfile(c *fiber.Ctx) error {
	username, ok := currentUsername(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	member, err := h.memberService.UpdateProfile(username, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Failed to update user"))
	}

	return c.JSON(models.SuccessResponse(member, "Profile updated successfully"))
}

func (h *MemberHandler) UpdateProfileSQL(c *fiber.Ctx) error {
	username, ok := currentUsername(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.memberService.UpdateProfileSQL(c.UserContext(), username, req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Failed to update user"))
	}

	return c.JSON(models.SuccessResponse(nil, "Profile updated successfully"))
}

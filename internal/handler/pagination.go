package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/ourmatches-backend/internal/models"
)

// addPaginationHeader emits page metadata out-of-band in the Pagination
// header. The response body carries only the item array.
func addPaginationHeader(c *fiber.Ctx, header models.PaginationHeader) {
	payload, err := json.Marshal(header)
	if err != nil {
		return
	}
	c.Set("Pagination", string(payload))
	c.Set("Access-Control-Expose-Headers", "Pagination")
}

// currentUsername reads the username the auth middleware stored in locals.
func currentUsername(c *fiber.Ctx) (string, bool) {
	username, ok := c.Locals("username").(string)
	return username, ok && username != ""
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/ourmatches-backend/internal/service"
)

// ActivityMiddleware bumps the requester's last-active timestamp after every
// authenticated request. Must be registered after AuthMiddleware.
func ActivityMiddleware(memberService *service.MemberService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if userID, ok := c.Locals("userID").(uint); ok {
			// Listing sıralaması last_active'e bağlı, hata yutulur
			_ = memberService.TouchLastActive(userID)
		}

		return err
	}
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/config"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/principal"
	"gorm.io/gorm"
)

// AdminRequired checks, in order: the admin token header, the
// config-level admin email list, and the user's stored role.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		p, err := principal.FromContext(c)
		if err != nil {
			return dto.Error(c, err)
		}

		if contains(adminEmails, p.Email) || p.IsAdmin() {
			return c.Next()
		}

		// The token's role claim can go stale; re-check the row.
		var user models.User
		if err := db.First(&user, "id = ?", p.ID).Error; err == nil && user.IsAdmin() {
			return c.Next()
		}

		return dto.Error(c, apperr.Forbidden("admin access required"))
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

package Models

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FCMToken is the device push token notifications are delivered to.
// A single row (ID 1) is kept per install; registering a token is the
// app's notification permission grant.
type FCMToken struct {
	gorm.Model
	Value string `json:"value"`
}

type UpdateTokenRequest struct {
	Value string `json:"value" validate:"required"`
}

// CurrentToken returns the registered device token, or "" when the user
// has never granted notification access.
func CurrentToken(db *gorm.DB) string {
	var token FCMToken
	if err := db.Where("id = ?", 1).First(&token).Error; err != nil {
		return ""
	}
	return token.Value
}

// UpdateToken stores or replaces the device FCM token. Registering a
// token is what grants notification delivery, so the reply echoes it.
func UpdateToken(c *fiber.Ctx) error {
	var req UpdateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token value is required"})
	}

	token := FCMToken{Model: gorm.Model{ID: 1}, Value: req.Value}
	if err := DB.Save(&token).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save token"})
	}

	return c.JSON(fiber.Map{
		"message": "Token updated successfully",
		"token":   token.Value,
	})
}

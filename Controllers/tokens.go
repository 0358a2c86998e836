package Controllers

import (
	"Garrison/Firestore"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TokenController registers device push tokens against personnel user
// records.
type TokenController struct {
	Store    *Firestore.Store
	validate *validator.Validate
}

func NewTokenController(store *Firestore.Store) *TokenController {
	return &TokenController{Store: store, validate: validator.New()}
}

type UpdateTokenRequest struct {
	PersonnelID string `json:"personnelId" validate:"required"`
	Token       string `json:"token" validate:"required"`
}

// UpdateToken attaches a device token to the user record(s) of one person.
// Registration is idempotent; re-sending the same token is a no-op.
func (c *TokenController) UpdateToken(ctx *fiber.Ctx) error {
	var req UpdateTokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "personnelId and token are required",
		})
	}

	if err := c.Store.AddDeviceToken(ctx.UserContext(), req.PersonnelID, req.Token); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register token",
		})
	}

	return ctx.JSON(fiber.Map{
		"message": "Token updated successfully",
	})
}

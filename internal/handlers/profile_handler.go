package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fitpro-app/FitProBack/internal/controller"
	"github.com/fitpro-app/FitProBack/internal/services"
)

type ProfileHandler struct {
	controller *controller.ProfileController
}

func NewProfileHandler(ctrl *controller.ProfileController) *ProfileHandler {
	return &ProfileHandler{controller: ctrl}
}

type updateProfileRequest struct {
	Name     *string  `json:"name"`
	Location *string  `json:"location"`
	Bio      *string  `json:"bio"`
	Phone    *string  `json:"phone"`
	Age      *int     `json:"age"`
	Weight   *float64 `json:"weight"`
	Height   *float64 `json:"height"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	if err := h.requireActiveSession(c); err != nil {
		return err
	}

	identity := h.controller.Identity()
	profile, err := h.controller.Start(c.Context(), identity)
	if err != nil {
		if errors.Is(err, controller.ErrSaveInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Save in progress"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load profile"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	if err := h.requireActiveSession(c); err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateUpdateProfileRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.controller.Submit(c.Context(), services.ProfileUpdate{
		Name:     req.Name,
		Location: req.Location,
		Bio:      req.Bio,
		Phone:    req.Phone,
		Age:      req.Age,
		Weight:   req.Weight,
		Height:   req.Height,
	})
	if err != nil {
		switch {
		case errors.Is(err, controller.ErrSaveInProgress):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Save in progress"})
		case errors.Is(err, controller.ErrNoActiveProfile):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "No active profile"})
		default:
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to save profile"})
		}
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// requireActiveSession verifies the token belongs to the identity the
// controller is bound to. The app serves a single active session at a time.
func (h *ProfileHandler) requireActiveSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	identity := h.controller.Identity()
	if identity == nil || identity.ID != userID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No active session"})
	}
	return nil
}

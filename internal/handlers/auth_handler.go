package handlers

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fitpro-app/FitProBack/internal/controller"
	"github.com/fitpro-app/FitProBack/internal/models"
	"github.com/fitpro-app/FitProBack/internal/services"
	"github.com/fitpro-app/FitProBack/pkg/utils"
)

type sessionManager interface {
	Login(ctx context.Context, email, password string) (*models.Identity, error)
	Register(ctx context.Context, name, email, password string) (*models.Identity, error)
	Logout(ctx context.Context) error
	Current() *models.Identity
}

type AuthHandler struct {
	sessions   sessionManager
	controller *controller.ProfileController
	jwtSecret  string
}

func NewAuthHandler(sessions sessionManager, ctrl *controller.ProfileController, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		controller: ctrl,
		jwtSecret:  jwtSecret,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}
	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	req.Email = parsedEmail.Address
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Password must be at least 6 characters"})
	}

	identity, err := h.sessions.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to register"})
	}

	return h.respondWithSession(c, identity)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	identity, err := h.sessions.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to log in"})
	}

	return h.respondWithSession(c, identity)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to log out"})
	}
	h.controller.Reset()
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	identity := h.sessions.Current()
	if identity == nil || identity.ID != userID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No active session"})
	}

	return c.JSON(fiber.Map{"user": identityResponse(identity)})
}

// respondWithSession loads the profile for the new identity and returns the
// token alongside it. A profile load failure does not fail the login; the
// profile endpoint can retry it.
func (h *AuthHandler) respondWithSession(c *fiber.Ctx, identity *models.Identity) error {
	token, err := utils.GenerateToken(identity.ID, identity.Email, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	h.controller.Reset()
	if _, err := h.controller.Start(c.Context(), identity); err != nil {
		log.Printf("profile preload failed for %s: %v", identity.ID, err)
	}

	return c.JSON(fiber.Map{"token": token, "user": identityResponse(identity)})
}

func identityResponse(identity *models.Identity) fiber.Map {
	resp := fiber.Map{
		"id":    identity.ID,
		"email": identity.Email,
		"name":  identity.Name,
	}
	if identity.Avatar != nil {
		resp["avatar"] = *identity.Avatar
	}
	return resp
}

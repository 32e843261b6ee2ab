package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitpro-app/FitProBack/internal/config"
	"github.com/fitpro-app/FitProBack/internal/controller"
	"github.com/fitpro-app/FitProBack/internal/handlers"
	"github.com/fitpro-app/FitProBack/internal/middleware"
	"github.com/fitpro-app/FitProBack/internal/repository"
	"github.com/fitpro-app/FitProBack/internal/services"
	"github.com/fitpro-app/FitProBack/internal/storage"
)

// RegisterRoutes wires repositories, services and handlers and mounts the API.
// The session service and controller are returned so the caller can restore a
// persisted session at startup.
func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, kv storage.Store) (*services.SessionService, *controller.ProfileController) {
	credentialRepo := repository.NewCredentialRepository(db)

	sessionService := services.NewSessionService(credentialRepo, kv)
	profileService := services.NewProfileService(kv)
	profileController := controller.NewProfileController(profileService)

	authHandler := handlers.NewAuthHandler(sessionService, profileController, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileController)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", middleware.AuthRequired(cfg.JWTSecret), authHandler.Logout)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	v1 := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))
	v1.Get("/profile", profileHandler.GetProfile)
	v1.Put("/profile", profileHandler.UpdateProfile)

	registerDocsRoutes(app, cfg)

	return sessionService, profileController
}

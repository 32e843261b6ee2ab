package database

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/fitpro-app/FitProBack/internal/config"
	"github.com/fitpro-app/FitProBack/internal/models"
	"github.com/fitpro-app/FitProBack/internal/repository"
	"github.com/fitpro-app/FitProBack/internal/services"
)

// SeedDemoCredential inserts the demo account when it does not exist yet.
// Seeding failures are logged and not fatal.
func SeedDemoCredential(ctx context.Context, repo *repository.CredentialRepository, cfg *config.Config) {
	if cfg.DemoUserEmail == "" || cfg.DemoUserPassword == "" {
		return
	}

	_, err := repo.GetByEmail(ctx, cfg.DemoUserEmail)
	if err == nil {
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("demo credential check failed: %v", err)
		return
	}

	cred := &models.Credential{
		Name:     cfg.DemoUserName,
		Email:    cfg.DemoUserEmail,
		Password: cfg.DemoUserPassword,
		Avatar:   services.AvatarURL(cfg.DemoUserName),
	}
	if err := repo.Create(ctx, cred); err != nil {
		log.Printf("demo credential seed failed: %v", err)
		return
	}
	log.Printf("Seeded demo credential %s", cfg.DemoUserEmail)
}

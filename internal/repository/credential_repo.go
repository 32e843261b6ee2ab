package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fitpro-app/FitProBack/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CredentialRepository reads and writes the credential collection. Lookups by
// email and password are exact, case-sensitive matches against the stored
// plaintext value.
type CredentialRepository struct {
	db DBTX
}

func NewCredentialRepository(db DBTX) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Create(ctx context.Context, cred *models.Credential) error {
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	query := `
		INSERT INTO credentials (id, name, email, password, avatar)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, cred.ID, cred.Name, cred.Email, cred.Password, cred.Avatar).
		Scan(&cred.CreatedAt)
}

func (r *CredentialRepository) FindByCredentials(ctx context.Context, email, password string) (*models.Credential, error) {
	query := `
		SELECT id, name, email, password, avatar, created_at
		FROM credentials
		WHERE email = $1 AND password = $2
	`
	var cred models.Credential
	err := r.db.QueryRow(ctx, query, email, password).
		Scan(&cred.ID, &cred.Name, &cred.Email, &cred.Password, &cred.Avatar, &cred.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	query := `
		SELECT id, name, email, password, avatar, created_at
		FROM credentials
		WHERE email = $1
	`
	var cred models.Credential
	err := r.db.QueryRow(ctx, query, email).
		Scan(&cred.ID, &cred.Name, &cred.Email, &cred.Password, &cred.Avatar, &cred.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

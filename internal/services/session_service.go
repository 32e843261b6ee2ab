package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fitpro-app/FitProBack/internal/models"
	"github.com/fitpro-app/FitProBack/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
)

// sessionKey is the storage namespace holding the active session identity.
const sessionKey = "fitpro:session"

type credentialStore interface {
	FindByCredentials(ctx context.Context, email, password string) (*models.Credential, error)
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
	Create(ctx context.Context, cred *models.Credential) error
}

// SessionService authenticates against the credential collection and holds
// the single active session, persisting it so it survives restarts.
type SessionService struct {
	credentials credentialStore
	sessions    storage.Store

	mu      sync.Mutex
	current *models.Identity
}

func NewSessionService(credentials credentialStore, sessions storage.Store) *SessionService {
	return &SessionService{credentials: credentials, sessions: sessions}
}

// Login matches email and password exactly against the credential collection
// and establishes the matched identity as the active session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	cred, err := s.credentials.FindByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("unable to look up credentials: %w", err)
	}

	identity := identityFromCredential(cred)
	if err := s.establish(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Register creates a new credential record and establishes it as the active
// session. The duplicate-email pre-check races with concurrent registrations;
// the unique index on email is the backstop and is reported the same way.
func (s *SessionService) Register(ctx context.Context, name, email, password string) (*models.Identity, error) {
	existing, err := s.credentials.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("unable to check email: %w", err)
	}

	cred := &models.Credential{
		Name:     name,
		Email:    email,
		Password: password,
		Avatar:   AvatarURL(name),
	}
	if err := s.credentials.Create(ctx, cred); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("unable to create credential: %w", err)
	}

	identity := identityFromCredential(cred)
	if err := s.establish(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Logout clears the active session. It is idempotent.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.sessions.Delete(ctx, sessionKey); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("unable to clear session: %w", err)
	}
	return nil
}

// Current returns the active identity, or nil when signed out.
func (s *SessionService) Current() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Restore loads a previously persisted session at startup. A corrupt stored
// value is cleared and treated as signed out rather than surfaced.
func (s *SessionService) Restore(ctx context.Context) (*models.Identity, error) {
	raw, err := s.sessions.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to read session: %w", err)
	}

	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil || identity.ID == "" {
		_ = s.sessions.Delete(ctx, sessionKey)
		return nil, nil
	}

	s.mu.Lock()
	s.current = &identity
	s.mu.Unlock()
	return &identity, nil
}

func (s *SessionService) establish(ctx context.Context, identity *models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("unable to encode session: %w", err)
	}
	if err := s.sessions.Set(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("unable to persist session: %w", err)
	}

	s.mu.Lock()
	s.current = identity
	s.mu.Unlock()
	return nil
}

func identityFromCredential(cred *models.Credential) *models.Identity {
	identity := &models.Identity{
		ID:    cred.ID,
		Email: cred.Email,
		Name:  cred.Name,
	}
	if cred.Avatar != "" {
		avatar := cred.Avatar
		identity.Avatar = &avatar
	}
	return identity
}

// AvatarURL builds the external avatar-image URL for a display name. The
// result is an opaque string; the service is never called from here.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

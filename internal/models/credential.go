package models

import "time"

// Credential is a record in the credential collection. Passwords are stored
// and compared in plaintext to preserve the original mock-auth behavior; this
// is a documented security gap, not a supported production setup.
type Credential struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the public projection of a credential that represents the
// signed-in user. It is what gets persisted as the active session.
type Identity struct {
	ID     string  `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}

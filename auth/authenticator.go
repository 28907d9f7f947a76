package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any username/password pair that
// does not authenticate. Callers must not distinguish unknown users
// from wrong passwords.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Authenticator validates a credential pair and returns session claims.
// The demo deployment uses Fixed; a real credential store slots in here
// without touching the pipeline.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Claims, error)
}

// Fixed authenticates exactly one identity against a bcrypt hash.
type Fixed struct {
	Username     string
	PasswordHash []byte
}

// NewFixed builds a single-identity authenticator, hashing the given
// plaintext password at construction time.
func NewFixed(username, password string) (*Fixed, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Fixed{Username: username, PasswordHash: hash}, nil
}

// Authenticate checks the pair against the fixed identity. Usernames
// are compared after trimming outer whitespace; passwords are not
// trimmed.
func (f *Fixed) Authenticate(_ context.Context, username, password string) (*Claims, error) {
	username = strings.TrimSpace(username)
	if username != f.Username {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(f.PasswordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &Claims{Username: username}, nil
}

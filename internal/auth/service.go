package auth

import (
	"errors"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

var (
	// ErrNotFound means no identity exists for the presented email.
	ErrNotFound = errors.New("no account for that email")
	// ErrNoPasswordSet means the identity was provisioned without a
	// password (e.g. seeded externally) and cannot log in with one.
	ErrNoPasswordSet = errors.New("account has no password set")
	// ErrInvalidCredentials means the password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialSource looks up an identity and its stored password hash by
// exact email match. The hash is nil when no password is set.
type CredentialSource interface {
	GetCredentials(email string) (*model.User, *string, error)
}

// Service validates credential pairs and issues signed session tokens.
type Service struct {
	users  CredentialSource
	secret []byte
	ttl    time.Duration
}

func NewService(users CredentialSource, secret []byte, ttl time.Duration) *Service {
	return &Service{users: users, secret: secret, ttl: ttl}
}

// Authenticate checks email+password and returns the identity projection.
// The plaintext and the stored hash are never returned or logged.
func (s *Service) Authenticate(email, password string) (*model.User, error) {
	user, hash, err := s.users.GetCredentials(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if hash == nil || *hash == "" {
		return nil, ErrNoPasswordSet
	}
	if !CheckPassword(*hash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession returns a signed stateless token for the identity.
func (s *Service) IssueSession(user *model.User) (string, error) {
	return IssueToken(user.ID, s.secret, s.ttl)
}

// VerifySession returns the user id embedded in a valid token.
func (s *Service) VerifySession(token string) (int64, error) {
	return VerifyToken(token, s.secret)
}

// TTL returns the configured session lifetime, used for cookie expiry.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository"
	postgresrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/postgres"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserDisabled       = errors.New("user account is disabled")
)

// Service handles login. Token verification lives on Manager so the HTTP
// middleware does not need the database.
type Service struct {
	store  *postgresrepo.Store
	tokens *Manager
}

func NewService(store *postgresrepo.Store, tokens *Manager) *Service {
	return &Service{store: store, tokens: tokens}
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expira_en"`
	User      domain.User `json:"usuario"`
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords return the same sentinel.
//
// Returns:
//   - error: auth.ErrInvalidCredentials on unknown user or bad password.
//   - error: auth.ErrUserDisabled when the account is deactivated.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	const op = "auth.Service.Login"

	u, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if !CheckPassword(u.PasswordHash, password) {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
	}

	if !u.Active {
		return nil, fmt.Errorf("%s:%w", op, ErrUserDisabled)
	}

	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	u.PasswordHash = ""

	return &LoginResult{Token: token, ExpiresAt: exp, User: *u}, nil
}

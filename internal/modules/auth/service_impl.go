package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Kumarvenka/ship-app/internal/apperror"
	"github.com/Kumarvenka/ship-app/internal/modules/user"
)

type service struct {
	users    user.Service
	userRepo user.Repository
	tokens   *TokenIssuer
	logger   *slog.Logger
}

// NewService creates a new auth service.
func NewService(users user.Service, userRepo user.Repository, tokens *TokenIssuer, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{users: users, userRepo: userRepo, tokens: tokens, logger: logger}
}

func (s *service) Register(ctx context.Context, in user.RegisterInput) (*user.User, error) {
	u, err := s.users.RegisterUser(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "principal registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, apperror.Internal(err, "login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrAuthentication("invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(u)
	if err != nil {
		return nil, apperror.ErrInternal(err, "login failed")
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func (s *service) ResolvePrincipal(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, apperror.ErrAuthentication("not authorized, token missing")
	}
	id, role, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.DebugContext(ctx, "credential rejected", "error", err)
		return nil, apperror.ErrAuthentication("not authorized, token failed")
	}

	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		var nf *apperror.NotFoundError
		if errors.As(err, &nf) {
			return nil, apperror.ErrAuthentication("not authorized, token failed")
		}
		return nil, apperror.Internal(err, "failed to resolve principal")
	}
	if u.Role != role {
		return nil, apperror.ErrAuthentication("not authorized, token failed")
	}
	return u, nil
}

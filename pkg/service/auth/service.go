// Package auth issues and inspects JWT access tokens and owns password
// hashing. It is the AuthProvider the rest of the system depends on.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Service struct {
	uow    repository.UnitOfWork
	cfg    config.JwtConfig
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, cfg config.JwtConfig, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login authenticates by email or phone plus password. Unconfirmed users are
// rejected even with valid credentials.
func (s *Service) Login(ctx context.Context, identity, password string) (*domain.User, error) {
	u, err := s.uow.Users().GetByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPasswordHash(password, u.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !u.Confirmed() {
		return nil, domain.ErrUnconfirmedUser
	}
	s.logger.Info("login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken issues an HS256 token carrying the user id and email.
func (s *Service) GenerateToken(u *domain.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["email"] = u.Email
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUserID extracts the user id from a validated token.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("unexpected token claims")
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("token missing user_id claim")
	}
	return uuid.Parse(raw)
}

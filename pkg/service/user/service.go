// Package user implements registration, confirmation and profile updates.
// Confirmation codes are delivered through the injected Notifier; the
// transport behind it is not this package's concern.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/provider"
	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
	"github.com/ShantamRU/extraordinary-bank/pkg/service/auth"
	"github.com/google/uuid"
)

const (
	codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeDigits   = "0123456789"
	codeLength   = 6
)

type Service struct {
	uow      repository.UnitOfWork
	notifier provider.Notifier
	logger   *slog.Logger
}

func New(uow repository.UnitOfWork, notifier provider.Notifier, logger *slog.Logger) *Service {
	return &Service{uow: uow, notifier: notifier, logger: logger}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	FirstName  string
	LastName   string
	MiddleName string
	Email      string
	Phone      string
	Password   string
}

// Register creates an unconfirmed user and sends the confirmation code to
// their email address.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := s.checkIdentityFree(ctx, in.Email, in.Phone); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	code := randomCode(codeLength, codeAlphabet)
	u := &domain.User{
		ID:               uuid.New(),
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		MiddleName:       in.MiddleName,
		Email:            in.Email,
		Phone:            in.Phone,
		Password:         hash,
		ConfirmationCode: &code,
	}
	if err := s.uow.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.notifier.Send(ctx, u.Email, "Email confirmation",
		fmt.Sprintf("Please confirm your email using this code: %s", code)); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "userID", u.ID)
	return u, nil
}

// ConfirmEmail clears the confirmation code matching `code` and returns the
// confirmed user's id.
func (s *Service) ConfirmEmail(ctx context.Context, code string) (uuid.UUID, error) {
	return s.uow.Users().ConfirmByCode(ctx, code)
}

// Get returns the user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.uow.Users().Get(ctx, id)
}

// UpdatePassword replaces the password after verifying the old one.
func (s *Service) UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	u, err := s.uow.Users().Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPasswordHash(oldPassword, u.Password) {
		return domain.ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.uow.Users().UpdatePassword(ctx, id, hash)
}

// UpdateNames replaces the user's display name fields.
func (s *Service) UpdateNames(ctx context.Context, id uuid.UUID, first, last, middle string) error {
	return s.uow.Users().UpdateNames(ctx, id, first, last, middle)
}

// RequestEmailChange stores a pending email change and sends its
// confirmation code to the user's current address.
func (s *Service) RequestEmailChange(ctx context.Context, id uuid.UUID, email string) error {
	return s.requestUpdate(ctx, id, map[string]string{"email": email}, "Email changing",
		"Please confirm your email changing using this code: %s")
}

// RequestPhoneChange stores a pending phone change. The code still goes to
// the email address; there is no SMS channel.
func (s *Service) RequestPhoneChange(ctx context.Context, id uuid.UUID, phone string) error {
	return s.requestUpdate(ctx, id, map[string]string{"phone": phone}, "Phone changing",
		"Please confirm your phone changing using this code: %s")
}

// ConfirmUpdate consumes the pending request matching (user, code) and
// applies its changes to the user row.
func (s *Service) ConfirmUpdate(ctx context.Context, id uuid.UUID, code string) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		conditions, err := uow.UpdateRequests().Take(ctx, id, code)
		if err != nil {
			return err
		}
		return uow.Users().ApplyUpdate(ctx, id, conditions)
	})
}

func (s *Service) requestUpdate(
	ctx context.Context,
	id uuid.UUID,
	conditions map[string]string,
	subject, bodyFormat string,
) error {
	u, err := s.uow.Users().Get(ctx, id)
	if err != nil {
		return err
	}
	req := &domain.UpdateRequest{
		ID:               uuid.New(),
		UserID:           id,
		Conditions:       conditions,
		ConfirmationCode: randomCode(codeLength, codeDigits),
	}
	if err := s.uow.UpdateRequests().Create(ctx, req); err != nil {
		return err
	}
	return s.notifier.Send(ctx, u.Email, subject, fmt.Sprintf(bodyFormat, req.ConfirmationCode))
}

func (s *Service) checkIdentityFree(ctx context.Context, email, phone string) error {
	if _, err := s.uow.Users().GetByEmail(ctx, email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if _, err := s.uow.Users().GetByPhone(ctx, phone); err == nil {
		return domain.ErrPhoneTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

func randomCode(n int, alphabet string) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

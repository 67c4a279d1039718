package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/events"
	"github.com/spec-kit/auth-service/internal/repository"
)

// AuthService coordinates signup and login flows. Token verification does not
// live here: once issued, a token is checked statelessly by the role guard.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	throttle   *LoginThrottle
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Users      repository.UserRepository
	Tokens     *auth.TokenManager
	Throttle   *LoginThrottle
	Dispatcher events.Dispatcher
	BcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.Users,
		tokens:     deps.Tokens,
		throttle:   deps.Throttle,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// Signup creates a new account. The stored role string is parsed into the
// closed role set before anything is persisted; unknown roles are rejected.
func (s *AuthService) Signup(ctx context.Context, email, password, roleStr string) (*domain.User, error) {
	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRole, err)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, email)
	return user, nil
}

// Login authenticates an account and issues a signed token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	if err := s.throttle.Allow(ctx, email); err != nil {
		return "", time.Time{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(ctx, email)
			return "", time.Time{}, ErrWrongCredentials
		}
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email)
		return "", time.Time{}, ErrWrongCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", time.Time{}, err
	}

	s.throttle.Reset(ctx, email)
	s.publish(ctx, events.EventLoginSucceeded, user.ID, email)
	return token, expiresAt, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	s.throttle.RecordFailure(ctx, email)
	s.publish(ctx, events.EventLoginFailed, "", email)
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subject, email string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Email:     email,
		Timestamp: time.Now(),
	})
}

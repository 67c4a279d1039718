package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/events"
	"github.com/spec-kit/auth-service/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newTestService(repo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return NewAuthService(AuthDependencies{
		Users:      repo,
		Tokens:     tokens,
		Dispatcher: events.NewInMemoryDispatcher(),
		BcryptCost: bcrypt.MinCost,
	})
}

func TestSignupAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := auth.NewTokenManager("secret")
	svc := newTestService(repo, tokens)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "alice@example.com", "hunter2", "User")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated user id")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("role = %q, want User", user.Role)
	}
	if user.PasswordHash == "hunter2" {
		t.Fatal("password stored in plaintext")
	}

	token, _, err := svc.Login(ctx, "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("subject = %q, want %q", claims.Subject, user.ID)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("role = %q, want User", claims.Role)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, auth.NewTokenManager("secret"))
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "bob@example.com", "pw", "User"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.Signup(ctx, "bob@example.com", "pw2", "Admin"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("got %v, want ErrUserAlreadyExists", err)
	}
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, auth.NewTokenManager("secret"))

	for _, role := range []string{"", "user", "Root", "Superadmin"} {
		if _, err := svc.Signup(context.Background(), "c@example.com", "pw", role); !errors.Is(err, ErrInvalidRole) {
			t.Errorf("Signup role %q: got %v, want ErrInvalidRole", role, err)
		}
	}
	if len(repo.byEmail) != 0 {
		t.Fatal("no user may be persisted with an unknown role")
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, auth.NewTokenManager("secret"))
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "dana@example.com", "pw", "Admin"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, err := svc.Login(ctx, "dana@example.com", "wrong"); !errors.Is(err, ErrWrongCredentials) {
		t.Fatalf("wrong password: got %v, want ErrWrongCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "pw"); !errors.Is(err, ErrWrongCredentials) {
		t.Fatalf("unknown email: got %v, want ErrWrongCredentials", err)
	}
}

func TestLoginPublishesEvents(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := auth.NewTokenManager("secret")
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewAuthService(AuthDependencies{
		Users:      repo,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		BcryptCost: bcrypt.MinCost,
	})
	ctx := context.Background()

	var seen []events.EventType
	record := func(_ context.Context, event events.Event) error {
		seen = append(seen, event.Type)
		return nil
	}
	dispatcher.Subscribe(events.EventUserRegistered, record)
	dispatcher.Subscribe(events.EventLoginSucceeded, record)
	dispatcher.Subscribe(events.EventLoginFailed, record)

	if _, err := svc.Signup(ctx, "eve@example.com", "pw", "User"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, _, err := svc.Login(ctx, "eve@example.com", "bad"); !errors.Is(err, ErrWrongCredentials) {
		t.Fatalf("login: %v", err)
	}
	if _, _, err := svc.Login(ctx, "eve@example.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	want := []events.EventType{events.EventUserRegistered, events.EventLoginFailed, events.EventLoginSucceeded}
	if len(seen) != len(want) {
		t.Fatalf("events = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("events = %v, want %v", seen, want)
		}
	}
}

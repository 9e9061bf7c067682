package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mmynk/bithub/internal/models"
)

// memoryUsers is an in-memory UserStorage for tests.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[email], nil
}

func (m *memoryUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func TestPasswordAuthenticator_Register(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemoryUsers())

	user, err := a.Register(ctx, "amy@example.com", "", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.DisplayName != "amy" {
		t.Errorf("display name: expected email local part 'amy', got %q", user.DisplayName)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct horse" {
		t.Error("expected password to be hashed")
	}

	named, err := a.Register(ctx, "bo@example.com", "  Bo  ", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if named.DisplayName != "Bo" {
		t.Errorf("display name: expected 'Bo', got %q", named.DisplayName)
	}
}

func TestPasswordAuthenticator_RegisterErrors(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemoryUsers())
	if _, err := a.Register(ctx, "amy@example.com", "Amy", "correct horse"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"weak password", "new@example.com", "short", ErrWeakPassword},
		{"duplicate email", "amy@example.com", "correct horse", ErrEmailExists},
		{"duplicate email in other case", " AMY@Example.com", "correct horse", ErrEmailExists},
		{"blank email", "   ", "correct horse", ErrInvalidEmail},
		{"no domain", "amy@", "correct horse", ErrInvalidEmail},
		{"no at sign", "amy.example.com", "correct horse", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.email, "", tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPasswordAuthenticator_Authenticate(t *testing.T) {
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemoryUsers())
	registered, err := a.Register(ctx, "amy@example.com", "Amy", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := a.Authenticate(ctx, "amy@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected %s, got %s", registered.ID, user.ID)
	}

	if _, err := a.Authenticate(ctx, " Amy@Example.COM", "correct horse"); err != nil {
		t.Errorf("email case should not matter, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "amy@example.com", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "u1", Email: "amy@example.com"}

	token, err := m.Generate(user, true)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "amy@example.com" || !claims.IsAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "u1", Email: "amy@example.com"}

	otherKey, err := NewJWTManager("other-secret", time.Hour).Generate(user, false)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	expired, err := NewJWTManager("test-secret", -time.Minute).Generate(user, false)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for name, token := range map[string]string{
		"wrong key": otherKey,
		"expired":   expired,
		"garbage":   "not.a.token",
		"tampered":  strings.Replace(otherKey, ".", ".x", 1),
	} {
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestAdminList(t *testing.T) {
	l := NewAdminList([]string{" Root@Example.com ", "", "ops@example.com"})

	tests := []struct {
		email string
		want  bool
	}{
		{"root@example.com", true},
		{"ROOT@EXAMPLE.COM", true},
		{"ops@example.com", true},
		{"amy@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := l.IsAdmin(tt.email); got != tt.want {
			t.Errorf("IsAdmin(%q): expected %v, got %v", tt.email, tt.want, got)
		}
	}
}

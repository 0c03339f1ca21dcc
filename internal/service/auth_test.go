package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/house-rentals/internal/domain"
	"github.com/msomdec/house-rentals/internal/repository/sqlite"
	"github.com/msomdec/house-rentals/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	return service.NewAuthService(db.Users(), testJWTSecret, 4), db
}

func signup(email string) service.SignupInput {
	return service.SignupInput{
		FullName: "Test User",
		Phone:    "+919876543210",
		Email:    email,
		Password: "password123",
	}
}

func registerUser(t *testing.T, auth *service.AuthService, email string) *domain.User {
	t.Helper()
	user, err := auth.Register(context.Background(), signup(email))
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return user
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)

	user, err := auth.Register(context.Background(), signup("new@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password stored in clear text")
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)

	user, err := auth.Register(context.Background(), signup("  Mixed@Example.COM "))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "mixed@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	registerUser(t, auth, "dup@example.com")

	_, err := auth.Register(context.Background(), signup("dup@example.com"))
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_InvalidForm(t *testing.T) {
	auth, _ := newTestAuthService(t)

	tests := []struct {
		name   string
		mutate func(*service.SignupInput)
		want   string
	}{
		{"blank name", func(in *service.SignupInput) { in.FullName = "  " }, service.MsgFullNameRequired},
		{"bad phone", func(in *service.SignupInput) { in.Phone = "12-34" }, service.MsgInvalidPhone},
		{"bad email", func(in *service.SignupInput) { in.Email = "nobody" }, service.MsgInvalidEmail},
		{"short password", func(in *service.SignupInput) { in.Password = "12345" }, service.MsgShortPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := signup("form@example.com")
			tc.mutate(&in)

			_, err := auth.Register(context.Background(), in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var verr *service.ValidationError
			if !errors.As(err, &verr) || verr.Message != tc.want {
				t.Fatalf("expected message %q, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	registerUser(t, auth, "login@example.com")

	token, err := auth.Login(context.Background(), "LOGIN@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	registerUser(t, auth, "wrongpw@example.com")

	_, err := auth.Login(context.Background(), "wrongpw@example.com", "wrongpassword")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_MalformedInput(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), "not-an-email", "password123")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_JWT_GenerateAndValidate(t *testing.T) {
	auth, _ := newTestAuthService(t)
	user := registerUser(t, auth, "jwt@example.com")

	token, err := auth.Login(context.Background(), "jwt@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user ID %d, got %d", user.ID, userID)
	}

	current, err := auth.CurrentUser(context.Background(), token)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current.Email != "jwt@example.com" {
		t.Fatalf("expected jwt@example.com, got %q", current.Email)
	}
}

func TestAuthService_JWT_InvalidToken(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.ValidateToken("not-a-valid-jwt")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_JWT_TamperedToken(t *testing.T) {
	auth, _ := newTestAuthService(t)
	registerUser(t, auth, "tamper@example.com")

	token, err := auth.Login(context.Background(), "tamper@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Flip several characters in the signature.
	tampered := token[:len(token)-5] + "XXXXX"
	if _, err := auth.ValidateToken(tampered); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestAuthService_JWT_Expired(t *testing.T) {
	auth, _ := newTestAuthService(t)

	claims := jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestAuthService_JWT_WrongSecret(t *testing.T) {
	auth1, db := newTestAuthService(t)
	registerUser(t, auth1, "secret@example.com")

	token, err := auth1.Login(context.Background(), "secret@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	auth2 := service.NewAuthService(db.Users(), "different-secret", 4)
	if _, err := auth2.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestAuthService_CurrentUser_DeletedAccount(t *testing.T) {
	auth, _ := newTestAuthService(t)

	claims := jwt.MapClaims{"sub": "4242", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.CurrentUser(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
}

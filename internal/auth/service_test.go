package auth

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/storage"
)

func setupService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "auth-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return NewService(repo, ttl, nil)
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := setupService(t, time.Hour)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "Asha", "Asha@Example.com", "correct horse")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	token, signedIn, err := svc.SignIn(ctx, "asha@example.com", "correct horse")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if token == "" || signedIn.ID != user.ID {
		t.Fatalf("unexpected sign in result: token=%q user=%#v", token, signedIn)
	}

	userID, err := svc.Validate(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, userID)
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc := setupService(t, time.Hour)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "Asha", "asha@example.com", "correct horse"); err != nil {
		t.Fatalf("first sign up: %v", err)
	}
	if _, err := svc.SignUp(ctx, "Other", "asha@example.com", "battery staple"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestSignUpRejectsWeakPassword(t *testing.T) {
	svc := setupService(t, time.Hour)
	if _, err := svc.SignUp(context.Background(), "Asha", "asha@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got: %v", err)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc := setupService(t, time.Hour)
	ctx := context.Background()
	if _, err := svc.SignUp(ctx, "Asha", "asha@example.com", "correct horse"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if _, _, err := svc.SignIn(ctx, "asha@example.com", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if _, _, err := svc.SignIn(ctx, "nobody@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got: %v", err)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := setupService(t, time.Hour)
	ctx := context.Background()
	if _, err := svc.SignUp(ctx, "Asha", "asha@example.com", "correct horse"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	token, _, err := svc.SignIn(ctx, "asha@example.com", "correct horse")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Validate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got: %v", err)
	}
	// The expired session was removed, so validation keeps failing even
	// with the clock rolled back.
	svc.now = time.Now
	if _, err := svc.Validate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after removal, got: %v", err)
	}
}

func TestSignOutRevokesToken(t *testing.T) {
	svc := setupService(t, time.Hour)
	ctx := context.Background()
	if _, err := svc.SignUp(ctx, "Asha", "asha@example.com", "correct horse"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	token, _, err := svc.SignIn(ctx, "asha@example.com", "correct horse")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if err := svc.SignOut(ctx, token); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, err := svc.Validate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after sign out, got: %v", err)
	}
	// Revoking again is not an error.
	if err := svc.SignOut(ctx, token); err != nil {
		t.Fatalf("second sign out: %v", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := hashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !verifyPassword(hash, "correct horse") {
		t.Fatal("expected password to verify")
	}
	if verifyPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
	if verifyPassword("garbage", "correct horse") {
		t.Fatal("expected malformed hash to fail")
	}
}

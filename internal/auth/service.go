package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

var (
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrInvalidToken       = errors.New("auth: invalid or expired token")
	ErrWeakPassword       = errors.New("auth: password must be at least 8 characters")
)

const DefaultSessionTTL = 72 * time.Hour

// Service issues and validates opaque bearer tokens backed by the
// sessions table. The reminder subsystem never sees it; the UI holds
// the token for the signed-in user.
type Service struct {
	repo   storage.Repository
	logger *log.Logger
	ttl    time.Duration
	now    func() time.Time
}

func NewService(repo storage.Repository, ttl time.Duration, logger *log.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{repo: repo, logger: logger, ttl: ttl, now: time.Now}
}

func (s *Service) SignUp(ctx context.Context, name, email, password string) (model.User, error) {
	if len(password) < 8 {
		return model.User{}, ErrWeakPassword
	}
	hash, err := hashPassword(password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := model.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return model.User{}, err
	}
	err = s.repo.CreateUser(ctx, storage.User{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return model.User{}, ErrEmailTaken
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// SignIn verifies the credentials and issues a bearer token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, model.User, error) {
	rec, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, storage.ErrNotFound) {
		return "", model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", model.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !verifyPassword(rec.PasswordHash, password) {
		return "", model.User{}, ErrInvalidCredentials
	}

	token := uuid.NewString()
	now := s.now().UTC()
	err = s.repo.CreateSession(ctx, storage.Session{
		Token:     token,
		UserID:    rec.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		return "", model.User{}, fmt.Errorf("create session: %w", err)
	}
	user := model.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}
	s.logger.Info("user signed in", "user_id", rec.ID)
	return token, user, nil
}

// Validate resolves a bearer token to a user id. Expired sessions are
// removed on sight.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	session, err := s.repo.GetSession(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	if !session.ExpiresAt.After(s.now().UTC()) {
		if err := s.repo.DeleteSession(ctx, token); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("delete expired session failed", "err", err)
		}
		return "", ErrInvalidToken
	}
	return session.UserID, nil
}

// SignOut revokes the token. Unknown tokens are not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	err := s.repo.DeleteSession(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

// PruneSessions removes expired sessions in bulk.
func (s *Service) PruneSessions(ctx context.Context) {
	removed, err := s.repo.DeleteExpiredSessions(ctx)
	if err != nil {
		s.logger.Warn("prune sessions failed", "err", err)
		return
	}
	if removed > 0 {
		s.logger.Debug("pruned expired sessions", "count", removed)
	}
}

// hashPassword produces "saltHex:digestHex" with a per-user random
// salt. No password-hashing library ships with the project; the format
// keeps the column self-describing so a stronger scheme can replace it.
func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	digest := sha256.Sum256(append(salt, []byte(password)...))
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(digest[:]), nil
}

func verifyPassword(stored, password string) bool {
	saltHex, digestHex, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}
	got := sha256.Sum256(append(salt, []byte(password)...))
	return subtle.ConstantTimeCompare(got[:], want) == 1
}

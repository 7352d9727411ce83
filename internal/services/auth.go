package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"strings"

	"github.com/sbilibin2017/kmlog/internal/logger"
	"github.com/sbilibin2017/kmlog/internal/storage"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = errors.New("username must not be empty")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	// ErrNotPersisted is returned next to a successful result when the change
	// is live but the database file could not be written.
	ErrNotPersisted = storage.ErrPersistence
)

// UserStore defines credential operations of the database.
type UserStore interface {
	RegisterUser(username, password string) (bool, error)
	Authenticate(username, password string) bool
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, username string) (string, error)
}

// LoginAttempts counts failed logins per username.
type LoginAttempts interface {
	Count(ctx context.Context, username string) (int64, error)
	Increment(ctx context.Context, username string) (int64, error)
	Reset(ctx context.Context, username string) error
}

// AuthService handles registration and login.
type AuthService struct {
	store       UserStore
	jwt         JWTGenerator
	attempts    LoginAttempts
	maxAttempts int64
}

// NewAuthService creates a new AuthService instance.
// A nil attempts counter disables the login lockout.
func NewAuthService(store UserStore, jwt JWTGenerator, attempts LoginAttempts, maxAttempts int) *AuthService {
	return &AuthService{
		store:       store,
		jwt:         jwt,
		attempts:    attempts,
		maxAttempts: int64(maxAttempts),
	}
}

// Register registers a new user.
func (svc *AuthService) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrInvalidUsername
	}

	created, err := svc.store.RegisterUser(username, password)
	if !created {
		if err != nil {
			logger.Log.Errorw("failed to register user", "username", username, "err", err)
			return err
		}
		logger.Log.Infow("user already exists", "username", username)
		return ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Warnw("user registered but not persisted", "username", username, "err", err)
		return err
	}

	logger.Log.Infow("user registered", "username", username)
	return nil
}

// Login authenticates a user and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if err := svc.checkCredentials(ctx, username, password); err != nil {
		return "", err
	}

	token, err := svc.jwt.Generate(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// Authenticate checks a username and password without issuing a token.
// It shares the login lockout, so a locked out user is refused even with
// the right password.
func (svc *AuthService) Authenticate(ctx context.Context, username, password string) bool {
	return svc.checkCredentials(ctx, username, password) == nil
}

// checkCredentials verifies a password under the lockout and keeps the
// failure counter current.
func (svc *AuthService) checkCredentials(ctx context.Context, username, password string) error {
	count, locked := svc.lockedOut(ctx, username)
	if locked {
		logger.Log.Warnw("login refused, too many attempts", "username", username)
		return ErrTooManyAttempts
	}

	if !svc.store.Authenticate(username, password) {
		svc.recordFailure(ctx, username)
		logger.Log.Infow("invalid credentials", "username", username)
		return ErrInvalidCredentials
	}

	// count is -1 when the counter could not be read
	if svc.attempts != nil && count != 0 {
		if err := svc.attempts.Reset(ctx, username); err != nil {
			logger.Log.Errorw("failed to reset login attempts", "username", username, "err", err)
		}
	}
	return nil
}

// lockedOut fails open: an unreachable counter never blocks a login.
// It returns the current failure count, or -1 when the count is unknown.
func (svc *AuthService) lockedOut(ctx context.Context, username string) (int64, bool) {
	if svc.attempts == nil {
		return 0, false
	}
	count, err := svc.attempts.Count(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to read login attempts", "username", username, "err", err)
		return -1, false
	}
	return count, svc.maxAttempts > 0 && count >= svc.maxAttempts
}

func (svc *AuthService) recordFailure(ctx context.Context, username string) {
	if svc.attempts == nil {
		return
	}
	if _, err := svc.attempts.Increment(ctx, username); err != nil {
		logger.Log.Errorw("failed to record login attempt", "username", username, "err", err)
	}
}

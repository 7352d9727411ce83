package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/kmlog/internal/services"
	"github.com/sbilibin2017/kmlog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	persistErr := &storage.PersistError{Path: "db.json", Err: errors.New("disk full")}

	tests := []struct {
		name      string
		username  string
		created   bool
		storeErr  error
		callStore bool
		wantErr   error
	}{
		{
			name:      "successful registration",
			username:  "alice",
			created:   true,
			callStore: true,
		},
		{
			name:      "user already exists",
			username:  "bob",
			created:   false,
			callStore: true,
			wantErr:   services.ErrUserAlreadyExists,
		},
		{
			name:      "registered but not persisted",
			username:  "carol",
			created:   true,
			storeErr:  persistErr,
			callStore: true,
			wantErr:   services.ErrNotPersisted,
		},
		{
			name:      "credential error",
			username:  "dan",
			created:   false,
			storeErr:  errors.New("entropy exhausted"),
			callStore: true,
			wantErr:   errors.New("entropy exhausted"),
		},
		{
			name:     "empty username",
			username: "  ",
			wantErr:  services.ErrInvalidUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := services.NewMockUserStore(ctrl)
			svc := services.NewAuthService(store, services.NewMockJWTGenerator(ctrl), nil, 0)

			if tt.callStore {
				store.EXPECT().
					RegisterUser(tt.username, "pass123").
					Return(tt.created, tt.storeErr)
			}

			err := svc.Register(context.Background(), tt.username, "pass123")
			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(tt.wantErr, services.ErrNotPersisted),
				errors.Is(tt.wantErr, services.ErrUserAlreadyExists),
				errors.Is(tt.wantErr, services.ErrInvalidUsername):
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		password  string
		authOK    bool
		jwtToken  string
		jwtErr    error
		wantToken string
		wantErr   error
	}{
		{
			name:      "successful login",
			password:  "secret",
			authOK:    true,
			jwtToken:  "token123",
			wantToken: "token123",
		},
		{
			name:     "invalid credentials",
			password: "wrong",
			authOK:   false,
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:     "JWT generation error",
			password: "secret",
			authOK:   true,
			jwtErr:   errors.New("jwt error"),
			wantErr:  errors.New("jwt error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := services.NewMockUserStore(ctrl)
			jwt := services.NewMockJWTGenerator(ctrl)
			svc := services.NewAuthService(store, jwt, nil, 5)

			store.EXPECT().Authenticate("alice", tt.password).Return(tt.authOK)
			if tt.authOK {
				jwt.EXPECT().Generate(gomock.Any(), "alice").Return(tt.jwtToken, tt.jwtErr)
			}

			token, err := svc.Login(context.Background(), "alice", tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}

func TestAuthService_LoginLockout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	t.Run("locked out user is refused before checking password", func(t *testing.T) {
		store := services.NewMockUserStore(ctrl)
		attempts := services.NewMockLoginAttempts(ctrl)
		svc := services.NewAuthService(store, services.NewMockJWTGenerator(ctrl), attempts, 3)

		attempts.EXPECT().Count(gomock.Any(), "alice").Return(int64(3), nil)

		token, err := svc.Login(ctx, "alice", "secret")
		assert.ErrorIs(t, err, services.ErrTooManyAttempts)
		assert.Empty(t, token)
	})

	t.Run("failed login is counted", func(t *testing.T) {
		store := services.NewMockUserStore(ctrl)
		attempts := services.NewMockLoginAttempts(ctrl)
		svc := services.NewAuthService(store, services.NewMockJWTGenerator(ctrl), attempts, 3)

		attempts.EXPECT().Count(gomock.Any(), "alice").Return(int64(1), nil)
		store.EXPECT().Authenticate("alice", "wrong").Return(false)
		attempts.EXPECT().Increment(gomock.Any(), "alice").Return(int64(2), nil)

		_, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("successful login resets counter", func(t *testing.T) {
		store := services.NewMockUserStore(ctrl)
		attempts := services.NewMockLoginAttempts(ctrl)
		jwt := services.NewMockJWTGenerator(ctrl)
		svc := services.NewAuthService(store, jwt, attempts, 3)

		attempts.EXPECT().Count(gomock.Any(), "alice").Return(int64(2), nil)
		store.EXPECT().Authenticate("alice", "secret").Return(true)
		attempts.EXPECT().Reset(gomock.Any(), "alice").Return(nil)
		jwt.EXPECT().Generate(gomock.Any(), "alice").Return("tok", nil)

		token, err := svc.Login(ctx, "alice", "secret")
		assert.NoError(t, err)
		assert.Equal(t, "tok", token)
	})

	t.Run("counter outage does not block login", func(t *testing.T) {
		store := services.NewMockUserStore(ctrl)
		attempts := services.NewMockLoginAttempts(ctrl)
		jwt := services.NewMockJWTGenerator(ctrl)
		svc := services.NewAuthService(store, jwt, attempts, 3)

		attempts.EXPECT().Count(gomock.Any(), "alice").Return(int64(0), errors.New("redis down"))
		store.EXPECT().Authenticate("alice", "secret").Return(true)
		attempts.EXPECT().Reset(gomock.Any(), "alice").Return(errors.New("redis down"))
		jwt.EXPECT().Generate(gomock.Any(), "alice").Return("tok", nil)

		token, err := svc.Login(ctx, "alice", "secret")
		assert.NoError(t, err)
		assert.Equal(t, "tok", token)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := services.NewMockUserStore(ctrl)
	svc := services.NewAuthService(store, nil, nil, 0)

	store.EXPECT().Authenticate("alice", "secret").Return(true)
	store.EXPECT().Authenticate("alice", "nope").Return(false)

	assert.True(t, svc.Authenticate(context.Background(), "alice", "secret"))
	assert.False(t, svc.Authenticate(context.Background(), "alice", "nope"))
}

func TestAuthService_WithRealStore(t *testing.T) {
	store := storage.New(t.TempDir()+"/database.json", nil)
	jwt := services.NewMockJWTGenerator(gomock.NewController(t))
	jwt.EXPECT().Generate(gomock.Any(), "wurst").Return("tok", nil)

	svc := services.NewAuthService(store, jwt, nil, 0)
	ctx := context.Background()

	assert.NoError(t, svc.Register(ctx, "wurst", "kaese"))
	assert.ErrorIs(t, svc.Register(ctx, "wurst", "other"), services.ErrUserAlreadyExists)

	_, err := svc.Login(ctx, "wurst", "other")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	token, err := svc.Login(ctx, "wurst", "kaese")
	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestAuthService_AuthenticateLockout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	t.Run("locked out user is refused even with the right password", func(t *testing.T) {
		store := services.NewMockUserStore(ctrl)
		attempts := services.NewMockLoginAttempts(ctrl)
		svc := services.NewAuthService(store, nil, attempts, 3)

		attempts.EXPECT().Count(gomock.Any(), "alice").Return(int64(3), nil)

		assert.False(t, svc.Authenticate(ctx, "alice", "secret"))
	})

	t.Run("failed check is counted", func(t *testing.T) {
		store := services.NewMockUserStore(ctrl)
		attempts := services.NewMockLoginAttempts(ctrl)
		svc := services.NewAuthService(store, nil, attempts, 3)

		attempts.EXPECT().Count(gomock.Any(), "alice").Return(int64(0), nil)
		store.EXPECT().Authenticate("alice", "wrong").Return(false)
		attempts.EXPECT().Increment(gomock.Any(), "alice").Return(int64(1), nil)

		assert.False(t, svc.Authenticate(ctx, "alice", "wrong"))
	})

	t.Run("success without prior failures does not touch the counter", func(t *testing.T) {
		store := services.NewMockUserStore(ctrl)
		attempts := services.NewMockLoginAttempts(ctrl)
		svc := services.NewAuthService(store, nil, attempts, 3)

		attempts.EXPECT().Count(gomock.Any(), "alice").Return(int64(0), nil)
		store.EXPECT().Authenticate("alice", "secret").Return(true)

		assert.True(t, svc.Authenticate(ctx, "alice", "secret"))
	})

	t.Run("success after failures resets counter", func(t *testing.T) {
		store := services.NewMockUserStore(ctrl)
		attempts := services.NewMockLoginAttempts(ctrl)
		svc := services.NewAuthService(store, nil, attempts, 3)

		attempts.EXPECT().Count(gomock.Any(), "alice").Return(int64(2), nil)
		store.EXPECT().Authenticate("alice", "secret").Return(true)
		attempts.EXPECT().Reset(gomock.Any(), "alice").Return(nil)

		assert.True(t, svc.Authenticate(ctx, "alice", "secret"))
	})
}

// memoryAttempts is a LoginAttempts kept in a map.
type memoryAttempts struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (m *memoryAttempts) Count(_ context.Context, username string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[username], nil
}

func (m *memoryAttempts) Increment(_ context.Context, username string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[username]++
	return m.counts[username], nil
}

func (m *memoryAttempts) Reset(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.counts, username)
	return nil
}

func TestAuthService_LockoutCoversBasicAuth(t *testing.T) {
	ctx := context.Background()
	store := storage.New(t.TempDir()+"/database.json", nil)
	attempts := &memoryAttempts{counts: map[string]int64{}}
	svc := services.NewAuthService(store, nil, attempts, 3)

	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	// failures through Basic auth count towards the same limit as /login
	for i := 0; i < 3; i++ {
		assert.False(t, svc.Authenticate(ctx, "alice", "guess"))
	}
	count, _ := attempts.Count(ctx, "alice")
	assert.Equal(t, int64(3), count)

	_, err := svc.Login(ctx, "alice", "secret")
	assert.ErrorIs(t, err, services.ErrTooManyAttempts)

	for i := 0; i < 100; i++ {
		assert.False(t, svc.Authenticate(ctx, "alice", "guess"))
	}
	assert.False(t, svc.Authenticate(ctx, "alice", "secret"), "locked out user must be refused")

	require.NoError(t, attempts.Reset(ctx, "alice"))
	assert.True(t, svc.Authenticate(ctx, "alice", "secret"))
}

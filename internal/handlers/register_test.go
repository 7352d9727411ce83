package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/kmlog/internal/models"
	"github.com/sbilibin2017/kmlog/internal/services"
	"github.com/sbilibin2017/kmlog/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		reqBody       models.RegisterRequest
		mockSetup     func(m *MockRegisterer)
		expectedCode  int
		expectedBody  map[string]string
		expectWarning bool
		rawBody       bool // if true, pass raw body (to simulate invalid JSON)
	}{
		{
			name:    "success",
			reqBody: models.RegisterRequest{Username: "john", Password: "secret"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), "john", "secret").Return(nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: map[string]string{"message": "User registered successfully"},
		},
		{
			name:    "registered but not persisted",
			reqBody: models.RegisterRequest{Username: "john", Password: "secret"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), "john", "secret").
					Return(&storage.PersistError{Path: "db.json", Err: errors.New("disk full")})
			},
			expectedCode: http.StatusCreated,
			expectedBody: map[string]string{
				"message": "User registered successfully",
				"warning": durabilityWarning,
			},
			expectWarning: true,
		},
		{
			name:    "user already exists",
			reqBody: models.RegisterRequest{Username: "alice", Password: "pass"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), "alice", "pass").Return(services.ErrUserAlreadyExists)
			},
			expectedCode: http.StatusForbidden,
			expectedBody: map[string]string{"error": "Username already exists"},
		},
		{
			name:    "empty username",
			reqBody: models.RegisterRequest{Username: "", Password: "pass"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), "", "pass").Return(services.ErrInvalidUsername)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "Username must not be empty"},
		},
		{
			name:    "internal server error",
			reqBody: models.RegisterRequest{Username: "bob", Password: "pass"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), "bob", "pass").Return(errors.New("entropy exhausted"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]string{"error": "Internal server error"},
		},
		{
			name:         "invalid json",
			rawBody:      true,
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]string{"error": "Invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			var req *http.Request
			if tt.rawBody {
				req = httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString("{invalid json}"))
			} else {
				bodyBytes, _ := json.Marshal(tt.reqBody)
				req = httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(bodyBytes))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectWarning, rr.Header().Get(DurabilityWarningHeader) != "")

			var resp map[string]string
			err := json.Unmarshal(rr.Body.Bytes(), &resp)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, resp)
		})
	}
}

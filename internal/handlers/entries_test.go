package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/kmlog/internal/models"
	"github.com/sbilibin2017/kmlog/internal/services"
	"github.com/sbilibin2017/kmlog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEntriesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	entries := []models.Entry{
		{ID: uuid.New(), Kilometers: 4, Kind: models.Climbing, CreatedAt: created},
		{ID: uuid.New(), Kilometers: 10, Kind: models.Biking, CreatedAt: created.Add(time.Hour)},
	}

	t.Run("lists entries in order", func(t *testing.T) {
		mockSvc := NewMockEntryLister(ctrl)
		mockSvc.EXPECT().List(gomock.Any(), "wurst").Return(entries)

		req := withRoute(httptest.NewRequest(http.MethodGet, "/entries", nil), "wurst", nil)
		rr := httptest.NewRecorder()
		NewListEntriesHandler(mockSvc)(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp models.EntriesResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.List, 2)
		assert.Equal(t, entries[0].ID, resp.List[0].ID)
		assert.Equal(t, "klettern", resp.List[0].Slug)
		assert.Equal(t, entries[0].Points(), resp.List[0].Points)
		assert.True(t, created.Equal(resp.List[0].CreatedAt))
		assert.Equal(t, models.Biking, resp.List[1].Kind)
	})

	t.Run("empty list", func(t *testing.T) {
		mockSvc := NewMockEntryLister(ctrl)
		mockSvc.EXPECT().List(gomock.Any(), "kaese").Return(nil)

		req := withRoute(httptest.NewRequest(http.MethodGet, "/entries", nil), "kaese", nil)
		rr := httptest.NewRecorder()
		NewListEntriesHandler(mockSvc)(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"list":[]}`, rr.Body.String())
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/entries", nil)
		rr := httptest.NewRecorder()
		NewListEntriesHandler(NewMockEntryLister(ctrl))(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetEntryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entry := models.Entry{ID: uuid.New(), Kilometers: 2, Kind: models.Skating, CreatedAt: time.Now().UTC()}

	tests := []struct {
		name         string
		id           string
		mockSetup    func(m *MockEntryGetter)
		expectedCode int
	}{
		{
			name: "found",
			id:   entry.ID.String(),
			mockSetup: func(m *MockEntryGetter) {
				m.EXPECT().Get(gomock.Any(), "wurst", entry.ID).Return(entry, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not found",
			id:   entry.ID.String(),
			mockSetup: func(m *MockEntryGetter) {
				m.EXPECT().Get(gomock.Any(), "wurst", entry.ID).Return(models.Entry{}, services.ErrEntryNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "malformed id",
			id:           "not-a-uuid",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockEntryGetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := withRoute(httptest.NewRequest(http.MethodGet, "/entries/"+tt.id, nil), "wurst", map[string]string{"id": tt.id})
			rr := httptest.NewRecorder()
			NewGetEntryHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp models.EntryResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, entry.ID, resp.ID)
				assert.Equal(t, "skaten", resp.Slug)
			}
		})
	}
}

func TestEditEntryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	tests := []struct {
		name          string
		id            string
		body          string
		mockSetup     func(m *MockEntryEditor)
		expectedCode  int
		expectWarning bool
	}{
		{
			name: "updated",
			id:   id.String(),
			body: `{"kilometers": 7, "kind": "wandern"}`,
			mockSetup: func(m *MockEntryEditor) {
				m.EXPECT().Edit(gomock.Any(), "wurst", id, 7.0, models.Hiking).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "updated but not persisted",
			id:   id.String(),
			body: `{"kilometers": 7, "kind": "wandern"}`,
			mockSetup: func(m *MockEntryEditor) {
				m.EXPECT().Edit(gomock.Any(), "wurst", id, 7.0, models.Hiking).
					Return(&storage.PersistError{Path: "db.json", Err: errors.New("disk full")})
			},
			expectedCode:  http.StatusOK,
			expectWarning: true,
		},
		{
			name: "not found",
			id:   id.String(),
			body: `{"kilometers": 7, "kind": "laufen"}`,
			mockSetup: func(m *MockEntryEditor) {
				m.EXPECT().Edit(gomock.Any(), "wurst", id, 7.0, models.Running).Return(services.ErrEntryNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "negative distance",
			id:   id.String(),
			body: `{"kilometers": -7, "kind": "laufen"}`,
			mockSetup: func(m *MockEntryEditor) {
				m.EXPECT().Edit(gomock.Any(), "wurst", id, -7.0, models.Running).Return(services.ErrInvalidDistance)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown kind",
			id:           id.String(),
			body:         `{"kilometers": 7, "kind": "fliegen"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "malformed id",
			id:           "42",
			body:         `{"kilometers": 7, "kind": "laufen"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid body",
			id:           id.String(),
			body:         `[]`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "store failure",
			id:   id.String(),
			body: `{"kilometers": 7, "kind": "laufen"}`,
			mockSetup: func(m *MockEntryEditor) {
				m.EXPECT().Edit(gomock.Any(), "wurst", id, 7.0, models.Running).Return(errors.New("boom"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockEntryEditor(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/entries/"+tt.id, strings.NewReader(tt.body))
			req = withRoute(req, "wurst", map[string]string{"id": tt.id})
			rr := httptest.NewRecorder()
			NewEditEntryHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectWarning, rr.Header().Get(DurabilityWarningHeader) != "")
			if tt.expectedCode == http.StatusOK {
				var resp models.EditEntryResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "Entry updated successfully", resp.Message)
				assert.Equal(t, tt.expectWarning, resp.Warning != "")
			}
		})
	}
}

func TestSumHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("sum", func(t *testing.T) {
		mockSvc := NewMockEntrySummer(ctrl)
		mockSvc.EXPECT().Sum(gomock.Any(), "wurst").Return(14.0, nil)

		req := withRoute(httptest.NewRequest(http.MethodGet, "/entries/sum", nil), "wurst", nil)
		rr := httptest.NewRecorder()
		NewSumHandler(mockSvc)(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"kilometers":14}`, rr.Body.String())
	})

	t.Run("no entries", func(t *testing.T) {
		mockSvc := NewMockEntrySummer(ctrl)
		mockSvc.EXPECT().Sum(gomock.Any(), "kaese").Return(0.0, services.ErrNoEntries)

		req := withRoute(httptest.NewRequest(http.MethodGet, "/entries/sum", nil), "kaese", nil)
		rr := httptest.NewRecorder()
		NewSumHandler(mockSvc)(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

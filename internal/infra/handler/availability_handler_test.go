package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-availability/internal/app"
	"github.com/KasumiMercury/primind-availability/internal/infra/handler"
	"github.com/KasumiMercury/primind-availability/internal/infra/repository"
	"github.com/KasumiMercury/primind-availability/internal/testutil"
)

var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB := testutil.SetupMemoryDB(t)
	useCase := app.NewAvailabilityUseCase(
		repository.NewPreferenceRepository(testDB.DB),
		repository.NewBusyEventRepository(testDB.DB),
		app.Options{MaxWindowDays: 31},
	)

	return routerFor(handler.NewAvailabilityHandler(useCase))
}

func routerFor(h *handler.AvailabilityHandler) *gin.Engine {
	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func availabilityURL(userID string, start, end time.Time, extra url.Values) string {
	q := url.Values{}
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))

	for k, v := range extra {
		q[k] = v
	}

	return fmt.Sprintf("/api/v1/users/%s/availability?%s", userID, q.Encode())
}

func TestGetAvailabilityHandlerSuccess(t *testing.T) {
	router := setupTestRouter(t)
	userID := uuid.Must(uuid.NewV7()).String()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/"+userID+"/busy-events", map[string]any{
		"start": monday.Add(10 * time.Hour).Format(time.RFC3339),
		"end":   monday.Add(11 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name          string
		extra         url.Values
		expectedCount int32
		expectedFirst string
	}{
		{
			name:          "defaults",
			extra:         nil,
			expectedCount: 4,
			expectedFirst: "2024-03-04T09:00:00Z",
		},
		{
			name:          "hour slots",
			extra:         url.Values{"slot_minutes": []string{"60"}},
			expectedCount: 2,
			expectedFirst: "2024-03-04T09:00:00Z",
		},
		{
			name:          "tokyo rendering",
			extra:         url.Values{"timezone": []string{"Asia/Tokyo"}},
			expectedCount: 2,
			expectedFirst: "2024-03-04T09:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodGet,
				availabilityURL(userID, monday.Add(9*time.Hour), monday.Add(12*time.Hour), tt.extra), nil)

			require.Equal(t, http.StatusOK, rec.Code)

			var response handler.AvailabilityResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

			assert.Equal(t, tt.expectedCount, response.Count)
			assert.Len(t, response.Slots, int(tt.expectedCount))
			assert.False(t, response.Degraded)

			if tt.expectedFirst != "" {
				assert.Equal(t, tt.expectedFirst, response.Slots[0].Start.UTC().Format(time.RFC3339))
			}
		})
	}
}

func TestGetAvailabilityHandlerError(t *testing.T) {
	router := setupTestRouter(t)
	userID := uuid.Must(uuid.NewV7()).String()

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedField  string
	}{
		{
			name:           "missing start",
			target:         "/api/v1/users/" + userID + "/availability?end=2024-03-04T12:00:00Z",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed end",
			target:         "/api/v1/users/" + userID + "/availability?start=2024-03-04T12:00:00Z&end=tomorrow",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "slot too long",
			target:         availabilityURL(userID, monday, monday.Add(time.Hour), url.Values{"slot_minutes": []string{"1441"}}),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid user",
			target:         availabilityURL("abc", monday, monday.Add(time.Hour), nil),
			expectedStatus: http.StatusBadRequest,
			expectedField:  "user_id",
		},
		{
			name:           "invalid timezone",
			target:         availabilityURL(userID, monday, monday.Add(time.Hour), url.Values{"timezone": []string{"Bad/Zone"}}),
			expectedStatus: http.StatusBadRequest,
			expectedField:  "timezone",
		},
		{
			name:           "window too long",
			target:         availabilityURL(userID, monday, monday.Add(40*24*time.Hour), nil),
			expectedStatus: http.StatusBadRequest,
			expectedField:  "time_range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response handler.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, "validation_error", response.Error)

			if tt.expectedField != "" {
				assert.Equal(t, tt.expectedField, response.Field)
			}
		})
	}
}

func TestWorkPreferencesHandler(t *testing.T) {
	router := setupTestRouter(t)
	userID := uuid.Must(uuid.NewV7()).String()
	target := "/api/v1/users/" + userID + "/preferences"

	rec := doJSON(t, router, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var defaults handler.WorkPreferencesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &defaults))
	assert.True(t, defaults.IsDefault)
	assert.Len(t, defaults.Days, 7)

	rec = doJSON(t, router, http.MethodPut, target, map[string]any{
		"starts": []map[string]int{{"weekday": 1, "hour": 9, "minute": 30}},
		"ends":   []map[string]int{{"weekday": 1, "hour": 17, "minute": 0}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored handler.WorkPreferencesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.False(t, stored.IsDefault)
	assert.Equal(t, "09:30", stored.Days[0].Start)
	assert.Equal(t, "17:00", stored.Days[0].End)

	rec = doJSON(t, router, http.MethodPut, target, map[string]any{
		"starts": []map[string]int{{"weekday": 8, "hour": 9, "minute": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResponse handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResponse))
	assert.Equal(t, "starts[0]", errResponse.Field)
}

func TestBusyEventsHandler(t *testing.T) {
	router := setupTestRouter(t)
	userID := uuid.Must(uuid.NewV7()).String()
	base := "/api/v1/users/" + userID + "/busy-events"

	rec := doJSON(t, router, http.MethodPost, base, map[string]any{
		"start":    monday.Add(13 * time.Hour).Format(time.RFC3339),
		"end":      monday.Add(14 * time.Hour).Format(time.RFC3339),
		"timezone": "Europe/Berlin",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created handler.BusyEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Europe/Berlin", created.Timezone)

	listURL := base + "?start=2024-03-04T00:00:00Z&end=2024-03-05T00:00:00Z"

	rec = doJSON(t, router, http.MethodGet, listURL, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed handler.BusyEventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Equal(t, int32(1), listed.Count)
	assert.Equal(t, created.ID, listed.BusyEvents[0].ID)

	rec = doJSON(t, router, http.MethodDelete, base+"/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, base+"/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, base+"/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base, map[string]any{
		"start": monday.Add(14 * time.Hour).Format(time.RFC3339),
		"end":   monday.Add(13 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base, map[string]any{"timezone": "UTC"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type erroringUseCase struct {
	app.AvailabilityUseCase
	err error
}

func (u erroringUseCase) GetWorkPreferences(context.Context, app.GetWorkPreferencesInput) (app.WorkPreferencesOutput, error) {
	return app.WorkPreferencesOutput{}, u.err
}

func TestHandleErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "not found",
			err:            fmt.Errorf("%w: missing", app.ErrNotFound),
			expectedStatus: http.StatusNotFound,
			expectedError:  "not_found",
		},
		{
			name:           "internal",
			err:            fmt.Errorf("%w: db down", app.ErrInternalError),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := routerFor(handler.NewAvailabilityHandler(erroringUseCase{err: tt.err}))

			rec := doJSON(t, router, http.MethodGet, "/api/v1/users/"+uuid.Must(uuid.NewV7()).String()+"/preferences", nil)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response handler.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedError, response.Error)
		})
	}
}

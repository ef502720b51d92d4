package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/citywatch/alert_service/internal/config"
	"github.com/citywatch/alert_service/internal/models"
	"github.com/citywatch/alert_service/internal/store"
	"github.com/citywatch/alert_service/internal/store/mocks"
)

// newTestHandler — вспомогательная функция для создания роутера с моками сторов.
func newTestHandler(t *testing.T) (*mocks.MockSessionStore, *mocks.MockAlertStore, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	sessionMock := mocks.NewMockSessionStore(ctrl)
	alertMock := mocks.NewMockAlertStore(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	handler := NewHandler(sessionMock, alertMock, logger, &config.Config{})
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return sessionMock, alertMock, router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	sessionMock, _, router := newTestHandler(t)

	user := &models.User{ID: "3", Username: "police", Name: "Officer Smith", Role: models.RolePolice}
	sessionMock.EXPECT().
		Login(gomock.Any(), "police", "password").
		Return(nil).
		Times(1)
	sessionMock.EXPECT().
		Snapshot().
		Return(store.SessionSnapshot{User: user, IsAuthenticated: true}).
		Times(1)

	w := doRequest(router, http.MethodPost, "/api/v1/auth/login", `{"username":"police","password":"password"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsAuthenticated)
	require.NotNil(t, resp.User)
	assert.Equal(t, models.RolePolice, resp.User.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	sessionMock, _, router := newTestHandler(t)

	sessionMock.EXPECT().
		Login(gomock.Any(), "police", "wrong").
		Return(store.ErrInvalidCredentials).
		Times(1)

	w := doRequest(router, http.MethodPost, "/api/v1/auth/login", `{"username":"police","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestLogin_MissingFields(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := doRequest(router, http.MethodPost, "/api/v1/auth/login", `{"username":"police"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	sessionMock, _, router := newTestHandler(t)

	sessionMock.EXPECT().Logout().Times(1)

	w := doRequest(router, http.MethodPost, "/api/v1/auth/logout", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCreateAlert_Success(t *testing.T) {
	_, alertMock, router := newTestHandler(t)

	created := &models.Alert{
		ID:          "new-id",
		Title:       "Fallen power line",
		Description: "Power line down across Cedar Street.",
		Category:    models.CategoryCivilDefense,
		Status:      models.StatusPending,
		CreatedAt:   time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		CreatedBy:   "1",
	}
	alertMock.EXPECT().
		CreateAlert(gomock.Any(), store.CreateAlertInput{
			Title:       "Fallen power line",
			Description: "Power line down across Cedar Street.",
			Category:    models.CategoryCivilDefense,
		}).
		Return(created, nil).
		Times(1)

	w := doRequest(router, http.MethodPost, "/api/v1/alerts",
		`{"title":"Fallen power line","description":"Power line down across Cedar Street.","category":"civil_defense"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new-id", resp.ID)
	assert.Equal(t, models.StatusPending, resp.Status)
}

func TestCreateAlert_InvalidCategory(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := doRequest(router, http.MethodPost, "/api/v1/alerts",
		`{"title":"Bad","description":"Bad category","category":"sanitation"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAlert_NotAuthenticated(t *testing.T) {
	_, alertMock, router := newTestHandler(t)

	alertMock.EXPECT().
		CreateAlert(gomock.Any(), gomock.Any()).
		Return(nil, store.ErrNotAuthenticated).
		Times(1)

	w := doRequest(router, http.MethodPost, "/api/v1/alerts",
		`{"title":"No actor","description":"Should fail","category":"police"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListAlerts_FilterAndOrder(t *testing.T) {
	_, alertMock, router := newTestHandler(t)

	older := models.Alert{ID: "a", Category: models.CategoryPolice, Status: models.StatusPending,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := models.Alert{ID: "b", Category: models.CategoryPolice, Status: models.StatusPending,
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	other := models.Alert{ID: "c", Category: models.CategoryFireDepartment, Status: models.StatusPending,
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}

	alertMock.EXPECT().FetchAlerts(gomock.Any()).Return(nil).Times(1)
	alertMock.EXPECT().
		Snapshot().
		Return(store.AlertSnapshot{Alerts: []models.Alert{older, newer, other}}).
		Times(1)

	w := doRequest(router, http.MethodGet, "/api/v1/alerts?category=police", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp []AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	// Новые сигналы первыми
	assert.Equal(t, "b", resp[0].ID)
	assert.Equal(t, "a", resp[1].ID)
}

func TestGetAlert_WithCanResolve(t *testing.T) {
	sessionMock, alertMock, router := newTestHandler(t)

	alert := &models.Alert{ID: "2", Category: models.CategoryFireDepartment, Status: models.StatusPending}
	alertMock.EXPECT().AlertByID("2").Return(alert, true).Times(1)
	sessionMock.EXPECT().
		CurrentUser().
		Return(&models.User{ID: "4", Role: models.RoleFireDepartment}, true).
		Times(1)

	w := doRequest(router, http.MethodGet, "/api/v1/alerts/2", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp AlertDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.CanResolve)
}

func TestGetAlert_NotFound(t *testing.T) {
	_, alertMock, router := newTestHandler(t)

	alertMock.EXPECT().AlertByID("missing").Return(nil, false).Times(1)

	w := doRequest(router, http.MethodGet, "/api/v1/alerts/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAlertStatus_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name     string
		storeErr error
		wantCode int
	}{
		{name: "not found", storeErr: store.ErrAlertNotFound, wantCode: http.StatusNotFound},
		{name: "forbidden", storeErr: store.ErrForbidden, wantCode: http.StatusForbidden},
		{name: "backward transition", storeErr: store.ErrInvalidTransition, wantCode: http.StatusConflict},
		{name: "no session", storeErr: store.ErrNotAuthenticated, wantCode: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, alertMock, router := newTestHandler(t)

			alertMock.EXPECT().
				UpdateAlertStatus(gomock.Any(), "2", models.StatusResolved).
				Return(tc.storeErr).
				Times(1)

			w := doRequest(router, http.MethodPatch, "/api/v1/alerts/2/status", `{"status":"resolved"}`)
			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestUpdateAlertStatus_Success(t *testing.T) {
	_, alertMock, router := newTestHandler(t)

	alertMock.EXPECT().
		UpdateAlertStatus(gomock.Any(), "2", models.StatusResolved).
		Return(nil).
		Times(1)
	alertMock.EXPECT().
		AlertByID("2").
		Return(&models.Alert{ID: "2", Status: models.StatusResolved}, true).
		Times(1)

	w := doRequest(router, http.MethodPatch, "/api/v1/alerts/2/status", `{"status":"resolved"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusResolved, resp.Status)
}

func TestUpdateAlertStatus_InvalidStatus(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := doRequest(router, http.MethodPatch, "/api/v1/alerts/2/status", `{"status":"closed"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListResponses_SortedForAlert(t *testing.T) {
	_, alertMock, router := newTestHandler(t)

	alertMock.EXPECT().AlertByID("1").Return(&models.Alert{ID: "1"}, true).Times(1)
	alertMock.EXPECT().FetchResponses(gomock.Any(), "1").Return(nil).Times(1)
	alertMock.EXPECT().
		Snapshot().
		Return(store.AlertSnapshot{Responses: []models.Response{
			{ID: "r2", AlertID: "1", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
			{ID: "r3", AlertID: "9", CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
			{ID: "r1", AlertID: "1", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		}}).
		Times(1)

	w := doRequest(router, http.MethodGet, "/api/v1/alerts/1/responses", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp []ResponseItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	// Старые отклики первыми, чужие сигналы отфильтрованы
	assert.Equal(t, "r1", resp[0].ID)
	assert.Equal(t, "r2", resp[1].ID)
}

func TestAddResponse_Success(t *testing.T) {
	_, alertMock, router := newTestHandler(t)

	created := &models.Response{
		ID:            "r-new",
		AlertID:       "2",
		Text:          "Units en route",
		CreatedBy:     "4",
		CreatedByName: "Firefighter Johnson",
		CreatedByRole: models.RoleFireDepartment,
	}
	alertMock.EXPECT().
		AddResponse(gomock.Any(), store.AddResponseInput{AlertID: "2", Text: "Units en route"}).
		Return(created, nil).
		Times(1)

	w := doRequest(router, http.MethodPost, "/api/v1/alerts/2/responses", `{"text":"Units en route"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp ResponseItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "r-new", resp.ID)
	assert.Equal(t, models.RoleFireDepartment, resp.CreatedByRole)
}

func TestAddResponse_AlertNotFound(t *testing.T) {
	_, alertMock, router := newTestHandler(t)

	alertMock.EXPECT().
		AddResponse(gomock.Any(), gomock.Any()).
		Return(nil, store.ErrAlertNotFound).
		Times(1)

	w := doRequest(router, http.MethodPost, "/api/v1/alerts/missing/responses", `{"text":"Hello"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := doRequest(router, http.MethodGet, "/api/v1/system/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/citywatch/alert_service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success_AllDemoAccounts(t *testing.T) {
	testCases := []struct {
		username string
		role     models.Role
	}{
		{username: "citizen", role: models.RoleCitizen},
		{username: "admin", role: models.RoleAdmin},
		{username: "police", role: models.RolePolice},
		{username: "fire", role: models.RoleFireDepartment},
		{username: "defense", role: models.RoleCivilDefense},
	}

	for _, tc := range testCases {
		t.Run(tc.username, func(t *testing.T) {
			service, _ := newTestSessionStore(t)

			err := service.Login(context.Background(), tc.username, "password")
			require.NoError(t, err)

			snap := service.Snapshot()
			assert.True(t, snap.IsAuthenticated)
			assert.False(t, snap.IsLoading)
			assert.Empty(t, snap.Error)
			require.NotNil(t, snap.User)
			assert.Equal(t, tc.role, snap.User.Role)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	service, _ := newTestSessionStore(t)

	err := service.Login(context.Background(), "police", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	snap := service.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading)
	assert.Equal(t, "Invalid username or password", snap.Error)
	assert.Nil(t, snap.User)
}

func TestLogin_CaseSensitiveMatch(t *testing.T) {
	service, _ := newTestSessionStore(t)

	require.ErrorIs(t, service.Login(context.Background(), "Police", "password"), ErrInvalidCredentials)
	require.ErrorIs(t, service.Login(context.Background(), "police", "Password"), ErrInvalidCredentials)
}

func TestLogin_FailureKeepsPreviousIdentity(t *testing.T) {
	service, _ := newTestSessionStore(t)

	require.NoError(t, service.Login(context.Background(), "police", "password"))

	// Неудачная повторная попытка не трогает текущую identity
	err := service.Login(context.Background(), "police", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	user, ok := service.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "3", user.ID)
	assert.Equal(t, "Invalid username or password", service.Snapshot().Error)
}

func TestLogout_AlwaysClearsIdentity(t *testing.T) {
	service, _ := newTestSessionStore(t)

	require.NoError(t, service.Login(context.Background(), "admin", "password"))
	service.Logout()

	snap := service.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)

	// Logout пустой сессии - тоже валидная операция
	service.Logout()
	assert.False(t, service.Snapshot().IsAuthenticated)
}

func TestLogout_DoesNotClearLastError(t *testing.T) {
	service, _ := newTestSessionStore(t)

	require.Error(t, service.Login(context.Background(), "admin", "wrong"))
	service.Logout()

	assert.Equal(t, "Invalid username or password", service.Snapshot().Error)
}

func TestClearError(t *testing.T) {
	service, _ := newTestSessionStore(t)

	require.Error(t, service.Login(context.Background(), "admin", "wrong"))
	service.ClearError()

	assert.Empty(t, service.Snapshot().Error)
}

func TestLogin_PersistsSessionRecord(t *testing.T) {
	service, st := newTestSessionStore(t)

	require.NoError(t, service.Login(context.Background(), "fire", "password"))

	raw, err := st.Load(context.Background(), SessionStorageKey)
	require.NoError(t, err)
	require.NotNil(t, raw)

	var rec sessionRecord
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.True(t, rec.IsAuthenticated)
	require.NotNil(t, rec.User)
	assert.Equal(t, "4", rec.User.ID)
	assert.Equal(t, models.RoleFireDepartment, rec.User.Role)
}

func TestSessionRestore_FromStorage(t *testing.T) {
	st := newMemStorage()
	user := demoUser(t, "defense")
	raw, err := json.Marshal(sessionRecord{User: user, IsAuthenticated: true})
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), SessionStorageKey, raw))

	service := NewSessionStore(context.Background(), st, testLogger(), testConfig())

	restored, ok := service.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user.ID, restored.ID)
	assert.Equal(t, models.RoleCivilDefense, restored.Role)
}

func TestSessionRestore_CorruptRecordStartsEmpty(t *testing.T) {
	st := newMemStorage()
	require.NoError(t, st.Save(context.Background(), SessionStorageKey, []byte("{not json")))

	service := NewSessionStore(context.Background(), st, testLogger(), testConfig())

	_, ok := service.CurrentUser()
	assert.False(t, ok)
}

func TestSessionSubscribe(t *testing.T) {
	service, _ := newTestSessionStore(t)

	notified := 0
	unsubscribe := service.Subscribe(func() { notified++ })

	require.NoError(t, service.Login(context.Background(), "citizen", "password"))
	assert.Greater(t, notified, 0)

	seen := notified
	unsubscribe()
	service.Logout()
	assert.Equal(t, seen, notified)
}

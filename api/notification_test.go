package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clinidesk/clinidesk-BE/internal/db"
	"github.com/clinidesk/clinidesk-BE/internal/notification"
	"github.com/stretchr/testify/require"
)

func seedNotification(t *testing.T, center *notification.Center, title string) notification.Notification {
	t.Helper()

	stored, added := center.Add(context.Background(), notification.Notification{
		Title:    title,
		Message:  "message for " + title,
		Type:     notification.TypeSystem,
		Priority: notification.PriorityLow,
	})
	require.True(t, added)
	return stored
}

func TestListNotificationsRequiresAuth(t *testing.T) {
	server := newTestServer(t, newFakeStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/notifications", nil)
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestListNotifications(t *testing.T) {
	center := notification.NewCenter(notification.CenterConfig{})
	server := newTestServer(t, newFakeStore(), center)

	seedNotification(t, center, "first")
	second := seedNotification(t, center, "second")

	req := httptest.NewRequest(http.MethodGet, "/v1/notifications", nil)
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Notifications []notification.Notification `json:"notifications"`
		UnreadCount   int                         `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Notifications, 2)
	require.Equal(t, 2, resp.UnreadCount)
	// Newest first.
	require.Equal(t, second.ID, resp.Notifications[0].ID)
}

func TestMarkNotificationAsRead(t *testing.T) {
	center := notification.NewCenter(notification.CenterConfig{})
	server := newTestServer(t, newFakeStore(), center)

	stored := seedNotification(t, center, "unread")

	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/v1/notifications/%s/read", stored.ID), nil)
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 0, center.UnreadCount())
}

func TestMarkNotificationAsReadNotFound(t *testing.T) {
	server := newTestServer(t, newFakeStore(), nil)

	req := httptest.NewRequest(http.MethodPatch, "/v1/notifications/no-such-id/read", nil)
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMarkAllNotificationsAsRead(t *testing.T) {
	center := notification.NewCenter(notification.CenterConfig{})
	server := newTestServer(t, newFakeStore(), center)

	seedNotification(t, center, "one")
	seedNotification(t, center, "two")

	req := httptest.NewRequest(http.MethodPost, "/v1/notifications/read-all", nil)
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 0, center.UnreadCount())
}

func TestClearNotificationsRequiresAdmin(t *testing.T) {
	center := notification.NewCenter(notification.CenterConfig{})
	server := newTestServer(t, newFakeStore(), center)

	seedNotification(t, center, "pending")

	req := httptest.NewRequest(http.MethodDelete, "/v1/notifications", nil)
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusForbidden, recorder.Code)
	require.Len(t, center.List(), 1)

	req = httptest.NewRequest(http.MethodDelete, "/v1/notifications", nil)
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleAdmin))
	recorder = doRequest(t, server, req)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Empty(t, center.List())
}

func TestUpdateNotificationSettings(t *testing.T) {
	center := notification.NewCenter(notification.CenterConfig{})
	server := newTestServer(t, newFakeStore(), center)

	body, err := json.Marshal(map[string]any{
		"sound_enabled":        false,
		"browser_push_enabled": true,
		"permission_status":    "granted",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/v1/notifications/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	settings := center.Settings()
	require.False(t, settings.SoundEnabled)
	require.True(t, settings.BrowserPushEnabled)
	require.Equal(t, notification.PermissionGranted, settings.PermissionStatus)
}

func TestUpdateNotificationSettingsRejectsUnknownPermission(t *testing.T) {
	server := newTestServer(t, newFakeStore(), nil)

	body, err := json.Marshal(map[string]any{
		"sound_enabled":        true,
		"browser_push_enabled": false,
		"permission_status":    "maybe",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/v1/notifications/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

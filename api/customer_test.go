package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinidesk/clinidesk-BE/internal/db"
	"github.com/clinidesk/clinidesk-BE/internal/notification"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerEmitsNewLeadNotification(t *testing.T) {
	store := newFakeStore()
	center := notification.NewCenter(notification.CenterConfig{})
	server := newTestServer(t, store, center)

	body, err := json.Marshal(map[string]any{
		"full_name": "Tran Thi Mai",
		"phone":     "0912345678",
		"source":    "facebook_ads",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var customer db.Customer
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &customer))
	require.Equal(t, db.CustomerStatusNew, customer.Status)
	require.NotNil(t, customer.RegistrationDate)

	notifications := center.List()
	require.Len(t, notifications, 1)
	require.Equal(t, notification.TypeNewLead, notifications[0].Type)
	require.Equal(t, notification.NewLeadKey(customer.ID), notifications[0].DedupKey)
	require.Contains(t, notifications[0].Message, "Tran Thi Mai")
}

func TestCreateCustomerRejectsBadFullName(t *testing.T) {
	server := newTestServer(t, newFakeStore(), nil)

	body, err := json.Marshal(map[string]any{
		"full_name": "x",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestUpdateCustomerStatus(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store, nil)

	now := time.Now()
	customer, err := store.CreateCustomer(context.Background(), db.CreateCustomerParams{
		FullName:         "Le Van Binh",
		Status:           db.CustomerStatusNew,
		RegistrationDate: &now,
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{"status": "in_progress"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/v1/customers/%s/status", customer.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, db.CustomerStatusInProgress, store.customers[customer.ID].Status)
}

func TestCompleteReminderNote(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store, nil)

	now := time.Now()
	customer, err := store.CreateCustomer(context.Background(), db.CreateCustomerParams{
		FullName:         "Pham Thu Ha",
		Status:           db.CustomerStatusActive,
		RegistrationDate: &now,
	})
	require.NoError(t, err)

	remindAt := now.Add(time.Hour)
	note, err := store.CreateReminderNote(context.Background(), db.CreateReminderNoteParams{
		CustomerID: customer.ID,
		Content:    "call back about pricing",
		RemindAt:   &remindAt,
	})
	require.NoError(t, err)

	url := fmt.Sprintf("/v1/customers/%s/reminders/%s/complete", customer.ID, note.ID)
	req := httptest.NewRequest(http.MethodPatch, url, nil)
	req.Header.Set(authorizationHeaderKey, bearerToken(t, db.UserRoleStaff))
	recorder := doRequest(t, server, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, store.notes[note.ID].Completed)
}

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adaptsync/adaptsync/internal/config"
	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}

	a, err := NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestPush_PartitionsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/push", r.URL.Path)
		assert.Equal(t, "Bearer sometoken", r.Header.Get("Authorization"))

		var req models.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "device-1", req.DeviceID)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PushResponse{
			Successful: []string{"k1"},
			Failed:     []models.FailedChange{{IdempotencyKey: "k2", Reason: "validation"}},
			Conflicts:  []models.Conflict{{ID: "c1", EntityType: "task", EntityID: 7}},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	resp, err := a.Push(context.Background(), models.PushRequest{DeviceID: "device-1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"k1"}, resp.Successful)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, "k2", resp.Failed[0].IdempotencyKey)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "c1", resp.Conflicts[0].ID)
}

func TestPush_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	a := newTestAdapter(t, srv.URL)
	_, err := a.Push(context.Background(), models.PushRequest{DeviceID: "device-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestPush_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("token invalid"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Push(context.Background(), models.PushRequest{DeviceID: "device-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPush_ExpiredTokenFailsWithoutNetworkCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(signedToken(t, time.Now().Add(-time.Hour)))

	_, err := a.Push(context.Background(), models.PushRequest{DeviceID: "device-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called)
}

func TestPush_ValidTokenPassesPreflight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PushResponse{})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(signedToken(t, time.Now().Add(time.Hour)))

	_, err := a.Push(context.Background(), models.PushRequest{DeviceID: "device-1"})
	require.NoError(t, err)
}

// ── SmartPull / CheckUpdates ────────────────────────────────────────────────

func TestSmartPull_NoUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/smart-pull", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.SmartPullResponse{HasUpdates: false, NewEventsCount: 0})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	resp, err := a.SmartPull(context.Background(), models.SmartPullRequest{UserID: 1, DeviceID: "device-1"})

	require.NoError(t, err)
	assert.False(t, resp.HasUpdates)
	assert.Zero(t, resp.NewEventsCount)
	assert.Empty(t, resp.Events)
}

func TestCheckUpdates_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/check-updates", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("user_id"))
		assert.Equal(t, "device-1", r.URL.Query().Get("device_id"))
		assert.Equal(t, "desktop", r.URL.Query().Get("app_type"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.CheckUpdatesResponse{HasUpdates: true, PendingEvents: 3, LastEventID: 57})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	resp, err := a.CheckUpdates(context.Background(), 42, "device-1", "desktop")

	require.NoError(t, err)
	assert.True(t, resp.HasUpdates)
	assert.Equal(t, 3, resp.PendingEvents)
	assert.Equal(t, int64(57), resp.LastEventID)
}

// ── Query / DescribeFields ──────────────────────────────────────────────────

func TestQuery_InvalidFieldSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/query", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Invalid field 'ghost_field' on model 'widget'"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Query(context.Background(), models.QueryRequest{
		EntityType: "widget",
		Fields:     []string{"id", "ghost_field"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.ErrorContains(t, err, "Invalid field 'ghost_field'")
}

func TestQuery_DecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records":[{"id":1,"name":"alpha"}],"total":1}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	resp, err := a.Query(context.Background(), models.QueryRequest{EntityType: "widget", Fields: []string{"id", "name"}})

	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, float64(1), resp.Records[0]["id"].Number())
	assert.Equal(t, "alpha", resp.Records[0]["name"].String())
}

func TestDescribeFields_DecodesSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/schema/fields", r.URL.Path)
		assert.Equal(t, "widget", r.URL.Query().Get("entity_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":{"name":"id","type":"integer"},"name":{"name":"name","type":"char"}}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	schema, err := a.DescribeFields(context.Background(), "widget")

	require.NoError(t, err)
	assert.Len(t, schema, 2)
	assert.Equal(t, "integer", schema["id"].Type)
}

// ── Reset ───────────────────────────────────────────────────────────────────

func TestReset_SuccessFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/reset", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ResetResponse{Success: true})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Reset(context.Background(), "device-1"))
}

func TestReset_RejectedFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ResetResponse{Success: false})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Reset(context.Background(), "device-1")

	require.Error(t, err)
	assert.ErrorContains(t, err, "reset rejected")
}

// ── URL normalisation ───────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"http://localhost:8080", "http://localhost:8080", false},
		{"localhost:8080", "http://localhost:8080", false},
		{"https://api.example.com/", "https://api.example.com", false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tc := range cases {
		got, err := normalizeBaseURL(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

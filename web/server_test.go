// ABOUTME: Tests for the JSON API server
// ABOUTME: Drives the full mux with httptest over a live desk
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/bizdesk/db"
	"github.com/harperreed/bizdesk/handlers"
	"github.com/harperreed/bizdesk/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	srv := httptest.NewServer(NewServer(store.NewDesk(store.Options{}), database).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClientLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/clients", map[string]string{
		"name": "Alice", "company": "Acme",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[handlers.ClientOutput](t, resp)
	assert.Equal(t, "prospect", created.Type)

	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/clients/"+created.ID, map[string]string{
		"type": "client",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[handlers.ClientOutput](t, resp)
	assert.Equal(t, "client", updated.Type)

	resp, err := http.Get(srv.URL + "/api/clients?q=acme")
	require.NoError(t, err)
	found := decode[handlers.FindClientsOutput](t, resp)
	require.Len(t, found.Clients, 1)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/clients/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/clients/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAddClientRequiresName(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/clients", map[string]string{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLeadMoveAndPipeline(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/leads", map[string]any{
		"title": "Big Deal", "value": 500.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	lead := decode[handlers.LeadOutput](t, resp)
	assert.Equal(t, "warm-lead", lead.Stage)

	resp = postJSON(t, srv.URL+"/api/leads/"+lead.ID+"/move", map[string]string{
		"stage": "won",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	moved := decode[handlers.LeadOutput](t, resp)
	assert.Equal(t, "won", moved.Stage)

	resp = postJSON(t, srv.URL+"/api/leads/"+lead.ID+"/move", map[string]string{
		"stage": "limbo",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/pipeline")
	require.NoError(t, err)
	summary := decode[handlers.PipelineSummaryOutput](t, resp)
	assert.Equal(t, 500.0, summary.TotalValue)

	resp, err = http.Get(srv.URL + "/api/pipeline/board")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
}

func TestNotificationEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/clients", map[string]string{"name": "Bob"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/notifications")
	require.NoError(t, err)
	feed := decode[handlers.ListNotificationsOutput](t, resp)
	require.Len(t, feed.Notifications, 1)
	assert.Equal(t, 1, feed.UnreadCount)

	resp = postJSON(t, srv.URL+"/api/notifications/read", map[string]any{"all": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	marked := decode[handlers.MarkNotificationReadOutput](t, resp)
	assert.Equal(t, 1, marked.Marked)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/notifications", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := decode[handlers.ClearNotificationsOutput](t, resp)
	assert.Equal(t, 1, cleared.Cleared)
}

func TestDashboardEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/dashboard/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/dashboard/snapshots", map[string]any{
		"period": "2026-08", "revenue": 100000.0, "cogs": 30000.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	snap := decode[handlers.RecordSnapshotOutput](t, resp)
	assert.Equal(t, 70000.0, snap.Metrics.GrossProfit)

	resp, err = http.Get(srv.URL + "/api/dashboard/metrics")
	require.NoError(t, err)
	metrics := decode[handlers.FinancialMetricsOutput](t, resp)
	assert.Equal(t, "2026-08", metrics.Period)
}

func TestUnknownClientUpdateIs404(t *testing.T) {
	srv := newTestServer(t)

	url := fmt.Sprintf("%s/api/clients/%s", srv.URL, "2f0db3e0-5ba4-44d6-ae29-97b4f8ae9ad8")
	resp := doJSON(t, http.MethodPatch, url, map[string]string{"name": "Ghost"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

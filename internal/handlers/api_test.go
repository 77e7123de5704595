package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"analytics-api/internal/router"
	"analytics-api/internal/store"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore() *store.Store {
	s := store.New(store.WithIDSource(&seqIDs{}))
	s.Seed()
	return s
}

func newTestAPIHandlers(maxBody int64) *APIHandlers {
	s := newTestStore()
	logger := testLogger()
	return NewAPIHandlers(router.New(s, logger), s, logger, maxBody)
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func serve(t *testing.T, h *APIHandlers, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()

	h.HandleDispatch(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to decode JSON %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func TestNewAPIHandlers(t *testing.T) {
	s := newTestStore()
	logger := testLogger()
	d := router.New(s, logger)

	h := NewAPIHandlers(d, s, logger, 1024)
	if h == nil {
		t.Fatal("NewAPIHandlers() returned nil")
	}
	if h.dispatcher != d || h.store != s {
		t.Error("NewAPIHandlers() should keep dispatcher and store")
	}
	if h.maxBodyBytes != 1024 {
		t.Errorf("maxBodyBytes = %d, want 1024", h.maxBodyBytes)
	}
}

func TestHandleDispatch_GetMetrics(t *testing.T) {
	h := newTestAPIHandlers(1 << 20)

	w, env := serve(t, h, http.MethodGet, "/api/metrics", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected content-type 'application/json', got %q", ct)
	}
	if !env.OK {
		t.Fatal("expected ok=true in response")
	}

	var metrics map[string]struct {
		Value float64 `json:"value"`
		Label string  `json:"label"`
	}
	if err := json.Unmarshal(env.Data, &metrics); err != nil {
		t.Fatalf("failed to decode metrics: %v", err)
	}
	if len(metrics) != 4 {
		t.Errorf("expected 4 metrics, got %d", len(metrics))
	}
	if metrics["revenue"].Value != 346 {
		t.Errorf("revenue = %v, want 346", metrics["revenue"].Value)
	}
}

func TestHandleDispatch_StatusCodes(t *testing.T) {
	h := newTestAPIHandlers(1 << 20)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		ok     bool
	}{
		{"create revenue", http.MethodPost, "/api/revenue", `{"month":"Aug","revenue":55000,"prev":50000}`, http.StatusCreated, true},
		{"duplicate revenue", http.MethodPost, "/api/revenue", `{"month":"Aug","revenue":1}`, http.StatusBadRequest, false},
		{"numeric string", http.MethodPost, "/api/products", `{"name":"Pen","sales":"12"}`, http.StatusCreated, true},
		{"validation", http.MethodPost, "/api/products", `{"sales":3}`, http.StatusBadRequest, false},
		{"malformed json", http.MethodPost, "/api/products", `{"name":`, http.StatusBadRequest, false},
		{"array body", http.MethodPost, "/api/products", `[1,2]`, http.StatusBadRequest, false},
		{"unknown metric", http.MethodPut, "/api/metrics/unknownkey", `{"value":1}`, http.StatusNotFound, false},
		{"unknown route", http.MethodGet, "/api/nothing", "", http.StatusNotFound, false},
		{"trailing slash", http.MethodGet, "/api/products/", "", http.StatusOK, true},
		{"encoded id", http.MethodPut, "/api/transactions/%23TXN-1003", `{"status":"Failed"}`, http.StatusOK, true},
		{"delete missing", http.MethodDelete, "/api/products/nope", "", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := serve(t, h, tt.method, tt.target, tt.body)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			if env.OK != tt.ok {
				t.Errorf("ok = %v, want %v", env.OK, tt.ok)
			}
			if !tt.ok && env.Error == "" {
				t.Error("failed response should carry an error message")
			}
		})
	}
}

func TestHandleDispatch_EmptyBody(t *testing.T) {
	h := newTestAPIHandlers(1 << 20)

	w, env := serve(t, h, http.MethodPut, "/api/metrics/orders", "")
	if w.Code != http.StatusOK || !env.OK {
		t.Fatalf("empty body should be treated as an empty object, got %d %s", w.Code, w.Body.String())
	}
}

func TestHandleDispatch_BodyTooLarge(t *testing.T) {
	h := newTestAPIHandlers(16)

	body := fmt.Sprintf(`{"name":%q}`, strings.Repeat("x", 64))
	w, env := serve(t, h, http.MethodPost, "/api/products", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if env.OK {
		t.Error("oversized body should be rejected")
	}
}

func TestHandleDispatch_TransactionFlow(t *testing.T) {
	h := newTestAPIHandlers(1 << 20)

	w, env := serve(t, h, http.MethodPost, "/api/transactions", `{"customer":"X","product":"Y","amount":100,"status":"Completed"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var txn struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &txn); err != nil {
		t.Fatalf("failed to decode transaction: %v", err)
	}
	if !regexp.MustCompile(`^#TXN-\d+$`).MatchString(txn.ID) {
		t.Errorf("id %q does not match #TXN-<n>", txn.ID)
	}

	target := "/api/transactions/" + strings.ReplaceAll(txn.ID, "#", "%23")
	w, _ = serve(t, h, http.MethodDelete, target, "")
	if w.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", w.Code)
	}

	_, env = serve(t, h, http.MethodGet, "/api/transactions?limit=2&status=Completed", "")
	var list []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "#TXN-1007" {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestHandleDispatch_InternalDetailsHidden(t *testing.T) {
	h := newTestAPIHandlers(1 << 20)

	_, env := serve(t, h, http.MethodPost, "/api/products", `{"name":`)
	if strings.Contains(env.Error, "unexpected") {
		t.Errorf("decoder details leaked: %q", env.Error)
	}
	if env.Error != "Invalid JSON body" {
		t.Errorf("error = %q, want %q", env.Error, "Invalid JSON body")
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestAPIHandlers(1 << 20)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response struct {
		OK   bool `json:"ok"`
		Data struct {
			Status    string         `json:"status"`
			Timestamp string         `json:"timestamp"`
			Counts    map[string]int `json:"counts"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if !response.OK || response.Data.Status != "healthy" {
		t.Errorf("unexpected health response: %+v", response)
	}
	if response.Data.Timestamp == "" {
		t.Error("timestamp should be set")
	}
	if response.Data.Counts["transactions"] != 8 {
		t.Errorf("transactions count = %d, want 8", response.Data.Counts["transactions"])
	}
}

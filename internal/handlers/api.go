package handlers

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"analytics-api/internal/errors"
	"analytics-api/internal/observability"
	"analytics-api/internal/router"
	"analytics-api/internal/store"
)

type APIHandlers struct {
	dispatcher   *router.Dispatcher
	store        *store.Store
	logger       *slog.Logger
	maxBodyBytes int64
	started      time.Time
}

func NewAPIHandlers(dispatcher *router.Dispatcher, s *store.Store, logger *slog.Logger, maxBodyBytes int64) *APIHandlers {
	return &APIHandlers{
		dispatcher:   dispatcher,
		store:        s,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
		started:      time.Now(),
	}
}

// HandleDispatch adapts an HTTP request to the router and writes the
// resulting envelope.
func (h *APIHandlers) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	body, err := h.decodeBody(w, r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	result := h.dispatcher.Dispatch(r.Context(), router.Request{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.Query(),
		Body:   body,
	})
	if !result.Success {
		errors.WriteError(w, h.logger, result.Err, requestID)
		return
	}

	if r.Method != http.MethodGet {
		observability.RecordStoreCounts(h.store.Counts())
	}

	w.Header().Set("Cache-Control", "no-store")
	errors.WriteSuccessStatus(w, result.StatusCode, result.Data)
}

// decodeBody reads a JSON object body. An empty body decodes to an empty
// object; anything that is not an object is rejected.
func (h *APIHandlers) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodDelete {
		return map[string]any{}, nil
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.Wrap(err, errors.CodeBadRequest, "Request body too large")
		}
		return nil, errors.BodyParse(err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, errors.BodyParse(err)
	}
	if dec.More() {
		return nil, errors.BodyParse(stderrors.New("trailing data after JSON object"))
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, errors.BodyParse(stderrors.New("body must be a JSON object"))
	}
	return obj, nil
}

type healthStatus struct {
	Status        string         `json:"status"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Timestamp     string         `json:"timestamp"`
	Counts        map[string]int `json:"counts"`
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	counts := h.store.Counts()
	observability.RecordStoreCounts(counts)

	errors.WriteSuccessWithHeaders(w, healthStatus{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Counts:        counts,
	}, map[string]string{"Cache-Control": "no-store"})
}

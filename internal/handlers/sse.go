package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/goccy/go-json"
	"github.com/starfederation/datastar-go/datastar"

	"analytics-api/internal/models"
	"analytics-api/internal/store"
	"analytics-api/internal/ui"
)

const maxTableRows = 20

type SSEHandlers struct {
	store  *store.Store
	logger *slog.Logger
}

func NewSSEHandlers(s *store.Store, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		store:  s,
		logger: logger,
	}
}

func (h *SSEHandlers) render(r *http.Request, c templ.Component) (string, error) {
	var buf strings.Builder
	err := c.Render(r.Context(), &buf)
	return buf.String(), err
}

// HandleMetrics streams freshly derived metrics as signals and cards.
func (h *SSEHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	metrics := h.store.RecomputeMetrics()
	html, err := h.render(r, ui.MetricCards(metrics))
	if err != nil {
		h.logger.Error("render metric cards", "error", err)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		h.logger.Warn("patch metric cards", "error", err)
		return
	}

	signals, err := json.Marshal(map[string]any{"metricsData": metrics})
	if err != nil {
		h.logger.Error("marshal metrics data", "error", err)
		return
	}
	if err := sse.PatchSignals(signals); err != nil {
		h.logger.Warn("patch metrics signals", "error", err)
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRefreshAll streams every dashboard fragment and signal in one
// response.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	metrics := h.store.RecomputeMetrics()
	products := h.store.ListProducts()
	revenue := h.store.ListRevenue()
	txns := h.store.ListTransactions(models.TransactionQuery{Limit: maxTableRows})

	for _, c := range []templ.Component{
		ui.MetricCards(metrics),
		ui.ProductList(products),
		ui.TransactionTable(txns),
	} {
		html, err := h.render(r, c)
		if err != nil {
			h.logger.Error("render dashboard fragment", "error", err)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			h.logger.Warn("patch dashboard fragment", "error", err)
			return
		}
	}

	allSignals, err := json.Marshal(map[string]any{
		"metricsData":  metrics,
		"productsData": products,
		"revenueData":  revenue,
	})
	if err != nil {
		h.logger.Error("marshal all signals data", "error", err)
		return
	}
	if err := sse.PatchSignals(allSignals); err != nil {
		h.logger.Warn("patch dashboard signals", "error", err)
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleDashboard serves the page shell.
func HandleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ui.Dashboard().Render(r.Context(), w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

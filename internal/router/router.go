// Package router maps normalized API requests onto record store operations.
//
// Routes live in an ordered table and the first match wins, so every static
// path is listed before the parametric path that shares its prefix. Handlers
// validate and coerce the whole payload before calling the store, so a
// rejected request never leaves a partial mutation behind.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"analytics-api/internal/errors"
	"analytics-api/internal/observability"
	"analytics-api/internal/store"
)

// Request is the transport-independent form of an API call. Path is the
// escaped request path; parametric segments are decoded during matching.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// Result is the tagged outcome of a dispatched request.
type Result struct {
	Success    bool
	Data       any
	StatusCode int
	Err        *errors.AppError
}

func ok(data any) Result {
	return Result{Success: true, Data: data, StatusCode: http.StatusOK}
}

func created(data any) Result {
	return Result{Success: true, Data: data, StatusCode: http.StatusCreated}
}

func fail(err error) Result {
	appErr := errors.As(err)
	return Result{Success: false, StatusCode: appErr.StatusCode, Err: appErr}
}

// Params holds decoded values of parametric route segments.
type Params map[string]string

type handlerFunc func(d *Dispatcher, req Request, p Params) Result

type route struct {
	method    string
	operation string
	segments  []string
	handle    handlerFunc
}

func newRoute(method, pattern, operation string, h handlerFunc) route {
	return route{
		method:    method,
		operation: operation,
		segments:  strings.Split(strings.Trim(pattern, "/"), "/"),
		handle:    h,
	}
}

var routes = []route{
	newRoute(http.MethodGet, "/api/metrics", "metrics.get", (*Dispatcher).getMetrics),
	newRoute(http.MethodPut, "/api/metrics/:key", "metrics.update", (*Dispatcher).updateMetric),

	newRoute(http.MethodGet, "/api/revenue", "revenue.list", (*Dispatcher).listRevenue),
	newRoute(http.MethodPost, "/api/revenue", "revenue.create", (*Dispatcher).createRevenue),
	newRoute(http.MethodPut, "/api/revenue/:month", "revenue.update", (*Dispatcher).updateRevenue),
	newRoute(http.MethodDelete, "/api/revenue/:month", "revenue.delete", (*Dispatcher).deleteRevenue),

	newRoute(http.MethodGet, "/api/products", "products.list", (*Dispatcher).listProducts),
	newRoute(http.MethodPost, "/api/products", "products.create", (*Dispatcher).createProduct),
	newRoute(http.MethodPut, "/api/products/:id", "products.update", (*Dispatcher).updateProduct),
	newRoute(http.MethodDelete, "/api/products/:id", "products.delete", (*Dispatcher).deleteProduct),

	newRoute(http.MethodGet, "/api/transactions", "transactions.list", (*Dispatcher).listTransactions),
	newRoute(http.MethodPost, "/api/transactions", "transactions.create", (*Dispatcher).createTransaction),
	newRoute(http.MethodPut, "/api/transactions/:id", "transactions.update", (*Dispatcher).updateTransaction),
	newRoute(http.MethodDelete, "/api/transactions/:id", "transactions.delete", (*Dispatcher).deleteTransaction),
}

// NormalizePath drops trailing slashes; the root path is kept as "/".
func NormalizePath(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}

// match finds the first route accepting method and path.
func match(method, path string) (route, Params, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	for _, rt := range routes {
		if rt.method != method || len(rt.segments) != len(segments) {
			continue
		}

		var params Params
		matched := true
		for i, tmpl := range rt.segments {
			if name, isParam := strings.CutPrefix(tmpl, ":"); isParam {
				if segments[i] == "" {
					matched = false
					break
				}
				if params == nil {
					params = make(Params, 1)
				}
				params[name] = decodeSegment(segments[i])
				continue
			}
			if tmpl != segments[i] {
				matched = false
				break
			}
		}
		if matched {
			return rt, params, true
		}
	}
	return route{}, nil, false
}

func decodeSegment(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

type Dispatcher struct {
	store  *store.Store
	logger *slog.Logger
}

func New(s *store.Store, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:  s,
		logger: logger,
	}
}

// Dispatch routes req to its operation. It never panics on bad input and
// always returns a Result; unmatched requests yield NOT_FOUND naming the
// method and path.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	path := NormalizePath(req.Path)

	rt, params, found := match(req.Method, path)
	if !found {
		observability.DispatchOperations.WithLabelValues("unmatched", "not_found").Inc()
		return fail(errors.NotFoundf("Route not found: %s %s", req.Method, path))
	}

	_, span := observability.StartSpan(ctx, rt.operation)
	defer span.Finish()

	if req.Body == nil {
		req.Body = map[string]any{}
	}
	if req.Query == nil {
		req.Query = url.Values{}
	}

	result := rt.handle(d, req, params)

	outcome := "success"
	if !result.Success {
		outcome = strings.ToLower(string(result.Err.Code))
		span.SetError(result.Err)
	}
	observability.DispatchOperations.WithLabelValues(rt.operation, outcome).Inc()

	if req.Method != http.MethodGet {
		d.logger.Debug("dispatched mutation",
			"operation", rt.operation,
			"params", params,
			"status", result.StatusCode,
			"request_id", observability.GetRequestID(ctx),
		)
	}
	return result
}

// Package ui renders the dashboard page and the fragments streamed to it
// over SSE.
package ui

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"analytics-api/internal/models"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0-RC.5/bundles/datastar.js"

// Element ids targeted by SSE patches.
const (
	MetricsID      = "metrics-content"
	TransactionsID = "transactions-content"
	ProductsID     = "products-content"
)

// Dashboard is the full page. It subscribes to /sse/refresh-all on load.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Analytics Dashboard</title>
<script type="module" src="%s"></script>
</head>
<body data-signals="{revenueData: [], productsData: [], metricsData: {}}" data-on-load="@get('/sse/refresh-all')">
<header><h1>Analytics Dashboard</h1>
<button data-on-click="@get('/sse/refresh-all')">Refresh</button></header>
<main>
`, datastarScript); err != nil {
			return err
		}
		for _, id := range []string{MetricsID, ProductsID, TransactionsID} {
			if _, err := fmt.Fprintf(w, "<section id=%q>Loading...</section>\n", id); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

// MetricCards renders one card per metric in the fixed display order.
func MetricCards(metrics map[models.MetricName]models.Metric) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section id=%q class="metric-grid">`, MetricsID); err != nil {
			return err
		}
		for _, name := range models.MetricNames {
			m, ok := metrics[name]
			if !ok {
				continue
			}
			trend := "up"
			if m.Change < 0 {
				trend = "down"
			}
			if _, err := fmt.Fprintf(w,
				`<div class="metric-card" id="metric-%s"><span class="label">%s</span><strong>%s%s%s</strong><span class="change %s">%s%%</span></div>`,
				templ.EscapeString(string(m.Name)),
				templ.EscapeString(m.Label),
				templ.EscapeString(m.Unit),
				strconv.FormatFloat(m.Value, 'f', -1, 64),
				templ.EscapeString(m.Suffix),
				trend,
				strconv.FormatFloat(m.Change, 'f', 1, 64),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section>")
		return err
	})
}

// ProductList renders products in the order given.
func ProductList(products []models.Product) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section id=%q><ol class="product-list">`, ProductsID); err != nil {
			return err
		}
		for _, p := range products {
			if _, err := fmt.Fprintf(w,
				`<li><span>%s</span><span class="category-badge">%s</span><strong>%s</strong></li>`,
				templ.EscapeString(p.Name),
				templ.EscapeString(p.Category),
				strconv.FormatFloat(p.Sales, 'f', -1, 64),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ol></section>")
		return err
	})
}

// TransactionTable renders transactions in the order given.
func TransactionTable(txns []models.Transaction) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section id=%q><table class="modern-table">
<thead><tr><th>ID</th><th>Customer</th><th>Product</th><th>Amount</th><th>Status</th><th>Date</th></tr></thead>
<tbody>`, TransactionsID); err != nil {
			return err
		}
		for _, t := range txns {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td>$%.2f</td><td><span class="status-%s">%s</span></td><td>%s</td></tr>`,
				templ.EscapeString(t.ID),
				templ.EscapeString(t.Customer),
				templ.EscapeString(t.Product),
				t.Amount,
				templ.EscapeString(string(t.Status)),
				templ.EscapeString(string(t.Status)),
				templ.EscapeString(t.Date),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table></section>")
		return err
	})
}

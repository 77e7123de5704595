package models

// MetricName identifies one of the fixed dashboard KPIs.
type MetricName string

const (
	MetricRevenue    MetricName = "revenue"
	MetricOrders     MetricName = "orders"
	MetricCustomers  MetricName = "customers"
	MetricConversion MetricName = "conversion"
)

// MetricNames lists the KPI set in display order.
var MetricNames = []MetricName{MetricRevenue, MetricOrders, MetricCustomers, MetricConversion}

type Metric struct {
	Name   MetricName `json:"name"`
	Label  string     `json:"label"`
	Value  float64    `json:"value"`
	Change float64    `json:"change"`
	Unit   string     `json:"unit"`
	Suffix string     `json:"suffix"`
}

type RevenueEntry struct {
	ID      string  `json:"id"`
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Prev    float64 `json:"prev"`
}

const DefaultCategory = "General"

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Sales    float64 `json:"sales"`
	Category string  `json:"category"`
}

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "Completed"
	StatusPending   TransactionStatus = "Pending"
	StatusFailed    TransactionStatus = "Failed"
)

// ParseStatus maps s onto the status enum. Anything outside the enum
// becomes Pending.
func ParseStatus(s string) TransactionStatus {
	switch TransactionStatus(s) {
	case StatusCompleted, StatusPending, StatusFailed:
		return TransactionStatus(s)
	default:
		return StatusPending
	}
}

// DateLayout is the ISO calendar date format used for Transaction.Date.
const DateLayout = "2006-01-02"

type Transaction struct {
	ID       string            `json:"id"`
	Customer string            `json:"customer"`
	Product  string            `json:"product"`
	Amount   float64           `json:"amount"`
	Status   TransactionStatus `json:"status"`
	Date     string            `json:"date"`
}

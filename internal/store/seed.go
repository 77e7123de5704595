package store

import (
	"strconv"
	"strings"

	"analytics-api/internal/models"
)

var seedRevenue = []models.RevenueEntry{
	{Month: "Jan", Revenue: 42000, Prev: 38000},
	{Month: "Feb", Revenue: 45000, Prev: 40000},
	{Month: "Mar", Revenue: 48000, Prev: 43000},
	{Month: "Apr", Revenue: 51000, Prev: 45000},
	{Month: "May", Revenue: 49000, Prev: 47000},
	{Month: "Jun", Revenue: 53000, Prev: 48000},
	{Month: "Jul", Revenue: 58000, Prev: 50000},
}

var seedProducts = []models.Product{
	{Name: "Wireless Headphones", Sales: 1240, Category: "Electronics"},
	{Name: "Smart Watch", Sales: 980, Category: "Electronics"},
	{Name: "Running Shoes", Sales: 860, Category: "Apparel"},
	{Name: "Coffee Maker", Sales: 720, Category: "Home"},
	{Name: "Yoga Mat", Sales: 540, Category: "Fitness"},
	{Name: "Desk Lamp", Sales: 410, Category: models.DefaultCategory},
}

var seedTransactions = []models.Transaction{
	{ID: "#TXN-1001", Customer: "Alice Johnson", Product: "Wireless Headphones", Amount: 199.99, Status: models.StatusCompleted, Date: "2024-07-01"},
	{ID: "#TXN-1002", Customer: "Bob Smith", Product: "Smart Watch", Amount: 349.5, Status: models.StatusPending, Date: "2024-07-02"},
	{ID: "#TXN-1003", Customer: "Carol White", Product: "Running Shoes", Amount: 129, Status: models.StatusCompleted, Date: "2024-07-03"},
	{ID: "#TXN-1004", Customer: "David Brown", Product: "Coffee Maker", Amount: 89.99, Status: models.StatusFailed, Date: "2024-07-04"},
	{ID: "#TXN-1005", Customer: "Eva Green", Product: "Wireless Headphones", Amount: 199.99, Status: models.StatusCompleted, Date: "2024-07-05"},
	{ID: "#TXN-1006", Customer: "Frank Miller", Product: "Yoga Mat", Amount: 39.95, Status: models.StatusPending, Date: "2024-07-06"},
	{ID: "#TXN-1007", Customer: "Grace Lee", Product: "Desk Lamp", Amount: 54.5, Status: models.StatusCompleted, Date: "2024-07-07"},
	{ID: "#TXN-1008", Customer: "Henry Wilson", Product: "Smart Watch", Amount: 349.5, Status: models.StatusFailed, Date: "2024-07-08"},
}

var seedMetrics = map[models.MetricName]struct{ value, change float64 }{
	models.MetricRevenue:    {value: 346, change: 11.3},
	models.MetricOrders:     {value: 6, change: 8.2},
	models.MetricCustomers:  {value: 1284, change: 5.4},
	models.MetricConversion: {value: 3.2, change: -0.4},
}

// Seed loads the sample dashboard dataset. The transaction counter is moved
// past the highest seeded sequence so generated ids never collide.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, v := range seedMetrics {
		s.metrics[name].Value = v.value
		s.metrics[name].Change = v.change
	}

	for _, e := range seedRevenue {
		e.ID = s.ids.NewID()
		s.revenue = append(s.revenue, e)
	}

	for _, p := range seedProducts {
		p.ID = s.ids.NewID()
		s.products = append(s.products, p)
	}

	for _, t := range seedTransactions {
		s.transactions = append(s.transactions, t)
		if seq, ok := parseTransactionSeq(t.ID); ok && seq >= s.nextTxnSeq {
			s.nextTxnSeq = seq + 1
		}
	}
}

func parseTransactionSeq(id string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "#TXN-"))
	if err != nil {
		return 0, false
	}
	return n, true
}

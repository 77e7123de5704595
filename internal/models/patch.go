package models

// Patch types carry one optional value per mutable field. A nil field is
// left untouched by an update.

type MetricPatch struct {
	Value  *float64
	Change *float64
}

type RevenuePatch struct {
	Month   *string
	Revenue *float64
	Prev    *float64
}

func (p RevenuePatch) Apply(e *RevenueEntry) {
	if p.Month != nil {
		e.Month = *p.Month
	}
	if p.Revenue != nil {
		e.Revenue = *p.Revenue
	}
	if p.Prev != nil {
		e.Prev = *p.Prev
	}
}

type ProductPatch struct {
	Name     *string
	Sales    *float64
	Category *string
}

func (p ProductPatch) Apply(prod *Product) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Sales != nil {
		prod.Sales = *p.Sales
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
}

type TransactionPatch struct {
	Customer *string
	Product  *string
	Amount   *float64
	Status   *TransactionStatus
	Date     *string
}

func (p TransactionPatch) Apply(t *Transaction) {
	if p.Customer != nil {
		t.Customer = *p.Customer
	}
	if p.Product != nil {
		t.Product = *p.Product
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
}

// TransactionQuery filters a transaction listing. Zero values disable the
// corresponding filter.
type TransactionQuery struct {
	Status string
	Search string
	Limit  int
}

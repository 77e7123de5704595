package router

import (
	"strconv"

	"analytics-api/internal/errors"
	"analytics-api/internal/models"
)

func (d *Dispatcher) getMetrics(_ Request, _ Params) Result {
	return ok(d.store.RecomputeMetrics())
}

func (d *Dispatcher) updateMetric(req Request, p Params) Result {
	name := models.MetricName(p["key"])
	if !isMetricName(name) {
		return fail(errors.NotFoundf("Metric not found: %s", name))
	}

	nums, err := payload(req.Body).nums("value", "change")
	if err != nil {
		return fail(err)
	}

	m, err := d.store.UpdateMetric(name, models.MetricPatch{
		Value:  nums["value"],
		Change: nums["change"],
	})
	if err != nil {
		return fail(err)
	}
	return ok(m)
}

func isMetricName(name models.MetricName) bool {
	for _, n := range models.MetricNames {
		if n == name {
			return true
		}
	}
	return false
}

func (d *Dispatcher) listRevenue(_ Request, _ Params) Result {
	return ok(d.store.ListRevenue())
}

func (d *Dispatcher) createRevenue(req Request, _ Params) Result {
	body := payload(req.Body)
	month, err := body.str("month")
	if err != nil {
		return fail(err)
	}
	nums, err := body.nums("revenue", "prev")
	if err != nil {
		return fail(err)
	}

	in := revenueInput{Month: month, Revenue: nums["revenue"], Prev: nums["prev"]}
	if err := validateStruct(in); err != nil {
		return fail(err)
	}

	entry, err := d.store.CreateRevenue(models.RevenueEntry{
		Month:   *in.Month,
		Revenue: *in.Revenue,
		Prev:    valueOr(in.Prev, 0),
	})
	if err != nil {
		return fail(err)
	}
	return created(entry)
}

func (d *Dispatcher) updateRevenue(req Request, p Params) Result {
	body := payload(req.Body)
	month, err := body.str("month")
	if err != nil {
		return fail(err)
	}
	nums, err := body.nums("revenue", "prev")
	if err != nil {
		return fail(err)
	}

	entry, err := d.store.UpdateRevenue(p["month"], models.RevenuePatch{
		Month:   month,
		Revenue: nums["revenue"],
		Prev:    nums["prev"],
	})
	if err != nil {
		return fail(err)
	}
	return ok(entry)
}

func (d *Dispatcher) deleteRevenue(_ Request, p Params) Result {
	entry, err := d.store.DeleteRevenue(p["month"])
	if err != nil {
		return fail(err)
	}
	return ok(entry)
}

func (d *Dispatcher) listProducts(_ Request, _ Params) Result {
	return ok(d.store.ListProducts())
}

func (d *Dispatcher) createProduct(req Request, _ Params) Result {
	body := payload(req.Body)
	strs, err := body.strs("name", "category")
	if err != nil {
		return fail(err)
	}
	sales, err := body.num("sales")
	if err != nil {
		return fail(err)
	}

	in := productInput{Name: strs["name"], Sales: sales, Category: strs["category"]}
	if err := validateStruct(in); err != nil {
		return fail(err)
	}

	prod, err := d.store.CreateProduct(models.Product{
		Name:     *in.Name,
		Sales:    valueOr(in.Sales, 0),
		Category: valueOr(in.Category, models.DefaultCategory),
	})
	if err != nil {
		return fail(err)
	}
	return created(prod)
}

func (d *Dispatcher) updateProduct(req Request, p Params) Result {
	body := payload(req.Body)
	strs, err := body.strs("name", "category")
	if err != nil {
		return fail(err)
	}
	sales, err := body.num("sales")
	if err != nil {
		return fail(err)
	}

	prod, err := d.store.UpdateProduct(p["id"], models.ProductPatch{
		Name:     strs["name"],
		Sales:    sales,
		Category: strs["category"],
	})
	if err != nil {
		return fail(err)
	}
	return ok(prod)
}

func (d *Dispatcher) deleteProduct(_ Request, p Params) Result {
	prod, err := d.store.DeleteProduct(p["id"])
	if err != nil {
		return fail(err)
	}
	return ok(prod)
}

func (d *Dispatcher) listTransactions(req Request, _ Params) Result {
	q := models.TransactionQuery{
		Status: req.Query.Get("status"),
		Search: req.Query.Get("search"),
	}
	if limit, err := strconv.Atoi(req.Query.Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}
	return ok(d.store.ListTransactions(q))
}

func (d *Dispatcher) createTransaction(req Request, _ Params) Result {
	body := payload(req.Body)
	strs, err := body.strs("customer", "product", "status", "date")
	if err != nil {
		return fail(err)
	}
	amount, err := body.num("amount")
	if err != nil {
		return fail(err)
	}

	in := transactionInput{
		Customer: strs["customer"],
		Product:  strs["product"],
		Amount:   amount,
		Status:   strs["status"],
		Date:     blankToNil(strs["date"]),
	}
	if err := validateStruct(in); err != nil {
		return fail(err)
	}

	txn, err := d.store.CreateTransaction(models.Transaction{
		Customer: *in.Customer,
		Product:  *in.Product,
		Amount:   *in.Amount,
		Status:   models.ParseStatus(valueOr(in.Status, "")),
		Date:     valueOr(in.Date, ""),
	})
	if err != nil {
		return fail(err)
	}
	return created(txn)
}

func (d *Dispatcher) updateTransaction(req Request, p Params) Result {
	body := payload(req.Body)
	strs, err := body.strs("customer", "product", "status", "date")
	if err != nil {
		return fail(err)
	}
	amount, err := body.num("amount")
	if err != nil {
		return fail(err)
	}
	if err := validateDate(strs["date"]); err != nil {
		return fail(err)
	}

	patch := models.TransactionPatch{
		Customer: strs["customer"],
		Product:  strs["product"],
		Amount:   amount,
		Date:     strs["date"],
	}
	if s := strs["status"]; s != nil {
		status := models.ParseStatus(*s)
		patch.Status = &status
	}

	txn, err := d.store.UpdateTransaction(p["id"], patch)
	if err != nil {
		return fail(err)
	}
	return ok(txn)
}

func (d *Dispatcher) deleteTransaction(_ Request, p Params) Result {
	txn, err := d.store.DeleteTransaction(p["id"])
	if err != nil {
		return fail(err)
	}
	return ok(txn)
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// Package report computes the back-office profit and stock-removal summaries
// from finished orders, finished sales and product removals fetched for a
// reporting window. The server does the date windowing; this package only
// aggregates.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/higuga/higuga/internal/api"
	"github.com/higuga/higuga/internal/model"
)

// Window selects the reporting period understood by the removal endpoint.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// OrdersSummary aggregates finished storefront orders. CashCount and
// CardCount are transaction counts, not currency sums.
type OrdersSummary struct {
	TotalProfit   decimal.Decimal
	TotalDiscount decimal.Decimal
	CashCount     int
	CardCount     int
}

// SalesSummary aggregates finished in-person sales. TotalPaid sums only the
// sales already marked paid.
type SalesSummary struct {
	OrdersSummary
	TotalPaid decimal.Decimal
}

// SummarizeOrders folds a reporting window's orders into totals.
func SummarizeOrders(orders []model.Order) OrdersSummary {
	var s OrdersSummary
	for _, o := range orders {
		s.TotalProfit = s.TotalProfit.Add(o.Total)
		s.TotalDiscount = s.TotalDiscount.Add(o.Discount)
		switch o.PaymentMethod {
		case model.PaymentCash:
			s.CashCount++
		case model.PaymentCard:
			s.CardCount++
		}
	}
	return s
}

// SummarizeSales folds a reporting window's sales into totals.
func SummarizeSales(sales []model.Sale) SalesSummary {
	var s SalesSummary
	for _, sale := range sales {
		s.TotalProfit = s.TotalProfit.Add(sale.Total)
		s.TotalDiscount = s.TotalDiscount.Add(sale.Discount)
		switch sale.PaymentMethod {
		case model.PaymentCash:
			s.CashCount++
		case model.PaymentCard:
			s.CardCount++
		}
		if sale.Status == model.StatusPaid {
			s.TotalPaid = s.TotalPaid.Add(sale.Total)
		}
	}
	return s
}

// ProductTotal is the removed quantity accumulated for one product.
type ProductTotal struct {
	ProductName string
	Quantity    int
}

// RemovalSummary aggregates stock removals for a window.
type RemovalSummary struct {
	TotalRemoved int
	ByProduct    []ProductTotal
}

// SummarizeRemovals totals removed stock and groups it per product, most
// removed first; ties break alphabetically so output is stable.
func SummarizeRemovals(removals []api.ProductRemoval) RemovalSummary {
	var s RemovalSummary
	perProduct := map[string]int{}
	for _, r := range removals {
		s.TotalRemoved += r.QuantityRemoved
		perProduct[r.ProductName] += r.QuantityRemoved
	}
	for name, qty := range perProduct {
		s.ByProduct = append(s.ByProduct, ProductTotal{ProductName: name, Quantity: qty})
	}
	sort.Slice(s.ByProduct, func(i, j int) bool {
		if s.ByProduct[i].Quantity != s.ByProduct[j].Quantity {
			return s.ByProduct[i].Quantity > s.ByProduct[j].Quantity
		}
		return s.ByProduct[i].ProductName < s.ByProduct[j].ProductName
	})
	return s
}

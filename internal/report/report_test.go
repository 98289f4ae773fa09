package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/higuga/higuga/internal/api"
	"github.com/higuga/higuga/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarizeOrders(t *testing.T) {
	t.Parallel()

	orders := []model.Order{
		{Total: dec("100.50"), Discount: dec("10"), PaymentMethod: model.PaymentCash},
		{Total: dec("49.50"), Discount: dec("0"), PaymentMethod: model.PaymentCard},
		{Total: dec("25.00"), Discount: dec("2.50"), PaymentMethod: model.PaymentCash},
	}

	s := SummarizeOrders(orders)
	require.True(t, s.TotalProfit.Equal(dec("175.00")), "profit = %s", s.TotalProfit)
	require.True(t, s.TotalDiscount.Equal(dec("12.50")), "discount = %s", s.TotalDiscount)
	require.Equal(t, 2, s.CashCount)
	require.Equal(t, 1, s.CardCount)
}

func TestSummarizeOrders_Empty(t *testing.T) {
	t.Parallel()

	s := SummarizeOrders(nil)
	require.True(t, s.TotalProfit.IsZero())
	require.True(t, s.TotalDiscount.IsZero())
	require.Zero(t, s.CashCount)
	require.Zero(t, s.CardCount)
}

func TestSummarizeSales(t *testing.T) {
	t.Parallel()

	sales := []model.Sale{
		{Total: dec("30"), Discount: dec("5"), PaymentMethod: model.PaymentCash, Status: model.StatusPaid},
		{Total: dec("70"), Discount: dec("0"), PaymentMethod: model.PaymentCard},
		{Total: dec("15.25"), Discount: dec("0.25"), PaymentMethod: model.PaymentCash, Status: model.StatusPaid},
		// unfinished sale: counted into profit but not into any method bucket
		{Total: dec("9"), Discount: dec("0")},
	}

	s := SummarizeSales(sales)
	require.True(t, s.TotalProfit.Equal(dec("124.25")), "profit = %s", s.TotalProfit)
	require.True(t, s.TotalDiscount.Equal(dec("5.25")), "discount = %s", s.TotalDiscount)
	require.True(t, s.TotalPaid.Equal(dec("45.25")), "paid = %s", s.TotalPaid)
	require.Equal(t, 2, s.CashCount)
	require.Equal(t, 1, s.CardCount)
}

func TestSummarizeRemovals(t *testing.T) {
	t.Parallel()

	removals := []api.ProductRemoval{
		{ProductName: "Brahma 600ml", QuantityRemoved: 3},
		{ProductName: "Skol lata", QuantityRemoved: 2},
		{ProductName: "Brahma 600ml", QuantityRemoved: 4},
		{ProductName: "Antarctica lata", QuantityRemoved: 2},
	}

	s := SummarizeRemovals(removals)
	require.Equal(t, 11, s.TotalRemoved)
	require.Equal(t, []ProductTotal{
		{ProductName: "Brahma 600ml", Quantity: 7},
		{ProductName: "Antarctica lata", Quantity: 2},
		{ProductName: "Skol lata", Quantity: 2},
	}, s.ByProduct)
}

func TestSummarizeRemovals_Empty(t *testing.T) {
	t.Parallel()

	s := SummarizeRemovals(nil)
	require.Zero(t, s.TotalRemoved)
	require.Empty(t, s.ByProduct)
}

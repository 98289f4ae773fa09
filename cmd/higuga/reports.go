package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/higuga/higuga/internal/money"
	"github.com/higuga/higuga/internal/report"
)

func (a *app) cmdAdminReports(ctx context.Context, args []string) {
	if len(args) < 1 {
		usage()
	}
	sub := args[0]
	args = args[1:]

	fs := flag.NewFlagSet("admin reports "+sub, flag.ExitOnError)
	dateStr := fs.String("date", "", "anchor date DD/MM/YYYY (default today)")
	window := fs.String("window", string(report.WindowDay), "day, week or month")
	_ = fs.Parse(args)

	date := time.Now()
	if *dateStr != "" {
		parsed, err := time.ParseInLocation("02/01/2006", *dateStr, time.Local)
		if err != nil {
			fail(fmt.Errorf("bad -date: %w", err))
		}
		date = parsed
	}
	switch report.Window(*window) {
	case report.WindowDay, report.WindowWeek, report.WindowMonth:
	default:
		fail(fmt.Errorf("window must be day, week or month"))
	}

	switch sub {
	case "profit-orders":
		orders, err := a.client.FinishedOrders(ctx, date, *window)
		if err != nil {
			fail(err)
		}
		s := report.SummarizeOrders(orders)
		fmt.Printf("orders:   %d\n", len(orders))
		fmt.Printf("profit:   %s\n", money.FormatBRL(s.TotalProfit))
		fmt.Printf("discount: %s\n", money.FormatBRL(s.TotalDiscount))
		fmt.Printf("cash:     %d  card: %d\n", s.CashCount, s.CardCount)

	case "profit-sales":
		sales, err := a.client.FinishedSales(ctx, date, *window)
		if err != nil {
			fail(err)
		}
		s := report.SummarizeSales(sales)
		fmt.Printf("sales:    %d\n", len(sales))
		fmt.Printf("profit:   %s\n", money.FormatBRL(s.TotalProfit))
		fmt.Printf("discount: %s\n", money.FormatBRL(s.TotalDiscount))
		fmt.Printf("paid:     %s\n", money.FormatBRL(s.TotalPaid))
		fmt.Printf("cash:     %d  card: %d\n", s.CashCount, s.CardCount)

	case "removals":
		removals, err := a.client.ProductRemovals(ctx, date, *window)
		if err != nil {
			fail(err)
		}
		s := report.SummarizeRemovals(removals)
		fmt.Printf("total removed: %d\n", s.TotalRemoved)
		for _, p := range s.ByProduct {
			fmt.Printf("  %-30s %d\n", p.ProductName, p.Quantity)
		}

	default:
		usage()
	}
}

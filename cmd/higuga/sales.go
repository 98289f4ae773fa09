package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/higuga/higuga/internal/api"
	"github.com/higuga/higuga/internal/errs"
	"github.com/higuga/higuga/internal/model"
	"github.com/higuga/higuga/internal/money"
	"github.com/higuga/higuga/internal/notify"
	"github.com/higuga/higuga/internal/paginate"
)

// saleTotals applies the register rules: subtotal is total minus discount and
// must not go negative; cash sales must hand over at least the subtotal, and
// change is whatever exceeds it. Card sales ignore moneyReceived.
func saleTotals(total, discount, moneyReceived decimal.Decimal, paymentMethod string) (subtotal, change decimal.Decimal, err error) {
	subtotal = total.Sub(discount)
	if subtotal.IsNegative() {
		return decimal.Zero, decimal.Zero, errs.ErrDiscountExceedsTotal
	}
	if paymentMethod == model.PaymentCash {
		if moneyReceived.LessThan(subtotal) {
			return decimal.Zero, decimal.Zero, errs.ErrInsufficientPayment
		}
		change = moneyReceived.Sub(subtotal)
	}
	return subtotal, change, nil
}

func (a *app) cmdAdminSales(ctx context.Context, args []string) {
	sub := "unfinished"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "new":
		a.cmdNewSale(ctx, args)

	case "unfinished":
		fs := flag.NewFlagSet("admin sales unfinished", flag.ExitOnError)
		searchWord := fs.String("search", "", "filter by client name")
		page := fs.Int("page", 0, "page number (0-based)")
		_ = fs.Parse(args)

		skip := page0(*page) * adminPageSize
		sales, err := a.client.UnfinishedSales(ctx, *searchWord, adminPageSize, skip)
		if err != nil {
			fail(err)
		}
		for _, s := range sales.Items {
			fmt.Printf("%s  %-30s %10s  %s\n",
				s.ID, s.ClientName, money.FormatBRL(s.Total), s.CreatedAt.Format("02/01/2006 15:04"))
		}
		printPager(paginate.New(skip, adminPageSize, sales.Size))

	case "finalize":
		a.cmdFinalizeSale(ctx, args)

	default:
		usage()
	}
}

// cmdNewSale scans barcodes interactively, then records the sale. Without a
// payment method the sale stays unfinished for later completion at the
// register.
func (a *app) cmdNewSale(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("admin sales new", flag.ExitOnError)
	clientName := fs.String("client", "", "client name")
	payment := fs.String("m", "", "CARTAO or DINHEIRO (omit to leave unfinished)")
	discountStr := fs.String("discount", "", "discount, e.g. 5,00")
	moneyStr := fs.String("money", "", "cash received, e.g. 50,00")
	_ = fs.Parse(args)
	if *clientName == "" {
		fmt.Fprintln(os.Stderr, "need -client")
		os.Exit(1)
	}
	if *payment != "" && *payment != model.PaymentCard && *payment != model.PaymentCash {
		fail(fmt.Errorf("payment method must be %s or %s", model.PaymentCard, model.PaymentCash))
	}

	var (
		lines []api.OrderLine
		total decimal.Decimal
	)
	fmt.Fprintln(os.Stderr, "scan barcodes one per line ('qty*barcode' for multiples), ^D to finish")
	for {
		line := a.prompt("barcode")
		if line == "" {
			break
		}
		qty := 1
		barcode := line
		if n, rest, ok := strings.Cut(line, "*"); ok {
			if _, err := fmt.Sscanf(n, "%d", &qty); err != nil || qty < 1 {
				notify.Error(a.toast, "Quantidade inválida", line)
				continue
			}
			barcode = rest
		}

		product, err := a.client.ProductByBarcode(ctx, barcode)
		if err != nil {
			if api.IsNotFound(err) {
				notify.Error(a.toast, "Produto não encontrado", barcode)
				continue
			}
			fail(err)
		}
		if qty > product.Stock {
			notify.Error(a.toast, "Quantidade indisponível", product.Name)
			continue
		}

		lines = append(lines, api.OrderLine{
			ProductID: product.ID.String(),
			Quantity:  qty,
			Price:     product.Price.String(),
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(qty))))
		fmt.Fprintf(os.Stderr, "  %dx %-30s subtotal %s\n", qty, product.Name, money.FormatBRL(total))
	}
	if len(lines) == 0 {
		fail(fmt.Errorf("no products scanned"))
	}

	discount := decimal.Zero
	if *discountStr != "" {
		d, err := money.ParseBRL(*discountStr)
		if err != nil {
			fail(fmt.Errorf("bad -discount: %w", err))
		}
		discount = d
	}
	received := decimal.Zero
	if *moneyStr != "" {
		m, err := money.ParseBRL(*moneyStr)
		if err != nil {
			fail(fmt.Errorf("bad -money: %w", err))
		}
		received = m
	}

	subtotal, change, err := saleTotals(total, discount, received, *payment)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDiscountExceedsTotal):
			notify.Error(a.toast, "Desconto inválido", "o desconto excedeu o total da compra")
		case errors.Is(err, errs.ErrInsufficientPayment):
			notify.Error(a.toast, "Pagamento insuficiente", "dinheiro recebido menor que o total")
		}
		os.Exit(1)
	}

	submission := api.SaleSubmission{
		Products:      lines,
		ClientName:    *clientName,
		PaymentMethod: *payment,
	}
	if !discount.IsZero() {
		submission.Discount = discount.String()
	}
	if *payment == model.PaymentCash {
		submission.MoneyReceived = received.String()
	}

	sale, err := a.client.CreateSale(ctx, submission)
	if err != nil {
		fail(err)
	}
	notify.Success(a.toast, "Venda registrada")
	fmt.Printf("sale %s  total %s", sale.ID, money.FormatBRL(subtotal))
	if *payment == model.PaymentCash && change.IsPositive() {
		fmt.Printf("  change %s", money.FormatBRL(change))
	}
	if *payment == "" {
		fmt.Print("  (unfinished)")
	}
	fmt.Println()
}

func (a *app) cmdFinalizeSale(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("admin sales finalize", flag.ExitOnError)
	id := fs.String("id", "", "sale id")
	payment := fs.String("m", "", "CARTAO or DINHEIRO")
	moneyStr := fs.String("money", "", "cash received, e.g. 50,00")
	_ = fs.Parse(args)
	saleID, err := uuid.FromString(*id)
	if err != nil {
		fail(fmt.Errorf("bad -id: %w", err))
	}
	if *payment != model.PaymentCard && *payment != model.PaymentCash {
		fail(fmt.Errorf("payment method must be %s or %s", model.PaymentCard, model.PaymentCash))
	}

	received := ""
	if *payment == model.PaymentCash {
		if *moneyStr == "" {
			fmt.Fprintln(os.Stderr, "need -money for cash payment")
			os.Exit(1)
		}
		m, err := money.ParseBRL(*moneyStr)
		if err != nil {
			fail(fmt.Errorf("bad -money: %w", err))
		}
		received = m.String()
	}

	if err := a.client.FinalizeSale(ctx, saleID, *payment, received); err != nil {
		fail(err)
	}
	notify.Success(a.toast, "Venda finalizada")
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gofrs/uuid/v5"

	"github.com/higuga/higuga/internal/api"
	"github.com/higuga/higuga/internal/errs"
	"github.com/higuga/higuga/internal/model"
	"github.com/higuga/higuga/internal/money"
	"github.com/higuga/higuga/internal/notify"
)

func (a *app) cmdCatalog(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	search := fs.String("search", "", "filter by name")
	category := fs.String("category", "", "filter by category id")
	_ = fs.Parse(args)

	var (
		products []model.Product
		err      error
	)
	if *search == "" && *category == "" {
		products, err = a.client.ListProducts(ctx)
	} else {
		categoryID := uuid.Nil
		if *category != "" {
			categoryID, err = uuid.FromString(*category)
			if err != nil {
				fail(fmt.Errorf("bad -category: %w", err))
			}
		}
		products, err = a.client.SearchProducts(ctx, *search, categoryID)
	}
	if err != nil {
		fail(err)
	}

	for _, p := range products {
		if p.Hidden {
			continue
		}
		fmt.Printf("%s  %-30s %10s  stock=%d\n", p.ID, p.Name, money.FormatBRL(p.Price), p.Stock)
	}
}

func (a *app) cmdCategories(ctx context.Context) {
	categories, err := a.client.ListCategories(ctx)
	if err != nil {
		fail(err)
	}
	printJSON(categories)
}

func (a *app) cmdCart(ctx context.Context, args []string) {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "show":
		items := a.cart.Items()
		if len(items) == 0 {
			fmt.Println("cart is empty")
			return
		}
		for _, it := range items {
			fmt.Printf("%s  %-30s %dx %10s = %10s\n",
				it.ID, it.Name, it.Quantity, money.FormatBRL(it.Price), money.FormatBRL(it.Subtotal()))
		}
		fmt.Printf("items: %d  total: %s", a.cart.Quantity(), money.FormatBRL(a.cart.Total()))
		if pm := a.cart.PaymentMethod(); pm != "" {
			fmt.Printf("  payment: %s", pm)
		}
		fmt.Println()

	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		barcode := fs.String("barcode", "", "product barcode")
		id := fs.String("id", "", "product id")
		qty := fs.Int("q", 1, "quantity")
		_ = fs.Parse(args)

		product, err := a.findProduct(ctx, *barcode, *id)
		if err != nil {
			fail(err)
		}
		if err := a.cart.Add(product, *qty); err != nil {
			if errors.Is(err, errs.ErrInsufficientStock) {
				notify.Error(a.toast, "Quantidade indisponível", "estoque insuficiente")
				os.Exit(1)
			}
			fail(err)
		}
		fmt.Printf("added %dx %s\n", *qty, product.Name)

	case "inc", "dec", "rm":
		fs := flag.NewFlagSet("cart "+sub, flag.ExitOnError)
		id := fs.String("id", "", "product id")
		_ = fs.Parse(args)
		itemID, err := uuid.FromString(*id)
		if err != nil {
			fail(fmt.Errorf("bad -id: %w", err))
		}

		switch sub {
		case "inc":
			if err := a.cart.Increment(itemID); err != nil {
				if errors.Is(err, errs.ErrInsufficientStock) {
					notify.Error(a.toast, "Quantidade indisponível", "estoque insuficiente")
					os.Exit(1)
				}
				fail(err)
			}
		case "dec":
			err = a.cart.Decrement(itemID)
		case "rm":
			err = a.cart.Remove(itemID)
		}
		if err != nil {
			fail(err)
		}
		fmt.Printf("items: %d  total: %s\n", a.cart.Quantity(), money.FormatBRL(a.cart.Total()))

	case "payment":
		fs := flag.NewFlagSet("cart payment", flag.ExitOnError)
		method := fs.String("m", "", "CARTAO or DINHEIRO")
		_ = fs.Parse(args)
		if *method != model.PaymentCard && *method != model.PaymentCash {
			fail(fmt.Errorf("payment method must be %s or %s", model.PaymentCard, model.PaymentCash))
		}
		if err := a.cart.ChoosePayment(*method); err != nil {
			fail(err)
		}
		fmt.Println("payment method set to", *method)

	case "clear":
		if err := a.cart.Clean(); err != nil {
			fail(err)
		}
		fmt.Println("cart cleared")

	default:
		usage()
	}
}

// findProduct resolves -barcode or -id to a catalog product.
func (a *app) findProduct(ctx context.Context, barcode, id string) (model.Product, error) {
	if barcode != "" {
		return a.client.ProductByBarcode(ctx, barcode)
	}
	if id == "" {
		return model.Product{}, fmt.Errorf("need -barcode or -id")
	}
	productID, err := uuid.FromString(id)
	if err != nil {
		return model.Product{}, fmt.Errorf("bad -id: %w", err)
	}
	products, err := a.client.ListProducts(ctx)
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range products {
		if p.ID == productID {
			return p, nil
		}
	}
	return model.Product{}, fmt.Errorf("product %s: %w", id, errs.ErrNotFound)
}

func (a *app) cmdCheckout(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	discount := fs.String("discount", "", "discount, e.g. 5,00")
	_ = fs.Parse(args)

	items := a.cart.Items()
	if len(items) == 0 {
		notify.Error(a.toast, "Carrinho vazio", "adicione produtos antes de finalizar")
		os.Exit(1)
	}
	payment := a.cart.PaymentMethod()
	if payment == "" {
		notify.Error(a.toast, "Forma de pagamento", "escolha com: higuga cart payment -m ...")
		os.Exit(1)
	}
	addr := a.sess.Address()
	if addr.ZipCode == "" {
		notify.Error(a.toast, "Endereço de entrega", "escolha com: higuga addresses select")
		os.Exit(1)
	}

	submission := api.OrderSubmission{
		Products:      api.CartLines(items),
		PaymentMethod: payment,
		ZipCode:       addr.ZipCode,
		City:          addr.City,
		Address:       addr.Address,
	}
	if *discount != "" {
		d, err := money.ParseBRL(*discount)
		if err != nil {
			fail(fmt.Errorf("bad -discount: %w", err))
		}
		if d.GreaterThan(a.cart.Total()) {
			notify.Error(a.toast, "Desconto inválido", "o desconto excedeu o total da compra")
			os.Exit(1)
		}
		submission.Discount = d.String()
	}

	order, err := a.client.CreateOrder(ctx, submission)
	if err != nil {
		fail(err)
	}
	if err := a.cart.Clean(); err != nil {
		fail(err)
	}
	notify.Success(a.toast, "Pedido realizado")
	fmt.Printf("order %s  total %s  status %s\n", order.ID, money.FormatBRL(order.Total), order.Status)
}

func (a *app) cmdMyOrders(ctx context.Context) {
	orders, err := a.client.MyOrders(ctx)
	if err != nil {
		fail(err)
	}
	if len(orders) == 0 {
		fmt.Println("no orders yet")
		return
	}
	for _, o := range orders {
		fmt.Printf("%s  %s  %-16s %10s  %s\n",
			o.ID, o.CreatedAt.Format("02/01/2006 15:04"), o.Status,
			money.FormatBRL(o.Total), o.PaymentMethod)
	}
}

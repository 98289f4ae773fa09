package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/higuga/higuga/internal/api"
	"github.com/higuga/higuga/internal/debounce"
	"github.com/higuga/higuga/internal/model"
	"github.com/higuga/higuga/internal/money"
	"github.com/higuga/higuga/internal/notify"
	"github.com/higuga/higuga/internal/paginate"
	"github.com/higuga/higuga/internal/search"
)

const adminPageSize = 15

func (a *app) cmdAdmin(ctx context.Context, area string, args []string) {
	switch area {
	case "products":
		a.cmdAdminProducts(ctx, args)
	case "categories":
		a.cmdAdminCategories(ctx, args)
	case "clients":
		a.cmdAdminClients(ctx, args)
	case "orders":
		a.cmdAdminOrders(ctx, args)
	case "sales":
		a.cmdAdminSales(ctx, args)
	case "reports":
		a.cmdAdminReports(ctx, args)
	default:
		usage()
	}
}

func (a *app) cmdAdminProducts(ctx context.Context, args []string) {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		products, err := a.client.ListProducts(ctx)
		if err != nil {
			fail(err)
		}
		for _, p := range products {
			flag := " "
			if p.Hidden {
				flag = "H"
			}
			fmt.Printf("%s %s  %-30s %10s  stock=%-4d barcode=%s\n",
				flag, p.ID, p.Name, money.FormatBRL(p.Price), p.Stock, p.Barcode)
		}

	case "search":
		fs := flag.NewFlagSet("admin products search", flag.ExitOnError)
		word := fs.String("w", "", "search word (omit for interactive mode)")
		category := fs.String("category", "", "category id")
		_ = fs.Parse(args)

		categoryID := uuid.Nil
		if *category != "" {
			id, err := uuid.FromString(*category)
			if err != nil {
				fail(fmt.Errorf("bad -category: %w", err))
			}
			categoryID = id
		}

		query := func(w string) {
			products, err := a.client.SearchProducts(ctx, w, categoryID)
			if err != nil {
				notify.Error(a.toast, "Erro na busca", err.Error())
				return
			}
			for _, p := range products {
				fmt.Printf("%s  %-30s %10s  stock=%d\n", p.ID, p.Name, money.FormatBRL(p.Price), p.Stock)
			}
		}

		if *word != "" {
			query(*word)
			return
		}
		interactiveSearch(os.Stdin, query)

	case "add", "edit":
		fs := flag.NewFlagSet("admin products "+sub, flag.ExitOnError)
		id := fs.String("id", "", "product id (edit only)")
		name := fs.String("name", "", "product name")
		price := fs.String("price", "", "price, e.g. 12,50")
		stock := fs.Int("stock", 0, "stock quantity")
		category := fs.String("category", "", "category id")
		barcode := fs.String("barcode", "", "barcode")
		image := fs.String("image", "", "image file path")
		_ = fs.Parse(args)
		if *name == "" || *price == "" || *category == "" {
			fmt.Fprintln(os.Stderr, "need -name -price -category")
			os.Exit(1)
		}

		parsedPrice, err := money.ParseBRL(*price)
		if err != nil {
			fail(fmt.Errorf("bad -price: %w", err))
		}
		categoryID, err := uuid.FromString(*category)
		if err != nil {
			fail(fmt.Errorf("bad -category: %w", err))
		}

		input := api.ProductInput{
			Name:       *name,
			Price:      parsedPrice,
			Stock:      *stock,
			CategoryID: categoryID,
			Barcode:    *barcode,
		}
		if *image != "" {
			data, err := os.ReadFile(*image)
			if err != nil {
				fail(err)
			}
			input.Image = data
			input.ImageName = *image
		}

		var product model.Product
		if sub == "edit" {
			input.ID, err = uuid.FromString(*id)
			if err != nil {
				fail(fmt.Errorf("bad -id: %w", err))
			}
			product, err = a.client.UpdateProduct(ctx, input)
		} else {
			product, err = a.client.CreateProduct(ctx, input)
		}
		if err != nil {
			fail(err)
		}
		notify.Success(a.toast, "Produto salvo")
		printJSON(product)

	case "hide":
		fs := flag.NewFlagSet("admin products hide", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		_ = fs.Parse(args)
		productID, err := uuid.FromString(*id)
		if err != nil {
			fail(fmt.Errorf("bad -id: %w", err))
		}
		product, err := a.client.ToggleProductHidden(ctx, productID)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s hidden=%v\n", product.Name, product.Hidden)

	case "remove-stock":
		fs := flag.NewFlagSet("admin products remove-stock", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		qty := fs.Int("q", 0, "quantity to write off")
		_ = fs.Parse(args)
		productID, err := uuid.FromString(*id)
		if err != nil {
			fail(fmt.Errorf("bad -id: %w", err))
		}
		if *qty <= 0 {
			fail(fmt.Errorf("need -q > 0"))
		}

		product, err := a.findProduct(ctx, "", productID.String())
		if err != nil {
			fail(err)
		}
		if err := a.client.RemoveProductQuantity(ctx, product.ID, product.Name, *qty); err != nil {
			fail(err)
		}
		notify.Success(a.toast, "Baixa de estoque registrada")

	default:
		usage()
	}
}

// interactiveSearch reads one query per line and re-queries through a
// trailing-edge debouncer, so held-down keystrokes piped in bulk collapse
// into one request. EOF flushes the pending query and stops the timer.
func interactiveSearch(in io.Reader, query func(word string)) {
	store := search.New()
	d := debounce.New(debounce.DefaultDelay, func() {
		query(store.Word())
	})
	defer d.Cancel()

	fmt.Fprintln(os.Stderr, "type to search, ^D to quit")
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		store.SetWord(strings.TrimSpace(scanner.Text()))
		d.Call()
	}
	d.Flush()
}

func (a *app) cmdAdminCategories(ctx context.Context, args []string) {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		fs := flag.NewFlagSet("admin categories list", flag.ExitOnError)
		word := fs.String("w", "", "filter by name")
		_ = fs.Parse(args)

		var (
			categories []model.Category
			err        error
		)
		if *word == "" {
			categories, err = a.client.ListCategories(ctx)
		} else {
			categories, err = a.client.SearchCategories(ctx, *word)
		}
		if err != nil {
			fail(err)
		}
		printJSON(categories)

	case "add":
		fs := flag.NewFlagSet("admin categories add", flag.ExitOnError)
		name := fs.String("name", "", "category name")
		_ = fs.Parse(args)
		if *name == "" {
			fmt.Fprintln(os.Stderr, "need -name")
			os.Exit(1)
		}
		category, err := a.client.CreateCategory(ctx, *name)
		if err != nil {
			fail(err)
		}
		notify.Success(a.toast, "Categoria criada")
		printJSON(category)

	case "edit":
		fs := flag.NewFlagSet("admin categories edit", flag.ExitOnError)
		id := fs.String("id", "", "category id")
		name := fs.String("name", "", "new name")
		_ = fs.Parse(args)
		categoryID, err := uuid.FromString(*id)
		if err != nil {
			fail(fmt.Errorf("bad -id: %w", err))
		}
		if *name == "" {
			fmt.Fprintln(os.Stderr, "need -name")
			os.Exit(1)
		}
		category, err := a.client.UpdateCategory(ctx, categoryID, *name)
		if err != nil {
			fail(err)
		}
		notify.Success(a.toast, "Categoria atualizada")
		printJSON(category)

	default:
		usage()
	}
}

func (a *app) cmdAdminClients(ctx context.Context, args []string) {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		users, err := a.client.ListUsers(ctx)
		if err != nil {
			fail(err)
		}
		for _, u := range users {
			role := "client"
			if u.IsAdmin {
				role = "admin"
			}
			fmt.Printf("%s  %-30s %-30s %s\n", u.ID, u.Name, u.Email, role)
		}

	case "toggle-admin":
		fs := flag.NewFlagSet("admin clients toggle-admin", flag.ExitOnError)
		id := fs.String("id", "", "user id")
		_ = fs.Parse(args)
		userID, err := uuid.FromString(*id)
		if err != nil {
			fail(fmt.Errorf("bad -id: %w", err))
		}
		user, err := a.client.ToggleAdmin(ctx, userID)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s admin=%v\n", user.Name, user.IsAdmin)

	default:
		usage()
	}
}

func (a *app) cmdAdminOrders(ctx context.Context, args []string) {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		fs := flag.NewFlagSet("admin orders list", flag.ExitOnError)
		status := fs.String("status", model.StatusProcessing, "status lane")
		page := fs.Int("page", 0, "page number (0-based)")
		_ = fs.Parse(args)

		skip := page0(*page) * adminPageSize
		orders, err := a.client.OrdersByStatus(ctx, *status, adminPageSize, skip)
		if err != nil {
			fail(err)
		}
		for _, o := range orders.Items {
			fmt.Printf("%s  %s  %10s  %s, %s\n",
				o.ID, o.CreatedAt.Format("02/01/2006 15:04"),
				money.FormatBRL(o.Total), o.Address, o.City)
		}
		printPager(paginate.New(skip, adminPageSize, orders.Size))

	case "set-status":
		fs := flag.NewFlagSet("admin orders set-status", flag.ExitOnError)
		id := fs.String("id", "", "order id")
		status := fs.String("status", "", "new status")
		_ = fs.Parse(args)
		orderID, err := uuid.FromString(*id)
		if err != nil {
			fail(fmt.Errorf("bad -id: %w", err))
		}
		if !validStatus(*status) {
			fail(fmt.Errorf("status must be one of: %s, %s, %s, %s",
				model.StatusProcessing, model.StatusTransporting, model.StatusFinished, model.StatusCanceled))
		}
		if err := a.client.UpdateOrderStatus(ctx, orderID, *status); err != nil {
			fail(err)
		}
		notify.Success(a.toast, "Status atualizado")

	default:
		usage()
	}
}

func validStatus(s string) bool {
	switch s {
	case model.StatusProcessing, model.StatusTransporting, model.StatusFinished, model.StatusCanceled:
		return true
	}
	return false
}

func page0(page int) int {
	if page < 0 {
		return 0
	}
	return page
}

// printPager renders the page indicator only when there is more than one
// page, mirroring when the paginator control is worth showing.
func printPager(w paginate.Window) {
	if !w.Multiple() {
		return
	}
	fmt.Printf("page %d/%d (%d total)\n", w.Page()+1, w.Pages(), w.Size)
}

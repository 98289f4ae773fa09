// Command higuga is a terminal client for the Higuga beverage store: the
// storefront (catalog, cart, checkout) plus the back-office screens
// (products, categories, clients, orders, register sales, reports).
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/higuga/higuga/internal/api"
	"github.com/higuga/higuga/internal/cart"
	"github.com/higuga/higuga/internal/cep"
	"github.com/higuga/higuga/internal/guard"
	"github.com/higuga/higuga/internal/localstore"
	"github.com/higuga/higuga/internal/notify"
	"github.com/higuga/higuga/internal/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// app bundles the wired stores and clients every command works against.
type app struct {
	client *api.Client
	cep    *cep.Client
	sess   *session.Store
	cart   *cart.Store
	toast  notify.Notifier
	log    *zap.Logger
	in     *bufio.Reader
}

func usage() {
	fmt.Fprintf(os.Stderr, `higuga CLI
Usage:
  higuga [-api URL] [-data DIR] [-v] <cmd> [args]

Storefront:
  version
  register         -name -email -phone -cep [-city -street] -p
  login            -email -p
  logout
  forgot-password  -email
  reset-password   -token -p
  profile          [show] | edit | password
  addresses        list | add | edit | select
  catalog          [-search WORD] [-category ID]
  categories
  cart             show | add | inc | dec | rm | payment | clear
  checkout         [-discount V]
  my-orders

Back office:
  admin products   list | search | add | edit | hide | remove-stock
  admin categories list | add | edit
  admin clients    list | toggle-admin
  admin orders     list | set-status
  admin sales      new | unfinished | finalize
  admin reports    profit-orders | profit-sales | removals
`)
	os.Exit(2)
}

func main() {
	// .env keeps the API base out of shell history; flags still win
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("HIGUGA_API_URL", "http://localhost:3333"), "API base URL")
	cepURL := flag.String("cep", envOr("HIGUGA_CEP_URL", ""), "postal lookup base URL (empty = public ViaCEP)")
	dataDir := flag.String("data", envOr("HIGUGA_DATA_DIR", localstore.DefaultDir()), "local state directory")
	verbose := flag.Bool("v", false, "log API requests")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fail(err)
		}
		log = l
		defer log.Sync() //nolint:errcheck
	}

	storage := localstore.NewFile(*dataDir)
	client := api.New(*apiURL, api.WithLogger(log))
	a := &app{
		client: client,
		cep:    cep.New(*cepURL, nil),
		sess:   session.New(storage, client, log),
		cart:   cart.New(storage),
		toast:  notify.Writer{W: os.Stderr},
		log:    log,
		in:     bufio.NewReader(os.Stdin),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	switch cmd {
	case "version":
		fmt.Printf("higuga %s (%s)\n", version, buildDate)

	case "register":
		a.cmdRegister(ctx, args)
	case "login":
		a.gate(guard.Route{Path: guard.PathLogin})
		a.cmdLogin(ctx, args)
	case "logout":
		a.cmdLogout(ctx)
	case "forgot-password":
		a.cmdForgotPassword(ctx, args)
	case "reset-password":
		a.cmdResetPassword(ctx, args)

	case "profile":
		a.gate(guard.Route{Path: "/profile", Private: true})
		a.cmdProfile(ctx, args)
	case "addresses":
		a.gate(guard.Route{Path: "/addresses", Private: true})
		a.cmdAddresses(ctx, args)

	case "catalog":
		a.cmdCatalog(ctx, args)
	case "categories":
		a.cmdCategories(ctx)
	case "cart":
		a.cmdCart(ctx, args)
	case "checkout":
		a.gate(guard.Route{Path: "/order-resume", Private: true})
		a.cmdCheckout(ctx, args)
	case "my-orders":
		a.gate(guard.Route{Path: "/orders", Private: true})
		a.cmdMyOrders(ctx)

	case "admin":
		if len(args) < 1 {
			usage()
		}
		a.gateAdmin(ctx, "/admin/"+args[0])
		a.cmdAdmin(ctx, args[0], args[1:])

	default:
		usage()
	}
}

// gate applies the route rules before a command runs; anything but a render
// decision aborts with a pointer to where the visitor belongs.
func (a *app) gate(route guard.Route) {
	switch guard.Evaluate(route, a.sess.User()) {
	case guard.Render:
	case guard.RedirectLogin:
		fail(fmt.Errorf("not signed in; run: higuga login"))
	default:
		if a.sess.User() == nil {
			fail(fmt.Errorf("not signed in; run: higuga login"))
		}
		fail(fmt.Errorf("already signed in; run: higuga logout"))
	}
}

// gateAdmin additionally re-validates the session server-side; a stale admin
// flag forces a sign-out.
func (a *app) gateAdmin(ctx context.Context, path string) {
	route := guard.Route{Path: path, Private: true, Admin: true}
	switch guard.CheckSession(ctx, route, a.sess, a.client) {
	case guard.Render:
	case guard.RedirectLogin:
		notify.Error(a.toast, "Sessão expirada", "faça login novamente")
		fail(fmt.Errorf("session check failed"))
	default:
		fail(fmt.Errorf("admin access required"))
	}
}

// ---- helpers ----

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	var se *api.StatusError
	if errors.As(err, &se) {
		fmt.Fprintf(os.Stderr, "api error: status=%d msg=%s\n", se.Status, se.Message)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// prompt reads one trimmed line from stdin after printing label.
func (a *app) prompt(label string) string {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

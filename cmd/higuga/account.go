package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/higuga/higuga/internal/api"
	"github.com/higuga/higuga/internal/model"
	"github.com/higuga/higuga/internal/notify"
)

func (a *app) cmdRegister(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	phone := fs.String("phone", "", "phone number")
	pass := fs.String("p", "", "password")
	zip := fs.String("cep", "", "postal code (auto-fills city/street)")
	city := fs.String("city", "", "city (overrides lookup)")
	street := fs.String("street", "", "street and number (overrides lookup)")
	_ = fs.Parse(args)
	if *name == "" || *email == "" || *pass == "" || *zip == "" {
		fmt.Fprintln(os.Stderr, "need -name -email -p -cep")
		os.Exit(1)
	}

	if *city == "" || *street == "" {
		addr, err := a.cep.Lookup(ctx, *zip)
		if err != nil {
			notify.Error(a.toast, "CEP não encontrado", err.Error())
			fail(err)
		}
		if *city == "" {
			*city = addr.City
		}
		if *street == "" {
			*street = addr.Street
		}
	}

	reg := api.Registration{
		Name:                 *name,
		Email:                *email,
		PhoneNumber:          *phone,
		Password:             *pass,
		PasswordConfirmation: *pass,
		ZipCode:              *zip,
		City:                 *city,
		Address:              *street,
	}
	if err := a.client.Register(ctx, reg); err != nil {
		fail(err)
	}
	notify.Success(a.toast, "Cadastro realizado")
	fmt.Println("ok")
}

func (a *app) cmdLogin(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	pass := fs.String("p", "", "password")
	_ = fs.Parse(args)
	if *email == "" {
		fmt.Fprintln(os.Stderr, "need -email")
		os.Exit(1)
	}
	if *pass == "" {
		*pass = a.prompt("password")
	}

	if err := a.sess.SignIn(ctx, *email, *pass); err != nil {
		notify.Error(a.toast, "Erro na autenticação", "cheque as credenciais")
		fail(err)
	}
	user := a.sess.User()
	fmt.Printf("signed in as %s", user.Name)
	if user.IsAdmin {
		fmt.Print(" (admin)")
	}
	fmt.Println()
}

func (a *app) cmdLogout(ctx context.Context) {
	// the cart belongs to the device session too
	if err := a.cart.Clean(); err != nil {
		fail(err)
	}
	if err := a.sess.SignOut(ctx); err != nil {
		fail(err)
	}
	fmt.Println("signed out")
}

func (a *app) cmdForgotPassword(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("forgot-password", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	_ = fs.Parse(args)
	if *email == "" {
		fmt.Fprintln(os.Stderr, "need -email")
		os.Exit(1)
	}
	if err := a.client.ForgotPassword(ctx, *email); err != nil {
		fail(err)
	}
	notify.Success(a.toast, "E-mail de recuperação enviado")
}

func (a *app) cmdResetPassword(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
	token := fs.String("token", "", "token from the recovery e-mail")
	pass := fs.String("p", "", "new password")
	_ = fs.Parse(args)
	if *token == "" || *pass == "" {
		fmt.Fprintln(os.Stderr, "need -token and -p")
		os.Exit(1)
	}
	if err := a.client.ResetPassword(ctx, *token, *pass, *pass); err != nil {
		fail(err)
	}
	notify.Success(a.toast, "Senha alterada")
}

func (a *app) cmdProfile(ctx context.Context, args []string) {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}
	user := a.sess.User()

	switch sub {
	case "show":
		printJSON(user)

	case "edit":
		fs := flag.NewFlagSet("profile edit", flag.ExitOnError)
		name := fs.String("name", user.Name, "full name")
		email := fs.String("email", user.Email, "email")
		phone := fs.String("phone", user.PhoneNumber, "phone number")
		_ = fs.Parse(args)

		updated, err := a.client.UpdateProfile(ctx, api.ProfileUpdate{
			Name: *name, Email: *email, PhoneNumber: *phone,
		})
		if err != nil {
			fail(err)
		}
		if err := a.sess.UpdateUser(updated); err != nil {
			fail(err)
		}
		notify.Success(a.toast, "Perfil atualizado")

	case "password":
		old := a.prompt("current password")
		newPass := a.prompt("new password")
		confirm := a.prompt("confirm new password")
		if newPass != confirm {
			fail(fmt.Errorf("password confirmation does not match"))
		}
		updated, err := a.client.UpdateProfile(ctx, api.ProfileUpdate{
			Name: user.Name, Email: user.Email, PhoneNumber: user.PhoneNumber,
			OldPassword: old, Password: newPass,
		})
		if err != nil {
			fail(err)
		}
		if err := a.sess.UpdateUser(updated); err != nil {
			fail(err)
		}
		notify.Success(a.toast, "Senha alterada")

	default:
		usage()
	}
}

func (a *app) cmdAddresses(ctx context.Context, args []string) {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		user := a.sess.User()
		selected := a.sess.Address()
		type row struct {
			model.Address
			Selected bool `json:"selected"`
		}
		rows := make([]row, 0, len(user.Addresses))
		for _, addr := range user.Addresses {
			rows = append(rows, row{Address: addr, Selected: addr.ID == selected.ID})
		}
		printJSON(rows)

	case "add":
		fs := flag.NewFlagSet("addresses add", flag.ExitOnError)
		zip := fs.String("cep", "", "postal code")
		city := fs.String("city", "", "city (overrides lookup)")
		street := fs.String("street", "", "street and number (overrides lookup)")
		_ = fs.Parse(args)
		if *zip == "" {
			fmt.Fprintln(os.Stderr, "need -cep")
			os.Exit(1)
		}

		if *city == "" || *street == "" {
			looked, err := a.cep.Lookup(ctx, *zip)
			if err != nil {
				notify.Error(a.toast, "CEP não encontrado", err.Error())
				fail(err)
			}
			if *city == "" {
				*city = looked.City
			}
			if *street == "" {
				*street = looked.Street
			}
		}
		if *street == "" {
			*street = a.prompt("street and number")
		}

		addr, err := a.client.NewAddress(ctx, *zip, *city, *street)
		if err != nil {
			fail(err)
		}
		a.applyAddress(addr)
		notify.Success(a.toast, "Endereço cadastrado")
		printJSON(addr)

	case "edit":
		fs := flag.NewFlagSet("addresses edit", flag.ExitOnError)
		id := fs.String("id", "", "address id")
		zip := fs.String("cep", "", "postal code")
		city := fs.String("city", "", "city")
		street := fs.String("street", "", "street and number")
		main := fs.Bool("main", false, "mark as main address")
		_ = fs.Parse(args)
		addrID, err := uuid.FromString(*id)
		if err != nil {
			fail(fmt.Errorf("bad -id: %w", err))
		}

		updated, err := a.client.UpdateAddress(ctx, model.Address{
			ID: addrID, ZipCode: *zip, City: *city, Address: *street, IsMain: *main,
		})
		if err != nil {
			fail(err)
		}
		a.applyAddress(updated)
		notify.Success(a.toast, "Endereço atualizado")
		printJSON(updated)

	case "select":
		fs := flag.NewFlagSet("addresses select", flag.ExitOnError)
		id := fs.String("id", "", "address id")
		_ = fs.Parse(args)
		addrID, err := uuid.FromString(*id)
		if err != nil {
			fail(fmt.Errorf("bad -id: %w", err))
		}

		user := a.sess.User()
		for _, addr := range user.Addresses {
			if addr.ID == addrID {
				if err := a.sess.ChooseAddress(addr); err != nil {
					fail(err)
				}
				fmt.Printf("delivering to %s, %s (%s)\n", addr.Address, addr.City, addr.ZipCode)
				return
			}
		}
		fail(fmt.Errorf("address %s not found on this account", addrID))

	default:
		usage()
	}
}

// applyAddress folds the address returned by a create/update call into the
// cached user record, keeping the local address book in sync without another
// round trip. A persist failure only logs: the server-side mutation already
// succeeded.
func (a *app) applyAddress(addr model.Address) {
	user := a.sess.User()
	if user == nil {
		return
	}
	replaced := false
	for i := range user.Addresses {
		if user.Addresses[i].ID == addr.ID {
			user.Addresses[i] = addr
			replaced = true
		} else if addr.IsMain {
			user.Addresses[i].IsMain = false
		}
	}
	if !replaced {
		user.Addresses = append(user.Addresses, addr)
	}
	if err := a.sess.UpdateUser(*user); err != nil {
		a.log.Warn("address book persist failed", zap.Error(err))
	}
}

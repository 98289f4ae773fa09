package main

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/higuga/higuga/internal/api"
	"github.com/higuga/higuga/internal/errs"
	"github.com/higuga/higuga/internal/localstore"
	"github.com/higuga/higuga/internal/model"
	"github.com/higuga/higuga/internal/session"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func Test_saleTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		total        string
		discount     string
		money        string
		payment      string
		wantSubtotal string
		wantChange   string
		wantErr      error
	}{
		{"card ignores money", "100", "10", "0", model.PaymentCard, "90", "0", nil},
		{"cash exact", "50", "0", "50", model.PaymentCash, "50", "0", nil},
		{"cash with change", "30", "5", "50", model.PaymentCash, "25", "25", nil},
		{"cash short", "30", "0", "20", model.PaymentCash, "", "", errs.ErrInsufficientPayment},
		{"discount exceeds total", "10", "15", "0", model.PaymentCard, "", "", errs.ErrDiscountExceedsTotal},
		{"unfinished sale skips money check", "30", "0", "0", "", "30", "0", nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			subtotal, change, err := saleTotals(
				dec(t, tt.total), dec(t, tt.discount), dec(t, tt.money), tt.payment)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !subtotal.Equal(dec(t, tt.wantSubtotal)) {
				t.Errorf("subtotal = %s, want %s", subtotal, tt.wantSubtotal)
			}
			if !change.Equal(dec(t, tt.wantChange)) {
				t.Errorf("change = %s, want %s", change, tt.wantChange)
			}
		})
	}
}

func Test_envOr(t *testing.T) {
	t.Setenv("HIGUGA_TEST_ENV", "from-env")
	if got := envOr("HIGUGA_TEST_ENV", "fallback"); got != "from-env" {
		t.Fatalf("envOr set = %q", got)
	}
	if got := envOr("HIGUGA_TEST_ENV_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("envOr missing = %q", got)
	}
}

func Test_page0(t *testing.T) {
	t.Parallel()

	if page0(-3) != 0 {
		t.Fatal("negative pages clamp to 0")
	}
	if page0(4) != 4 {
		t.Fatal("positive pages pass through")
	}
}

func Test_validStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		model.StatusProcessing, model.StatusTransporting, model.StatusFinished, model.StatusCanceled,
	} {
		if !validStatus(s) {
			t.Errorf("validStatus(%q) = false", s)
		}
	}
	if validStatus("ENVIADO") {
		t.Error("unknown status accepted")
	}
}

func signedInApp(t *testing.T, user model.User) (*app, *localstore.Memory) {
	t.Helper()
	storage := localstore.NewMemory()
	if err := storage.Save(localstore.KeyUser, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	client := api.New("http://unused")
	return &app{
		client: client,
		sess:   session.New(storage, client, nil),
		log:    zap.NewNop(),
	}, storage
}

func Test_applyAddress(t *testing.T) {
	t.Parallel()

	existing := model.Address{ID: uuid.Must(uuid.NewV4()), ZipCode: "36940-000", City: "Manhumirim", Address: "Rua A, 10", IsMain: true}
	a, storage := signedInApp(t, model.User{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      "Maria",
		Addresses: []model.Address{existing},
	})

	// a freshly created address is appended
	added := model.Address{ID: uuid.Must(uuid.NewV4()), ZipCode: "36944-000", City: "Durandé", Address: "Rua B, 20"}
	a.applyAddress(added)
	user := a.sess.User()
	if len(user.Addresses) != 2 {
		t.Fatalf("addresses = %d, want 2", len(user.Addresses))
	}

	// an edit replaces in place; promoting it to main demotes the rest
	edited := added
	edited.Address = "Rua B, 21"
	edited.IsMain = true
	a.applyAddress(edited)
	user = a.sess.User()
	if len(user.Addresses) != 2 {
		t.Fatalf("edit duplicated the address: %d entries", len(user.Addresses))
	}
	if user.Addresses[1].Address != "Rua B, 21" || !user.Addresses[1].IsMain {
		t.Fatalf("edit not applied: %+v", user.Addresses[1])
	}
	if user.Addresses[0].IsMain {
		t.Fatal("previous main address kept its flag")
	}

	// the merged record is persisted, not just cached
	var saved model.User
	if err := storage.Load(localstore.KeyUser, &saved); err != nil {
		t.Fatalf("load persisted user: %v", err)
	}
	if len(saved.Addresses) != 2 || !saved.Addresses[1].IsMain {
		t.Fatalf("persisted address book out of sync: %+v", saved.Addresses)
	}
}

func Test_interactiveSearch_CoalescesAndFlushes(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		queries []string
	)
	in := strings.NewReader("bra\nbrah\nbrahma\n")
	interactiveSearch(in, func(word string) {
		mu.Lock()
		queries = append(queries, word)
		mu.Unlock()
	})

	// EOF flushes the pending debounce, so the last word always queries
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(queries)
		last := ""
		if n > 0 {
			last = queries[n-1]
		}
		mu.Unlock()
		if n >= 1 && last == "brahma" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("queries = %v, want last %q", queries, "brahma")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

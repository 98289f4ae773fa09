package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/higuga/higuga/internal/api"
	"github.com/higuga/higuga/internal/cart"
	"github.com/higuga/higuga/internal/errs"
	"github.com/higuga/higuga/internal/localstore"
	"github.com/higuga/higuga/internal/model"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func testUser() model.User {
	return model.User{
		ID:    uuid.Must(uuid.NewV4()),
		Name:  "Maria",
		Email: "maria@example.com",
		Addresses: []model.Address{
			{ID: uuid.Must(uuid.NewV4()), ZipCode: "36940-000", City: "Manhumirim", Address: "Rua A, 10"},
			{ID: uuid.Must(uuid.NewV4()), ZipCode: "36944-000", City: "Durandé", Address: "Rua B, 20", IsMain: true},
		},
	}
}

func TestNew_RehydratesValidSession(t *testing.T) {
	t.Parallel()

	storage := localstore.NewMemory()
	user := testUser()
	token := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, storage.Save(localstore.KeyUser, user))
	require.NoError(t, storage.Save(localstore.KeyToken, token))
	require.NoError(t, storage.Save(localstore.KeyAddress, user.Addresses[0]))

	s := New(storage, api.New("http://unused"), nil)

	got := s.User()
	require.NotNil(t, got)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, token, s.Token())
	require.Equal(t, user.Addresses[0], s.Address())
}

func TestNew_DiscardsExpiredToken(t *testing.T) {
	t.Parallel()

	storage := localstore.NewMemory()
	require.NoError(t, storage.Save(localstore.KeyUser, testUser()))
	require.NoError(t, storage.Save(localstore.KeyToken, signedToken(t, time.Now().Add(-time.Minute))))

	s := New(storage, api.New("http://unused"), nil)

	require.Nil(t, s.User())
	require.Empty(t, s.Token())
	require.ErrorIs(t, storage.Load(localstore.KeyToken, new(string)), errs.ErrNotFound)
	require.ErrorIs(t, storage.Load(localstore.KeyUser, new(model.User)), errs.ErrNotFound)
}

func TestNew_TokenWithoutExpiryIsKept(t *testing.T) {
	t.Parallel()

	storage := localstore.NewMemory()
	user := testUser()
	claims := jwt.RegisteredClaims{Subject: user.ID.String()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	require.NoError(t, storage.Save(localstore.KeyUser, user))
	require.NoError(t, storage.Save(localstore.KeyToken, token))

	s := New(storage, api.New("http://unused"), nil)
	require.NotNil(t, s.User())
	require.Equal(t, token, s.Token())
}

func TestSignIn_PersistsSessionAndMainAddress(t *testing.T) {
	t.Parallel()

	user := testUser()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sessions/csrf-token":
			json.NewEncoder(w).Encode(map[string]string{"csrfToken": "csrf-1"})
		case "/sessions":
			require.Equal(t, http.MethodPost, r.Method)
			json.NewEncoder(w).Encode(map[string]any{"user": user, "token": "tok-1"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	storage := localstore.NewMemory()
	s := New(storage, api.New(srv.URL), nil)

	require.NoError(t, s.SignIn(context.Background(), user.Email, "secret"))

	require.Equal(t, "tok-1", s.Token())
	require.Equal(t, user.Addresses[1], s.Address(), "main address should be selected")

	var savedToken string
	require.NoError(t, storage.Load(localstore.KeyToken, &savedToken))
	require.Equal(t, "tok-1", savedToken)
	var savedUser model.User
	require.NoError(t, storage.Load(localstore.KeyUser, &savedUser))
	require.Equal(t, user.ID, savedUser.ID)
}

func TestSignOut_ClearsLocalStateEvenOnRemoteFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	storage := localstore.NewMemory()
	user := testUser()
	require.NoError(t, storage.Save(localstore.KeyUser, user))
	require.NoError(t, storage.Save(localstore.KeyToken, signedToken(t, time.Now().Add(time.Hour))))

	s := New(storage, api.New(srv.URL), nil)
	require.NotNil(t, s.User())

	err := s.SignOut(context.Background())
	require.Error(t, err)
	require.Nil(t, s.User())
	require.Empty(t, s.Token())
	require.ErrorIs(t, storage.Load(localstore.KeyToken, new(string)), errs.ErrNotFound)
}

func TestSignOut_ClearsCartState(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	storage := localstore.NewMemory()
	require.NoError(t, storage.Save(localstore.KeyUser, testUser()))
	require.NoError(t, storage.Save(localstore.KeyToken, signedToken(t, time.Now().Add(time.Hour))))

	basket := cart.New(storage)
	product := model.Product{ID: uuid.Must(uuid.NewV4()), Name: "Brahma 600ml", Price: decimal.RequireFromString("8.50"), Stock: 10}
	require.NoError(t, basket.Add(product, 2))
	require.NoError(t, basket.ChoosePayment(model.PaymentCash))

	s := New(storage, api.New(srv.URL), nil)
	require.NoError(t, s.SignOut(context.Background()))

	reloaded := cart.New(storage)
	require.Zero(t, reloaded.Quantity(), "cart must be empty after sign-out")
	require.Empty(t, reloaded.Items())
	require.Empty(t, reloaded.PaymentMethod())
}

func TestNew_ExpiredTokenClearsCartState(t *testing.T) {
	t.Parallel()

	storage := localstore.NewMemory()
	require.NoError(t, storage.Save(localstore.KeyUser, testUser()))
	require.NoError(t, storage.Save(localstore.KeyToken, signedToken(t, time.Now().Add(-time.Minute))))

	basket := cart.New(storage)
	product := model.Product{ID: uuid.Must(uuid.NewV4()), Name: "Skol lata", Price: decimal.RequireFromString("4.50"), Stock: 6}
	require.NoError(t, basket.Add(product, 3))
	require.NoError(t, basket.ChoosePayment(model.PaymentCard))

	s := New(storage, api.New("http://unused"), nil)
	require.Nil(t, s.User())

	reloaded := cart.New(storage)
	require.Zero(t, reloaded.Quantity())
	require.Empty(t, reloaded.PaymentMethod())
}

func TestSignOut_UnauthorizedRemoteIsNotAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	storage := localstore.NewMemory()
	s := New(storage, api.New(srv.URL), nil)

	require.NoError(t, s.SignOut(context.Background()))
	require.Nil(t, s.User())
}

func TestChooseAddressAndUpdateUserPersist(t *testing.T) {
	t.Parallel()

	storage := localstore.NewMemory()
	s := New(storage, api.New("http://unused"), nil)

	addr := model.Address{ZipCode: "36947-000", City: "Martins Soares", Address: "Rua C, 30"}
	require.NoError(t, s.ChooseAddress(addr))
	require.Equal(t, addr, s.Address())
	var saved model.Address
	require.NoError(t, storage.Load(localstore.KeyAddress, &saved))
	require.Equal(t, addr, saved)

	user := testUser()
	require.NoError(t, s.UpdateUser(user))
	got := s.User()
	require.NotNil(t, got)
	require.Equal(t, user.Name, got.Name)
}

func TestRefresh_RepersistsUserAndToken(t *testing.T) {
	t.Parallel()

	user := testUser()
	var orderCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders/my-orders":
			orderCalls++
			if orderCalls == 1 {
				http.Error(w, `{"message":"jwt expired"}`, http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode([]model.Order{})
		case "/sessions/token":
			json.NewEncoder(w).Encode(map[string]any{"user": user, "token": "tok-2"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	storage := localstore.NewMemory()
	require.NoError(t, storage.Save(localstore.KeyUser, user))
	require.NoError(t, storage.Save(localstore.KeyToken, signedToken(t, time.Now().Add(time.Hour))))

	client := api.New(srv.URL)
	s := New(storage, client, nil)

	_, err := client.MyOrders(context.Background())
	require.NoError(t, err)

	require.Equal(t, "tok-2", s.Token())
	var savedToken string
	require.NoError(t, storage.Load(localstore.KeyToken, &savedToken))
	require.Equal(t, "tok-2", savedToken)
}

func TestSignIn_RemoteFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sessions/csrf-token" {
			json.NewEncoder(w).Encode(map[string]string{"csrfToken": "csrf-1"})
			return
		}
		http.Error(w, `{"message":"bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := New(localstore.NewMemory(), api.New(srv.URL), nil)
	err := s.SignIn(context.Background(), "x@example.com", "wrong")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnauthorized))
	require.Nil(t, s.User())
}

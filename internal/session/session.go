// Package session implements the identity state container: the signed-in
// user, the bearer token and the address selected for checkout, persisted to
// local device storage and rehydrated at construction.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/higuga/higuga/internal/api"
	"github.com/higuga/higuga/internal/errs"
	"github.com/higuga/higuga/internal/localstore"
	"github.com/higuga/higuga/internal/model"
)

// Store holds the session. A nil user means signed out.
type Store struct {
	mu      sync.Mutex
	storage localstore.Store
	client  *api.Client
	log     *zap.Logger

	user    *model.User
	address model.Address
	token   string
}

// New constructs a session rehydrated synchronously from storage. A persisted
// token whose embedded expiry has passed is discarded rather than trusted,
// leaving the session signed out. A successful transparent token refresh by
// the API client is re-persisted through this store.
func New(storage localstore.Store, client *api.Client, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{storage: storage, client: client, log: log}

	var user model.User
	if err := storage.Load(localstore.KeyUser, &user); err == nil {
		var token string
		_ = storage.Load(localstore.KeyToken, &token)
		if token != "" && tokenExpired(token) {
			s.log.Info("discarding expired session token")
			for _, key := range sessionKeys {
				_ = storage.Delete(key)
			}
		} else {
			s.user = &user
			s.token = token
			var addr model.Address
			if err := storage.Load(localstore.KeyAddress, &addr); err == nil {
				s.address = addr
			}
			client.SetAuth(token, user.ID)
		}
	}

	client.OnRefresh(func(u model.User, token string) {
		s.mu.Lock()
		s.user = &u
		s.token = token
		s.mu.Unlock()
		_ = storage.Save(localstore.KeyUser, u)
		_ = storage.Save(localstore.KeyToken, token)
		client.SetAuth(token, u.ID)
	})
	return s
}

// tokenExpired reads the token's exp claim without verifying the signature;
// only the server can verify, the client just avoids trusting stale state.
func tokenExpired(token string) bool {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Now().After(claims.ExpiresAt.Time)
}

// User returns the signed-in user, or nil.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Address returns the address selected for checkout.
func (s *Store) Address() model.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// Token returns the current bearer token ("" when signed out).
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SignIn authenticates and persists the returned user and token. The main
// address becomes the selected address for checkout.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	user, token, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("session: sign in: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	if main := user.MainAddress(); main != nil {
		s.address = *main
	} else {
		s.address = model.Address{}
	}
	addr := s.address
	s.mu.Unlock()

	s.client.SetAuth(token, user.ID)
	if err := s.storage.Save(localstore.KeyUser, user); err != nil {
		return err
	}
	if err := s.storage.Save(localstore.KeyToken, token); err != nil {
		return err
	}
	return s.storage.Save(localstore.KeyAddress, addr)
}

// sessionKeys is everything a sign-out wipes from device storage. The cart
// and its payment method belong to the device session too: a later
// rehydration must see an empty cart.
var sessionKeys = []string{
	localstore.KeyUser,
	localstore.KeyToken,
	localstore.KeyAddress,
	localstore.KeyCartProducts,
	localstore.KeyCartQuantity,
	localstore.KeyPaymentMethod,
}

// SignOut tells the server goodbye and clears local state either way: a
// failed remote logout is reported but never leaves the device signed in.
func (s *Store) SignOut(ctx context.Context) error {
	remoteErr := s.client.Logout(ctx)

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.address = model.Address{}
	s.mu.Unlock()

	s.client.ClearAuth()
	for _, key := range sessionKeys {
		if err := s.storage.Delete(key); err != nil {
			return err
		}
	}
	if remoteErr != nil && !errors.Is(remoteErr, errs.ErrUnauthorized) {
		return fmt.Errorf("session: remote logout: %w", remoteErr)
	}
	return nil
}

// UpdateUser replaces the stored user record after a profile edit.
func (s *Store) UpdateUser(user model.User) error {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return s.storage.Save(localstore.KeyUser, user)
}

// ChooseAddress overwrites the selected checkout address. The server-side
// "is main" flag is untouched.
func (s *Store) ChooseAddress(addr model.Address) error {
	s.mu.Lock()
	s.address = addr
	s.mu.Unlock()
	return s.storage.Save(localstore.KeyAddress, addr)
}

package api

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/higuga/higuga/internal/model"
)

// Registration is the sign-up payload: account fields plus the first address.
type Registration struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phone_number"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	ZipCode              string `json:"zip_code"`
	City                 string `json:"city"`
	Address              string `json:"address"`
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, r Registration) error {
	return c.doJSON(ctx, http.MethodPost, "/users", nil, r, nil)
}

// ProfileUpdate carries editable profile fields; password fields ride along
// only when the user is changing it.
type ProfileUpdate struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	OldPassword string `json:"old_password,omitempty"`
	Password    string `json:"password,omitempty"`
}

// UpdateProfile replaces the profile and returns the updated user record.
func (c *Client) UpdateProfile(ctx context.Context, p ProfileUpdate) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, http.MethodPut, "/users/profile", nil, p, &u)
	return u, err
}

// NewAddress registers another shipping address and returns it with its id.
func (c *Client) NewAddress(ctx context.Context, zipCode, city, address string) (model.Address, error) {
	body := map[string]string{"zip_code": zipCode, "city": city, "address": address}
	var a model.Address
	err := c.doJSON(ctx, http.MethodPost, "/users/new-address", nil, body, &a)
	return a, err
}

// UpdateAddress edits an existing address.
func (c *Client) UpdateAddress(ctx context.Context, a model.Address) (model.Address, error) {
	var out model.Address
	err := c.doJSON(ctx, http.MethodPut, "/users/update-address", nil, a, &out)
	return out, err
}

// ListUsers returns every client account (admin screen).
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := c.doJSON(ctx, http.MethodGet, "/users/all", nil, nil, &users)
	return users, err
}

// ToggleAdmin flips a user's admin flag and returns the updated record.
func (c *Client) ToggleAdmin(ctx context.Context, userID uuid.UUID) (model.User, error) {
	body := map[string]string{"user_id": userID.String()}
	var u model.User
	err := c.doJSON(ctx, http.MethodPatch, "/users/admin", nil, body, &u)
	return u, err
}

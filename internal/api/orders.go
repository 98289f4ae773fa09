package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/higuga/higuga/internal/model"
)

// OrderSubmission is the checkout payload: cart lines plus the delivery
// address snapshot and the chosen payment method.
type OrderSubmission struct {
	Products      []OrderLine `json:"products"`
	PaymentMethod string      `json:"payment_method"`
	Discount      string      `json:"discount"`
	ZipCode       string      `json:"zip_code"`
	City          string      `json:"city"`
	Address       string      `json:"address"`
}

// CreateOrder places a storefront order.
func (c *Client) CreateOrder(ctx context.Context, s OrderSubmission) (model.Order, error) {
	if s.Discount == "" {
		s.Discount = decimal.Zero.String()
	}
	var out model.Order
	err := c.doJSON(ctx, http.MethodPost, "/orders", nil, s, &out)
	return out, err
}

// MyOrders lists the signed-in user's orders.
func (c *Client) MyOrders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	err := c.doJSON(ctx, http.MethodGet, "/orders/my-orders", nil, nil, &out)
	return out, err
}

// OrdersByStatus pages through orders in one back-office status lane.
func (c *Client) OrdersByStatus(ctx context.Context, status string, take, skip int) (Paged[model.Order], error) {
	q := url.Values{
		"status": {status},
		"take":   {strconv.Itoa(take)},
		"skip":   {strconv.Itoa(skip)},
	}
	var out Paged[model.Order]
	err := c.doJSON(ctx, http.MethodGet, "/orders/status", q, nil, &out)
	return out, err
}

// UpdateOrderStatus moves an order to another status lane.
func (c *Client) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	body := map[string]string{"id": id.String(), "status": status}
	return c.doJSON(ctx, http.MethodPatch, "/orders/status", nil, body, nil)
}

// FinishedOrders returns orders finished inside the day/week/month window
// anchored at date (profit report).
func (c *Client) FinishedOrders(ctx context.Context, date time.Time, window string) ([]model.Order, error) {
	q := url.Values{
		"order_date": {date.Format(time.RFC3339)},
		"time":       {window},
	}
	var out []model.Order
	err := c.doJSON(ctx, http.MethodGet, "/orders/finished-date", q, nil, &out)
	return out, err
}

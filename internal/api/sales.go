package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/higuga/higuga/internal/model"
)

// SaleSubmission records an in-person sale. MoneyReceived rides along only
// for cash payments; an empty PaymentMethod leaves the sale unfinished.
type SaleSubmission struct {
	Products      []OrderLine `json:"products"`
	ClientName    string      `json:"client_name"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	Discount      string      `json:"discount,omitempty"`
	MoneyReceived string      `json:"money_received,omitempty"`
}

// CreateSale records a register sale.
func (c *Client) CreateSale(ctx context.Context, s SaleSubmission) (model.Sale, error) {
	var out model.Sale
	err := c.doJSON(ctx, http.MethodPost, "/sales", nil, s, &out)
	return out, err
}

// UnfinishedSales pages through open sales, optionally filtered by client
// name.
func (c *Client) UnfinishedSales(ctx context.Context, search string, take, skip int) (Paged[model.Sale], error) {
	q := url.Values{
		"take": {strconv.Itoa(take)},
		"skip": {strconv.Itoa(skip)},
	}
	if search != "" {
		q.Set("search", search)
	}
	var out Paged[model.Sale]
	err := c.doJSON(ctx, http.MethodGet, "/sales/unfinished", q, nil, &out)
	return out, err
}

// FinalizeSale completes an unfinished sale with its payment. moneyReceived
// is ignored for card payments.
func (c *Client) FinalizeSale(ctx context.Context, saleID uuid.UUID, paymentMethod, moneyReceived string) error {
	body := map[string]any{
		"sale_id":        saleID.String(),
		"payment_method": paymentMethod,
	}
	if paymentMethod == model.PaymentCash {
		body["money_received"] = moneyReceived
	}
	return c.doJSON(ctx, http.MethodPut, "/sales", nil, body, nil)
}

// FinishedSales returns sales finished inside the day/week/month window
// anchored at date (profit report).
func (c *Client) FinishedSales(ctx context.Context, date time.Time, window string) ([]model.Sale, error) {
	q := url.Values{
		"sale_date": {date.Format(time.RFC3339)},
		"time":      {window},
	}
	var out []model.Sale
	err := c.doJSON(ctx, http.MethodGet, "/sales/finished-date", q, nil, &out)
	return out, err
}

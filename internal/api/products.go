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

// ListProducts returns the whole visible catalog.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := c.doJSON(ctx, http.MethodGet, "/products", nil, nil, &out)
	return out, err
}

// SearchProducts filters the catalog by free text and/or category; empty
// parameters are omitted from the query.
func (c *Client) SearchProducts(ctx context.Context, searchWord string, categoryID uuid.UUID) ([]model.Product, error) {
	q := url.Values{}
	if searchWord != "" {
		q.Set("search_word", searchWord)
	}
	if categoryID != uuid.Nil {
		q.Set("category_id", categoryID.String())
	}
	var out []model.Product
	err := c.doJSON(ctx, http.MethodGet, "/products/search", q, nil, &out)
	return out, err
}

// ProductByBarcode resolves a scanned or typed barcode to a product.
func (c *Client) ProductByBarcode(ctx context.Context, barcode string) (model.Product, error) {
	q := url.Values{"barcode": {barcode}}
	var out model.Product
	err := c.doJSON(ctx, http.MethodGet, "/products/barcode", q, nil, &out)
	return out, err
}

// ProductInput is the create/update payload; Image is attached as a
// multipart file part when present.
type ProductInput struct {
	ID         uuid.UUID
	Name       string
	Price      decimal.Decimal
	Stock      int
	CategoryID uuid.UUID
	Barcode    string
	Image      []byte
	ImageName  string
}

func (p ProductInput) fields() map[string]string {
	f := map[string]string{
		"name":        p.Name,
		"price":       p.Price.String(),
		"stock":       strconv.Itoa(p.Stock),
		"category_id": p.CategoryID.String(),
		"barcode":     p.Barcode,
	}
	if p.ID != uuid.Nil {
		f["id"] = p.ID.String()
	}
	return f
}

// CreateProduct registers a catalog product (multipart, optional image).
func (c *Client) CreateProduct(ctx context.Context, p ProductInput) (model.Product, error) {
	var out model.Product
	err := c.doMultipart(ctx, http.MethodPost, "/products", p.fields(), "product_image", p.ImageName, p.Image, &out)
	return out, err
}

// UpdateProduct edits a catalog product (multipart, optional new image).
func (c *Client) UpdateProduct(ctx context.Context, p ProductInput) (model.Product, error) {
	var out model.Product
	err := c.doMultipart(ctx, http.MethodPut, "/products", p.fields(), "product_image", p.ImageName, p.Image, &out)
	return out, err
}

// RemoveProductQuantity writes off stock (breakage, loss) and is the source
// for the removal report.
func (c *Client) RemoveProductQuantity(ctx context.Context, productID uuid.UUID, name string, quantity int) error {
	body := map[string]any{
		"product_id":       productID.String(),
		"product_name":     name,
		"quantity_removed": quantity,
	}
	return c.doJSON(ctx, http.MethodPatch, "/products/removal-quantity", nil, body, nil)
}

// ToggleProductHidden flips catalog visibility and returns the product.
func (c *Client) ToggleProductHidden(ctx context.Context, productID uuid.UUID) (model.Product, error) {
	body := map[string]string{"id": productID.String()}
	var out model.Product
	err := c.doJSON(ctx, http.MethodPatch, "/products/hidden", nil, body, &out)
	return out, err
}

// ProductRemoval is one stock write-off entry of the removal report.
type ProductRemoval struct {
	ID              uuid.UUID `json:"id"`
	ProductName     string    `json:"product_name"`
	QuantityRemoved int       `json:"quantity_removed"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProductRemovals lists stock write-offs inside the day/week/month window
// anchored at date, for the removal report screen.
func (c *Client) ProductRemovals(ctx context.Context, date time.Time, window string) ([]ProductRemoval, error) {
	q := url.Values{
		"date": {date.Format(time.RFC3339)},
		"type": {window},
	}
	var out []ProductRemoval
	err := c.doJSON(ctx, http.MethodGet, "/products/removal-quantity", q, nil, &out)
	return out, err
}

// Package model defines domain entities shared by the stores, the API client and the CLI.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Payment method values accepted by the platform.
const (
	PaymentCard = "CARTAO"
	PaymentCash = "DINHEIRO"
)

// Order/sale status values used by the back office.
const (
	StatusProcessing   = "EM PROCESSAMENTO"
	StatusTransporting = "EM TRANSITO"
	StatusFinished     = "FINALIZADO"
	StatusCanceled     = "CANCELADO"
	StatusPaid         = "PAGO"
)

// Address is a shipping address owned by a user. IsMain marks the default
// address; the address selected for a checkout is tracked separately by the
// session store.
type Address struct {
	ID      uuid.UUID `json:"id"`
	ZipCode string    `json:"zip_code"`
	City    string    `json:"city"`
	Address string    `json:"address"`
	IsMain  bool      `json:"is_main"`
}

// User is the account record returned by the sessions endpoint.
type User struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	IsAdmin     bool      `json:"is_admin"`
	Addresses   []Address `json:"addresses"`
}

// MainAddress returns the address flagged as main, or nil when none is.
func (u *User) MainAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].IsMain {
			return &u.Addresses[i]
		}
	}
	return nil
}

// Product is a catalog entity owned by the server; the client treats it as
// read-mostly reference data.
type Product struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	CategoryID uuid.UUID       `json:"category_id"`
	Barcode    string          `json:"barcode"`
	ImageURL   string          `json:"image_url"`
	Hidden     bool            `json:"hidden"`
}

// Category groups catalog products.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CartItem is one cart line: a product reference plus the requested quantity.
// Quantity stays within [1, Stock] for as long as the line exists.
type CartItem struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"image_url"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price times quantity for the line.
func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// OrderProduct is a line item inside a placed order or sale.
type OrderProduct struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   *Product        `json:"product,omitempty"`
}

// Order is a storefront purchase delivered to an address.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	Discount      decimal.Decimal `json:"discount"`
	ZipCode       string          `json:"zip_code"`
	City          string          `json:"city"`
	Address       string          `json:"address"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	OrderProducts []OrderProduct  `json:"order_products"`
}

// Sale is an in-person sale recorded at the register. A sale without a
// payment method is "unfinished" and awaits completion.
type Sale struct {
	ID            uuid.UUID       `json:"id"`
	ClientName    string          `json:"client_name"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	Discount      decimal.Decimal `json:"discount"`
	MoneyReceived decimal.Decimal `json:"money_received"`
	Change        decimal.Decimal `json:"change"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	SaleProducts  []OrderProduct  `json:"sale_products"`
}

// Unfinished reports whether the sale still awaits a payment method.
func (s Sale) Unfinished() bool { return s.PaymentMethod == "" }

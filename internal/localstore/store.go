// Package localstore is the local device storage port: keyed JSON blobs the
// stores read at construction and write on every mutation.
package localstore

// Keys used by the session and cart stores.
const (
	KeyUser          = "user"
	KeyToken         = "token"
	KeyAddress       = "address"
	KeyCartProducts  = "cart_products"
	KeyCartQuantity  = "cart_quantity"
	KeyPaymentMethod = "payment_method"
)

// Store persists one JSON-serialized value per key. Load returns
// errs.ErrNotFound (wrapped) when the key is absent. Delete of a missing key
// is a no-op.
type Store interface {
	Load(key string, v any) error
	Save(key string, v any) error
	Delete(key string) error
}

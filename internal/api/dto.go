package api

import (
	"encoding/json"
	"fmt"

	"github.com/higuga/higuga/internal/model"
)

// Endpoint paths referenced from more than one place.
const (
	pathSessions = "/sessions"
	pathRefresh  = "/sessions/token"
)

// sessionResponse is the envelope of login and refresh responses.
type sessionResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// csrfResponse carries the anti-forgery token handed out before mutations.
type csrfResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// checkTokenResponse is the session re-validation envelope.
type checkTokenResponse struct {
	IsAdmin bool `json:"is_admin"`
}

// Paged is a slice of rows plus the server-reported total, decoded from the
// API's two-element [rows, count] response arrays.
type Paged[T any] struct {
	Items []T
	Size  int
}

// UnmarshalJSON decodes the [rows, count] tuple.
func (p *Paged[T]) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("paged response: want [rows, count], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Items); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Size)
}

// OrderLine is the wire shape of one line in order and sale submissions.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// CartLines converts cart items into submission lines.
func CartLines(items []model.CartItem) []OrderLine {
	out := make([]OrderLine, 0, len(items))
	for _, it := range items {
		out = append(out, OrderLine{
			ProductID: it.ID.String(),
			Quantity:  it.Quantity,
			Price:     it.Price.String(),
		})
	}
	return out
}

// Package cep looks up Brazilian postal codes against a ViaCEP-compatible
// service to auto-fill address forms.
package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/higuga/higuga/internal/errs"
)

// DefaultBaseURL is the public ViaCEP endpoint.
const DefaultBaseURL = "https://viacep.com.br/ws"

// Address is the slice of the lookup response the address form needs.
type Address struct {
	CEP    string `json:"cep"`
	Street string `json:"logradouro"`
	City   string `json:"localidade"`
	State  string `json:"uf"`
}

// Client queries the lookup service.
type Client struct {
	base  string
	httpc *http.Client
}

// New constructs a Client. An empty baseURL selects the public service.
func New(baseURL string, httpc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// Normalize strips formatting from a postal code and validates it is exactly
// eight digits.
func Normalize(cep string) (string, error) {
	var b strings.Builder
	for _, r := range cep {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '.' || r == ' ':
		default:
			return "", fmt.Errorf("cep: invalid character %q in %q", r, cep)
		}
	}
	digits := b.String()
	if len(digits) != 8 {
		return "", fmt.Errorf("cep: want 8 digits, got %d in %q", len(digits), cep)
	}
	return digits, nil
}

// Lookup resolves a postal code to city and street. A code the service does
// not know maps to errs.ErrNotFound.
func (c *Client) Lookup(ctx context.Context, cep string) (Address, error) {
	digits, err := Normalize(cep)
	if err != nil {
		return Address{}, err
	}

	url := fmt.Sprintf("%s/%s/json/", c.base, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, fmt.Errorf("cep: build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("cep: lookup %s: %w", digits, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Address{}, fmt.Errorf("cep: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("cep: lookup %s: status %d", digits, resp.StatusCode)
	}

	// ViaCEP answers 200 with {"erro": true} for unknown codes.
	var probe struct {
		Erro bool `json:"erro"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Erro {
		return Address{}, fmt.Errorf("cep: %s: %w", digits, errs.ErrNotFound)
	}

	var addr Address
	if err := json.Unmarshal(body, &addr); err != nil {
		return Address{}, fmt.Errorf("cep: decode response: %w", err)
	}
	return addr, nil
}

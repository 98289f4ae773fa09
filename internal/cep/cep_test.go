package cep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/higuga/higuga/internal/errs"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"36940000", "36940000", false},
		{"36940-000", "36940000", false},
		{"36.940 000", "36940000", false},
		{"3694000", "", true},
		{"369400001", "", true},
		{"36940-00a", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if tt.wantErr {
			require.Error(t, err, "Normalize(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "Normalize(%q)", tt.in)
		require.Equal(t, tt.want, got)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/36940000/json/":
			w.Write([]byte(`{"cep":"36940-000","logradouro":"Rua Principal","localidade":"Manhumirim","uf":"MG"}`))
		case "/00000000/json/":
			w.Write([]byte(`{"erro": true}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())

	addr, err := c.Lookup(context.Background(), "36940-000")
	require.NoError(t, err)
	require.Equal(t, "Manhumirim", addr.City)
	require.Equal(t, "Rua Principal", addr.Street)
	require.Equal(t, "MG", addr.State)

	_, err = c.Lookup(context.Background(), "00000-000")
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = c.Lookup(context.Background(), "123")
	require.Error(t, err)
}

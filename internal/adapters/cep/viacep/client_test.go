package viacep

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"remedio-solidario/internal/domain/patients"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LookupCEP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ws/01001000/json/":
			_, _ = io.WriteString(w, `{"cep":"01001-000","logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`)
		case "/ws/99999999/json/":
			_, _ = io.WriteString(w, `{"erro": true}`)
		case "/ws/88888888/json/":
			_, _ = io.WriteString(w, `{"erro": "true"}`)
		case "/ws/77777777/json/":
			_, _ = io.WriteString(w, `{"localidade":"Recife"}`)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	ctx := context.Background()

	addr, err := c.LookupCEP(ctx, "01001-000")
	require.NoError(t, err)
	assert.Equal(t, patients.Address{CEP: "01001-000", Rua: "Praça da Sé", Bairro: "Sé", Cidade: "São Paulo", UF: "SP"}, addr)

	_, err = c.LookupCEP(ctx, "99999-999")
	assert.ErrorIs(t, err, patients.ErrNotFound)
	_, err = c.LookupCEP(ctx, "88888888")
	assert.ErrorIs(t, err, patients.ErrNotFound)

	addr, err = c.LookupCEP(ctx, "77777777")
	require.NoError(t, err)
	assert.Equal(t, "77777-777", addr.CEP)
	assert.Equal(t, "", addr.Rua)
	assert.Equal(t, "Recife", addr.Cidade)

	_, err = c.LookupCEP(ctx, "1234")
	assert.ErrorIs(t, err, patients.ErrIncompleteCEP)

	_, err = c.LookupCEP(ctx, "12345678")
	assert.ErrorIs(t, err, patients.ErrUpstream)
	assert.ErrorIs(t, err, ErrViaCEPUpstream)
}

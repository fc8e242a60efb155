// Package viacep consulta endereços por CEP en viacep.com.br.
package viacep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"remedio-solidario/internal/domain/patients"
	"remedio-solidario/internal/platform/httpclient"
	"remedio-solidario/internal/platform/mask"
)

const DefaultBaseURL = "https://viacep.com.br"

var ErrViaCEPUpstream = errors.New("viacep upstream error")

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Observer httpclient.Observer
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	hc, err := httpclient.NewWithBaseURL(base, timeout)
	if err != nil {
		return nil, err
	}
	hc.Name = "viacep"
	hc.Observer = cfg.Observer
	return &Client{http: hc}, nil
}

type lookupResponse struct {
	CEP        string          `json:"cep"`
	Logradouro string          `json:"logradouro"`
	Bairro     string          `json:"bairro"`
	Localidade string          `json:"localidade"`
	UF         string          `json:"uf"`
	Erro       json.RawMessage `json:"erro"`
}

// notFound: viacep responde 200 con {"erro": true} (o "true") para CEP inexistente.
func (r lookupResponse) notFound() bool {
	v := strings.Trim(strings.TrimSpace(string(r.Erro)), `"`)
	return v == "true"
}

// LookupCEP implementa patients.AddressLookup. Campos ausentes quedan vacíos.
func (c *Client) LookupCEP(ctx context.Context, cep string) (patients.Address, error) {
	digits := mask.Digits(cep)
	if len(digits) != 8 {
		return patients.Address{}, patients.ErrIncompleteCEP
	}

	var out lookupResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/ws/"+digits+"/json/", nil, nil, &out)
	if err != nil {
		if httpclient.StatusOf(err) == http.StatusBadRequest {
			return patients.Address{}, fmt.Errorf("%w: %v", patients.ErrNotFound, err)
		}
		return patients.Address{}, fmt.Errorf("%w: %w: %v", patients.ErrUpstream, ErrViaCEPUpstream, err)
	}
	if out.notFound() {
		return patients.Address{}, patients.ErrNotFound
	}

	resolved := out.CEP
	if resolved == "" {
		resolved = mask.CEP(digits)
	}
	return patients.Address{
		CEP:    resolved,
		Rua:    out.Logradouro,
		Bairro: out.Bairro,
		Cidade: out.Localidade,
		UF:     out.UF,
	}, nil
}

// Package remedios es el cliente del backend REST de Remédio Solidário
// (/pacientes, /medicamentos, /prescricoes, /cadastro).
package remedios

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"remedio-solidario/internal/platform/httpclient"
)

var ErrBackendNotConfigured = errors.New("backend client not configured")

type Config struct {
	BaseURL string
	Timeout time.Duration

	// Observer opcional para métricas de llamadas.
	Observer httpclient.Observer
}

// Client implementa los repositorios de patients, medicaments, accounts
// y el envío de dispensações sobre el mismo httpclient.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.Name = "backend"
	hc.Observer = cfg.Observer
	return &Client{http: hc}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// mapErr traduce el error del httpclient a los sentinels del dominio.
// 409 => conflict, 404 => notFound, el resto => upstream.
func mapErr(err error, conflict, notFound, upstream error) error {
	if err == nil {
		return nil
	}
	switch httpclient.StatusOf(err) {
	case http.StatusConflict:
		if conflict != nil {
			return fmt.Errorf("%w: %v", conflict, err)
		}
	case http.StatusNotFound:
		if notFound != nil {
			return fmt.Errorf("%w: %v", notFound, err)
		}
	}
	return fmt.Errorf("%w: %v", upstream, err)
}

func (c *Client) check(upstream error) error {
	if !c.IsConfigured() {
		return fmt.Errorf("%w: %v", upstream, ErrBackendNotConfigured)
	}
	return nil
}

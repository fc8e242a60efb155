package remedios

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"remedio-solidario/internal/domain/accounts"
)

const accountsPath = "/cadastro"

// FindByCredentials consulta GET /cadastro?email&senha. Solo un 200 con usuario es éxito.
// El backend puede responder el objeto o una lista filtrada; se aceptan ambos.
func (c *Client) FindByCredentials(ctx context.Context, cred accounts.Credentials) (accounts.User, error) {
	if err := c.check(accounts.ErrUpstream); err != nil {
		return accounts.User{}, err
	}
	q := url.Values{}
	q.Set("email", cred.Email)
	q.Set("senha", cred.Senha)

	resp, err := c.http.Do(ctx, http.MethodGet, accountsPath, q, nil, nil)
	if err != nil {
		return accounts.User{}, fmt.Errorf("%w: %v", accounts.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return accounts.User{}, accounts.ErrUserNotFound
	}

	u, ok, err := decodeUser(resp.Body)
	if err != nil {
		return accounts.User{}, fmt.Errorf("%w: %v", accounts.ErrUpstream, err)
	}
	if !ok {
		return accounts.User{}, accounts.ErrUserNotFound
	}
	return u, nil
}

func decodeUser(body []byte) (accounts.User, bool, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return accounts.User{}, false, nil
	}
	if body[0] == '[' {
		var list []accounts.User
		if err := json.Unmarshal(body, &list); err != nil {
			return accounts.User{}, false, err
		}
		if len(list) == 0 {
			return accounts.User{}, false, nil
		}
		return list[0], true, nil
	}
	var u accounts.User
	if err := json.Unmarshal(body, &u); err != nil {
		return accounts.User{}, false, err
	}
	return u, true, nil
}

// RegisterUser hace POST /cadastro. Si el body es el mensaje de nombre repetido
// (texto plano o string JSON) devuelve ErrUsernameTaken, sin importar el status.
func (c *Client) RegisterUser(ctx context.Context, r accounts.Registration) error {
	if err := c.check(accounts.ErrUpstream); err != nil {
		return err
	}
	resp, err := c.http.Do(ctx, http.MethodPost, accountsPath, nil, nil, r)
	if err != nil {
		return fmt.Errorf("%w: %v", accounts.ErrUpstream, err)
	}

	if bodyText(resp.Body) == accounts.UsernameTakenMessage {
		return accounts.ErrUsernameTaken
	}
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return nil
	}
	return fmt.Errorf("%w: status=%d", accounts.ErrUpstream, resp.StatusCode)
}

func bodyText(body []byte) string {
	s := strings.TrimSpace(string(body))
	var decoded string
	if strings.HasPrefix(s, `"`) && json.Unmarshal([]byte(s), &decoded) == nil {
		return decoded
	}
	return s
}

package remedios

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"remedio-solidario/internal/domain/accounts"
	"remedio-solidario/internal/domain/dispensations"
	"remedio-solidario/internal/domain/medicaments"
	"remedio-solidario/internal/domain/patients"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestClient_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.False(t, c.IsConfigured())

	_, err = c.ListPatients(context.Background())
	assert.ErrorIs(t, err, patients.ErrUpstream)
	assert.ErrorIs(t, err, ErrBackendNotConfigured)
}

func TestClient_Patients(t *testing.T) {
	var gotPut patients.Patient
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /pacientes":
			_, _ = io.WriteString(w, `[{"id":1,"nome":"Ana","cpf":"123.456.789-01"}]`)
		case "POST /pacientes":
			w.WriteHeader(http.StatusConflict)
		case "PUT /pacientes/1":
			_ = json.NewDecoder(r.Body).Decode(&gotPut)
			w.WriteHeader(http.StatusOK)
		case "DELETE /pacientes/2":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	ctx := context.Background()

	list, err := c.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Nome)

	err = c.CreatePatient(ctx, patients.Patient{Nome: "Ana"})
	assert.ErrorIs(t, err, patients.ErrConflict)

	updated, err := c.UpdatePatient(ctx, patients.Patient{ID: 1, Nome: "Ana Maria"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Nome)
	assert.Equal(t, "Ana Maria", gotPut.Nome)

	err = c.DeletePatient(ctx, 2)
	assert.ErrorIs(t, err, patients.ErrNotFound)

	err = c.DeletePatient(ctx, 3)
	assert.ErrorIs(t, err, patients.ErrUpstream)
}

func TestClient_Medicaments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /medicamentos":
			_, _ = io.WriteString(w, `[{"id":10,"formula":"Dipirona","quantidade":30,"tarja":"SEM_TARJA","vencimento":"2027-01-31"}]`)
		case "PUT /medicamentos/10":
			_, _ = io.WriteString(w, `{"id":10,"formula":"Dipirona 1g","quantidade":5,"tarja":"AMARELA","vencimento":"2027-01-31"}`)
		case "POST /medicamentos":
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})
	ctx := context.Background()

	list, err := c.ListMedicaments(ctx)
	require.NoError(t, err)
	assert.Equal(t, medicaments.TarjaNone, list[0].Tarja)

	m, err := c.UpdateMedicament(ctx, medicaments.Medicament{ID: 10, Formula: "Dipirona 1g"})
	require.NoError(t, err)
	assert.Equal(t, medicaments.TarjaYellow, m.Tarja)

	require.NoError(t, c.CreateMedicament(ctx, medicaments.Medicament{Formula: "Soro"}))
	assert.ErrorIs(t, c.DeleteMedicament(ctx, 10), medicaments.ErrUpstream)
}

func TestClient_FindByCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("email") == "ana@example.com" && q.Get("senha") == "segredo1":
			_, _ = io.WriteString(w, `{"id":1,"nomeUsuario":"Ana","email":"ana@example.com"}`)
		case q.Get("email") == "lista@example.com":
			_, _ = io.WriteString(w, `[{"id":2,"nomeUsuario":"Lia","email":"lista@example.com"}]`)
		case q.Get("email") == "vazio@example.com":
			_, _ = io.WriteString(w, `[]`)
		case q.Get("email") == "sembody@example.com":
			w.WriteHeader(http.StatusOK)
		case q.Get("email") == "texto@example.com":
			_, _ = io.WriteString(w, `ok`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	u, err := c.FindByCredentials(ctx, accounts.Credentials{Email: "ana@example.com", Senha: "segredo1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.NomeUsuario)

	u, err = c.FindByCredentials(ctx, accounts.Credentials{Email: "lista@example.com", Senha: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)

	_, err = c.FindByCredentials(ctx, accounts.Credentials{Email: "vazio@example.com", Senha: "x"})
	assert.ErrorIs(t, err, accounts.ErrUserNotFound)

	_, err = c.FindByCredentials(ctx, accounts.Credentials{Email: "ana@example.com", Senha: "errada"})
	assert.ErrorIs(t, err, accounts.ErrUserNotFound)

	// 200 sin usuario => 401; 200 con algo que no es usuario => 502
	_, err = c.FindByCredentials(ctx, accounts.Credentials{Email: "sembody@example.com", Senha: "x"})
	assert.ErrorIs(t, err, accounts.ErrUserNotFound)

	_, err = c.FindByCredentials(ctx, accounts.Credentials{Email: "texto@example.com", Senha: "x"})
	assert.ErrorIs(t, err, accounts.ErrUpstream)
}

func TestClient_RegisterUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var reg accounts.Registration
		_ = json.NewDecoder(r.Body).Decode(&reg)
		switch reg.NomeUsuario {
		case "Ana":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, accounts.UsernameTakenMessage)
		case "Lia":
			_, _ = io.WriteString(w, `"`+accounts.UsernameTakenMessage+`"`)
		case "Novo":
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	ctx := context.Background()

	assert.ErrorIs(t, c.RegisterUser(ctx, accounts.Registration{NomeUsuario: "Ana"}), accounts.ErrUsernameTaken)
	assert.ErrorIs(t, c.RegisterUser(ctx, accounts.Registration{NomeUsuario: "Lia"}), accounts.ErrUsernameTaken)
	assert.NoError(t, c.RegisterUser(ctx, accounts.Registration{NomeUsuario: "Novo"}))
	assert.ErrorIs(t, c.RegisterUser(ctx, accounts.Registration{NomeUsuario: "Outro"}), accounts.ErrUpstream)
}

func TestClient_SubmitPrescription(t *testing.T) {
	var got dispensations.Prescription
	status := http.StatusCreated
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prescricoes", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(status)
	})
	ctx := context.Background()

	p := dispensations.Prescription{
		Data:         "2026-10-17",
		Paciente:     patients.Patient{ID: 1, Nome: "Ana"},
		Medicamentos: []dispensations.LineItem{{ID: 10, Formula: "Dipirona", Quantidade: 2}},
	}
	require.NoError(t, c.SubmitPrescription(ctx, p))
	assert.Equal(t, p, got)

	status = http.StatusConflict
	assert.ErrorIs(t, c.SubmitPrescription(ctx, p), dispensations.ErrConflict)

	status = http.StatusInternalServerError
	assert.ErrorIs(t, c.SubmitPrescription(ctx, p), dispensations.ErrUpstream)
}

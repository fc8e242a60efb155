package dispensations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"remedio-solidario/internal/domain/medicaments"
	"remedio-solidario/internal/domain/patients"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDrafts struct {
	mu    sync.Mutex
	items map[string]Draft

	// failReceiptSave hace fallar el guardado del draft con recibo (post-envío).
	failReceiptSave bool
	deleted         int
}

func (r *testDrafts) GetDraft(ctx context.Context, userID string) (Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[userID]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return d.Clone(), nil
}

func (r *testDrafts) SaveDraft(ctx context.Context, d Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReceiptSave && d.Receipt != nil {
		return errors.New("db down")
	}
	r.items[d.UserID] = d.Clone()
	return nil
}

func (r *testDrafts) DeleteDraft(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[userID]; !ok {
		return ErrDraftNotFound
	}
	delete(r.items, userID)
	r.deleted++
	return nil
}

type testBackend struct {
	err  error
	sent []Prescription
}

func (b *testBackend) SubmitPrescription(ctx context.Context, p Prescription) error {
	if b.err != nil {
		return b.err
	}
	b.sent = append(b.sent, p)
	return nil
}

type testPatients struct{ items []patients.Patient }

func (c testPatients) List(ctx context.Context) ([]patients.Patient, error) { return c.items, nil }

func (c testPatients) GetByID(ctx context.Context, id int64) (patients.Patient, error) {
	for _, p := range c.items {
		if p.ID == id {
			return p, nil
		}
	}
	return patients.Patient{}, patients.ErrNotFound
}

type testMedicaments struct {
	items []medicaments.Medicament
	err   error
}

func (c testMedicaments) List(ctx context.Context, _ medicaments.Tarja) ([]medicaments.Medicament, error) {
	return c.items, c.err
}

func (c testMedicaments) GetByID(ctx context.Context, id int64) (medicaments.Medicament, error) {
	for _, m := range c.items {
		if m.ID == id {
			return m, nil
		}
	}
	return medicaments.Medicament{}, medicaments.ErrNotFound
}

type testObserver struct{ outcomes []string }

func (o *testObserver) ObserveDispensation(outcome string) { o.outcomes = append(o.outcomes, outcome) }

type fixture struct {
	svc      *Service
	drafts   *testDrafts
	backend  *testBackend
	observer *testObserver
}

func newFixture() fixture {
	f := fixture{
		drafts:   &testDrafts{items: map[string]Draft{}},
		backend:  &testBackend{},
		observer: &testObserver{},
	}
	f.svc = NewService(Deps{
		Drafts:  f.drafts,
		Backend: f.backend,
		Patients: testPatients{items: []patients.Patient{{
			ID: 1, Nome: "Ana Souza", CPF: "123.456.789-01",
			Rua: "Rua das Flores", Numero: "12", Bairro: "Centro", Cidade: "Recife", UF: "PE", CEP: "50000-000",
		}}},
		Medicaments: testMedicaments{items: []medicaments.Medicament{
			{ID: 10, Formula: "Dipirona 500mg", Quantidade: 100, Tarja: medicaments.TarjaNone, Vencimento: "2027-01-31"},
			{ID: 11, Formula: "Amoxicilina 500mg", Quantidade: 40, Tarja: medicaments.TarjaRed, Vencimento: "2027-03-31"},
		}},
		Observer: f.observer,
	})
	f.svc.now = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }
	ids := 0
	f.svc.newID = func() string {
		ids++
		return "id-" + string(rune('0'+ids))
	}
	return f
}

func TestService_ValidDispensationEndToEnd(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SelectPatient(ctx, "u1", 1)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "u1", 10, 2)
	require.NoError(t, err)
	d, err := f.svc.AddItem(ctx, "u1", 11, 1)
	require.NoError(t, err)
	require.Len(t, d.Items, 2)
	require.NoError(t, d.CanSubmit())

	receipt, err := f.svc.Submit(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, f.backend.sent, 1)
	sent := f.backend.sent[0]
	assert.Equal(t, "2026-10-17", sent.Data)
	assert.Equal(t, int64(1), sent.Paciente.ID)
	assert.Equal(t, []int64{10, 11}, []int64{sent.Medicamentos[0].ID, sent.Medicamentos[1].ID})

	assert.Equal(t, "17/10/2026", receipt.DataFormatada)
	assert.Equal(t, "Sábado, 17 de outubro de 2026", receipt.DataExtenso)
	assert.Equal(t, "Rua das Flores, 12 - Centro, Recife - PE, 50000-000", receipt.Endereco)
	assert.Equal(t, []ReceiptItem{
		{Formula: "Dipirona 500mg", Quantidade: 2, Unidade: UnitLabel},
		{Formula: "Amoxicilina 500mg", Quantidade: 1, Unidade: UnitLabel},
	}, receipt.Itens)

	cur, err := f.svc.Current(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StateReceiptShown, cur.State())
	assert.Empty(t, cur.Items)
	assert.Nil(t, cur.Patient)
	assert.Equal(t, []string{OutcomeOK}, f.observer.outcomes)

	_, err = f.svc.AddItem(ctx, "u1", 10, 1)
	assert.ErrorIs(t, err, ErrReceiptOpen)

	cur, err = f.svc.CloseReceipt(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StateComposing, cur.State())
	assert.Empty(t, cur.Items)

	// cerrar el recibo borra la fila
	assert.Equal(t, 1, f.drafts.deleted)
	_, err = f.drafts.GetDraft(ctx, "u1")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = f.svc.Receipt(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoReceipt)
	_, err = f.svc.CloseReceipt(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoReceipt)
}

func TestService_Submit_StoreFailureAfterBackendAccepts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SelectPatient(ctx, "u1", 1)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "u1", 10, 2)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "u1", 11, 1)
	require.NoError(t, err)

	f.drafts.failReceiptSave = true

	receipt, err := f.svc.Submit(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, receipt.Itens, 2)
	assert.Equal(t, "Ana Souza", receipt.Paciente.Nome)
	require.Len(t, f.backend.sent, 1)
	assert.Equal(t, []string{OutcomeOK}, f.observer.outcomes)

	// el draft enviado ya no está: reintentar no manda otra dispensação
	cur, err := f.svc.Current(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cur.Items)
	assert.Nil(t, cur.Patient)

	_, err = f.svc.Submit(ctx, "u1")
	assert.Error(t, err)
	assert.Len(t, f.backend.sent, 1)
}

func TestService_LocksAreReleased(t *testing.T) {
	f := newFixture()
	f.svc.newID = func() string { return "draft" }
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := "u" + string(rune('a'+i%4))
			_, _ = f.svc.AddItem(ctx, user, 10, 1)
			_, _ = f.svc.Current(ctx, user)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, f.svc.locks.len())

	d, err := f.svc.Current(ctx, "ua")
	require.NoError(t, err)
	assert.Len(t, d.Items, 1)
}

func TestService_AddItem_Duplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, "u1", 10, 2)
	require.NoError(t, err)

	d, err := f.svc.AddItem(ctx, "u1", 10, 5)
	assert.ErrorIs(t, err, ErrDuplicateItem)
	assert.Len(t, d.Items, 1)

	stored, err := f.svc.Current(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantidade)
}

func TestService_AddItem_Invalid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, "u1", 10, 0)
	assert.ErrorIs(t, err, ErrQuantityRequired)

	_, err = f.svc.AddItem(ctx, "u1", 999, 1)
	assert.ErrorIs(t, err, ErrMedicamentRequired)

	_, err = f.svc.SelectPatient(ctx, "u1", 42)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestService_Submit_EmptyListIsRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SelectPatient(ctx, "u1", 1)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, "u1")
	assert.ErrorIs(t, err, ErrEmptyList)
	assert.Empty(t, f.backend.sent)
}

func TestService_Submit_ConflictKeepsList(t *testing.T) {
	f := newFixture()
	f.backend.err = ErrConflict
	ctx := context.Background()

	_, err := f.svc.SelectPatient(ctx, "u1", 1)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "u1", 10, 2)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, "u1")
	assert.ErrorIs(t, err, ErrConflict)

	d, err := f.svc.Current(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StateComposing, d.State())
	assert.Len(t, d.Items, 1)
	assert.NotNil(t, d.Patient)
	assert.Equal(t, []string{OutcomeConflict}, f.observer.outcomes)
}

func TestService_Submit_UpstreamFailure(t *testing.T) {
	f := newFixture()
	f.backend.err = errors.New("connection refused")
	ctx := context.Background()

	_, err := f.svc.SelectPatient(ctx, "u1", 1)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "u1", 10, 2)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, "u1")
	assert.ErrorIs(t, err, ErrUpstream)

	d, err := f.svc.Current(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, d.Items, 1)
	assert.Equal(t, []string{OutcomeFailed}, f.observer.outcomes)
}

func TestService_RemoveItem(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, "u1", 10, 2)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "u1", 11, 1)
	require.NoError(t, err)

	d, err := f.svc.RemoveItem(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.Equal(t, int64(11), d.Items[0].ID)

	d, err = f.svc.RemoveItem(ctx, "u1", 77)
	require.NoError(t, err)
	assert.Len(t, d.Items, 1)
}

func TestService_DraftsArePerUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, "u1", 10, 2)
	require.NoError(t, err)

	d, err := f.svc.Current(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, d.Items)
}

func TestService_LoadOptions(t *testing.T) {
	f := newFixture()
	opts, err := f.svc.LoadOptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, opts.Patients, 1)
	assert.Len(t, opts.Medicaments, 2)

	f.svc.medicaments = testMedicaments{err: errors.New("down")}
	_, err = f.svc.LoadOptions(context.Background())
	assert.Error(t, err)
}

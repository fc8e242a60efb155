package dispensations

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"remedio-solidario/internal/domain/medicaments"
	"remedio-solidario/internal/domain/patients"
	"remedio-solidario/internal/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDraftNotFound   = errors.New("draft not found")
	ErrNoReceipt       = errors.New("no receipt to show")
	ErrPatientNotFound = errors.New("patient not found")
	ErrConflict        = errors.New("dispensation conflict")
	ErrUpstream        = errors.New("backend failure")
)

const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeFailed   = "failed"
)

type Deps struct {
	Drafts      Repository
	Backend     Submitter
	Patients    PatientCatalog
	Medicaments MedicamentCatalog
	Observer    Observer
	Logger      logger.Logger
}

type Service struct {
	drafts      Repository
	backend     Submitter
	patients    PatientCatalog
	medicaments MedicamentCatalog
	observer    Observer
	log         logger.Logger

	locks userLocks
	now   func() time.Time
	newID func() string
}

func NewService(d Deps) *Service {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		drafts:      d.Drafts,
		backend:     d.Backend,
		patients:    d.Patients,
		medicaments: d.Medicaments,
		observer:    d.Observer,
		log:         log.With(map[string]any{"module": "dispensations"}),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Options son los selects del formulario.
type Options struct {
	Patients    []patients.Patient       `json:"pacientes"`
	Medicaments []medicaments.Medicament `json:"medicamentos"`
}

// LoadOptions carga pacientes y medicamentos en paralelo.
func (s *Service) LoadOptions(ctx context.Context) (Options, error) {
	var out Options
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.patients.List(gctx)
		if err != nil {
			return fmt.Errorf("patients: %w", err)
		}
		out.Patients = items
		return nil
	})
	g.Go(func() error {
		items, err := s.medicaments.List(gctx, "")
		if err != nil {
			return fmt.Errorf("medicaments: %w", err)
		}
		out.Medicaments = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return Options{}, err
	}
	return out, nil
}

func (s *Service) Current(ctx context.Context, userID string) (Draft, error) {
	unlock := s.lock(userID)
	defer unlock()
	return s.load(ctx, userID)
}

func (s *Service) SelectPatient(ctx context.Context, userID string, patientID int64) (Draft, error) {
	unlock := s.lock(userID)
	defer unlock()

	d, err := s.load(ctx, userID)
	if err != nil {
		return Draft{}, err
	}
	if d.State() == StateReceiptShown {
		return d, ErrReceiptOpen
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			return d, ErrPatientNotFound
		}
		return d, err
	}
	if err := d.SelectPatient(p); err != nil {
		return d, err
	}
	return d, s.save(ctx, &d)
}

// AddItem resuelve el medicamento por id y lo agrega con la cantidad.
// Un id desconocido es ErrMedicamentRequired.
func (s *Service) AddItem(ctx context.Context, userID string, medicamentID int64, quantidade int) (Draft, error) {
	unlock := s.lock(userID)
	defer unlock()

	d, err := s.load(ctx, userID)
	if err != nil {
		return Draft{}, err
	}
	if d.State() == StateReceiptShown {
		return d, ErrReceiptOpen
	}
	if quantidade <= 0 {
		return d, ErrQuantityRequired
	}
	if medicamentID <= 0 {
		return d, ErrMedicamentRequired
	}

	m, err := s.medicaments.GetByID(ctx, medicamentID)
	if err != nil {
		if errors.Is(err, medicaments.ErrNotFound) {
			return d, ErrMedicamentRequired
		}
		return d, err
	}

	addErr := d.Add(LineItem{
		ID:         m.ID,
		Formula:    m.Formula,
		Quantidade: quantidade,
		Vencimento: m.Vencimento,
	})
	if addErr != nil && !errors.Is(addErr, ErrDuplicateItem) {
		return d, addErr
	}
	// el duplicado igual deja el candidato como pendiente
	if err := s.save(ctx, &d); err != nil {
		return d, err
	}
	return d, addErr
}

func (s *Service) RemoveItem(ctx context.Context, userID string, medicamentID int64) (Draft, error) {
	unlock := s.lock(userID)
	defer unlock()

	d, err := s.load(ctx, userID)
	if err != nil {
		return Draft{}, err
	}
	removed, err := d.Remove(medicamentID)
	if err != nil {
		return d, err
	}
	if !removed {
		return d, nil
	}
	return d, s.save(ctx, &d)
}

// Submit envía el draft. Con éxito limpia la lista y abre el recibo; con error deja todo como estaba.
// Una vez aceptado por el backend el envío no vuelve a fallar: si no se puede guardar el recibo
// se borra el draft para que un reintento no duplique la dispensação.
func (s *Service) Submit(ctx context.Context, userID string) (Receipt, error) {
	unlock := s.lock(userID)
	defer unlock()

	d, err := s.load(ctx, userID)
	if err != nil {
		return Receipt{}, err
	}
	payload, err := d.Payload(s.now())
	if err != nil {
		return Receipt{}, err
	}
	receipt, err := BuildReceipt(s.newID(), payload)
	if err != nil {
		return Receipt{}, err
	}

	log := s.log.With(map[string]any{"user_id": userID, "draft_id": d.ID})
	if err := s.backend.SubmitPrescription(ctx, payload); err != nil {
		if errors.Is(err, ErrConflict) {
			s.observe(OutcomeConflict)
			log.Warn("dispensation conflict", map[string]any{"items": formatItems(payload.Medicamentos)})
			return Receipt{}, err
		}
		s.observe(OutcomeFailed)
		log.Error("dispensation failed", map[string]any{"error": err})
		return Receipt{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	s.observe(OutcomeOK)

	d.Complete(receipt)
	if err := s.save(ctx, &d); err != nil {
		log.Error("dispensation sent but receipt not stored", map[string]any{
			"error":      err,
			"receipt_id": receipt.ID,
		})
		if err := s.drafts.DeleteDraft(ctx, userID); err != nil && !errors.Is(err, ErrDraftNotFound) {
			log.Error("could not clear submitted draft", map[string]any{"error": err})
		}
		return receipt, nil
	}

	log.Info("dispensation submitted", map[string]any{
		"receipt_id": receipt.ID,
		"items":      formatItems(payload.Medicamentos),
	})
	return receipt, nil
}

func (s *Service) Receipt(ctx context.Context, userID string) (Receipt, error) {
	unlock := s.lock(userID)
	defer unlock()

	d, err := s.load(ctx, userID)
	if err != nil {
		return Receipt{}, err
	}
	if d.Receipt == nil {
		return Receipt{}, ErrNoReceipt
	}
	return *d.Receipt, nil
}

// CloseReceipt borra el draft cerrado y devuelve uno vacío.
func (s *Service) CloseReceipt(ctx context.Context, userID string) (Draft, error) {
	unlock := s.lock(userID)
	defer unlock()

	d, err := s.load(ctx, userID)
	if err != nil {
		return Draft{}, err
	}
	if d.Receipt == nil {
		return d, ErrNoReceipt
	}
	if err := s.drafts.DeleteDraft(ctx, userID); err != nil && !errors.Is(err, ErrDraftNotFound) {
		return d, err
	}
	return NewDraft(s.newID(), userID), nil
}

// Today es la fecha del encabezado del formulario.
func (s *Service) Today() time.Time {
	return s.now()
}

func (s *Service) load(ctx context.Context, userID string) (Draft, error) {
	d, err := s.drafts.GetDraft(ctx, userID)
	if errors.Is(err, ErrDraftNotFound) {
		return NewDraft(s.newID(), userID), nil
	}
	if err != nil {
		return Draft{}, err
	}
	if d.Items == nil {
		d.Items = []LineItem{}
	}
	return d, nil
}

func (s *Service) save(ctx context.Context, d *Draft) error {
	d.UpdatedAt = s.now().UTC()
	return s.drafts.SaveDraft(ctx, *d)
}

func (s *Service) observe(outcome string) {
	if s.observer != nil {
		s.observer.ObserveDispensation(outcome)
	}
}

// lock serializa las operaciones de un mismo usuario sobre su draft.
func (s *Service) lock(userID string) func() {
	return s.locks.acquire(userID)
}

// userLocks es un mutex por usuario con conteo de referencias:
// la entrada se borra cuando no queda nadie adentro ni esperando.
type userLocks struct {
	mu sync.Mutex
	m  map[string]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func (l *userLocks) acquire(userID string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = map[string]*userLock{}
	}
	e, ok := l.m[userID]
	if !ok {
		e = &userLock{}
		l.m[userID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.Lock()
	return func() {
		e.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, userID)
		}
		l.mu.Unlock()
	}
}

func (l *userLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

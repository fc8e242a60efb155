package dispensations

import (
	"errors"
	"time"

	"remedio-solidario/internal/domain/patients"
)

var (
	ErrDuplicateItem      = errors.New("medicament already in the list")
	ErrQuantityRequired   = errors.New("quantity must be greater than zero")
	ErrMedicamentRequired = errors.New("medicament required")
	ErrPatientRequired    = errors.New("patient required")
	ErrEmptyList          = errors.New("dispensation has no items")
	ErrReceiptOpen        = errors.New("receipt must be closed first")
)

// State del builder: composing -> receipt_shown -> (close) -> composing.
type State string

const (
	StateComposing    State = "composing"
	StateReceiptShown State = "receipt_shown"
)

// LineItem es un medicamento + quantidade en la dispensação pendiente.
// ID es el id del medicamento; no puede repetirse en la lista.
type LineItem struct {
	ID         int64  `json:"id"`
	Formula    string `json:"formula"`
	Quantidade int    `json:"quantidade"`
	Vencimento string `json:"vencimento"`
}

// Draft es el estado de la dispensação que un usuario está armando.
type Draft struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Patient   *patients.Patient `json:"paciente,omitempty"`
	Pending   *LineItem         `json:"pendente,omitempty"`
	Items     []LineItem        `json:"itens"`
	Receipt   *Receipt          `json:"recibo,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewDraft(id, userID string) Draft {
	return Draft{ID: id, UserID: userID, Items: []LineItem{}}
}

func (d Draft) State() State {
	if d.Receipt != nil {
		return StateReceiptShown
	}
	return StateComposing
}

// Clone copia punteros y slice para que el repo no comparta memoria con el caller.
func (d Draft) Clone() Draft {
	out := d
	if d.Patient != nil {
		p := *d.Patient
		out.Patient = &p
	}
	if d.Pending != nil {
		c := *d.Pending
		out.Pending = &c
	}
	if d.Receipt != nil {
		r := d.Receipt.clone()
		out.Receipt = &r
	}
	out.Items = make([]LineItem, len(d.Items))
	copy(out.Items, d.Items)
	return out
}

func (d *Draft) SelectPatient(p patients.Patient) error {
	if d.Receipt != nil {
		return ErrReceiptOpen
	}
	d.Patient = &p
	return nil
}

// Add agrega el candidato al final. El candidato queda como pendiente aunque sea duplicado;
// la lista solo cambia si el id no estaba.
func (d *Draft) Add(c LineItem) error {
	if d.Receipt != nil {
		return ErrReceiptOpen
	}
	if c.ID <= 0 {
		return ErrMedicamentRequired
	}
	if c.Quantidade <= 0 {
		return ErrQuantityRequired
	}

	pending := c
	d.Pending = &pending

	if d.Contains(c.ID) {
		return ErrDuplicateItem
	}
	d.Items = append(d.Items, c)
	return nil
}

// Remove saca el item con ese id; si no está no hace nada.
func (d *Draft) Remove(id int64) (bool, error) {
	if d.Receipt != nil {
		return false, ErrReceiptOpen
	}
	for i, it := range d.Items {
		if it.ID == id {
			d.Items = append(d.Items[:i:i], d.Items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (d Draft) Contains(id int64) bool {
	for _, it := range d.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// CanSubmit exige lista no vacía, paciente elegido y un candidato pendiente.
func (d Draft) CanSubmit() error {
	if d.Receipt != nil {
		return ErrReceiptOpen
	}
	if len(d.Items) == 0 {
		return ErrEmptyList
	}
	if d.Patient == nil {
		return ErrPatientRequired
	}
	if d.Pending == nil {
		return ErrMedicamentRequired
	}
	return nil
}

// Payload arma el cuerpo de /prescricoes con la fecha de hoy.
func (d Draft) Payload(today time.Time) (Prescription, error) {
	if err := d.CanSubmit(); err != nil {
		return Prescription{}, err
	}
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	return Prescription{
		Data:         today.Format(dateLayout),
		Paciente:     *d.Patient,
		Medicamentos: items,
	}, nil
}

// Complete limpia paciente, pendiente y lista, y abre el recibo.
func (d *Draft) Complete(r Receipt) {
	d.Patient = nil
	d.Pending = nil
	d.Items = []LineItem{}
	d.Receipt = &r
}

// Prescription es el registro que se envía al backend.
type Prescription struct {
	Data         string           `json:"data"`
	Paciente     patients.Patient `json:"paciente"`
	Medicamentos []LineItem       `json:"medicamentos"`
}

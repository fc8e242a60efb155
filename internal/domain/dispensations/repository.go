package dispensations

import (
	"context"

	"remedio-solidario/internal/domain/medicaments"
	"remedio-solidario/internal/domain/patients"
)

// Repository guarda un draft por usuario. Get devuelve ErrDraftNotFound si no hay.
type Repository interface {
	GetDraft(ctx context.Context, userID string) (Draft, error)
	SaveDraft(ctx context.Context, d Draft) error
	DeleteDraft(ctx context.Context, userID string) error
}

// Submitter envía la dispensação al backend. Un 409 se devuelve como ErrConflict.
type Submitter interface {
	SubmitPrescription(ctx context.Context, p Prescription) error
}

type PatientCatalog interface {
	List(ctx context.Context) ([]patients.Patient, error)
	GetByID(ctx context.Context, id int64) (patients.Patient, error)
}

type MedicamentCatalog interface {
	List(ctx context.Context, tarja medicaments.Tarja) ([]medicaments.Medicament, error)
	GetByID(ctx context.Context, id int64) (medicaments.Medicament, error)
}

// Observer recibe el resultado de cada envío (ok, conflict, failed).
type Observer interface {
	ObserveDispensation(outcome string)
}

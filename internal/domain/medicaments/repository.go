package medicaments

import "context"

// Repository es el backend remoto de medicamentos (/medicamentos).
type Repository interface {
	ListMedicaments(ctx context.Context) ([]Medicament, error)
	CreateMedicament(ctx context.Context, m Medicament) error
	UpdateMedicament(ctx context.Context, m Medicament) (Medicament, error)
	DeleteMedicament(ctx context.Context, id int64) error
}

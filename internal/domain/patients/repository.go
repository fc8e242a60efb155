package patients

import "context"

// Repository es el backend remoto de pacientes (/pacientes).
type Repository interface {
	ListPatients(ctx context.Context) ([]Patient, error)
	CreatePatient(ctx context.Context, p Patient) error
	UpdatePatient(ctx context.Context, p Patient) (Patient, error)
	DeletePatient(ctx context.Context, id int64) error
}

// AddressLookup resuelve un CEP de 8 dígitos.
type AddressLookup interface {
	LookupCEP(ctx context.Context, cep string) (Address, error)
}

package patients

import (
	"context"
	"errors"
	"fmt"

	"remedio-solidario/internal/platform/mask"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("patient not found")
	ErrConflict      = errors.New("patient already registered")
	ErrUpstream      = errors.New("backend failure")
	ErrIncompleteCEP = errors.New("cep must have 8 digits")
)

type Service struct {
	repo    Repository
	address AddressLookup
}

func NewService(repo Repository, address AddressLookup) *Service {
	return &Service{
		repo:    repo,
		address: address,
	}
}

// List carga la lista completa; la paginación se hace encima.
func (s *Service) List(ctx context.Context) ([]Patient, error) {
	items, err := s.repo.ListPatients(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Patient{}
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Patient, error) {
	items, err := s.repo.ListPatients(ctx)
	if err != nil {
		return Patient{}, err
	}
	for _, p := range items {
		if p.ID == id {
			return p, nil
		}
	}
	return Patient{}, ErrNotFound
}

// Create normaliza, valida y envía. Devuelve formcheck.Errors si el formulario no pasa.
func (s *Service) Create(ctx context.Context, in Patient) (Patient, error) {
	p := Normalize(in)
	p.ID = 0
	if err := Validate(p); err != nil {
		return Patient{}, err
	}
	if err := s.repo.CreatePatient(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// Update reemplaza el registro id por la copia editada.
func (s *Service) Update(ctx context.Context, id int64, edited Patient) (Patient, error) {
	if id <= 0 {
		return Patient{}, ErrInvalidInput
	}
	p := Normalize(edited)
	p.ID = id
	if err := Validate(p); err != nil {
		return Patient{}, err
	}
	return s.repo.UpdatePatient(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.DeletePatient(ctx, id)
}

// LookupAddress consulta el CEP solo cuando tiene exactamente 8 dígitos.
func (s *Service) LookupAddress(ctx context.Context, cep string) (Address, error) {
	if !mask.CEPComplete(cep) {
		return Address{}, ErrIncompleteCEP
	}
	if s.address == nil {
		return Address{}, fmt.Errorf("%w: address lookup not configured", ErrUpstream)
	}
	return s.address.LookupCEP(ctx, mask.Digits(cep))
}

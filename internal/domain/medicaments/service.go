package medicaments

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medicament not found")
	ErrConflict     = errors.New("medicament already registered")
	ErrUpstream     = errors.New("backend failure")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List carga todos los medicamentos; tarja != "" filtra por classificação.
func (s *Service) List(ctx context.Context, tarja Tarja) ([]Medicament, error) {
	items, err := s.repo.ListMedicaments(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Medicament, 0, len(items))
	for _, m := range items {
		if tarja != "" && m.Tarja != tarja {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Medicament, error) {
	items, err := s.repo.ListMedicaments(ctx)
	if err != nil {
		return Medicament{}, err
	}
	for _, m := range items {
		if m.ID == id {
			return m, nil
		}
	}
	return Medicament{}, ErrNotFound
}

func (s *Service) Create(ctx context.Context, in Input) (Medicament, error) {
	m, err := in.toMedicament()
	if err != nil {
		return Medicament{}, err
	}
	if err := s.repo.CreateMedicament(ctx, m); err != nil {
		return Medicament{}, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Medicament, error) {
	if id <= 0 {
		return Medicament{}, ErrInvalidInput
	}
	m, err := in.toMedicament()
	if err != nil {
		return Medicament{}, err
	}
	m.ID = id
	return s.repo.UpdateMedicament(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.DeleteMedicament(ctx, id)
}

// ParseTarja acepta mayúsculas/minúsculas; "" => sin filtro.
func ParseTarja(s string) (Tarja, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	t := Tarja(s)
	if !t.Valid() {
		return "", ErrInvalidInput
	}
	return t, nil
}

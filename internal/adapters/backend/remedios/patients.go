package remedios

import (
	"context"
	"net/http"
	"strconv"

	"remedio-solidario/internal/domain/patients"
)

const patientsPath = "/pacientes"

func (c *Client) ListPatients(ctx context.Context) ([]patients.Patient, error) {
	if err := c.check(patients.ErrUpstream); err != nil {
		return nil, err
	}
	var out []patients.Patient
	if err := c.http.DoJSON(ctx, http.MethodGet, patientsPath, nil, nil, &out); err != nil {
		return nil, mapErr(err, nil, nil, patients.ErrUpstream)
	}
	return out, nil
}

func (c *Client) CreatePatient(ctx context.Context, p patients.Patient) error {
	if err := c.check(patients.ErrUpstream); err != nil {
		return err
	}
	err := c.http.DoJSON(ctx, http.MethodPost, patientsPath, nil, p, nil)
	return mapErr(err, patients.ErrConflict, nil, patients.ErrUpstream)
}

// UpdatePatient devuelve lo que respondió el backend, o la copia enviada si vino vacío.
func (c *Client) UpdatePatient(ctx context.Context, p patients.Patient) (patients.Patient, error) {
	if err := c.check(patients.ErrUpstream); err != nil {
		return patients.Patient{}, err
	}
	var out patients.Patient
	err := c.http.DoJSON(ctx, http.MethodPut, patientsPath+"/"+strconv.FormatInt(p.ID, 10), nil, p, &out)
	if err != nil {
		return patients.Patient{}, mapErr(err, patients.ErrConflict, patients.ErrNotFound, patients.ErrUpstream)
	}
	if out.ID == 0 {
		return p, nil
	}
	return out, nil
}

func (c *Client) DeletePatient(ctx context.Context, id int64) error {
	if err := c.check(patients.ErrUpstream); err != nil {
		return err
	}
	err := c.http.DoJSON(ctx, http.MethodDelete, patientsPath+"/"+strconv.FormatInt(id, 10), nil, nil, nil)
	return mapErr(err, nil, patients.ErrNotFound, patients.ErrUpstream)
}

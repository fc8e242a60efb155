package remedios

import (
	"context"
	"net/http"
	"strconv"

	"remedio-solidario/internal/domain/medicaments"
)

const medicamentsPath = "/medicamentos"

func (c *Client) ListMedicaments(ctx context.Context) ([]medicaments.Medicament, error) {
	if err := c.check(medicaments.ErrUpstream); err != nil {
		return nil, err
	}
	var out []medicaments.Medicament
	if err := c.http.DoJSON(ctx, http.MethodGet, medicamentsPath, nil, nil, &out); err != nil {
		return nil, mapErr(err, nil, nil, medicaments.ErrUpstream)
	}
	return out, nil
}

func (c *Client) CreateMedicament(ctx context.Context, m medicaments.Medicament) error {
	if err := c.check(medicaments.ErrUpstream); err != nil {
		return err
	}
	err := c.http.DoJSON(ctx, http.MethodPost, medicamentsPath, nil, m, nil)
	return mapErr(err, medicaments.ErrConflict, nil, medicaments.ErrUpstream)
}

func (c *Client) UpdateMedicament(ctx context.Context, m medicaments.Medicament) (medicaments.Medicament, error) {
	if err := c.check(medicaments.ErrUpstream); err != nil {
		return medicaments.Medicament{}, err
	}
	var out medicaments.Medicament
	err := c.http.DoJSON(ctx, http.MethodPut, medicamentsPath+"/"+strconv.FormatInt(m.ID, 10), nil, m, &out)
	if err != nil {
		return medicaments.Medicament{}, mapErr(err, medicaments.ErrConflict, medicaments.ErrNotFound, medicaments.ErrUpstream)
	}
	if out.ID == 0 {
		return m, nil
	}
	return out, nil
}

func (c *Client) DeleteMedicament(ctx context.Context, id int64) error {
	if err := c.check(medicaments.ErrUpstream); err != nil {
		return err
	}
	err := c.http.DoJSON(ctx, http.MethodDelete, medicamentsPath+"/"+strconv.FormatInt(id, 10), nil, nil, nil)
	return mapErr(err, nil, medicaments.ErrNotFound, medicaments.ErrUpstream)
}

package remedios

import (
	"context"
	"net/http"

	"remedio-solidario/internal/domain/dispensations"
)

const prescriptionsPath = "/prescricoes"

// SubmitPrescription hace POST /prescricoes. 409 => dispensations.ErrConflict.
func (c *Client) SubmitPrescription(ctx context.Context, p dispensations.Prescription) error {
	if err := c.check(dispensations.ErrUpstream); err != nil {
		return err
	}
	err := c.http.DoJSON(ctx, http.MethodPost, prescriptionsPath, nil, p, nil)
	return mapErr(err, dispensations.ErrConflict, nil, dispensations.ErrUpstream)
}

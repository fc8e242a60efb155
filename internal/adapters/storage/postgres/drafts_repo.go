package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"remedio-solidario/internal/domain/dispensations"
)

const draftsSchema = `
	CREATE TABLE IF NOT EXISTS dispensation_drafts (
		user_id    TEXT PRIMARY KEY,
		id         TEXT NOT NULL,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)
`

// DraftsRepo guarda un draft por usuario como JSONB.
type DraftsRepo struct {
	db *sql.DB
}

func NewDraftsRepo(db *sql.DB) *DraftsRepo {
	return &DraftsRepo{db: db}
}

// EnsureSchema crea la tabla si no existe.
func (r *DraftsRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, draftsSchema); err != nil {
		return fmt.Errorf("create dispensation_drafts: %w", err)
	}
	return nil
}

func (r *DraftsRepo) GetDraft(ctx context.Context, userID string) (dispensations.Draft, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return dispensations.Draft{}, dispensations.ErrDraftNotFound
	}

	var raw []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT data
		FROM dispensation_drafts
		WHERE user_id = $1
	`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return dispensations.Draft{}, dispensations.ErrDraftNotFound
	}
	if err != nil {
		return dispensations.Draft{}, err
	}

	var d dispensations.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return dispensations.Draft{}, fmt.Errorf("decode draft %s: %w", userID, err)
	}
	d.UserID = userID
	return d, nil
}

func (r *DraftsRepo) SaveDraft(ctx context.Context, d dispensations.Draft) error {
	if strings.TrimSpace(d.UserID) == "" {
		return errors.New("draft user id required")
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO dispensation_drafts (user_id, id, data, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id) DO UPDATE
		SET id = EXCLUDED.id,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`,
		d.UserID,
		d.ID,
		raw,
		d.UpdatedAt,
	)
	return err
}

func (r *DraftsRepo) DeleteDraft(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dispensation_drafts WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dispensations.ErrDraftNotFound
	}
	return nil
}

package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"remedio-solidario/internal/domain/dispensations"
)

type draftsRepo struct {
	mu     sync.RWMutex
	byUser map[string]dispensations.Draft
}

func NewDraftsRepo() dispensations.Repository {
	return &draftsRepo{
		byUser: make(map[string]dispensations.Draft),
	}
}

func (r *draftsRepo) GetDraft(ctx context.Context, userID string) (dispensations.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byUser[userID]
	if !ok {
		return dispensations.Draft{}, dispensations.ErrDraftNotFound
	}
	return d.Clone(), nil
}

func (r *draftsRepo) SaveDraft(ctx context.Context, d dispensations.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.UserID) == "" {
		return errors.New("draft user id required")
	}
	r.byUser[d.UserID] = d.Clone()
	return nil
}

func (r *draftsRepo) DeleteDraft(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[userID]; !ok {
		return dispensations.ErrDraftNotFound
	}
	delete(r.byUser, userID)
	return nil
}

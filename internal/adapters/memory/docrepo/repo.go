package docrepo

import (
	"context"
	"sync"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/docrepo"
)

// Repo is an in-memory implementation of docrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.DocumentID]domain.Document
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.DocumentID]domain.Document),
	}
}

func (r *Repo) Create(ctx context.Context, d domain.Document) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[d.ID]; ok {
		return docrepo.ErrAlreadyExists
	}
	r.byID[d.ID] = d
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.DocumentID) (domain.Document, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byID[id]
	if !ok {
		return domain.Document{}, docrepo.ErrNotFound
	}
	return d, nil
}

package extractionrepo

import (
	"context"
	"sync"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/extractionrepo"
)

// Repo is an in-memory implementation of extractionrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu     sync.RWMutex
	byID   map[domain.ExtractionID]domain.Extraction
	byHash map[string]domain.ExtractionID
}

func NewRepo() *Repo {
	return &Repo{
		byID:   make(map[domain.ExtractionID]domain.Extraction),
		byHash: make(map[string]domain.ExtractionID),
	}
}

func (r *Repo) Create(ctx context.Context, e domain.Extraction) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[e.ID]; ok {
		return extractionrepo.ErrAlreadyExists
	}
	if e.TextSHA256 != "" {
		if _, ok := r.byHash[e.TextSHA256]; ok {
			return extractionrepo.ErrAlreadyExists
		}
	}
	r.byID[e.ID] = cloneExtraction(e)
	if e.TextSHA256 != "" {
		r.byHash[e.TextSHA256] = e.ID
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ExtractionID) (domain.Extraction, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	if !ok {
		return domain.Extraction{}, extractionrepo.ErrNotFound
	}
	return cloneExtraction(e), nil
}

func (r *Repo) GetByTextSHA256(ctx context.Context, textSHA256 string) (domain.Extraction, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byHash[textSHA256]
	if !ok {
		return domain.Extraction{}, extractionrepo.ErrNotFound
	}
	return cloneExtraction(r.byID[id]), nil
}

func cloneExtraction(e domain.Extraction) domain.Extraction {
	cp := e
	cp.FieldsRaw = e.FieldsRaw.Clone()
	cp.FieldsNormalized = e.FieldsNormalized.Clone()
	if e.Insurer != nil {
		v := *e.Insurer
		cp.Insurer = &v
	}
	if e.DocumentID != nil {
		v := *e.DocumentID
		cp.DocumentID = &v
	}
	return cp
}

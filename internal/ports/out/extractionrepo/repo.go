// Package extractionrepo defines the outbound port for stored extraction
// results. Results are addressable both by ID and by the SHA-256 of the
// input text, which is what makes repeat submissions replayable.
package extractionrepo

import (
	"context"

	"github.com/pkg/errors"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
)

var (
	ErrNotFound      = errors.New("extraction not found")
	ErrAlreadyExists = errors.New("extraction already exists")
)

type Repository interface {
	Create(ctx context.Context, e domain.Extraction) error
	GetByID(ctx context.Context, id domain.ExtractionID) (domain.Extraction, error)
	GetByTextSHA256(ctx context.Context, textSHA256 string) (domain.Extraction, error)
}

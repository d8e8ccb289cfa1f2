// Package docrepo defines the outbound port for document metadata storage.
package docrepo

import (
	"context"

	"github.com/pkg/errors"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)

type Repository interface {
	Create(ctx context.Context, d domain.Document) error
	GetByID(ctx context.Context, id domain.DocumentID) (domain.Document, error)
}

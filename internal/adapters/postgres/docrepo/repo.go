package docrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/postgres"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/docrepo"
)

// Repo is the Postgres implementation of docrepo.Repository, targeting
// the documents table from /migrations.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, d domain.Document) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO documents (id, filename, content_type, size_bytes, sha256, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, string(d.ID), d.Filename, d.ContentType, d.SizeBytes, d.SHA256, d.UploadedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return docrepo.ErrAlreadyExists
		}
		return errors.Wrap(err, "insert document")
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.DocumentID) (domain.Document, error) {
	var d domain.Document
	var rawID string
	err := r.pool.QueryRow(ctx, `
		SELECT id, filename, content_type, size_bytes, sha256, uploaded_at
		FROM documents
		WHERE id = $1
	`, string(id)).Scan(&rawID, &d.Filename, &d.ContentType, &d.SizeBytes, &d.SHA256, &d.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Document{}, docrepo.ErrNotFound
		}
		return domain.Document{}, errors.Wrap(err, "select document")
	}
	d.ID = domain.DocumentID(rawID)
	d.UploadedAt = d.UploadedAt.UTC()
	return d, nil
}

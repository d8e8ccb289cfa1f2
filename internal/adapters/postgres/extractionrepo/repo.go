package extractionrepo

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/postgres"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/extractionrepo"
)

// Repo is the Postgres implementation of extractionrepo.Repository.
// Field maps round-trip through JSONB.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectColumns = `
	id, template_id, profession, insurer, insurer_confidence,
	text_sha256, fields_raw, fields_normalized, document_id, created_at
`

func (r *Repo) Create(ctx context.Context, e domain.Extraction) error {
	rawJSON, err := json.Marshal(e.FieldsRaw)
	if err != nil {
		return errors.Wrap(err, "marshal fields_raw")
	}
	normJSON, err := json.Marshal(e.FieldsNormalized)
	if err != nil {
		return errors.Wrap(err, "marshal fields_normalized")
	}

	var docID *string
	if e.DocumentID != nil {
		v := string(*e.DocumentID)
		docID = &v
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO extractions (
			id, template_id, profession, insurer, insurer_confidence,
			text_sha256, fields_raw, fields_normalized, document_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, string(e.ID), e.TemplateID, e.Profession, e.Insurer, e.InsurerConfidence,
		e.TextSHA256, rawJSON, normJSON, docID, e.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return extractionrepo.ErrAlreadyExists
		}
		return errors.Wrap(err, "insert extraction")
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ExtractionID) (domain.Extraction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM extractions WHERE id = $1`, string(id))
	return scanExtraction(row)
}

func (r *Repo) GetByTextSHA256(ctx context.Context, textSHA256 string) (domain.Extraction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM extractions WHERE text_sha256 = $1`, textSHA256)
	return scanExtraction(row)
}

func scanExtraction(row pgx.Row) (domain.Extraction, error) {
	var (
		e        domain.Extraction
		rawID    string
		insurer  *string
		rawJSON  []byte
		normJSON []byte
		docID    *string
	)
	err := row.Scan(&rawID, &e.TemplateID, &e.Profession, &insurer, &e.InsurerConfidence,
		&e.TextSHA256, &rawJSON, &normJSON, &docID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Extraction{}, extractionrepo.ErrNotFound
		}
		return domain.Extraction{}, errors.Wrap(err, "select extraction")
	}
	e.ID = domain.ExtractionID(rawID)
	e.Insurer = insurer
	if docID != nil {
		v := domain.DocumentID(*docID)
		e.DocumentID = &v
	}
	if err := json.Unmarshal(rawJSON, &e.FieldsRaw); err != nil {
		return domain.Extraction{}, errors.Wrap(err, "unmarshal fields_raw")
	}
	if err := json.Unmarshal(normJSON, &e.FieldsNormalized); err != nil {
		return domain.Extraction{}, errors.Wrap(err, "unmarshal fields_normalized")
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

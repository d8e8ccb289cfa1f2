package contracttest

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/extractionrepo"
)

// RunExtractionRepo exercises the extractionrepo.Repository contract.
func RunExtractionRepo(t *testing.T, newRepo func(t *testing.T) (extractionrepo.Repository, func())) {
	t.Helper()

	insurer := "Apex Mutual"
	docID := domain.DocumentID("doc-1")

	sample := func(id domain.ExtractionID, hash string) domain.Extraction {
		return domain.Extraction{
			ID:                id,
			TemplateID:        "apex_architects_v1",
			Profession:        "architects",
			Insurer:           &insurer,
			InsurerConfidence: 0.0,
			TextSHA256:        hash,
			FieldsRaw: domain.FieldValues{
				"firm_name":            "Studio North Ltd",
				"staff_principals_raw": "2",
				"claims_block_raw":     nil,
			},
			FieldsNormalized: domain.FieldValues{
				"firm_name":            "Studio North Ltd",
				"staff_principals":     2,
				"has_claims_disclosed": false,
			},
			DocumentID: &docID,
			CreatedAt:  time.Unix(200, 0).UTC(),
		}
	}

	t.Run("create then get by id round-trips", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		ctx := context.Background()

		e := sample("ex-1", "hash-1")
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}

		got, err := repo.GetByID(ctx, e.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.TemplateID != e.TemplateID || got.Profession != e.Profession || got.TextSHA256 != e.TextSHA256 {
			t.Fatalf("got=%+v want=%+v", got, e)
		}
		if got.Insurer == nil || *got.Insurer != insurer {
			t.Fatalf("Insurer=%v want=%q", got.Insurer, insurer)
		}
		if got.DocumentID == nil || *got.DocumentID != docID {
			t.Fatalf("DocumentID=%v want=%q", got.DocumentID, docID)
		}
		if got.FieldsRaw["firm_name"] != "Studio North Ltd" {
			t.Fatalf("FieldsRaw=%v", got.FieldsRaw)
		}
		if got.FieldsNormalized["has_claims_disclosed"] != false {
			t.Fatalf("FieldsNormalized=%v", got.FieldsNormalized)
		}
	})

	t.Run("get by text hash replays the stored result", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		ctx := context.Background()

		e := sample("ex-2", "hash-2")
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := repo.GetByTextSHA256(ctx, "hash-2")
		if err != nil {
			t.Fatalf("GetByTextSHA256: %v", err)
		}
		if got.ID != e.ID {
			t.Fatalf("ID=%s want=%s", got.ID, e.ID)
		}
	})

	t.Run("missing id and hash return ErrNotFound", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		ctx := context.Background()
		if _, err := repo.GetByID(ctx, "nope"); !errors.Is(err, extractionrepo.ErrNotFound) {
			t.Fatalf("GetByID err=%v want ErrNotFound", err)
		}
		if _, err := repo.GetByTextSHA256(ctx, "nope"); !errors.Is(err, extractionrepo.ErrNotFound) {
			t.Fatalf("GetByTextSHA256 err=%v want ErrNotFound", err)
		}
	})

	t.Run("duplicate text hash returns ErrAlreadyExists", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		ctx := context.Background()
		if err := repo.Create(ctx, sample("ex-3", "hash-3")); err != nil {
			t.Fatalf("Create: %v", err)
		}
		err := repo.Create(ctx, sample("ex-4", "hash-3"))
		if !errors.Is(err, extractionrepo.ErrAlreadyExists) {
			t.Fatalf("err=%v want ErrAlreadyExists", err)
		}
	})
}

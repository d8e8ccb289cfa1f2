// Package contracttest holds repository contract suites shared by the
// memory and Postgres adapters. Every adapter must pass the same suite.
package contracttest

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/docrepo"
)

// RunDocRepo exercises the docrepo.Repository contract against a fresh
// repo from newRepo. The returned cleanup func may be nil.
func RunDocRepo(t *testing.T, newRepo func(t *testing.T) (docrepo.Repository, func())) {
	t.Helper()

	t.Run("create then get round-trips", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		ctx := context.Background()

		d := domain.Document{
			ID:          "doc-1",
			Filename:    "proposal.pdf",
			ContentType: "application/pdf",
			SizeBytes:   2048,
			SHA256:      "ab12",
			UploadedAt:  time.Unix(100, 0).UTC(),
		}
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create: %v", err)
		}

		got, err := repo.GetByID(ctx, d.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Filename != d.Filename || got.ContentType != d.ContentType || got.SizeBytes != d.SizeBytes || got.SHA256 != d.SHA256 {
			t.Fatalf("got=%+v want=%+v", got, d)
		}
		if !got.UploadedAt.Equal(d.UploadedAt) {
			t.Fatalf("UploadedAt=%v want=%v", got.UploadedAt, d.UploadedAt)
		}
	})

	t.Run("get missing returns ErrNotFound", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		_, err := repo.GetByID(context.Background(), "nope")
		if !errors.Is(err, docrepo.ErrNotFound) {
			t.Fatalf("err=%v want ErrNotFound", err)
		}
	})

	t.Run("duplicate id returns ErrAlreadyExists", func(t *testing.T) {
		repo, cleanup := newRepo(t)
		if cleanup != nil {
			t.Cleanup(cleanup)
		}
		ctx := context.Background()
		d := domain.Document{ID: "doc-dup", Filename: "a.txt", ContentType: "text/plain", UploadedAt: time.Unix(1, 0).UTC()}
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := repo.Create(ctx, d); !errors.Is(err, docrepo.ErrAlreadyExists) {
			t.Fatalf("err=%v want ErrAlreadyExists", err)
		}
	})
}

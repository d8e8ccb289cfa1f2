package documents

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	memclock "github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/memory/clock"
	memdocrepo "github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/memory/docrepo"
)

func newTestService(maxBytes int64) (*Service, *memdocrepo.Repo) {
	repo := memdocrepo.NewRepo()
	clk := memclock.NewManualClock(time.Unix(500, 0).UTC())
	return NewService(repo, clk, maxBytes, nil), repo
}

func TestUpload_SniffsContentTypeFromBytes(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(0)

	pdf := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 64)...)
	d, err := svc.Upload(context.Background(), UploadInput{Filename: "proposal.pdf", Content: pdf})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if d.ContentType != "application/pdf" {
		t.Fatalf("contentType=%q, want application/pdf", d.ContentType)
	}
	if d.SizeBytes != int64(len(pdf)) {
		t.Fatalf("sizeBytes=%d want=%d", d.SizeBytes, len(pdf))
	}
	if d.SHA256 == "" || d.ID == "" {
		t.Fatalf("missing id or hash: %+v", d)
	}
	if !d.UploadedAt.Equal(time.Unix(500, 0).UTC()) {
		t.Fatalf("uploadedAt=%v", d.UploadedAt)
	}

	stored, err := repo.GetByID(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("stored document missing: %v", err)
	}
	if stored.Filename != "proposal.pdf" {
		t.Fatalf("filename=%q", stored.Filename)
	}
}

func TestUpload_EmptyFileRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(0)

	_, err := svc.Upload(context.Background(), UploadInput{Filename: "empty.txt"})
	ae := (*Error)(nil)
	if !errors.As(err, &ae) {
		t.Fatalf("err=%v, want app error", err)
	}
	if ae.Status != http.StatusBadRequest || ae.Code != "FILE_REQUIRED" {
		t.Fatalf("status=%d code=%s", ae.Status, ae.Code)
	}
}

func TestUpload_EnforcesSizeCap(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(16)

	_, err := svc.Upload(context.Background(), UploadInput{
		Filename: "big.txt",
		Content:  []byte(strings.Repeat("a", 17)),
	})
	ae := (*Error)(nil)
	if !errors.As(err, &ae) {
		t.Fatalf("err=%v, want app error", err)
	}
	if ae.Status != http.StatusRequestEntityTooLarge || ae.Code != "FILE_TOO_LARGE" {
		t.Fatalf("status=%d code=%s", ae.Status, ae.Code)
	}
	if ae.Details["maxBytes"] != int64(16) {
		t.Fatalf("details=%v", ae.Details)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(0)

	_, err := svc.GetDocument(context.Background(), "missing")
	ae := (*Error)(nil)
	if !errors.As(err, &ae) {
		t.Fatalf("err=%v, want app error", err)
	}
	if ae.Status != http.StatusNotFound || ae.Code != "DOCUMENT_NOT_FOUND" {
		t.Fatalf("status=%d code=%s", ae.Status, ae.Code)
	}
}

package extraction

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	memclock "github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/memory/clock"
	memextractionrepo "github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/memory/extractionrepo"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/extract"
)

type fakeExtractor struct {
	score float64
}

func (fakeExtractor) TemplateID() string          { return "fake_template_v1" }
func (fakeExtractor) Profession() string          { return "testers" }
func (f fakeExtractor) MatchScore(string) float64 { return f.score }
func (fakeExtractor) Extract(string) (domain.FieldValues, domain.FieldValues) {
	return domain.FieldValues{"firm_name": "Acme"},
		domain.FieldValues{"firm_name": "Acme", "current_pi_insurer": "Apex Mutual"}
}

func newTestService(score float64) (*Service, *memextractionrepo.Repo) {
	repo := memextractionrepo.NewRepo()
	registry := extract.NewRegistry(fakeExtractor{score: score})
	clk := memclock.NewManualClock(time.Unix(100, 0).UTC())
	return NewService(registry, repo, clk, nil), repo
}

func TestExtractText_BlankTextRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(1.0)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := svc.ExtractText(context.Background(), input, nil)
		ae := (*Error)(nil)
		if !errors.As(err, &ae) {
			t.Fatalf("input %q: err=%v, want app error", input, err)
		}
		if ae.Status != http.StatusBadRequest || ae.Code != "OCR_TEXT_REQUIRED" {
			t.Fatalf("input %q: status=%d code=%s", input, ae.Status, ae.Code)
		}
	}
}

func TestExtractText_NoMatchingTemplate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(0.4) // below the confidence floor

	_, err := svc.ExtractText(context.Background(), "some text", nil)
	ae := (*Error)(nil)
	if !errors.As(err, &ae) {
		t.Fatalf("err=%v, want app error", err)
	}
	if ae.Status != http.StatusUnprocessableEntity || ae.Code != "NO_MATCHING_TEMPLATE" {
		t.Fatalf("status=%d code=%s", ae.Status, ae.Code)
	}
}

func TestExtractText_StoresAndReturnsExtraction(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(1.0)

	docID := domain.DocumentID("doc-1")
	res, err := svc.ExtractText(context.Background(), "form text", &docID)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if res.Replayed {
		t.Fatalf("first extraction should not be a replay")
	}
	e := res.Extraction
	if e.TemplateID != "fake_template_v1" || e.Profession != "testers" {
		t.Fatalf("template/profession=%s/%s", e.TemplateID, e.Profession)
	}
	if e.Insurer == nil || *e.Insurer != "Apex Mutual" {
		t.Fatalf("insurer=%v", e.Insurer)
	}
	if e.InsurerConfidence != 0.0 {
		t.Fatalf("insurerConfidence=%v, want 0", e.InsurerConfidence)
	}
	if e.DocumentID == nil || *e.DocumentID != docID {
		t.Fatalf("documentID=%v", e.DocumentID)
	}
	if !e.CreatedAt.Equal(time.Unix(100, 0).UTC()) {
		t.Fatalf("createdAt=%v", e.CreatedAt)
	}

	stored, err := repo.GetByID(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("stored extraction missing: %v", err)
	}
	if stored.TextSHA256 != e.TextSHA256 {
		t.Fatalf("fingerprint mismatch")
	}
}

func TestExtractText_ReplaysIdenticalText(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(1.0)

	first, err := svc.ExtractText(context.Background(), "same text", nil)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	// Leading/trailing whitespace does not change the fingerprint.
	second, err := svc.ExtractText(context.Background(), "  same text \n", nil)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !second.Replayed {
		t.Fatalf("second extraction should be a replay")
	}
	if second.Extraction.ID != first.Extraction.ID {
		t.Fatalf("ids differ: %s vs %s", second.Extraction.ID, first.Extraction.ID)
	}
}

func TestGetExtraction_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(1.0)

	_, err := svc.GetExtraction(context.Background(), "missing")
	ae := (*Error)(nil)
	if !errors.As(err, &ae) {
		t.Fatalf("err=%v, want app error", err)
	}
	if ae.Status != http.StatusNotFound || ae.Code != "EXTRACTION_NOT_FOUND" {
		t.Fatalf("status=%d code=%s", ae.Status, ae.Code)
	}
}

func TestTemplates_ListsRegisteredExtractors(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(1.0)

	infos := svc.Templates()
	if len(infos) != 1 {
		t.Fatalf("len=%d want=1", len(infos))
	}
	if infos[0].TemplateID != "fake_template_v1" || infos[0].Profession != "testers" {
		t.Fatalf("infos=%+v", infos)
	}
}

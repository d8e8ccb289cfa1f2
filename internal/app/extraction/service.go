package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/extract"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/clock"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/extractionrepo"
)

type Service struct {
	registry *extract.Registry
	results  extractionrepo.Repository
	clk      clock.Clock
	log      logrus.FieldLogger
}

func NewService(registry *extract.Registry, results extractionrepo.Repository, clk clock.Clock, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		registry: registry,
		results:  results,
		clk:      clk,
		log:      log,
	}
}

// Result pairs an extraction with whether it was replayed from storage
// rather than computed.
type Result struct {
	Extraction domain.Extraction
	Replayed   bool
}

// ExtractText runs the best-matching template extractor over the OCR
// text. Extraction is a pure function of its input, so results are
// stored keyed by the SHA-256 of the trimmed text and identical
// submissions replay the stored result.
func (s *Service) ExtractText(ctx context.Context, ocrText string, docID *domain.DocumentID) (Result, error) {
	text := strings.TrimSpace(ocrText)
	if text == "" {
		return Result{}, &Error{Status: http.StatusBadRequest, Code: "OCR_TEXT_REQUIRED", Message: "ocr_text is required"}
	}

	sum := sha256.Sum256([]byte(text))
	fingerprint := hex.EncodeToString(sum[:])

	if prev, err := s.results.GetByTextSHA256(ctx, fingerprint); err == nil {
		return Result{Extraction: prev, Replayed: true}, nil
	} else if !errors.Is(err, extractionrepo.ErrNotFound) {
		return Result{}, err
	}

	ext, score, err := s.registry.Best(text)
	if err != nil {
		if errors.Is(err, extract.ErrNoMatch) {
			return Result{}, &Error{Status: http.StatusUnprocessableEntity, Code: "NO_MATCHING_TEMPLATE", Message: "no suitable template extractor found for the provided text"}
		}
		return Result{}, err
	}

	raw, norm := ext.Extract(text)

	// Insurer identification is deferred to the quote stage; when the
	// current-policy insurer was captured it is surfaced with zero
	// confidence.
	var insurer *string
	if v, ok := norm["current_pi_insurer"].(string); ok && v != "" {
		insurer = &v
	}

	e := domain.Extraction{
		ID:                domain.ExtractionID(uuid.NewString()),
		TemplateID:        ext.TemplateID(),
		Profession:        ext.Profession(),
		Insurer:           insurer,
		InsurerConfidence: 0.0,
		TextSHA256:        fingerprint,
		FieldsRaw:         raw,
		FieldsNormalized:  norm,
		DocumentID:        docID,
		CreatedAt:         s.clk.Now(),
	}

	if err := s.results.Create(ctx, e); err != nil {
		if errors.Is(err, extractionrepo.ErrAlreadyExists) {
			// Concurrent submission of the same text; replay the winner.
			if prev, gerr := s.results.GetByTextSHA256(ctx, fingerprint); gerr == nil {
				return Result{Extraction: prev, Replayed: true}, nil
			}
		}
		return Result{}, errors.Wrap(err, "store extraction")
	}

	s.log.WithFields(logrus.Fields{
		"extractionId": string(e.ID),
		"templateId":   e.TemplateID,
		"matchScore":   score,
	}).Info("extraction stored")

	return Result{Extraction: e}, nil
}

func (s *Service) GetExtraction(ctx context.Context, id domain.ExtractionID) (domain.Extraction, error) {
	e, err := s.results.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, extractionrepo.ErrNotFound) {
			return domain.Extraction{}, &Error{Status: http.StatusNotFound, Code: "EXTRACTION_NOT_FOUND", Message: "extraction not found"}
		}
		return domain.Extraction{}, err
	}
	return e, nil
}

// TemplateInfo describes one registered extractor.
type TemplateInfo struct {
	TemplateID string
	Profession string
}

func (s *Service) Templates() []TemplateInfo {
	xs := s.registry.List()
	out := make([]TemplateInfo, 0, len(xs))
	for _, x := range xs {
		out = append(out, TemplateInfo{TemplateID: x.TemplateID(), Profession: x.Profession()})
	}
	return out
}

package documents

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/clock"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/docrepo"
)

// DefaultMaxUploadBytes caps uploads at 20 MiB unless configured otherwise.
const DefaultMaxUploadBytes = 20 << 20

type Service struct {
	docs           docrepo.Repository
	clk            clock.Clock
	maxUploadBytes int64
	log            logrus.FieldLogger
}

func NewService(docs docrepo.Repository, clk clock.Clock, maxUploadBytes int64, log logrus.FieldLogger) *Service {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		docs:           docs,
		clk:            clk,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

func (s *Service) MaxUploadBytes() int64 { return s.maxUploadBytes }

type UploadInput struct {
	Filename string
	Content  []byte
}

// Upload records metadata for an uploaded file. The content type is
// sniffed from the bytes rather than trusted from the client.
func (s *Service) Upload(ctx context.Context, in UploadInput) (domain.Document, error) {
	if len(in.Content) == 0 {
		return domain.Document{}, &Error{Status: http.StatusBadRequest, Code: "FILE_REQUIRED", Message: "a non-empty file is required"}
	}
	if int64(len(in.Content)) > s.maxUploadBytes {
		return domain.Document{}, (&Error{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    "FILE_TOO_LARGE",
			Message: "uploaded file exceeds the size limit",
		}).WithDetails(map[string]any{"maxBytes": s.maxUploadBytes})
	}

	sum := sha256.Sum256(in.Content)

	d := domain.Document{
		ID:          domain.DocumentID(uuid.NewString()),
		Filename:    in.Filename,
		ContentType: mimetype.Detect(in.Content).String(),
		SizeBytes:   int64(len(in.Content)),
		SHA256:      hex.EncodeToString(sum[:]),
		UploadedAt:  s.clk.Now(),
	}

	if err := s.docs.Create(ctx, d); err != nil {
		return domain.Document{}, errors.Wrap(err, "store document")
	}

	s.log.WithFields(logrus.Fields{
		"documentId":  string(d.ID),
		"contentType": d.ContentType,
		"sizeBytes":   d.SizeBytes,
	}).Info("document received")

	return d, nil
}

func (s *Service) GetDocument(ctx context.Context, id domain.DocumentID) (domain.Document, error) {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docrepo.ErrNotFound) {
			return domain.Document{}, &Error{Status: http.StatusNotFound, Code: "DOCUMENT_NOT_FOUND", Message: "document not found"}
		}
		return domain.Document{}, err
	}
	return d, nil
}

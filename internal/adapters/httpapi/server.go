package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/nullable"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/app/documents"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/app/extraction"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
)

// batchConcurrency bounds the extractor fan-out for /extract/batch.
const batchConcurrency = 4

// maxBatchItems keeps one request from monopolizing the process.
const maxBatchItems = 50

// multipartOverhead is headroom on top of the file-size cap for the
// multipart boundary lines and part headers, so a file exactly at the
// cap still parses. The exact cap is enforced by the documents service.
const multipartOverhead = 1 << 20

// Server is the HTTP handler implementation over the application services.
type Server struct {
	Documents  *documents.Service
	Extraction *extraction.Service

	log logrus.FieldLogger
}

func NewServer(docsSvc *documents.Service, extractionSvc *extraction.Service, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		Documents:  docsSvc,
		Extraction: extractionSvc,
		log:        log,
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, RootResponse{Message: "Backend is running"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Documents.MaxUploadBytes()+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file exceeds the size limit", nil)
			return
		}
		s.writeError(w, r, http.StatusBadRequest, "FILE_REQUIRED", "multipart field 'file' is required", nil)
		return
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	content, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "FILE_UNREADABLE", "could not read uploaded file", nil)
		return
	}

	d, err := s.Documents.Upload(r.Context(), documents.UploadInput{
		Filename: header.Filename,
		Content:  content,
	})
	if err != nil {
		s.writeDocumentsError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, UploadResponse{
		DocumentID:  string(d.ID),
		Filename:    d.Filename,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		Status:      "File received successfully",
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON", nil)
		return
	}

	res, err := s.extractOne(r.Context(), req)
	if err != nil {
		s.writeExtractionError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleExtractBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_JSON", "request body must be valid JSON", nil)
		return
	}
	if len(req.Items) == 0 {
		s.writeError(w, r, http.StatusBadRequest, "ITEMS_REQUIRED", "items must be a non-empty list", nil)
		return
	}
	if len(req.Items) > maxBatchItems {
		s.writeError(w, r, http.StatusBadRequest, "TOO_MANY_ITEMS", "too many items in one batch", map[string]any{"maxItems": maxBatchItems})
		return
	}

	results := make([]BatchExtractionItem, len(req.Items))

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchConcurrency)
	for i, item := range req.Items {
		i, item := i, item
		g.Go(func() error {
			res, err := s.extractOne(ctx, item)
			if err != nil {
				ae := (*extraction.Error)(nil)
				if errors.As(err, &ae) {
					results[i] = BatchExtractionItem{Error: &BatchItemError{Code: ae.Code, Message: ae.Message}}
					return nil
				}
				// Infrastructure failure aborts the whole batch.
				return err
			}
			results[i] = BatchExtractionItem{Extraction: &res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.writeExtractionError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, BatchExtractionResponse{Results: results})
}

func (s *Server) extractOne(ctx context.Context, req ExtractionRequest) (ExtractionResponse, error) {
	var docID *domain.DocumentID
	if req.DocumentID != nil && *req.DocumentID != "" {
		id := domain.DocumentID(*req.DocumentID)
		docID = &id
	}
	res, err := s.Extraction.ExtractText(ctx, req.OCRText, docID)
	if err != nil {
		return ExtractionResponse{}, err
	}
	return extractionResponseFromDomain(res.Extraction), nil
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := domain.DocumentID(chi.URLParam(r, "documentID"))
	d, err := s.Documents.GetDocument(r.Context(), id)
	if err != nil {
		s.writeDocumentsError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, documentResponseFromDomain(d))
}

func (s *Server) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	id := domain.ExtractionID(chi.URLParam(r, "extractionID"))
	e, err := s.Extraction.GetExtraction(r.Context(), id)
	if err != nil {
		s.writeExtractionError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, extractionResponseFromDomain(e))
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	infos := s.Extraction.Templates()
	out := TemplatesResponse{Templates: make([]TemplateResponse, 0, len(infos))}
	for _, ti := range infos {
		out.Templates = append(out.Templates, TemplateResponse{
			TemplateID: ti.TemplateID,
			Profession: ti.Profession,
		})
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

// ---- error mapping ----

func (s *Server) writeDocumentsError(w http.ResponseWriter, r *http.Request, err error) {
	ae := (*documents.Error)(nil)
	if errors.As(err, &ae) {
		s.writeError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	s.writeInternalError(w, r, err)
}

func (s *Server) writeExtractionError(w http.ResponseWriter, r *http.Request, err error) {
	ae := (*extraction.Error)(nil)
	if errors.As(err, &ae) {
		s.writeError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	s.writeInternalError(w, r, err)
}

func (s *Server) writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.WithField("requestId", middleware.GetReqID(r.Context())).WithError(err).Error("request failed")
	s.writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	var body ErrorResponse
	body.Error.Code = code
	body.Error.Message = message
	if details != nil {
		body.Error.Details = nullable.NewNullableWithValue(details)
	}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		body.Error.RequestId = nullable.NewNullableWithValue(rid)
	}
	s.writeJSON(w, r, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithField("requestId", middleware.GetReqID(r.Context())).WithError(err).Error("encode response")
	}
}

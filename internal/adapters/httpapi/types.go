package httpapi

import (
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"
)

// ErrorResponse is the error envelope for every non-2xx response.
type ErrorResponse struct {
	Error struct {
		Code      string                            `json:"code"`
		Message   string                            `json:"message"`
		Details   nullable.Nullable[map[string]any] `json:"details,omitempty"`
		RequestId nullable.Nullable[string]         `json:"requestId,omitempty"`
	} `json:"error"`
}

type RootResponse struct {
	Message string `json:"message"`
}

type UploadResponse struct {
	DocumentID  string `json:"document_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Status      string `json:"status"`
}

type DocumentResponse struct {
	DocumentID  string    `json:"document_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	SHA256      string    `json:"sha256"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type ExtractionRequest struct {
	OCRText    string  `json:"ocr_text"`
	DocumentID *string `json:"document_id,omitempty"`
}

type ExtractionResponse struct {
	ExtractionID      string                    `json:"extraction_id"`
	TemplateID        nullable.Nullable[string] `json:"template_id"`
	Profession        nullable.Nullable[string] `json:"profession"`
	Insurer           nullable.Nullable[string] `json:"insurer"`
	InsurerConfidence float64                   `json:"insurer_confidence"`
	FieldsRaw         map[string]any            `json:"fields_raw"`
	FieldsNormalized  map[string]any            `json:"fields_normalized"`
}

type BatchExtractionRequest struct {
	Items []ExtractionRequest `json:"items"`
}

// BatchExtractionItem carries either an extraction or an error, never both.
type BatchExtractionItem struct {
	Extraction *ExtractionResponse `json:"extraction,omitempty"`
	Error      *BatchItemError     `json:"error,omitempty"`
}

type BatchItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BatchExtractionResponse struct {
	Results []BatchExtractionItem `json:"results"`
}

type TemplateResponse struct {
	TemplateID string `json:"template_id"`
	Profession string `json:"profession"`
}

type TemplatesResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

func extractionResponseFromDomain(e domain.Extraction) ExtractionResponse {
	out := ExtractionResponse{
		ExtractionID:      string(e.ID),
		InsurerConfidence: e.InsurerConfidence,
		FieldsRaw:         e.FieldsRaw,
		FieldsNormalized:  e.FieldsNormalized,
	}
	out.TemplateID.Set(e.TemplateID)
	out.Profession.Set(e.Profession)
	if e.Insurer != nil {
		out.Insurer.Set(*e.Insurer)
	} else {
		out.Insurer.SetNull()
	}
	return out
}

func documentResponseFromDomain(d domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:  string(d.ID),
		Filename:    d.Filename,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		SHA256:      d.SHA256,
		UploadedAt:  d.UploadedAt,
	}
}

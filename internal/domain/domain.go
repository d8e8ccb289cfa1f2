// Package domain holds the core entities shared across the application
// layer, the extraction engine, and the outbound ports.
package domain

import "time"

type DocumentID string

type ExtractionID string

// Document is the stored metadata for an uploaded file. The bytes
// themselves are not retained beyond sniffing and hashing; OCR happens
// upstream and only its text output flows back through /extract.
type Document struct {
	ID          DocumentID
	Filename    string
	ContentType string
	SizeBytes   int64
	SHA256      string
	UploadedAt  time.Time
}

// FieldValues is a string-keyed bag of extracted values. Raw views hold
// strings (or nil for fields the template expects but could not find);
// normalized views hold strings, float64s, ints, bools, or nil.
type FieldValues map[string]any

// Extraction is one completed run of a template extractor over a piece
// of OCR text.
type Extraction struct {
	ID                ExtractionID
	TemplateID        string
	Profession        string
	Insurer           *string
	InsurerConfidence float64
	TextSHA256        string
	FieldsRaw         FieldValues
	FieldsNormalized  FieldValues
	DocumentID        *DocumentID
	CreatedAt         time.Time
}

// Clone copies the top-level map so repository callers cannot mutate
// stored state. Values are scalars (or nil), so no deeper copy is needed.
func (f FieldValues) Clone() FieldValues {
	if f == nil {
		return nil
	}
	out := make(FieldValues, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Package extract is the template-extraction engine: a registry of
// per-template extractors that score how well a piece of OCR text
// matches their form layout and pull structured fields out of it.
package extract

import "github.com/matthewbartlett-hub/apex-ai-backend/internal/domain"

// Extractor pulls fields from OCR text of one known form template.
//
// MatchScore returns a value in [0, 1] estimating how likely the text
// is an instance of this template. Extract returns the raw captured
// strings and a normalized (typed) view; both keep the template's full
// key set, with nil for fields that could not be found.
type Extractor interface {
	TemplateID() string
	Profession() string
	MatchScore(text string) float64
	Extract(text string) (raw, normalized domain.FieldValues)
}

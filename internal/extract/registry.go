package extract

import "github.com/pkg/errors"

// MatchThreshold is the confidence floor below which no template is
// applied, so random noise never produces a half-filled result.
const MatchThreshold = 0.5

var ErrNoMatch = errors.New("no template extractor matched the text")

// Registry holds the known template extractors.
type Registry struct {
	extractors []Extractor
}

func NewRegistry(extractors ...Extractor) *Registry {
	return &Registry{extractors: append([]Extractor(nil), extractors...)}
}

// Best returns the highest-scoring extractor for the text and its
// score. Returns ErrNoMatch when the best score is below
// MatchThreshold.
func (r *Registry) Best(text string) (Extractor, float64, error) {
	var best Extractor
	bestScore := 0.0
	for _, e := range r.extractors {
		if score := e.MatchScore(text); score > bestScore {
			best = e
			bestScore = score
		}
	}
	if best == nil || bestScore < MatchThreshold {
		return nil, 0, ErrNoMatch
	}
	return best, bestScore, nil
}

// List returns the registered extractors in registration order.
func (r *Registry) List() []Extractor {
	return append([]Extractor(nil), r.extractors...)
}

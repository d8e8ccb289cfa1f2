package extractionrepo

import (
	"testing"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/contracttest"
	extractionrepoport "github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/extractionrepo"
)

func TestContract_MemoryExtractionRepo(t *testing.T) {
	contracttest.RunExtractionRepo(t, func(t *testing.T) (extractionrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}

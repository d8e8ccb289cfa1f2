package docrepo

import (
	"testing"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/contracttest"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/postgres/testutil"
	docrepoport "github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/docrepo"
)

func TestContract_PostgresDocRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunDocRepo(t, func(t *testing.T) (docrepoport.Repository, func()) {
		t.Helper()
		testutil.TruncateAll(t, pool)
		return NewRepo(pool), nil
	})
}

package tokenstore

import (
	"testing"

	"github.com/Mergington-High/activity-signup-client/internal/adapters/contracttest"
	tokenstoreport "github.com/Mergington-High/activity-signup-client/internal/ports/out/tokenstore"
)

func TestContract(t *testing.T) {
	t.Parallel()
	contracttest.RunTokenStore(t, func(t *testing.T) (tokenstoreport.Store, contracttest.CleanupFunc) {
		return NewStore(), nil
	})
}

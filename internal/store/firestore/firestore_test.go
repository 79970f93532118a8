package firestore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayato-coosy/kouseian/internal/store"
	"github.com/hayato-coosy/kouseian/internal/store/storetest"
)

func TestNew_MissingProject(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrProjectIDMissing)
}

// TestStore_Conformance runs against the Firestore emulator only.
func TestStore_Conformance(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	storetest.Run(t, func(t *testing.T) store.Store {
		// A collection per subtest keeps ids from colliding between runs.
		collection := fmt.Sprintf("test-%d", time.Now().UnixNano())
		s, err := New(context.Background(), Config{ProjectID: "kouseian-test", Collection: collection})
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

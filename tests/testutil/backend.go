package testutil

import (
	"testing"

	"github.com/smartdoit/smarttodo/internal/backend"
)

// NewTestClient creates an in-memory SQLiteClient with all migrations
// applied. It automatically closes the client when the test completes.
func NewTestClient(t *testing.T) *backend.SQLiteClient {
	t.Helper()

	c, err := backend.NewSQLiteClient(":memory:")
	if err != nil {
		t.Fatalf("creating test client: %v", err)
	}

	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("closing test client: %v", err)
		}
	})

	return c
}

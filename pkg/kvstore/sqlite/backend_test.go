package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/wameed/portal/pkg/kvstore/testsuite"
)

func TestBackend(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "storage.db")

	testsuite.TestBackend(t, Type, map[string]any{
		"path": dbPath,
	})
}

// Package history persists computation runs and their site-year results so
// estimates can be inspected and exported after the fact. Tracking is best
// effort: a history failure is reported as a warning and never breaks a
// computation.
package history

import (
	"os"
	"path/filepath"

	"github.com/sbcounts/aadv/internal/contract"
	"github.com/sbcounts/aadv/schema"
)

// Manager is the process-wide history manager, set up by Init.
var Manager contract.HistoryManager = &managerImpl{}

// managerImpl hands out the configured store.
type managerImpl struct {
	store contract.HistoryStore
}

var _ contract.HistoryManager = (*managerImpl)(nil) // Compile-time check

// GetHistoryStore implements the HistoryManager interface. It returns nil
// when tracking is disabled.
func (m *managerImpl) GetHistoryStore() contract.HistoryStore {
	return m.store
}

// Init configures the global manager for the given backend. The none
// backend disables tracking entirely.
func Init(backend schema.DatabaseBackend, connStr string) error {
	if backend == schema.NoneBackend {
		Manager = &managerImpl{}
		return nil
	}
	store, err := NewStore(backend, connStr)
	if err != nil {
		return err
	}
	Manager = &managerImpl{store: store}
	return nil
}

// Close tears down the global manager's store, if any.
func Close() error {
	if store := Manager.GetHistoryStore(); store != nil {
		return store.Close()
	}
	return nil
}

// DefaultDBFilePath returns the SQLite file used when no connection string
// is configured.
func DefaultDBFilePath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "aadv_history.db"
	}
	dir := filepath.Join(cacheDir, "aadv")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "aadv_history.db"
	}
	return filepath.Join(dir, "history.db")
}

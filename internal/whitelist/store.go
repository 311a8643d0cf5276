package whitelist

import (
	"fmt"
	"sync/atomic"

	"github.com/xdg/warden/internal/config"
)

// Store holds the current whitelist snapshot and swaps it atomically on
// reload. There is a single writer (the control plane); handlers only read.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

// NewStore creates a Store seeded with an empty snapshot so Current never
// returns nil.
func NewStore() *Store {
	st := &Store{}
	st.snap.Store(NewSnapshot(nil))
	return st
}

// Current returns the latest snapshot without blocking.
func (st *Store) Current() *Snapshot {
	return st.snap.Load()
}

// Replace installs a new snapshot built from entries. Used at startup to
// seed the store from already-validated settings.
func (st *Store) Replace(entries []string) {
	st.snap.Store(NewSnapshot(entries))
}

// Reload reads the configuration source at path and atomically swaps in a
// new snapshot built from its commands list. On any failure (unreadable
// source, malformed YAML, missing or invalid commands field) the previous
// snapshot stays in effect and the error is returned for logging.
func (st *Store) Reload(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("reload whitelist: %w", err)
	}
	if err := config.ValidateCommands(cfg.Commands); err != nil {
		return fmt.Errorf("reload whitelist: %w", err)
	}
	st.snap.Store(NewSnapshot(cfg.Commands))
	return nil
}

package whitelist

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// writeSource writes a whitelist config source file and returns its path.
func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestStoreCurrentNeverNil(t *testing.T) {
	st := NewStore()
	snap := st.Current()
	if snap == nil {
		t.Fatal("Current() returned nil")
	}
	if snap.Allowed("anything") {
		t.Error("empty store should reject everything")
	}
}

func TestStoreReplace(t *testing.T) {
	st := NewStore()
	st.Replace([]string{"uptime"})
	if !st.Current().Allowed("uptime") {
		t.Error("replaced snapshot should allow uptime")
	}
	st.Replace([]string{"date"})
	if st.Current().Allowed("uptime") {
		t.Error("old entry should be gone after Replace")
	}
	if !st.Current().Allowed("date") {
		t.Error("new entry should be allowed after Replace")
	}
}

func TestStoreReload(t *testing.T) {
	t.Run("successful reload swaps snapshot", func(t *testing.T) {
		st := NewStore()
		st.Replace([]string{"date"})

		path := writeSource(t, "commands:\n  - date\n  - uptime\n")
		if err := st.Reload(path); err != nil {
			t.Fatalf("Reload failed: %v", err)
		}
		if !st.Current().Allowed("uptime") {
			t.Error("uptime should be allowed after reload")
		}
	})

	t.Run("unreadable source keeps previous snapshot", func(t *testing.T) {
		st := NewStore()
		st.Replace([]string{"date"})

		err := st.Reload(filepath.Join(t.TempDir(), "gone.yaml"))
		if err == nil {
			t.Fatal("Reload of a missing source should fail")
		}
		if !st.Current().Allowed("date") {
			t.Error("previous snapshot should survive a failed reload")
		}
		if st.Current().Allowed("uptime") {
			t.Error("failed reload must not admit new entries")
		}
	})

	t.Run("malformed source keeps previous snapshot", func(t *testing.T) {
		st := NewStore()
		st.Replace([]string{"date"})

		path := writeSource(t, "commands: [date, uptime\n")
		if err := st.Reload(path); err == nil {
			t.Fatal("Reload of malformed YAML should fail")
		}
		if !st.Current().Allowed("date") || st.Current().Allowed("uptime") {
			t.Error("authorize decisions must be identical to before the failed reload")
		}
	})

	t.Run("missing commands field keeps previous snapshot", func(t *testing.T) {
		st := NewStore()
		st.Replace([]string{"date"})

		path := writeSource(t, "port: 5000\n")
		if err := st.Reload(path); err == nil {
			t.Fatal("Reload without a commands field should fail")
		}
		if !st.Current().Allowed("date") {
			t.Error("previous snapshot should survive a reload with no commands field")
		}
	})
}

// Concurrent readers must always observe a complete snapshot: either every
// entry of the old generation or every entry of the new one, never a mix.
func TestStoreSnapshotAtomicity(t *testing.T) {
	st := NewStore()
	oldGen := []string{"alpha", "bravo"}
	newGen := []string{"charlie", "delta"}
	st.Replace(oldGen)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := st.Current()
				sawOld := snap.Allowed("alpha")
				sawNew := snap.Allowed("charlie")
				if sawOld == sawNew {
					t.Errorf("mixed snapshot observed: old=%v new=%v", sawOld, sawNew)
					return
				}
				if sawOld && !snap.Allowed("bravo") {
					t.Error("old generation observed without all its entries")
					return
				}
				if sawNew && !snap.Allowed("delta") {
					t.Error("new generation observed without all its entries")
					return
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		st.Replace(newGen)
		st.Replace(oldGen)
	}
	st.Replace(newGen)
	close(stop)
	wg.Wait()
}

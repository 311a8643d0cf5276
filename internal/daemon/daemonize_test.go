package daemon

import (
	"os"
	"testing"
)

func TestDaemonized(t *testing.T) {
	t.Setenv(childEnvVar, "")
	os.Unsetenv(childEnvVar)
	if Daemonized() {
		t.Error("Daemonized should be false without the marker variable")
	}

	t.Setenv(childEnvVar, "1")
	if !Daemonized() {
		t.Error("Daemonized should be true with the marker variable set")
	}
}

func TestInitChildSanitizesPath(t *testing.T) {
	t.Setenv("PATH", "/weird/launcher/path")
	InitChild()
	if got := os.Getenv("PATH"); got != daemonPath {
		t.Errorf("PATH = %q, want %q", got, daemonPath)
	}
}

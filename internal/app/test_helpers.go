package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/tuneit/internal/tune"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance backed by a real tune.Loader.
func SetupAppTest(t *testing.T, cfg *Config) (*App, *SafeBuffer) {
	t.Helper()

	out := &SafeBuffer{}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	testApp := NewApp(out, cfg, tune.NewLoader())

	t.Cleanup(func() {
		if os.Getenv("TUNEIT_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	return testApp, out
}

// WriteInput writes content to name inside a fresh temporary directory and
// returns its path.
func WriteInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	WriteInputAt(t, path, content)
	return path
}

// WriteInputAt writes content to path.
func WriteInputAt(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

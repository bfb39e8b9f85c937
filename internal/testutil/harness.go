package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/tuneit/internal/app"
	"github.com/specialistvlad/tuneit/internal/tune"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	// Dir is the temporary directory the input files were written to.
	Dir string
}

// RunIntegrationTest writes files into a temporary directory and runs the
// app against that directory with a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithConfig(context.Background(), t, files, app.Config{})
}

// RunIntegrationTestWithConfig is RunIntegrationTest with a caller-supplied
// context and configuration. A relative cfg.InputPath is resolved against
// the temporary directory; an empty one means the directory itself.
func RunIntegrationTestWithConfig(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	// 1. Create a temporary root directory for the test.
	tmpDir, err := os.MkdirTemp("", ".tmp-integration-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	// 2. Write all input files. Relative names such as "jobs/a.tune-nw"
	//    create the subdirectory structure within tmpDir.
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	// 3. Point the app at the written files.
	cfg.InputPath = filepath.Join(tmpDir, cfg.InputPath)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, &cfg, tune.NewLoader())
	runErr := testApp.Run(ctx)

	if os.Getenv("TUNEIT_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Dir:       tmpDir,
	}
}

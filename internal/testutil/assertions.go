package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertInputValid checks the log output within a HarnessResult to confirm
// that the named input file passed validation.
func AssertInputValid(t *testing.T, result *HarnessResult, name string) {
	t.Helper()

	expectedLogSubstring := fmt.Sprintf("path=%s", filepath.Join(result.Dir, name))
	for _, line := range strings.Split(result.LogOutput, "\n") {
		if strings.Contains(line, "Tuning input is valid.") && strings.Contains(line, expectedLogSubstring) {
			return
		}
	}
	require.Fail(t, "input was not reported valid", "expected a validation success log for %q", name)
}

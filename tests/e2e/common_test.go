package e2e

import (
	"io"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildPocketBinary builds the pocket binary in the specified directory and
// returns its path. It handles the build command execution and error checking.
func buildPocketBinary(t *testing.T, dir string) string {
	t.Helper()
	pocketBin := filepath.Join(dir, "pocket.exe")
	// Assumes tests are running from tests/e2e or similar depth.
	buildCmd := exec.Command("go", "build", "-o", pocketBin, "../../cmd/pocket")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build pocket: %v\n%s", err, string(out))
	}
	return pocketBin
}

// runCmd executes a command in dir and fails the test on a non-zero exit.
// It returns the combined output for assertions.
func runCmd(t *testing.T, dir string, stdin io.Reader, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if stdin != nil {
		cmd.Stdin = stdin
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed in %s: %v\n%s", name, args, dir, err, string(out))
	}
	return string(out)
}

// runCmdExpectError executes a command expecting a non-zero exit. It
// returns the combined output; a zero exit fails the test.
func runCmdExpectError(t *testing.T, dir string, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("Command %s %v unexpectedly succeeded in %s:\n%s", name, args, dir, string(out))
	}
	return string(out)
}

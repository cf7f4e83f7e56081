package git

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClient_Lock(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)

	// Test 1: Acquire Lock
	unlock, err := client.Lock()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	// Verify lock file exists
	lockPath := filepath.Join(tmpDir, ".pocket.lock")
	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		t.Error("Lock file not created")
	}

	// Test 2: Contention (Simulated)
	// Try to acquire lock again should block or fail if we didn't use a goroutine.
	// Since Lock() blocks, we can't easily test blocking in single thread without timeout logic in test.
	// So let's just verify Unlock removes the file.

	unlock()

	// Verify lock file removed
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("Lock file not removed after unlock")
	}
}

func TestClient_LockNameConfigurable(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, ".custom.lock", nil)

	unlock, err := client.Lock()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	defer unlock()

	if _, err := os.Stat(filepath.Join(tmpDir, ".custom.lock")); os.IsNotExist(err) {
		t.Error("Lock file not created under configured name")
	}
}

func TestClient_Init(t *testing.T) {
	requireGit(t)

	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)

	if err := client.Init(); err != nil {
		t.Fatalf("Failed to init: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, ".git")); os.IsNotExist(err) {
		t.Error(".git directory not created")
	}

	if !client.IsRepo() {
		t.Error("IsRepo should be true after init")
	}
}

func TestClient_IsRepo(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)

	if client.IsRepo() {
		t.Error("IsRepo should be false for a plain directory")
	}
}

func TestClient_Log(t *testing.T) {
	requireGit(t)

	tmpDir := t.TempDir()
	client := newTestRepo(t, tmpDir)

	// Empty repo: no commits yet, but not an error.
	entries, err := client.Log(10)
	if err != nil {
		t.Fatalf("Log on empty repo failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := client.Add("a.txt"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := client.Commit("first change"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	entries, err = client.Log(10)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %v", len(entries), entries)
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if !IsInstalled() {
		t.Skip("git is not installed")
	}
}

// newTestRepo initializes a git repo with a local identity so commits work
// in bare CI environments.
func newTestRepo(t *testing.T, dir string) *Client {
	t.Helper()

	client := NewClient(dir, "", nil)
	if err := client.Init(); err != nil {
		t.Fatalf("Failed to init: %v", err)
	}
	if _, err := client.Run("config", "user.email", "test@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Run("config", "user.name", "test"); err != nil {
		t.Fatal(err)
	}
	return client
}

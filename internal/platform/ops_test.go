package platform_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/pocket"
	"github.com/aretw0/pocket/pkg/adapters/fs"
	"github.com/aretw0/pocket/pkg/adapters/memory"
	"github.com/aretw0/pocket/pkg/adapters/sqlite"
	"github.com/aretw0/pocket/pkg/git"
)

func TestInit(t *testing.T) {
	t.Run("AutoInit Creates Directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		workspace := filepath.Join(tmpDir, "workspace")

		repo, err := pocket.Init(workspace, pocket.WithAutoInit(true), pocket.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		fsRepo, ok := repo.(*fs.Repository)
		if !ok {
			t.Fatalf("Expected fs repository")
		}

		if fsRepo.Path != workspace {
			t.Errorf("Expected path %s, got %s", workspace, fsRepo.Path)
		}

		// Check directory exists
		if info, err := os.Stat(workspace); err != nil || !info.IsDir() {
			t.Errorf("Workspace directory not created")
		}

		// Versioning defaults off, so no git repo should appear
		if _, err := os.Stat(filepath.Join(workspace, ".git")); !os.IsNotExist(err) {
			t.Errorf(".git directory should not exist without versioning")
		}
	})

	t.Run("Versioned Init Creates Git Repo", func(t *testing.T) {
		requireGit(t)
		tmpDir := t.TempDir()
		workspace := filepath.Join(tmpDir, "workspace")

		_, err := pocket.Init(workspace,
			pocket.WithAutoInit(true),
			pocket.WithVersioning(true),
			pocket.WithForceTemp(true),
		)
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		if _, err := os.Stat(filepath.Join(workspace, ".git")); os.IsNotExist(err) {
			t.Errorf(".git directory not found")
		}

		// System files must be kept out of history
		ignore, err := os.ReadFile(filepath.Join(workspace, ".gitignore"))
		if err != nil {
			t.Fatalf("Failed to read .gitignore: %v", err)
		}
		if !strings.Contains(string(ignore), fs.DefaultSystemDir+"/") {
			t.Errorf(".gitignore does not cover the system dir, got:\n%s", ignore)
		}
	})

	t.Run("Versioning Auto-Detected from Git Dir", func(t *testing.T) {
		requireGit(t)
		tmpDir := t.TempDir()
		workspace := filepath.Join(tmpDir, "workspace")
		if err := os.MkdirAll(workspace, 0755); err != nil {
			t.Fatal(err)
		}
		if err := git.NewClient(workspace, "", nil).Init(); err != nil {
			t.Fatalf("git init failed: %v", err)
		}

		repo, err := pocket.Init(workspace, pocket.WithAutoInit(true), pocket.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		state, ok := repo.(*fs.Repository).State().(fs.RepositoryState)
		if !ok {
			t.Fatalf("Expected fs.RepositoryState")
		}
		if !state.Versioned {
			t.Errorf("Expected versioning to be auto-detected from existing .git")
		}
	})

	t.Run("MustExist Fails if Directory Missing", func(t *testing.T) {
		tmpDir := t.TempDir()
		missing := filepath.Join(tmpDir, "missing")

		_, err := pocket.Init(missing, pocket.WithMustExist(true), pocket.WithForceTemp(true))
		if err == nil {
			t.Error("Expected failure for missing directory with MustExist")
		}
	})

	t.Run("SQLite Adapter Creates Database", func(t *testing.T) {
		tmpDir := t.TempDir()
		workspace := filepath.Join(tmpDir, "workspace")

		repo, err := pocket.Init(workspace, pocket.WithAdapter("sqlite"), pocket.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if _, ok := repo.(*sqlite.Repository); !ok {
			t.Fatalf("Expected sqlite repository")
		}

		dbPath := filepath.Join(workspace, fs.DefaultSystemDir, "pocket.db")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Errorf("Database file not created at %s", dbPath)
		}
	})

	t.Run("Memory Adapter Touches No Disk", func(t *testing.T) {
		tmpDir := t.TempDir()
		workspace := filepath.Join(tmpDir, "workspace")

		repo, err := pocket.Init(workspace, pocket.WithAdapter("memory"), pocket.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if _, ok := repo.(*memory.Repository); !ok {
			t.Fatalf("Expected memory repository")
		}

		if _, err := os.Stat(workspace); !os.IsNotExist(err) {
			t.Errorf("Memory adapter should not create the workspace directory")
		}
	})

	t.Run("Unknown Adapter Fails", func(t *testing.T) {
		_, err := pocket.Init(t.TempDir(), pocket.WithAdapter("carrier-pigeon"), pocket.WithForceTemp(true))
		if err == nil {
			t.Error("Expected failure for unknown adapter")
		}
	})

	t.Run("Config File Selects Adapter", func(t *testing.T) {
		tmpDir := t.TempDir()
		workspace := filepath.Join(tmpDir, "workspace")
		if err := os.MkdirAll(filepath.Join(workspace, fs.DefaultSystemDir), 0755); err != nil {
			t.Fatal(err)
		}
		cfgPath := filepath.Join(workspace, fs.DefaultSystemDir, "config.yaml")
		if err := os.WriteFile(cfgPath, []byte("adapter: sqlite\n"), 0644); err != nil {
			t.Fatal(err)
		}

		repo, err := pocket.Init(workspace, pocket.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if _, ok := repo.(*sqlite.Repository); !ok {
			t.Errorf("Expected sqlite repository from config file, got %T", repo)
		}
	})

	t.Run("Explicit Adapter Wins over Config File", func(t *testing.T) {
		tmpDir := t.TempDir()
		workspace := filepath.Join(tmpDir, "workspace")
		if err := os.MkdirAll(filepath.Join(workspace, fs.DefaultSystemDir), 0755); err != nil {
			t.Fatal(err)
		}
		cfgPath := filepath.Join(workspace, fs.DefaultSystemDir, "config.yaml")
		if err := os.WriteFile(cfgPath, []byte("adapter: sqlite\n"), 0644); err != nil {
			t.Fatal(err)
		}

		repo, err := pocket.Init(workspace, pocket.WithAdapter("fs"), pocket.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		if _, ok := repo.(*fs.Repository); !ok {
			t.Errorf("Expected fs repository, got %T", repo)
		}
	})
}

package platform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/pocket"
	"github.com/aretw0/pocket/pkg/git"
)

func setupWorkspace(t *testing.T, opts ...pocket.Option) (*pocket.Workspace, string) {
	t.Helper()
	tmpDir := t.TempDir()

	baseOpts := []pocket.Option{pocket.WithAutoInit(true)}
	finalOpts := append(baseOpts, opts...)

	ws, err := pocket.Open(tmpDir, finalOpts...)
	if err != nil {
		t.Fatalf("Failed to open workspace: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	return ws, tmpDir
}

func requireGit(t *testing.T) {
	t.Helper()
	if !git.IsInstalled() {
		t.Skip("git is not installed")
	}
	t.Setenv("GIT_AUTHOR_NAME", "test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
}

func TestWorkspace_WriteCommit(t *testing.T) {
	requireGit(t)
	ws, tmpDir := setupWorkspace(t, pocket.WithVersioning(true))

	ctx := context.TODO()

	group, err := ws.CreateGroup(ctx, "Work Items", pocket.ColorBlue)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if _, err := ws.AddNoteTo(ctx, group.ID, "prepare sprint review"); err != nil {
		t.Fatalf("AddNoteTo failed: %v", err)
	}

	// Check if slot files exist on disk
	for _, name := range []string{"pocketGroups.json", "pocketNotes.json"} {
		if _, err := os.Stat(filepath.Join(tmpDir, name)); os.IsNotExist(err) {
			t.Errorf("Slot file was not created at %s", name)
		}
	}

	// Verify Git Status (Requires a Git Client directly to verify side effects)
	gitClient := git.NewClient(tmpDir, "", nil)
	status, err := gitClient.Status()
	if err != nil {
		t.Fatalf("Git Status failed: %v", err)
	}
	t.Logf("Git Status after writes:\n%s", status)

	// Since every slot write commits, status should be clean
	if status != "" {
		t.Errorf("Expected git status to be clean, got %s", status)
	}

	// Read back through a fresh workspace (round-trip verification)
	if err := ws.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	reopened, err := pocket.Open(tmpDir)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	groups := reopened.ListGroups()
	if len(groups) != 1 || groups[0].Name != "Work Items" {
		t.Fatalf("Groups did not survive reopen: %+v", groups)
	}
	notes := reopened.ListNotes(group.ID)
	if len(notes) != 1 || notes[0].Content != "prepare sprint review" {
		t.Fatalf("Notes did not survive reopen: %+v", notes)
	}

	// History should cover both slot writes
	history, err := reopened.History(ctx, 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) < 2 {
		t.Errorf("Expected at least 2 history entries, got %d: %v", len(history), history)
	}
}

func TestWorkspace_SelectionFlow(t *testing.T) {
	ws, _ := setupWorkspace(t)
	ctx := context.TODO()

	family, err := ws.CreateGroup(ctx, "Family", pocket.ColorPink)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	work, err := ws.CreateGroup(ctx, "Work", pocket.ColorSky)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	// No selection yet: AddNote must refuse
	if _, err := ws.AddNote(ctx, "floating thought"); !errors.Is(err, pocket.ErrNoSelection) {
		t.Fatalf("Expected ErrNoSelection, got %v", err)
	}
	view := ws.View()
	if view.Group != nil || view.Notes != nil {
		t.Errorf("Expected empty view without selection, got %+v", view)
	}

	// Select and file notes
	ws.Select(family.ID)
	if _, err := ws.AddNote(ctx, "call grandma"); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if _, err := ws.AddNote(ctx, "plan sunday lunch"); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	view = ws.View()
	if view.Group == nil || view.Group.ID != family.ID {
		t.Fatalf("View should show the selected group, got %+v", view)
	}
	if len(view.Notes) != 2 {
		t.Errorf("Expected 2 notes in view, got %d", len(view.Notes))
	}

	// Switching selection changes the view, not the data
	ws.Select(work.ID)
	view = ws.View()
	if view.Group == nil || view.Group.Name != "Work" {
		t.Fatalf("View should follow the selection, got %+v", view)
	}
	if len(view.Notes) != 0 {
		t.Errorf("Work group should have no notes yet, got %d", len(view.Notes))
	}
	if len(ws.ListAllNotes()) != 2 {
		t.Errorf("Expected 2 notes in total")
	}

	// Clearing the selection empties the view again
	ws.ClearSelection()
	if _, ok := ws.Selected(); ok {
		t.Error("Expected no selection after clear")
	}
	if view := ws.View(); view.Group != nil {
		t.Errorf("Expected empty view after clear, got %+v", view)
	}

	// The facade treats an empty id as deselection
	ws.Select(family.ID)
	ws.Select("")
	if _, ok := ws.Selected(); ok {
		t.Error("Expected Select with empty id to clear the selection")
	}
}

func TestWorkspace_ChangeReason(t *testing.T) {
	requireGit(t)
	ws, _ := setupWorkspace(t, pocket.WithVersioning(true))

	ctx := pocket.WithChangeReason(context.Background(),
		pocket.FormatChangeReason(pocket.CommitTypeFeat, "groups", "add travel group", ""))

	if _, err := ws.CreateGroup(ctx, "Travel", pocket.ColorSalmon); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	history, err := ws.History(context.Background(), 5)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}

	found := false
	for _, entry := range history {
		if strings.Contains(entry, "feat(groups): add travel group") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Change reason not recorded in history: %v", history)
	}
}

func TestWorkspace_HistoryRequiresVersioning(t *testing.T) {
	ws, _ := setupWorkspace(t)

	if _, err := ws.History(context.TODO(), 5); err == nil {
		t.Error("Expected History to fail without versioning")
	}
}

func TestWorkspace_MustExist(t *testing.T) {
	tmpDir := t.TempDir()
	nonExistent := filepath.Join(tmpDir, "does-not-exist")

	_, err := pocket.Open(nonExistent, pocket.WithMustExist(true))
	if err == nil {
		t.Error("Expected Open to fail with MustExist for non-existent path, but it succeeded")
	}
}

func TestWorkspace_SQLiteAdapter(t *testing.T) {
	ws, tmpDir := setupWorkspace(t, pocket.WithAdapter("sqlite"))
	ctx := context.TODO()

	group, err := ws.CreateGroup(ctx, "Recipes", pocket.ColorCyan)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if _, err := ws.AddNoteTo(ctx, group.ID, "miso soup: dashi first"); err != nil {
		t.Fatalf("AddNoteTo failed: %v", err)
	}
	if err := ws.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := pocket.Open(tmpDir, pocket.WithAdapter("sqlite"))
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	notes := reopened.ListNotes(group.ID)
	if len(notes) != 1 || notes[0].Content != "miso soup: dashi first" {
		t.Fatalf("Notes did not survive sqlite reopen: %+v", notes)
	}
}

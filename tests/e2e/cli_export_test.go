package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestExportImport round-trips a workspace through an export file into a
// fresh workspace, and verifies that importing replays through the store
// so its invariants still apply.
func TestExportImport(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "pocket-export-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	pocketBin := buildPocketBinary(t, tempDir)

	srcDir := filepath.Join(tempDir, "src")
	dstDir := filepath.Join(tempDir, "dst")
	for _, d := range []string{srcDir, dstDir} {
		if err := os.Mkdir(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	// Populate the source workspace.
	runCmd(t, srcDir, nil, pocketBin, "init")
	runCmd(t, srcDir, nil, pocketBin, "create", "Family")
	runCmd(t, srcDir, nil, pocketBin, "create", "Work", "--color", "cyan")
	runCmd(t, srcDir, nil, pocketBin, "add", "Dinner at 7", "--group", "Family")
	runCmd(t, srcDir, nil, pocketBin, "add", "Standup at 10", "--group", "Work")

	exportFile := filepath.Join(tempDir, "backup.json")
	runCmd(t, srcDir, nil, pocketBin, "export", "--out", exportFile)

	t.Run("Export file is valid JSON", func(t *testing.T) {
		data, err := os.ReadFile(exportFile)
		if err != nil {
			t.Fatal(err)
		}
		var archive struct {
			Groups []json.RawMessage `json:"groups"`
			Notes  []json.RawMessage `json:"notes"`
		}
		if err := json.Unmarshal(data, &archive); err != nil {
			t.Fatalf("Export is not valid JSON: %v", err)
		}
		if len(archive.Groups) != 2 || len(archive.Notes) != 2 {
			t.Errorf("Expected 2 groups and 2 notes, got %d and %d",
				len(archive.Groups), len(archive.Notes))
		}
	})

	t.Run("Import into fresh workspace", func(t *testing.T) {
		runCmd(t, dstDir, nil, pocketBin, "init")
		out := runCmd(t, dstDir, nil, pocketBin, "import", exportFile)
		if !strings.Contains(out, "2 group(s) (2 new) and 2 note(s)") {
			t.Errorf("Unexpected import summary:\n%s", out)
		}

		out = runCmd(t, dstDir, nil, pocketBin, "notes", "--group", "Family")
		if !strings.Contains(out, "Dinner at 7") {
			t.Errorf("Imported note missing:\n%s", out)
		}
	})

	t.Run("Re-import merges by name instead of duplicating", func(t *testing.T) {
		out := runCmd(t, dstDir, nil, pocketBin, "import", exportFile)
		if !strings.Contains(out, "(0 new)") {
			t.Errorf("Expected existing groups to absorb the import, got:\n%s", out)
		}

		out = runCmd(t, dstDir, nil, pocketBin, "groups", "--json")
		var groups []map[string]any
		if err := json.Unmarshal([]byte(out), &groups); err != nil {
			t.Fatalf("groups --json is not valid JSON: %v\n%s", err, out)
		}
		if len(groups) != 2 {
			t.Errorf("Expected 2 groups after re-import, got %d", len(groups))
		}

		// Notes ARE replayed again; only groups deduplicate.
		out = runCmd(t, dstDir, nil, pocketBin, "notes", "--group", "Family", "--json")
		var notes []map[string]any
		if err := json.Unmarshal([]byte(out), &notes); err != nil {
			t.Fatalf("notes --json is not valid JSON: %v\n%s", err, out)
		}
		if len(notes) != 2 {
			t.Errorf("Expected 2 Family notes after re-import, got %d", len(notes))
		}
	})

	t.Run("Empty records are dropped, not fatal", func(t *testing.T) {
		// A hand-edited or foreign archive can hold records the store
		// would never accept. Import must drop them and keep going.
		archiveFile := filepath.Join(tempDir, "dirty.json")
		dirty := `{
			"groups": [
				{"id": "g1", "name": "Chores", "color": "#B38BFA", "initials": "C"},
				{"id": "g2", "name": "", "color": "#43E6FC", "initials": ""}
			],
			"notes": [
				{"id": "n1", "groupId": "g1", "content": "water the plants"},
				{"id": "n2", "groupId": "g1", "content": "   "},
				{"id": "n3", "groupId": "g1", "content": "take out trash"}
			]
		}`
		if err := os.WriteFile(archiveFile, []byte(dirty), 0644); err != nil {
			t.Fatal(err)
		}

		dirtyDir := filepath.Join(tempDir, "dirty")
		if err := os.Mkdir(dirtyDir, 0755); err != nil {
			t.Fatal(err)
		}
		runCmd(t, dirtyDir, nil, pocketBin, "init")

		out := runCmd(t, dirtyDir, nil, pocketBin, "import", archiveFile)
		if !strings.Contains(out, "1 group(s) (1 new) and 2 note(s)") {
			t.Errorf("Unexpected import summary:\n%s", out)
		}
		if !strings.Contains(out, "Skipped 2 empty record(s)") {
			t.Errorf("Skipped records not reported:\n%s", out)
		}

		// Both valid notes landed; the blank one did not.
		out = runCmd(t, dirtyDir, nil, pocketBin, "notes", "--group", "Chores", "--json")
		var notes []map[string]any
		if err := json.Unmarshal([]byte(out), &notes); err != nil {
			t.Fatalf("notes --json is not valid JSON: %v\n%s", err, out)
		}
		if len(notes) != 2 {
			t.Errorf("Expected 2 notes after dirty import, got %d", len(notes))
		}
	})

	t.Run("YAML export round-trips", func(t *testing.T) {
		yamlFile := filepath.Join(tempDir, "backup.yaml")
		runCmd(t, srcDir, nil, pocketBin, "export", "--format", "yaml", "--out", yamlFile)

		data, err := os.ReadFile(yamlFile)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "name: Family") {
			t.Errorf("YAML export missing group name:\n%s", string(data))
		}

		freshDir := filepath.Join(tempDir, "fresh")
		if err := os.Mkdir(freshDir, 0755); err != nil {
			t.Fatal(err)
		}
		runCmd(t, freshDir, nil, pocketBin, "init")
		out := runCmd(t, freshDir, nil, pocketBin, "import", yamlFile)
		if !strings.Contains(out, "2 group(s) (2 new)") {
			t.Errorf("Unexpected YAML import summary:\n%s", out)
		}
	})
}

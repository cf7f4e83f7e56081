package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/pocket"
	"github.com/aretw0/pocket/pkg/adapters/fs"
)

// cursorFile persists the selected group between CLI runs, relative to
// the system directory. The library keeps selection per process; the CLI
// is a new process every time, so it carries its own.
const cursorFile = "selection.json"

type cursor struct {
	GroupID string `json:"groupId"`
}

func cursorPath(wsPath string) string {
	return filepath.Join(wsPath, fs.DefaultSystemDir, cursorFile)
}

// loadCursor returns the persisted group id, if any.
func loadCursor(wsPath string) (string, bool) {
	data, err := os.ReadFile(cursorPath(wsPath))
	if err != nil {
		return "", false
	}

	var c cursor
	if err := json.Unmarshal(data, &c); err != nil || c.GroupID == "" {
		return "", false
	}
	return c.GroupID, true
}

func saveCursor(wsPath, groupID string) error {
	data, err := json.Marshal(cursor{GroupID: groupID})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cursorPath(wsPath)), 0755); err != nil {
		return err
	}
	return os.WriteFile(cursorPath(wsPath), data, 0644)
}

func clearCursor(wsPath string) error {
	err := os.Remove(cursorPath(wsPath))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// restoreSelection replays the persisted cursor onto a freshly opened
// workspace so View and AddNote see the same group the user selected in
// an earlier run.
func restoreSelection(ws *pocket.Workspace, wsPath string) {
	if id, ok := loadCursor(wsPath); ok {
		ws.Select(id)
	}
}

// resolveGroup turns a user-supplied reference (id or name) into a group.
// Exact id match wins; otherwise the name is matched case-insensitively.
func resolveGroup(ws *pocket.Workspace, ref string) (pocket.Group, bool) {
	if g, ok := ws.GetGroup(ref); ok {
		return g, true
	}
	for _, g := range ws.ListGroups() {
		if strings.EqualFold(g.Name, ref) {
			return g, true
		}
	}
	return pocket.Group{}, false
}

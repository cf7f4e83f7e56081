package core_test

import (
	"testing"

	"github.com/aretw0/pocket/pkg/core"
)

func TestSelection(t *testing.T) {
	var sel core.Selection

	if _, ok := sel.Current(); ok {
		t.Fatal("zero value should have no selection")
	}

	sel.Select("g1")
	if id, ok := sel.Current(); !ok || id != "g1" {
		t.Fatalf("expected g1 selected, got %q/%v", id, ok)
	}

	// Switching directly between groups is allowed.
	sel.Select("g2")
	if id, _ := sel.Current(); id != "g2" {
		t.Fatalf("expected g2 selected, got %q", id)
	}

	sel.Clear()
	if _, ok := sel.Current(); ok {
		t.Fatal("expected no selection after Clear")
	}

	// Clearing twice is harmless.
	sel.Clear()
	if _, ok := sel.Current(); ok {
		t.Fatal("expected no selection after second Clear")
	}
}

func TestSelection_UnknownIDPermitted(t *testing.T) {
	var sel core.Selection

	sel.Select("never-created")
	if id, ok := sel.Current(); !ok || id != "never-created" {
		t.Fatalf("expected unknown id to be selectable, got %q/%v", id, ok)
	}
}

func TestSelection_SelectIsPureTransition(t *testing.T) {
	var sel core.Selection

	// Select never second-guesses the id; deselection goes through Clear.
	sel.Select("g1")
	sel.Select("")
	if id, ok := sel.Current(); !ok || id != "" {
		t.Fatalf("expected empty id to be selected as-is, got %q/%v", id, ok)
	}
}

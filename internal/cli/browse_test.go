package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stacgraph/stacgraph/pkg/stacio"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBrowseModelLists(t *testing.T) {
	root := testCatalog(t)

	m, err := newBrowseModel(context.Background(), stacio.NewMemoryIO(), root)
	if err != nil {
		t.Fatalf("newBrowseModel: %v", err)
	}

	if len(m.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(m.entries))
	}
	if m.entries[0].obj.ID() != "imagery" {
		t.Errorf("entry = %q, want %q", m.entries[0].obj.ID(), "imagery")
	}

	view := m.View()
	if !strings.Contains(view, "imagery") {
		t.Errorf("view missing child entry:\n%s", view)
	}
	if !strings.Contains(view, "root") {
		t.Errorf("view missing breadcrumb:\n%s", view)
	}
}

func TestBrowseModelDescendAndBack(t *testing.T) {
	root := testCatalog(t)

	m, err := newBrowseModel(context.Background(), stacio.NewMemoryIO(), root)
	if err != nil {
		t.Fatalf("newBrowseModel: %v", err)
	}

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(*browseModel)
	if m.current.ID() != "imagery" {
		t.Fatalf("current = %q, want %q after descend", m.current.ID(), "imagery")
	}
	if len(m.entries) != 1 || m.entries[0].obj.ID() != "scene-001" {
		t.Fatalf("expected single item entry inside collection, got %d", len(m.entries))
	}
	if m.entries[0].container != nil {
		t.Error("item entry should not be a container")
	}

	// Enter on an item is a no-op.
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(*browseModel)
	if m.current.ID() != "imagery" {
		t.Errorf("current = %q, descend on item should not move", m.current.ID())
	}

	updated, _ = m.Update(keyMsg("backspace"))
	m = updated.(*browseModel)
	if m.current.ID() != "root" {
		t.Errorf("current = %q, want %q after back", m.current.ID(), "root")
	}
}

func TestBrowseModelCursorBounds(t *testing.T) {
	root := testCatalog(t)

	m, err := newBrowseModel(context.Background(), stacio.NewMemoryIO(), root)
	if err != nil {
		t.Fatalf("newBrowseModel: %v", err)
	}

	updated, _ := m.Update(keyMsg("k"))
	m = updated.(*browseModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, up at top should stay at 0", m.cursor)
	}

	updated, _ = m.Update(keyMsg("j"))
	m = updated.(*browseModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, down past last entry should clamp", m.cursor)
	}
}

func TestBrowseModelQuit(t *testing.T) {
	root := testCatalog(t)

	m, err := newBrowseModel(context.Background(), stacio.NewMemoryIO(), root)
	if err != nil {
		t.Fatalf("newBrowseModel: %v", err)
	}

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

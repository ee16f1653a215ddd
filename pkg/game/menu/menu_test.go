package menu

import (
	"strings"
	"testing"

	"eightcircuits/pkg/game/realms"
)

type recordingHandler struct {
	selected  []int
	activated []int
	exits     int
	close     bool
}

func (h *recordingHandler) OnSelect(item MenuItem, index int) { h.selected = append(h.selected, index) }
func (h *recordingHandler) OnActivate(item MenuItem, index int) (bool, string) {
	h.activated = append(h.activated, index)
	return h.close, "done " + item.GetLabel()
}
func (h *recordingHandler) OnExit()                                  { h.exits++ }
func (h *recordingHandler) GetTitle() string                         { return "Test" }
func (h *recordingHandler) GetInstructions(selected MenuItem) string { return "" }

type item string

func (i item) GetLabel() string    { return string(i) }
func (i item) IsSelectable() bool  { return true }
func (i item) GetHelpText() string { return "" }

func testItems() []MenuItem {
	return []MenuItem{
		&InfoMenuItem{Label: "heading"},
		item("a"),
		item("b"),
		&InfoMenuItem{Label: "note"},
		item("c"),
	}
}

func TestNew_SkipsUnselectable(t *testing.T) {
	m := New(testItems(), &recordingHandler{})
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestMoveDown_WrapsAndSkips(t *testing.T) {
	h := &recordingHandler{}
	m := New(testItems(), h)
	want := []int{2, 4, 1, 2}
	for _, w := range want {
		m.MoveDown()
		if m.Selected != w {
			t.Fatalf("MoveDown() selected %d, want %d", m.Selected, w)
		}
	}
	if len(h.selected) != len(want) {
		t.Errorf("OnSelect called %d times, want %d", len(h.selected), len(want))
	}
}

func TestMoveUp_WrapsAndSkips(t *testing.T) {
	m := New(testItems(), &recordingHandler{})
	want := []int{4, 2, 1, 4}
	for _, w := range want {
		m.MoveUp()
		if m.Selected != w {
			t.Fatalf("MoveUp() selected %d, want %d", m.Selected, w)
		}
	}
}

func TestActivate(t *testing.T) {
	tests := []struct {
		name   string
		close  bool
		closed bool
		exits  int
	}{
		{"stays open", false, false, 0},
		{"closes", true, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &recordingHandler{close: tt.close}
			m := New(testItems(), h)
			if got := m.Activate(); got != tt.closed {
				t.Errorf("Activate() = %v, want %v", got, tt.closed)
			}
			if m.Closed() != tt.closed || h.exits != tt.exits {
				t.Errorf("Closed() = %v exits %d, want %v exits %d", m.Closed(), h.exits, tt.closed, tt.exits)
			}
			if m.HelpText != "done a" {
				t.Errorf("HelpText = %q, want %q", m.HelpText, "done a")
			}
		})
	}
}

func TestClose_ExitsOnce(t *testing.T) {
	h := &recordingHandler{}
	m := New(testItems(), h)
	m.Close()
	m.Close()
	if h.exits != 1 {
		t.Errorf("OnExit called %d times, want 1", h.exits)
	}
}

func TestNavigationClearsHelpText(t *testing.T) {
	m := New(testItems(), &recordingHandler{})
	m.Activate()
	m.MoveDown()
	if m.HelpText != "" {
		t.Errorf("HelpText = %q after navigating, want empty", m.HelpText)
	}
}

func TestLines_MarksSelection(t *testing.T) {
	m := New(testItems(), &recordingHandler{})
	lines := m.Lines()
	if lines[0] != "=== Test ===" {
		t.Errorf("Lines()[0] = %q, want title", lines[0])
	}
	found := false
	for _, l := range lines {
		if l == "> a" {
			found = true
		}
	}
	if !found {
		t.Errorf("Lines() = %v, want a line \"> a\"", lines)
	}
}

func TestGameplayMenu_ListsEveryRealm(t *testing.T) {
	m, h := NewGameplayMenu(3)
	realmItems := 0
	for _, it := range m.Items {
		gi, ok := it.(*GameplayMenuItem)
		if !ok || gi.Action != GameplayMenuActionRealm {
			continue
		}
		realmItems++
		if gi.Realm.ID == 3 && !strings.HasSuffix(gi.Label, "*") {
			t.Errorf("live realm label %q is not marked", gi.Label)
		}
	}
	if realmItems != len(realms.Catalog) {
		t.Errorf("realm items = %d, want %d", realmItems, len(realms.Catalog))
	}
	if h.GetSelectedAction() != GameplayMenuActionNone {
		t.Errorf("GetSelectedAction() = %v before activation, want none", h.GetSelectedAction())
	}
}

func TestGameplayMenu_SelectRealm(t *testing.T) {
	m, h := NewGameplayMenu(1)
	// Resume, then skip the heading onto realm 1, then realm 2.
	m.MoveDown()
	m.MoveDown()
	if !m.Activate() {
		t.Fatal("Activate() = false, want true")
	}
	if h.GetSelectedAction() != GameplayMenuActionRealm || h.GetSelectedRealm() != 2 {
		t.Errorf("selected %v realm %d, want realm 2", h.GetSelectedAction(), h.GetSelectedRealm())
	}
}

func TestBindingsMenu_LabelsShowCodes(t *testing.T) {
	m := NewBindingsMenu()
	if got := m.Items[0].GetLabel(); got != "Move Forward: w" {
		t.Errorf("first label = %q, want %q", got, "Move Forward: w")
	}
	if !m.Activate() {
		t.Error("Activate() = false, want true")
	}
}

package menu

import (
	"fmt"

	"github.com/leonelquinteros/gotext"

	"eightcircuits/pkg/game/realms"
)

// GameplayMenuAction represents the action type for gameplay menu items.
type GameplayMenuAction int

const (
	GameplayMenuActionNone GameplayMenuAction = iota
	GameplayMenuActionResume
	GameplayMenuActionRealm
	GameplayMenuActionControls
	GameplayMenuActionQuit
)

// GameplayMenuItem represents a menu item in the gameplay menu.
type GameplayMenuItem struct {
	Label  string
	Action GameplayMenuAction
	Realm  realms.Entry // set for GameplayMenuActionRealm
}

// GetLabel returns the display label for this menu item.
func (m *GameplayMenuItem) GetLabel() string {
	return m.Label
}

// IsSelectable returns whether this item can be selected.
func (m *GameplayMenuItem) IsSelectable() bool {
	return true
}

// GetHelpText returns help text for this menu item.
func (m *GameplayMenuItem) GetHelpText() string {
	switch m.Action {
	case GameplayMenuActionResume:
		return gotext.Get("Return to the current circuit")
	case GameplayMenuActionRealm:
		return m.Realm.Description
	case GameplayMenuActionControls:
		return gotext.Get("Show the keyboard controls")
	case GameplayMenuActionQuit:
		return gotext.Get("Leave the circuits")
	default:
		return ""
	}
}

// GameplayMenuHandler handles the pause menu.
type GameplayMenuHandler struct {
	current int // live realm id, marked in the list

	selectedAction GameplayMenuAction
	selectedRealm  int
}

// NewGameplayMenuHandler creates a pause menu handler; current is the live realm.
func NewGameplayMenuHandler(current int) *GameplayMenuHandler {
	return &GameplayMenuHandler{current: current}
}

// GetTitle returns the menu title.
func (h *GameplayMenuHandler) GetTitle() string {
	return gotext.Get("Paused")
}

// GetInstructions returns the menu instructions.
func (h *GameplayMenuHandler) GetInstructions(selected MenuItem) string {
	if selected != nil && selected.GetHelpText() != "" {
		return selected.GetHelpText()
	}
	return gotext.Get("Use up/down to select, Enter to activate, Escape to close")
}

// OnSelect is called when an item is selected.
func (h *GameplayMenuHandler) OnSelect(item MenuItem, index int) {}

// OnActivate is called when an item is activated. Every entry closes the menu.
func (h *GameplayMenuHandler) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	gameplayItem, ok := item.(*GameplayMenuItem)
	if !ok {
		return false, ""
	}
	h.selectedAction = gameplayItem.Action
	h.selectedRealm = gameplayItem.Realm.ID
	return true, ""
}

// OnExit is called when the menu is exited.
func (h *GameplayMenuHandler) OnExit() {
	// Nothing to do on exit
}

// GetSelectedAction returns the activated action, or GameplayMenuActionNone
// when the menu was dismissed.
func (h *GameplayMenuHandler) GetSelectedAction() GameplayMenuAction {
	return h.selectedAction
}

// GetSelectedRealm returns the realm id chosen with GameplayMenuActionRealm.
func (h *GameplayMenuHandler) GetSelectedRealm() int {
	return h.selectedRealm
}

// GetMenuItems returns the menu items for the gameplay menu.
func (h *GameplayMenuHandler) GetMenuItems() []MenuItem {
	items := []MenuItem{
		&GameplayMenuItem{Label: gotext.Get("Resume"), Action: GameplayMenuActionResume},
		&InfoMenuItem{Label: gotext.Get("Circuits")},
	}
	for _, e := range realms.Catalog {
		label := fmt.Sprintf("%d. %s", e.ID, e.Name)
		if e.ID == h.current {
			label += " *"
		}
		items = append(items, &GameplayMenuItem{Label: label, Action: GameplayMenuActionRealm, Realm: e})
	}
	return append(items,
		&GameplayMenuItem{Label: gotext.Get("Controls"), Action: GameplayMenuActionControls},
		&GameplayMenuItem{Label: gotext.Get("Quit"), Action: GameplayMenuActionQuit},
	)
}

// NewGameplayMenu opens the pause menu.
func NewGameplayMenu(current int) (*Menu, *GameplayMenuHandler) {
	h := NewGameplayMenuHandler(current)
	return New(h.GetMenuItems(), h), h
}

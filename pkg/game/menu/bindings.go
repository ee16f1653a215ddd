package menu

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"

	engineinput "eightcircuits/pkg/engine/input"
)

// BindingMenuItem represents a menu item for a key binding.
type BindingMenuItem struct {
	Action engineinput.Action
}

// GetLabel returns the display label for this binding menu item.
func (b *BindingMenuItem) GetLabel() string {
	codeText := strings.Join(engineinput.CodesFor(b.Action), ", ")
	if codeText == "" {
		codeText = gotext.Get("(unbound)")
	}
	return fmt.Sprintf("%s: %s", engineinput.ActionName(b.Action), codeText)
}

// IsSelectable returns whether this binding can be selected.
func (b *BindingMenuItem) IsSelectable() bool {
	return true
}

// GetHelpText returns help text for this binding.
func (b *BindingMenuItem) GetHelpText() string {
	return gotext.Get("Rebind %s under controls in circuits.yaml", engineinput.ActionName(b.Action))
}

// BindingsMenuHandler lists the current key bindings.
type BindingsMenuHandler struct {
	actions []engineinput.Action
}

// NewBindingsMenuHandler creates a new bindings menu handler.
func NewBindingsMenuHandler() *BindingsMenuHandler {
	return &BindingsMenuHandler{
		actions: []engineinput.Action{
			engineinput.ActionMoveForward,
			engineinput.ActionMoveBackward,
			engineinput.ActionMoveLeft,
			engineinput.ActionMoveRight,
			engineinput.ActionJump,
			engineinput.ActionSprint,
			engineinput.ActionInteract,
			engineinput.ActionAction,
			engineinput.ActionLookLeft,
			engineinput.ActionLookRight,
			engineinput.ActionLookUp,
			engineinput.ActionLookDown,
			engineinput.ActionToggleControlMode,
			engineinput.ActionSkipLoading,
			engineinput.ActionSceneDump,
			engineinput.ActionQuit,
		},
	}
}

// GetTitle returns the menu title.
func (h *BindingsMenuHandler) GetTitle() string {
	return gotext.Get("Controls")
}

// GetInstructions returns the menu instructions.
func (h *BindingsMenuHandler) GetInstructions(selected MenuItem) string {
	return gotext.Get("Use up/down to browse, Enter or Escape to go back")
}

// OnSelect is called when an item is selected.
func (h *BindingsMenuHandler) OnSelect(item MenuItem, index int) {
	// Nothing to do on selection
}

// OnActivate closes the list.
func (h *BindingsMenuHandler) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	return true, ""
}

// OnExit is called when the menu is exited.
func (h *BindingsMenuHandler) OnExit() {
	// Nothing to do on exit
}

// GetMenuItems returns the menu items for the bindings menu.
func (h *BindingsMenuHandler) GetMenuItems() []MenuItem {
	items := make([]MenuItem, len(h.actions))
	for i, action := range h.actions {
		items[i] = &BindingMenuItem{Action: action}
	}
	return items
}

// NewBindingsMenu opens the controls list.
func NewBindingsMenu() *Menu {
	h := NewBindingsMenuHandler()
	return New(h.GetMenuItems(), h)
}

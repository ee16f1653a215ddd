// Package menu provides a generic menu system for the game.
//
// Menus are driven one intent at a time by the session, so the frame loop
// keeps running while a menu is open.
package menu

import "fmt"

// MenuItem represents a single item in a menu.
type MenuItem interface {
	// GetLabel returns the display label for this menu item.
	GetLabel() string
	// IsSelectable returns whether this item can be selected.
	IsSelectable() bool
	// GetHelpText returns optional help text for this item.
	GetHelpText() string
}

// MenuHandler handles menu item selection and activation.
type MenuHandler interface {
	// OnSelect is called when an item is selected (navigated to).
	OnSelect(item MenuItem, index int)
	// OnActivate is called when an item is activated (e.g., Enter pressed).
	// Returns true if the menu should close, and any help text to display.
	OnActivate(item MenuItem, index int) (shouldClose bool, helpText string)
	// OnExit is called when the menu is closed.
	OnExit()
	// GetTitle returns the menu title.
	GetTitle() string
	// GetInstructions returns the menu instructions.
	GetInstructions(selected MenuItem) string
}

// InfoMenuItem is a heading or note that cannot be selected.
type InfoMenuItem struct {
	Label string
}

func (i *InfoMenuItem) GetLabel() string    { return i.Label }
func (i *InfoMenuItem) IsSelectable() bool  { return false }
func (i *InfoMenuItem) GetHelpText() string { return "" }

// Menu is an open menu: its items, the selection and the handler.
type Menu struct {
	Items    []MenuItem
	Selected int
	HelpText string

	handler MenuHandler
	closed  bool
}

// New opens a menu on the first selectable item.
func New(items []MenuItem, handler MenuHandler) *Menu {
	m := &Menu{Items: items, handler: handler}
	// Find first selectable item
	for i, item := range items {
		if item.IsSelectable() {
			m.Selected = i
			break
		}
	}
	return m
}

// Title returns the handler's title.
func (m *Menu) Title() string {
	return m.handler.GetTitle()
}

// Instructions returns the handler's instructions for the selected item.
func (m *Menu) Instructions() string {
	return m.handler.GetInstructions(m.SelectedItem())
}

// SelectedItem returns the item under the cursor, or nil.
func (m *Menu) SelectedItem() MenuItem {
	if m.Selected >= 0 && m.Selected < len(m.Items) {
		return m.Items[m.Selected]
	}
	return nil
}

// Handler returns the handler the menu reports to.
func (m *Menu) Handler() MenuHandler {
	return m.handler
}

// Closed reports whether the menu has exited.
func (m *Menu) Closed() bool {
	return m.closed
}

// MoveUp moves the selection to the previous selectable item, wrapping
// around to the last.
func (m *Menu) MoveUp() {
	for i := m.Selected - 1; i >= 0; i-- {
		if m.Items[i].IsSelectable() {
			m.selectIndex(i)
			return
		}
	}
	// If no item found above, wrap to the last selectable item
	for i := len(m.Items) - 1; i > m.Selected; i-- {
		if m.Items[i].IsSelectable() {
			m.selectIndex(i)
			return
		}
	}
}

// MoveDown moves the selection to the next selectable item, wrapping
// around to the first.
func (m *Menu) MoveDown() {
	for i := m.Selected + 1; i < len(m.Items); i++ {
		if m.Items[i].IsSelectable() {
			m.selectIndex(i)
			return
		}
	}
	// If no item found below, wrap to the first selectable item
	for i := 0; i < m.Selected; i++ {
		if m.Items[i].IsSelectable() {
			m.selectIndex(i)
			return
		}
	}
}

func (m *Menu) selectIndex(i int) {
	m.Selected = i
	m.HelpText = "" // Clear help text when navigating
	m.handler.OnSelect(m.Items[i], i)
}

// Activate activates the selected item and reports whether the menu closed.
func (m *Menu) Activate() bool {
	item := m.SelectedItem()
	if item == nil || !item.IsSelectable() {
		return false
	}
	shouldClose, helpText := m.handler.OnActivate(item, m.Selected)
	m.HelpText = helpText
	if shouldClose {
		m.Close()
	}
	return shouldClose
}

// Close exits the menu. Closing twice calls OnExit once.
func (m *Menu) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.handler.OnExit()
}

// Lines renders the menu as plain text lines, the selected item prefixed
// with "> ". Front-ends style the lines themselves.
func (m *Menu) Lines() []string {
	lines := []string{fmt.Sprintf("=== %s ===", m.Title())}
	if instructions := m.Instructions(); instructions != "" {
		lines = append(lines, instructions)
	}
	if m.HelpText != "" {
		lines = append(lines, m.HelpText)
	}
	for i, item := range m.Items {
		prefix := "  "
		if i == m.Selected {
			prefix = "> "
		}
		lines = append(lines, prefix+item.GetLabel())
	}
	return lines
}

package input

import (
	"sort"
	"strconv"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DevicePointer
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Continuous controls, held across frames
	ActionMoveForward
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionSprint
	ActionInteract // E
	ActionAction   // F, realm specific
	ActionLook     // pointer button held: drag rotates the camera

	// Stepped look for devices without a pointer
	ActionLookLeft
	ActionLookRight
	ActionLookUp
	ActionLookDown

	// Direct realm switch (1-8)
	ActionRealm1
	ActionRealm2
	ActionRealm3
	ActionRealm4
	ActionRealm5
	ActionRealm6
	ActionRealm7
	ActionRealm8

	// Meta / UI
	ActionOpenMenu          // Escape: pause menu toggle
	ActionToggleControlMode // T: orbit camera or player control
	ActionSkipLoading       // L
	ActionQuit
	ActionSceneDump
	ActionMenuUp
	ActionMenuDown
	ActionMenuSelect
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "w", "space", "arrow_up").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation.
// Held interaction keys are deliberately not debounced: a held key
// re-dispatches every frame and realms apply their own cooldowns.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	"w":     ActionMoveForward,
	"s":     ActionMoveBackward,
	"a":     ActionMoveLeft,
	"d":     ActionMoveRight,
	"space": ActionJump,
	"shift": ActionSprint,
	"e":     ActionInteract,
	"f":     ActionAction,

	"pointer_left": ActionLook,

	"j": ActionLookLeft,
	"k": ActionLookRight,
	"u": ActionLookUp,
	"i": ActionLookDown,

	"1": ActionRealm1,
	"2": ActionRealm2,
	"3": ActionRealm3,
	"4": ActionRealm4,
	"5": ActionRealm5,
	"6": ActionRealm6,
	"7": ActionRealm7,
	"8": ActionRealm8,

	"escape": ActionOpenMenu,
	"t":      ActionToggleControlMode,
	"l":      ActionSkipLoading,
	"q":      ActionQuit,
	"ctrl_c": ActionQuit,
	"f12":    ActionSceneDump,

	"arrow_up":   ActionMenuUp,
	"arrow_down": ActionMenuDown,
	"enter":      ActionMenuSelect,
}

// reservedCodes can never be rebound or unbound.
var reservedCodes = map[string]bool{
	"1": true, "2": true, "3": true, "4": true,
	"5": true, "6": true, "7": true, "8": true,
	"escape": true, "ctrl_c": true,
	"arrow_up": true, "arrow_down": true, "enter": true,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// IsContinuous reports whether an action is a held control rather than a
// one-shot command. Stepped look actions are one-shot: each press turns the
// camera once.
func IsContinuous(a Action) bool {
	return a >= ActionMoveForward && a <= ActionLook
}

// ActionByName returns the action whose ActionName is name.
func ActionByName(name string) (Action, bool) {
	for a := ActionMoveForward; a <= ActionMenuSelect; a++ {
		if ActionName(a) == name {
			return a, true
		}
	}
	return ActionNone, false
}

// RealmForAction returns the realm id a direct-switch action selects.
func RealmForAction(a Action) (int, bool) {
	if a >= ActionRealm1 && a <= ActionRealm8 {
		return int(a-ActionRealm1) + 1, true
	}
	return 0, false
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	if id, ok := RealmForAction(a); ok {
		return "Realm " + strconv.Itoa(id)
	}
	switch a {
	case ActionMoveForward:
		return "Move Forward"
	case ActionMoveBackward:
		return "Move Backward"
	case ActionMoveLeft:
		return "Move Left"
	case ActionMoveRight:
		return "Move Right"
	case ActionJump:
		return "Jump"
	case ActionSprint:
		return "Sprint"
	case ActionInteract:
		return "Interact"
	case ActionAction:
		return "Action"
	case ActionLook:
		return "Look"
	case ActionLookLeft:
		return "Look Left"
	case ActionLookRight:
		return "Look Right"
	case ActionLookUp:
		return "Look Up"
	case ActionLookDown:
		return "Look Down"
	case ActionOpenMenu:
		return "Menu"
	case ActionToggleControlMode:
		return "Toggle Control Mode"
	case ActionSkipLoading:
		return "Skip Loading"
	case ActionQuit:
		return "Quit"
	case ActionSceneDump:
		return "Scene Dump"
	case ActionMenuUp:
		return "Menu Up"
	case ActionMenuDown:
		return "Menu Down"
	case ActionMenuSelect:
		return "Menu Select"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so the HUD doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// CodesFor returns the sorted codes bound to an action.
func CodesFor(a Action) []string {
	return GetBindingsByAction()[a]
}

// SetSingleBinding replaces all bindings for the given action with a single code.
// Reserved codes keep their meaning.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reservedCodes[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reservedCodes[code] {
		bindings[code] = action
	}
}

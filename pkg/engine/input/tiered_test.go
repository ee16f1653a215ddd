package input

import (
	"reflect"
	"testing"
)

func intentOf(code string) Action {
	return MapToIntent(NewDebouncedInput(RawInput{Device: DeviceKeyboard, Code: code})).Action
}

func TestMapToIntent_DefaultBindings(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"w", ActionMoveForward},
		{"s", ActionMoveBackward},
		{"a", ActionMoveLeft},
		{"d", ActionMoveRight},
		{"space", ActionJump},
		{"shift", ActionSprint},
		{"e", ActionInteract},
		{"f", ActionAction},
		{"pointer_left", ActionLook},
		{"1", ActionRealm1},
		{"8", ActionRealm8},
		{"escape", ActionOpenMenu},
		{"t", ActionToggleControlMode},
		{"l", ActionSkipLoading},
		{"q", ActionQuit},
		{"f12", ActionSceneDump},
		{"enter", ActionMenuSelect},
		{"9", ActionNone},
		{"unknown", ActionNone},
	}
	for _, tt := range tests {
		if got := intentOf(tt.code); got != tt.want {
			t.Errorf("MapToIntent(%q) = %v, want %v", tt.code, ActionName(got), ActionName(tt.want))
		}
	}
}

func TestIsContinuous(t *testing.T) {
	tests := []struct {
		a    Action
		want bool
	}{
		{ActionMoveForward, true},
		{ActionAction, true},
		{ActionLook, true},
		{ActionLookLeft, false},
		{ActionRealm1, false},
		{ActionNone, false},
		{ActionQuit, false},
	}
	for _, tt := range tests {
		if got := IsContinuous(tt.a); got != tt.want {
			t.Errorf("IsContinuous(%s) = %v, want %v", ActionName(tt.a), got, tt.want)
		}
	}
}

func TestRealmForAction(t *testing.T) {
	for id := 1; id <= 8; id++ {
		a := ActionRealm1 + Action(id-1)
		got, ok := RealmForAction(a)
		if !ok || got != id {
			t.Errorf("RealmForAction(%s) = %d, %v, want %d, true", ActionName(a), got, ok, id)
		}
	}
	if _, ok := RealmForAction(ActionJump); ok {
		t.Error("RealmForAction(Jump) ok = true, want false")
	}
}

func TestActionByName(t *testing.T) {
	for a := ActionMoveForward; a <= ActionMenuSelect; a++ {
		got, ok := ActionByName(ActionName(a))
		if !ok || got != a {
			t.Errorf("ActionByName(%q) = %v, %v, want %v, true", ActionName(a), got, ok, a)
		}
	}
	if _, ok := ActionByName("Fly"); ok {
		t.Error(`ActionByName("Fly") ok = true, want false`)
	}
}

func TestSetSingleBinding(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for c, a := range bindings {
		saved[c] = a
	}
	t.Cleanup(func() { bindings = saved })

	SetSingleBinding(ActionJump, "x")
	if got := CodesFor(ActionJump); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("CodesFor(Jump) = %v, want [x]", got)
	}
	if got := intentOf("space"); got != ActionNone {
		t.Errorf("MapToIntent(space) = %s, want None", ActionName(got))
	}

	// Reserved codes keep their meaning.
	SetSingleBinding(ActionJump, "escape")
	if got := intentOf("escape"); got != ActionOpenMenu {
		t.Errorf("MapToIntent(escape) = %s, want Menu", ActionName(got))
	}
}

package types

import (
	"fmt"
)

type EventKind uint8

const (
	EventInvalid EventKind = iota
	EventInput
	EventFrame
	EventStop
)

func (k EventKind) String() string {
	switch k {
	case EventInvalid:
		return "Invalid"
	case EventInput:
		return "Input"
	case EventFrame:
		return "Frame"
	case EventStop:
		return "Stop"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

type Event struct {
	Input InputEvent
	Kind  EventKind
}

func (e *Event) String() string {
	inner := ""
	if e.Kind == EventInput {
		inner = " " + e.Input.String()
	}
	return fmt.Sprintf("Event(%s%s)", e.Kind.String(), inner)
}

type InputKind uint8

const (
	InputInvalid InputKind = iota
	// Directional control: previous/activate/back/next, see Control.
	InputDirectional
	// Raw key without directional meaning, Key is source specific code.
	InputRawKey
)

// Control identifies directional control for InputDirectional events.
type Control uint8

const (
	ControlPrev     Control = 0
	ControlActivate Control = 1
	ControlBack     Control = 2
	ControlNext     Control = 3
)

func (c Control) String() string {
	switch c {
	case ControlPrev:
		return "prev"
	case ControlActivate:
		return "activate"
	case ControlBack:
		return "back"
	case ControlNext:
		return "next"
	}
	return fmt.Sprintf("control(%d)", uint8(c))
}

// ParseControl accepts names used in config files.
func ParseControl(s string) (Control, error) {
	switch s {
	case "prev", "previous", "left":
		return ControlPrev, nil
	case "activate", "enter", "select":
		return ControlActivate, nil
	case "back", "escape":
		return ControlBack, nil
	case "next", "right":
		return ControlNext, nil
	}
	return 0, fmt.Errorf("unknown control=%s valid: prev, activate, back, next", s)
}

type InputKey uint16

type InputEvent struct {
	Source  string
	Kind    InputKind
	Control Control
	Key     InputKey
	Up      bool
}

func Directional(source string, c Control) InputEvent {
	return InputEvent{Source: source, Kind: InputDirectional, Control: c}
}

func (e *InputEvent) IsDirectional() bool { return e.Kind == InputDirectional }

func (e *InputEvent) String() string {
	if e.Kind == InputDirectional {
		return fmt.Sprintf("source=%s control=%s up=%t", e.Source, e.Control.String(), e.Up)
	}
	return fmt.Sprintf("source=%s kind=%d key=%d up=%t", e.Source, e.Kind, e.Key, e.Up)
}

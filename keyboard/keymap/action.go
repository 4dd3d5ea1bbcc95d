// Package keymap maps matrix positions and encoder events to media actions and
// forwards them to the host as HID consumer reports.
package keymap

import (
	"fmt"
	"strings"
)

// Action is a media-control function.
type Action uint8

const (
	None Action = iota
	PlayPause
	NextTrack
	PrevTrack
	Stop
	VolumeUp
	VolumeDown
	Mute
	BrightnessUp
)

// HID consumer page usage IDs.
var usages = [...]uint16{
	None:         0x0000,
	PlayPause:    0x00CD,
	NextTrack:    0x00B5,
	PrevTrack:    0x00B6,
	Stop:         0x00B7,
	VolumeUp:     0x00E9,
	VolumeDown:   0x00EA,
	Mute:         0x00E2,
	BrightnessUp: 0x006F,
}

var names = [...]string{
	None:         "none",
	PlayPause:    "play_pause",
	NextTrack:    "next_track",
	PrevTrack:    "prev_track",
	Stop:         "stop",
	VolumeUp:     "volume_up",
	VolumeDown:   "volume_down",
	Mute:         "mute",
	BrightnessUp: "brightness_up",
}

// Usage returns the consumer usage ID, or 0 for None and unknown actions.
func (a Action) Usage() uint16 {
	if int(a) >= len(usages) {
		return 0
	}
	return usages[a]
}

func (a Action) String() string {
	if int(a) >= len(names) {
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
	return names[a]
}

// ParseAction accepts the names returned by String, case-insensitively.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return Action(i), nil
		}
	}
	return None, fmt.Errorf("keymap: unknown action %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if int(a) >= len(names) {
		return nil, fmt.Errorf("keymap: invalid action %d", uint8(a))
	}
	return []byte(names[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(b []byte) error {
	v, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

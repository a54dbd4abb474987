// Package protocol defines the messages exchanged between clients and the
// match server and their msgpack wire encoding.
package protocol

import (
	"fmt"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

// InputKind separates mouse buttons from keys
type InputKind uint8

const (
	InputMouse InputKind = iota
	InputKeyboard
)

type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
)

type Key uint8

const (
	KeySpace Key = iota
	KeyReturn
	KeyM
	KeyW
)

// Input is either Mouse(button) or Keyboard(key)
type Input struct {
	Kind   InputKind   `msgpack:"kind"`
	Button MouseButton `msgpack:"button,omitempty"`
	Key    Key         `msgpack:"key,omitempty"`
}

func Mouse(b MouseButton) Input { return Input{Kind: InputMouse, Button: b} }
func Keyboard(k Key) Input      { return Input{Kind: InputKeyboard, Key: k} }

// IsMouse reports whether the input is the given mouse button
func (in Input) IsMouse(b MouseButton) bool {
	return in.Kind == InputMouse && in.Button == b
}

// IsKey reports whether the input is the given key
func (in Input) IsKey(k Key) bool {
	return in.Kind == InputKeyboard && in.Key == k
}

func (in Input) String() string {
	if in.Kind == InputMouse {
		switch in.Button {
		case MouseLeft:
			return "Mouse(Left)"
		case MouseRight:
			return "Mouse(Right)"
		}
		return fmt.Sprintf("Mouse(%d)", in.Button)
	}
	switch in.Key {
	case KeySpace:
		return "Keyboard(Space)"
	case KeyReturn:
		return "Keyboard(Return)"
	case KeyM:
		return "Keyboard(M)"
	case KeyW:
		return "Keyboard(W)"
	}
	return fmt.Sprintf("Keyboard(%d)", in.Key)
}

// inputBits lists the inputs in bit order of a client input code
var inputBits = [...]Input{
	Mouse(MouseRight),
	Mouse(MouseLeft),
	Keyboard(KeySpace),
	Keyboard(KeyReturn),
	Keyboard(KeyM),
	Keyboard(KeyW),
}

// DecodeInputCode expands a client input bitmask into the inputs it holds, in
// bit order. Unknown high bits are ignored.
func DecodeInputCode(code uint8) []Input {
	var out []Input
	for i, in := range inputBits {
		if code&(1<<i) != 0 {
			out = append(out, in)
		}
	}
	return out
}

// EncodeInputCode is the inverse of DecodeInputCode
func EncodeInputCode(inputs ...Input) uint8 {
	var code uint8
	for _, in := range inputs {
		for i, bit := range inputBits {
			if in == bit {
				code |= 1 << i
			}
		}
	}
	return code
}

// IntentFromInput turns one input at pos into the intent a client sends.
// Mouse input is a terrain action while placing terrain and a tile action
// otherwise; Space toggles selection; every other key is a terrain action.
func IntentFromInput(clientID uint64, pos core.Coordinate, in Input, placing bool) Intent {
	switch {
	case in.Kind == InputMouse && placing:
		return Intent{Kind: IntentTerrainAction, ClientID: clientID, Position: pos, Input: in}
	case in.Kind == InputMouse:
		return Intent{Kind: IntentTileAction, ClientID: clientID, Position: pos, Input: in}
	case in.IsKey(KeySpace):
		return Intent{Kind: IntentToggleSelect, ClientID: clientID, Position: pos}
	default:
		return Intent{Kind: IntentTerrainAction, ClientID: clientID, Position: pos, Input: in}
	}
}

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

func TestDecodeInputCode(t *testing.T) {
	tests := []struct {
		name     string
		code     uint8
		expected []Input
	}{
		{"none", 0, nil},
		{"right click", 0b000001, []Input{Mouse(MouseRight)}},
		{"left click", 0b000010, []Input{Mouse(MouseLeft)}},
		{"space", 0b000100, []Input{Keyboard(KeySpace)}},
		{"return", 0b001000, []Input{Keyboard(KeyReturn)}},
		{"m", 0b010000, []Input{Keyboard(KeyM)}},
		{"w", 0b100000, []Input{Keyboard(KeyW)}},
		{"left and space", 0b000110, []Input{Mouse(MouseLeft), Keyboard(KeySpace)}},
		{"high bits ignored", 0b11000010, []Input{Mouse(MouseLeft)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeInputCode(tt.code))
		})
	}
}

func TestEncodeInputCodeRoundTrip(t *testing.T) {
	for code := uint8(0); code < 64; code++ {
		assert.Equal(t, code, EncodeInputCode(DecodeInputCode(code)...))
	}
}

func TestIntentFromInput(t *testing.T) {
	pos := core.Coordinate{X: 2, Y: -1}

	tests := []struct {
		name    string
		input   Input
		placing bool
		kind    IntentKind
	}{
		{"left click in play", Mouse(MouseLeft), false, IntentTileAction},
		{"right click in play", Mouse(MouseRight), false, IntentTileAction},
		{"left click while placing", Mouse(MouseLeft), true, IntentTerrainAction},
		{"space in play", Keyboard(KeySpace), false, IntentToggleSelect},
		{"space while placing", Keyboard(KeySpace), true, IntentToggleSelect},
		{"m key", Keyboard(KeyM), true, IntentTerrainAction},
		{"return key in play", Keyboard(KeyReturn), false, IntentTerrainAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := IntentFromInput(9, pos, tt.input, tt.placing)
			assert.Equal(t, tt.kind, intent.Kind)
			assert.Equal(t, uint64(9), intent.ClientID)
			assert.Equal(t, pos, intent.Position)
			if tt.kind != IntentToggleSelect {
				assert.Equal(t, tt.input, intent.Input)
			}
		})
	}
}

func TestInputPredicates(t *testing.T) {
	assert.True(t, Mouse(MouseLeft).IsMouse(MouseLeft))
	assert.False(t, Mouse(MouseLeft).IsMouse(MouseRight))
	assert.False(t, Keyboard(KeySpace).IsMouse(MouseLeft), "KeySpace and MouseLeft share a value")
	assert.True(t, Keyboard(KeyW).IsKey(KeyW))
	assert.Equal(t, "Mouse(Right)", Mouse(MouseRight).String())
	assert.Equal(t, "Keyboard(Return)", Keyboard(KeyReturn).String())
}

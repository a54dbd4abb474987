package protocol

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

// Envelope is the frame layout on the wire
type Envelope struct {
	Type    string             `msgpack:"type"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

func encode(msgType string, payload interface{}) ([]byte, error) {
	raw, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", msgType, err)
	}
	return msgpack.Marshal(&Envelope{Type: msgType, Payload: raw})
}

func decodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("%w: %v", core.ErrMalformedMessage, err)
	}
	return env, nil
}

// EncodeEvent frames a server event
func EncodeEvent(ev ClientEvent) ([]byte, error) {
	return encode(ev.EventType(), ev)
}

// DecodeEvent parses a server event frame
func DecodeEvent(data []byte) (ClientEvent, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	var ev ClientEvent
	switch env.Type {
	case TypeInit:
		ev = &Init{}
	case TypeTileChanges:
		ev = &TileChanges{}
	case TypeSelect:
		ev = &Select{}
	case TypeDeselect:
		return Deselect{}, nil
	case TypeTurn:
		ev = &Turn{}
	case TypeTerrainMode:
		ev = &TerrainMode{}
	case TypeFarms:
		ev = &Farms{}
	case TypeGamePhase:
		ev = &GamePhase{}
	case TypeGameOver:
		ev = &GameOver{}
	case TypeWelcome:
		ev = &Welcome{}
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownMessageType, env.Type)
	}

	if err := msgpack.Unmarshal(env.Payload, ev); err != nil {
		return nil, fmt.Errorf("%w: %s payload: %v", core.ErrMalformedMessage, env.Type, err)
	}
	return deref(ev), nil
}

// deref returns event values rather than pointers so callers can compare them
func deref(ev ClientEvent) ClientEvent {
	switch e := ev.(type) {
	case *Init:
		return *e
	case *TileChanges:
		return *e
	case *Select:
		return *e
	case *Turn:
		return *e
	case *TerrainMode:
		return *e
	case *Farms:
		return *e
	case *GamePhase:
		return *e
	case *GameOver:
		return *e
	case *Welcome:
		return *e
	}
	return ev
}

// EncodeIntent frames a client intent
func EncodeIntent(in Intent) ([]byte, error) {
	switch in.Kind {
	case IntentTileAction:
		return encode(TypeTileAction, &in)
	case IntentToggleSelect:
		return encode(TypeToggleSelect, &in)
	case IntentTerrainAction:
		return encode(TypeTerrainAction, &in)
	default:
		return nil, fmt.Errorf("%w: intent kind %d", core.ErrUnknownMessageType, in.Kind)
	}
}

// DecodeIntent parses a client intent frame
func DecodeIntent(data []byte) (Intent, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return Intent{}, err
	}

	var in Intent
	switch env.Type {
	case TypeTileAction:
		in.Kind = IntentTileAction
	case TypeToggleSelect:
		in.Kind = IntentToggleSelect
	case TypeTerrainAction:
		in.Kind = IntentTerrainAction
	default:
		return Intent{}, fmt.Errorf("%w: %q", core.ErrUnknownMessageType, env.Type)
	}

	kind := in.Kind
	if err := msgpack.Unmarshal(env.Payload, &in); err != nil {
		return Intent{}, fmt.Errorf("%w: %s payload: %v", core.ErrMalformedMessage, env.Type, err)
	}
	in.Kind = kind
	if in.Kind == IntentToggleSelect {
		in.Input = Input{}
	}
	return in, nil
}

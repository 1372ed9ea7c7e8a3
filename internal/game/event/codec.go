package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hexmek/hexmek/internal/game/phase"
)

// envelope is the stored wire form of an event.
type envelope struct {
	Seq       uint64          `json:"seq"`
	Turn      int             `json:"turn"`
	Phase     phase.Phase     `json:"phase"`
	Timestamp time.Time       `json:"timestamp"`
	Type      Type            `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func decode[P Payload](raw []byte) (Payload, error) {
	var p P
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// payloadDecoders maps event types to payload decoders. Decoders return
// value payloads so folded events look the same whether they were just
// emitted or read back from storage. Types absent from the map decode to
// Unknown.
var payloadDecoders = map[Type]func([]byte) (Payload, error){
	TypeGameCreated:         decode[GameCreated],
	TypeGameStarted:         decode[GameStarted],
	TypeGameEnded:           decode[GameEnded],
	TypePhaseChanged:        decode[PhaseChanged],
	TypeInitiativeRolled:    decode[InitiativeRolled],
	TypeMovementDeclared:    decode[MovementDeclared],
	TypeMovementLocked:      decode[MovementLocked],
	TypeAttackDeclared:      decode[AttackDeclared],
	TypeAttackLocked:        decode[AttackLocked],
	TypeAttackResolved:      decode[AttackResolved],
	TypeDamageApplied:       decode[DamageApplied],
	TypeCriticalHitResolved: decode[CriticalHitResolved],
	TypeAmmoConsumed:        decode[AmmoConsumed],
	TypeAmmoExploded:        decode[AmmoExploded],
	TypePSRTriggered:        decode[PSRTriggered],
	TypePSRResolved:         decode[PSRResolved],
	TypeUnitFell:            decode[UnitFell],
	TypeUnitDestroyed:       decode[UnitDestroyed],
	TypePilotHit:            decode[PilotHit],
	TypeHeatGenerated:       decode[HeatGenerated],
	TypeHeatDissipated:      decode[HeatDissipated],
	TypeShutdownChecked:     decode[ShutdownChecked],
}

// Marshal encodes an event to its stored JSON form.
func Marshal(e Event) ([]byte, error) {
	env := envelope{
		Seq:       e.Seq,
		Turn:      e.Turn,
		Phase:     e.Phase,
		Timestamp: e.Timestamp.UTC(),
		Type:      e.Type,
	}
	switch p := e.Payload.(type) {
	case nil:
		// no payload
	case Unknown:
		env.Payload = append(json.RawMessage(nil), p.Raw...)
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", e.Type, err)
		}
		env.Payload = raw
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a stored event. Unrecognized types decode to an Unknown
// payload carrying the original bytes, so foreign events survive replays and
// round-trips without loss.
func Unmarshal(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	e := Event{
		Seq:       env.Seq,
		Turn:      env.Turn,
		Phase:     env.Phase,
		Timestamp: env.Timestamp,
		Type:      env.Type,
	}
	payload, err := UnmarshalPayload(env.Type, env.Payload)
	if err != nil {
		return Event{}, err
	}
	e.Payload = payload
	return e, nil
}

// UnmarshalPayload decodes a payload of the given type from raw JSON.
func UnmarshalPayload(t Type, raw []byte) (Payload, error) {
	dec, ok := payloadDecoders[t]
	if !ok {
		return Unknown{RawType: t, Raw: append([]byte(nil), raw...)}, nil
	}
	payload, err := dec(raw)
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", t, err)
	}
	return payload, nil
}

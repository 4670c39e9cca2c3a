package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"boilsim/internal/sims/boiling"
)

// Inbound event types.
const (
	EventHeatingStatus    = "heating_status"
	EventSimulationUpdate = "simulation_update"
	EventEnergyResult     = "energy_result"
	EventError            = "error"
)

// Outbound event types.
const (
	EventStartHeating      = "start_heating"
	EventUpdateTemperature = "update_temperature"
	EventCalculateEnergy   = "calculate_energy"
)

// ErrUnknownEvent is returned when an envelope carries an unsupported type.
var ErrUnknownEvent = errors.New("unknown event type")

// Envelope is the wire frame: one JSON object per websocket text message.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event is a decoded inbound message. Payload holds one of the payload
// structs below, by value.
type Event struct {
	Type    string
	Payload any
}

// HeatingStatus is the authoritative heating toggle.
type HeatingStatus struct {
	IsHeating bool `json:"is_heating"`
}

// Condenser describes the condenser surface the server simulates against.
type Condenser struct {
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	Length float64 `json:"length"`
	Angle  float64 `json:"angle"`
}

// SimulationUpdate is an authoritative physics tick. Optional fields are nil
// when the server omits them.
type SimulationUpdate struct {
	Temperature    float64            `json:"temperature"`
	IsHeating      *bool              `json:"is_heating,omitempty"`
	Particles      []boiling.Particle `json:"particles"`
	Condenser      *Condenser         `json:"condenser,omitempty"`
	CollectedWater *int               `json:"collected_water,omitempty"`
}

// Energy is the body of an energy_result.
type Energy struct {
	Joules     float64 `json:"energy_joules"`
	Scientific string  `json:"energy_scientific"`
	MassKg     float64 `json:"mass_kg"`
	MassGrams  float64 `json:"mass_grams"`
}

// EnergyResult answers calculate_energy.
type EnergyResult struct {
	Energy Energy  `json:"energy"`
	Mass   float64 `json:"mass"`
	Units  string  `json:"units"`
}

// ErrorMessage reports a rejected request.
type ErrorMessage struct {
	Message string `json:"message"`
}

// StartHeating asks the server to toggle heating.
type StartHeating struct{}

// UpdateTemperature pushes a user or ramp temperature.
type UpdateTemperature struct {
	Temperature Number `json:"temperature"`
}

// CalculateEnergy asks for E = mc² of a mass in grams.
type CalculateEnergy struct {
	Mass Number `json:"mass"`
}

// Number accepts both JSON numbers and numeric strings, since form inputs
// are often sent as text.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", b, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %q", b)
	}
	*n = Number(v)
	return nil
}

// Encode wraps payload in an envelope of the given type.
func Encode(eventType string, payload any) ([]byte, error) {
	if eventType == "" {
		return nil, errors.New("encode envelope: empty type")
	}
	if payload == nil {
		payload = struct{}{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	data, err := json.Marshal(Envelope{Type: eventType, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", eventType, err)
	}
	return data, nil
}

// DecodeEnvelope parses a wire frame without touching the payload.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errors.New("decode envelope: empty frame")
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, errors.New("decode envelope: missing type")
	}
	return env, nil
}

// DecodePayload unmarshals the envelope payload into T. An absent payload
// yields the zero value.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return out, nil
}

// DecodeEvent parses an inbound frame into a typed Event.
func DecodeEvent(b []byte) (Event, error) {
	env, err := DecodeEnvelope(b)
	if err != nil {
		return Event{}, err
	}
	return decodeInbound(env)
}

func decodeInbound(env Envelope) (Event, error) {
	var (
		payload any
		err     error
	)
	switch env.Type {
	case EventHeatingStatus:
		payload, err = DecodePayload[HeatingStatus](env)
	case EventSimulationUpdate:
		payload, err = DecodePayload[SimulationUpdate](env)
	case EventEnergyResult:
		payload, err = DecodePayload[EnergyResult](env)
	case EventError:
		payload, err = DecodePayload[ErrorMessage](env)
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}
	if err != nil {
		return Event{}, err
	}
	return Event{Type: env.Type, Payload: payload}, nil
}

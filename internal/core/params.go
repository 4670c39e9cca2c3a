package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeText denotes read-only display values.
	ParamTypeText ParamType = "text"
)

// Parameter describes a single value exposed by the simulation controller.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of values exposed by the
// controller.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterControl describes an adjustable parameter that should be exposed on
// the HUD. Steps and bounds are optional and interpreted based on the
// parameter type. Draggable controls report press and release so the
// controller can tell an active gesture from a one-off click.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool

	Draggable bool
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter allows HUD interactions to update integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// GestureTracker is told when a draggable control is grabbed and released.
type GestureTracker interface {
	BeginGesture(key string)
	EndGesture(key string)
}

// Action is a HUD button that triggers a controller intent.
type Action struct {
	Key   string
	Label string
}

// ActionProvider exposes the HUD buttons.
type ActionProvider interface {
	Actions() []Action
}

// ActionTrigger runs the intent bound to an action key.
type ActionTrigger interface {
	TriggerAction(key string) bool
}

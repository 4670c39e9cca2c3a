package control

import (
	"fmt"
	"strconv"

	"boilsim/internal/core"
	"boilsim/internal/sims/boiling"
)

const (
	keyTemperature = "temperature"
	keyMass        = "mass"

	ActionHeating = "heating"
	ActionEnergy  = "energy"
	ActionLabels  = "labels"
	ActionMute    = "mute"
)

// Name is shown in the HUD title.
func (c *Controller) Name() string { return "boiling" }

func (c *Controller) Parameters() core.ParameterSnapshot {
	s := c.state
	p := c.params
	liquid, vapor, condensed := boiling.CountPhases(s.Particles)
	heating := "off"
	if s.Thermal.Heating {
		heating = "on"
	}
	groups := []core.ParameterGroup{
		{
			Name: "Heating",
			Params: []core.Parameter{
				intParam(keyTemperature, "Temperature", s.Slider),
				textParam("readout", "Readout", s.Readout),
				textParam("heating", "Heating", heating),
			},
		},
		{
			Name: "Vessels",
			Params: []core.Parameter{
				percentParam("left_level", "Left vessel", p.Percent(s.Levels.Left)),
				percentParam("right_level", "Right vessel", p.Percent(s.Levels.Right)),
				percentParam("transferred", "Transferred", p.Transferred(s.Levels)),
			},
		},
		{
			Name: "Particles",
			Params: []core.Parameter{
				intParam("liquid", "Liquid", liquid),
				intParam("vapor", "Vapor", vapor),
				intParam("condensed", "Condensed", condensed),
			},
		},
		{
			Name: "Energy",
			Params: []core.Parameter{
				intParam(keyMass, "Mass (g)", s.Mass),
				textParam("energy", "Energy", s.Energy),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func (c *Controller) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key:       keyTemperature,
			Label:     "Temperature (°C)",
			Type:      core.ParamTypeInt,
			Step:      1,
			Min:       c.params.MinTemperature,
			Max:       c.params.MaxTemperature,
			HasMin:    true,
			HasMax:    true,
			Draggable: true,
		},
		{
			Key:    keyMass,
			Label:  "Mass (g)",
			Type:   core.ParamTypeInt,
			Step:   1,
			Min:    0,
			HasMin: true,
		},
	}
}

func (c *Controller) SetIntParameter(key string, value int) bool {
	switch key {
	case keyTemperature:
		c.SetTemperature(float64(value))
		return true
	case keyMass:
		if value < 0 {
			return false
		}
		c.SetMass(value)
		return true
	default:
		return false
	}
}

// Actions lists the HUD buttons with labels reflecting the current state.
func (c *Controller) Actions() []core.Action {
	heat := "Start Heating"
	if c.state.Thermal.Heating {
		heat = "Stop Heating"
	}
	labels := "Show Labels"
	if c.state.LabelsVisible {
		labels = "Hide Labels"
	}
	mute := "Mute"
	if c.sounds.Muted() {
		mute = "Unmute"
	}
	return []core.Action{
		{Key: ActionHeating, Label: heat},
		{Key: ActionEnergy, Label: "Calculate Energy"},
		{Key: ActionLabels, Label: labels},
		{Key: ActionMute, Label: mute},
	}
}

func (c *Controller) TriggerAction(key string) bool {
	switch key {
	case ActionHeating:
		c.ToggleHeating()
	case ActionEnergy:
		c.RequestEnergy()
	case ActionLabels:
		c.ToggleLabels()
	case ActionMute:
		c.ToggleMute()
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func percentParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeText,
		Value: fmt.Sprintf("%.1f%%", value),
	}
}

func textParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeText,
		Value: value,
	}
}

//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"boilsim/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Source is what the HUD shows. Optional capabilities (setters, gestures,
// actions, info lines) are discovered by type assertion.
type Source interface {
	Name() string
	Parameters() core.ParameterSnapshot
}

type infoProvider interface {
	InfoLines() []string
}

// readoutKeys are text parameters shown under the buttons, in order.
var readoutKeys = []string{"readout", "energy", "left_level", "right_level", "transferred"}

// HUD renders the control panel to the right of the simulation view.
type HUD struct {
	src        Source
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []hudControlState
	actions      []hudActionState
	intSetter    core.IntParameterSetter
	gestures     core.GestureTracker
	trigger      core.ActionTrigger
	panelOffsetX int
	title        string
	textTop      int

	held     *hudControlState
	heldDir  int
	heldTick int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the source and panel width.
func NewHUD(src Source, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{src: src, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.title = buildTitle(src)
	if provider, ok := src.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
	}
	if provider, ok := src.(core.ActionProvider); ok {
		for _, a := range provider.Actions() {
			h.actions = append(h.actions, hudActionState{action: a})
		}
	}
	h.layoutControls()
	if setter, ok := src.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if tracker, ok := src.(core.GestureTracker); ok {
		h.gestures = tracker
	}
	if trigger, ok := src.(core.ActionTrigger); ok {
		h.trigger = trigger
	}
	return h
}

// Update refreshes the cached snapshot and handles clicks. panelOffsetX is
// the screen x of the panel's left edge.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.src.Parameters()
	if provider, ok := h.src.(core.ActionProvider); ok {
		for i, a := range provider.Actions() {
			if i < len(h.actions) {
				h.actions[i].action = a
			}
		}
	}
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(src Source) string {
	if src == nil || src.Name() == "" {
		return "Controls"
	}
	name := src.Name()
	return fmt.Sprintf("%s%s Controls", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) paramMap() map[string]core.Parameter {
	out := map[string]core.Parameter{}
	for _, group := range h.snapshot.Groups {
		for _, param := range group.Params {
			out[param.Key] = param
		}
	}
	return out
}

func (h *HUD) refreshControlValues() {
	if len(h.controls) == 0 {
		return
	}
	paramMap := h.paramMap()
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := paramMap[state.control.Key]
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				state.hasValue = false
				state.value = "--"
				continue
			}
			state.intValue = parsed
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		default:
			state.hasValue = false
			state.value = "--"
		}
	}
}

// Holding a button repeats its step after holdDelay ticks, every holdRepeat
// ticks.
const (
	holdDelay  = 18
	holdRepeat = 3
)

func (h *HUD) handleInput() {
	if h.held != nil {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			h.release()
			return
		}
		h.heldTick++
		if h.heldTick >= holdDelay && (h.heldTick-holdDelay)%holdRepeat == 0 {
			h.applyAdjustment(h.held, h.heldDir)
		}
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		dir := 0
		switch {
		case pointInRect(px, my, state.minusRect):
			dir = -1
		case pointInRect(px, my, state.plusRect):
			dir = 1
		default:
			continue
		}
		h.press(state, dir)
		return
	}
	for i := range h.actions {
		if pointInRect(px, my, h.actions[i].rect) && h.trigger != nil {
			h.trigger.TriggerAction(h.actions[i].action.Key)
			return
		}
	}
}

func (h *HUD) press(state *hudControlState, dir int) {
	if state.control.Draggable {
		h.held = state
		h.heldDir = dir
		h.heldTick = 0
		if h.gestures != nil {
			h.gestures.BeginGesture(state.control.Key)
		}
	}
	h.applyAdjustment(state, dir)
}

func (h *HUD) release() {
	if h.held != nil && h.gestures != nil {
		h.gestures.EndGesture(h.held.control.Key)
	}
	h.held = nil
	h.heldDir = 0
	h.heldTick = 0
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if state == nil || direction == 0 {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return
		}
		step := int(math.Round(state.control.Step))
		if step <= 0 {
			step = 1
		}
		target := state.intValue + direction*step
		if state.control.HasMin {
			min := int(math.Round(state.control.Min))
			if target < min {
				target = min
			}
		}
		if state.control.HasMax {
			max := int(math.Round(state.control.Max))
			if target > max {
				target = max
			}
		}
		if target == state.intValue {
			return
		}
		if h.intSetter.SetIntParameter(state.control.Key, target) {
			state.intValue = target
			state.value = strconv.Itoa(target)
		}
	}
}

var (
	textBright = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	textDim    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	textHeader = color.RGBA{R: 200, G: 200, B: 210, A: 255}
)

func (h *HUD) drawControls() {
	if h.panel == nil {
		return
	}
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, textHeader)

	for i := range h.controls {
		state := &h.controls[i]
		top := state.top
		labelY := top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, textBright)
		valueColor := textBright
		if !state.hasValue {
			valueColor = textDim
		}
		value := state.value
		bounds := text.BoundString(face, value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, value, face, valueX, labelY, valueColor)

		minusEnabled := state.hasValue && h.canAdjust(state, -1)
		plusEnabled := state.hasValue && h.canAdjust(state, 1)
		h.drawButton(state.minusRect, "-", minusEnabled || h.held == state && h.heldDir < 0)
		h.drawButton(state.plusRect, "+", plusEnabled || h.held == state && h.heldDir > 0)
	}

	for i := range h.actions {
		h.drawButton(h.actions[i].rect, h.actions[i].action.Label, h.trigger != nil)
	}

	y := h.textTop
	params := h.paramMap()
	for _, key := range readoutKeys {
		p, ok := params[key]
		if !ok || p.Value == "" {
			continue
		}
		text.Draw(h.panel, fmt.Sprintf("%s: %s", p.Label, p.Value), face, panelPadding, y, textBright)
		y += infoLineHeight
	}

	provider, ok := h.src.(infoProvider)
	if !ok {
		return
	}
	y += infoLineHeight / 2
	for _, line := range provider.InfoLines() {
		if y > h.lastHeight-panelPadding {
			break
		}
		for _, wrapped := range wrap(line, h.maxChars()) {
			text.Draw(h.panel, wrapped, face, panelPadding, y, textDim)
			y += infoLineHeight
		}
	}
}

func (h *HUD) maxChars() int {
	const glyphWidth = 7
	n := (h.width - 2*panelPadding) / glyphWidth
	if n < 8 {
		n = 8
	}
	return n
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if state == nil || direction == 0 {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return false
		}
		step := int(math.Round(state.control.Step))
		if step <= 0 {
			step = 1
		}
		target := state.intValue + direction*step
		if state.control.HasMin && direction < 0 && target < int(math.Round(state.control.Min)) {
			return false
		}
		if state.control.HasMax && direction > 0 && target > int(math.Round(state.control.Max)) {
			return false
		}
		return true
	default:
		return false
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
	y := controlsTop + len(h.controls)*lineHeight + sectionGap
	for i := range h.actions {
		h.actions[i].rect = image.Rect(panelPadding, y, h.width-panelPadding, y+buttonSize)
		y += buttonSize + buttonGap
	}
	h.textTop = y + sectionGap + labelBaseline/2
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

type hudActionState struct {
	action core.Action
	rect   image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	sectionGap     = 10
	infoLineHeight = 16
	controlsTop    = panelPadding + headerBaseline + 14
)

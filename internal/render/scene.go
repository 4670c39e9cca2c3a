// Package render lays out and paints the apparatus: stove, vessels, pipe,
// water, particles and the burner flame.
package render

import (
	"image/color"
	"math"
)

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// Point is a canvas position.
type Point struct {
	X, Y float64
}

// Circle is a filled dot.
type Circle struct {
	Center Point
	R      float64
}

// Segment is a stroked line.
type Segment struct {
	A, B Point
}

// Fixed apparatus measurements in pixels.
const (
	vesselGap     = 50
	lidHeight     = 30
	lidSlant      = 20
	pipeRun       = 40
	pipeDrop      = 30
	arrowSize     = 6
	stoveHeight   = 40
	standHeight   = 20
	legWidth      = 8
	legHeight     = 30
	shadowHeight  = 10
	burnerStandH  = 15
	burnerRingH   = 5
	burnerHoles   = 20
	ringHoles     = 12
	heatSourceGap = 10
	strokeWidth   = 2
)

// Palette of the static apparatus.
var (
	Background  = color.NRGBA{R: 248, G: 249, B: 251, A: 255}
	Outline     = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	WaterLine   = color.NRGBA{R: 0x4a, G: 0x90, B: 0xe2, A: 255}
	WaterFill   = color.NRGBA{R: 74, G: 144, B: 226, A: 51}
	StoveBody   = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 255}
	StoveGroove = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	BurnerDark  = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}
	BurnerHole  = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 255}
	StandLeg    = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
	StandTop    = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 255}
	Arrow       = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 255}
)

// Scene is the apparatus geometry for one canvas size. It depends only on
// the size, so painters rebuild it on resize.
type Scene struct {
	W, H float64

	Main       Rect
	Collection Rect
	Lid        []Segment

	Stove        Rect
	StoveGrooves []Rect
	RingCenter   Point
	RingRadii    Point
	RingHoles    []Circle

	Stand       Rect
	StandLegs   []Rect
	StandShadow Rect

	Pipe   []Segment
	Arrows [][3]Point

	// Heat source, drawn only while heating.
	BurnerStand Rect
	BurnerRing  Rect
	BurnerHoles []Circle
	Flame       FlameGeometry
}

// NewScene computes the layout for a w by h canvas.
func NewScene(w, h float64) Scene {
	s := Scene{W: w, H: h}
	centerX := w / 2
	vw := w / 4
	s.Main = Rect{X: centerX - vw - vesselGap, Y: h/2 - vw/2, W: vw, H: vw}
	s.Collection = Rect{X: centerX + vesselGap, Y: s.Main.Y, W: vw, H: vw}

	m := s.Main
	lidTop := Point{m.X, m.Y - lidHeight}
	lidRight := Point{m.X + m.W, m.Y - lidHeight + lidSlant}
	s.Lid = []Segment{
		{lidTop, lidRight},
		{lidRight, Point{m.X + m.W, m.Y}},
		{lidTop, Point{m.X, m.Y}},
	}

	s.layoutStove()
	s.layoutStand()
	s.layoutPipe()
	s.layoutHeatSource()
	return s
}

func (s *Scene) layoutStove() {
	m := s.Main
	sw := m.W * 1.4
	s.Stove = Rect{X: m.X - (sw-m.W)/2, Y: m.Y + m.H, W: sw, H: stoveHeight}
	for i := 0; i < 3; i++ {
		s.StoveGrooves = append(s.StoveGrooves, Rect{
			X: s.Stove.X + 10 + float64(i)*(sw-20)/2,
			Y: s.Stove.Y + 5,
			W: (sw - 30) / 3,
			H: 2,
		})
	}

	bw := m.W * 1.2
	bx := m.X - (bw-m.W)/2
	by := s.Stove.Y - 5
	s.RingCenter = Point{bx + bw/2, by + 5}
	s.RingRadii = Point{bw / 2, 8}
	r := bw/2 - 5
	for i := 0; i < ringHoles; i++ {
		a := float64(i) / ringHoles * 2 * math.Pi
		s.RingHoles = append(s.RingHoles, Circle{
			Center: Point{s.RingCenter.X + math.Cos(a)*r, s.RingCenter.Y + math.Sin(a)*6},
			R:      2,
		})
	}
}

func (s *Scene) layoutStand() {
	c := s.Collection
	sw := c.W * 1.2
	sx := c.X - (sw-c.W)/2
	sy := c.Y + c.H
	s.Stand = Rect{X: sx, Y: sy, W: sw, H: standHeight / 2}
	s.StandLegs = []Rect{
		{X: sx, Y: sy, W: legWidth, H: legHeight},
		{X: sx + sw - legWidth, Y: sy, W: legWidth, H: legHeight},
	}
	s.StandShadow = Rect{X: sx - 5, Y: sy + legHeight, W: sw + 10, H: shadowHeight}
}

func (s *Scene) layoutPipe() {
	m := s.Main
	startY := m.Y - lidHeight + lidSlant
	endY := m.Y + pipeDrop
	right := m.X + m.W
	cx := s.Collection.X
	s.Pipe = []Segment{
		{Point{right, startY}, Point{right + pipeRun, startY}},
		{Point{right + pipeRun, startY}, Point{cx - pipeRun, endY}},
		{Point{cx - pipeRun, endY}, Point{cx, endY}},
	}
	for _, p := range []Point{
		{right + pipeRun/2, startY},
		{(right + cx) / 2, (startY + endY) / 2},
		{cx - pipeRun/2, endY},
	} {
		s.Arrows = append(s.Arrows, [3]Point{
			{p.X - arrowSize, p.Y},
			{p.X + arrowSize, p.Y},
			{p.X, p.Y + arrowSize},
		})
	}
}

func (s *Scene) layoutHeatSource() {
	m := s.Main
	y := m.Y + m.H + heatSourceGap
	bw := m.W * 1.2
	bx := m.X - (bw-m.W)/2
	s.BurnerStand = Rect{X: bx + bw*0.1, Y: y, W: bw * 0.8, H: burnerStandH}
	rw := bw * 0.9
	rx := bx + (bw-rw)/2
	s.BurnerRing = Rect{X: rx, Y: y, W: rw, H: burnerRingH}
	for i := 0; i < burnerHoles; i++ {
		s.BurnerHoles = append(s.BurnerHoles, Circle{
			Center: Point{rx + rw/(burnerHoles-1)*float64(i), y + burnerRingH/2},
			R:      1,
		})
	}
	s.Flame = NewFlameGeometry(m.X, y-burnerRingH/2, m.W)
}

// WaterRect returns the filled part of a vessel at a fill level.
func WaterRect(vessel Rect, level float64) Rect {
	h := level * vessel.H
	if h < 0 {
		h = 0
	}
	return Rect{X: vessel.X, Y: vessel.Y + vessel.H - h, W: vessel.W, H: h}
}

// Ellipse approximates an axis-aligned ellipse with n points.
func Ellipse(center, radii Point, n int) []Point {
	if n < 3 {
		n = 3
	}
	pts := make([]Point, n)
	for i := range pts {
		a := float64(i) / float64(n) * 2 * math.Pi
		pts[i] = Point{center.X + math.Cos(a)*radii.X, center.Y + math.Sin(a)*radii.Y}
	}
	return pts
}

// Label is a caption anchored on the apparatus.
type Label struct {
	Text string
	At   Point
}

// Labels names the main parts of the apparatus.
func (s Scene) Labels() []Label {
	m := s.Main
	c := s.Collection
	mid := s.Pipe[1]
	return []Label{
		{Text: "Boiling vessel", At: Point{m.X, m.Y - lidHeight - 8}},
		{Text: "Condenser", At: Point{(mid.A.X+mid.B.X)/2 - 30, (mid.A.Y+mid.B.Y)/2 - 14}},
		{Text: "Collection vessel", At: Point{c.X, c.Y - 8}},
		{Text: "Heat source", At: Point{s.Stove.X, s.Stove.Y + s.Stove.H + 16}},
	}
}

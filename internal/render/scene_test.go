package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneLayout(t *testing.T) {
	s := NewScene(800, 400)

	assert.Equal(t, Rect{X: 150, Y: 100, W: 200, H: 200}, s.Main)
	assert.Equal(t, Rect{X: 450, Y: 100, W: 200, H: 200}, s.Collection)
	assert.Equal(t, Rect{X: 110, Y: 300, W: 280, H: 40}, s.Stove)
	assert.Len(t, s.StoveGrooves, 3)
	assert.Len(t, s.RingHoles, 12)
	assert.Len(t, s.BurnerHoles, 20)
	assert.Len(t, s.Arrows, 3)

	require.Len(t, s.Pipe, 3)
	assert.Equal(t, Point{350, 90}, s.Pipe[0].A)
	assert.Equal(t, Point{390, 90}, s.Pipe[0].B)
	assert.Equal(t, Point{410, 130}, s.Pipe[1].B)
	assert.Equal(t, Point{450, 130}, s.Pipe[2].B)
	for i := 1; i < len(s.Pipe); i++ {
		assert.Equal(t, s.Pipe[i-1].B, s.Pipe[i].A, "pipe segments join")
	}

	assert.Equal(t, Rect{X: 430, Y: 300, W: 240, H: 10}, s.Stand)
	assert.Equal(t, 310.0, s.BurnerStand.Y)
}

func TestSceneFollowsCanvasSize(t *testing.T) {
	small := NewScene(400, 300)
	large := NewScene(1600, 900)

	assert.Greater(t, large.Main.W, small.Main.W)
	assert.InDelta(t, large.W/4, large.Main.W, 1e-9)
	assert.InDelta(t, 450, large.Main.Y+large.Main.H/2, 1e-9, "vessels are vertically centred")
}

func TestWaterRect(t *testing.T) {
	v := Rect{X: 10, Y: 20, W: 100, H: 200}

	assert.Equal(t, Rect{X: 10, Y: 80, W: 100, H: 140}, WaterRect(v, 0.7))
	assert.Equal(t, Rect{X: 10, Y: 220, W: 100, H: 0}, WaterRect(v, 0))
	assert.Equal(t, 0.0, WaterRect(v, -1).H)
}

func TestEllipse(t *testing.T) {
	pts := Ellipse(Point{100, 50}, Point{20, 8}, 4)
	require.Len(t, pts, 4)
	assert.InDelta(t, 120, pts[0].X, 1e-9)
	assert.InDelta(t, 58, pts[1].Y, 1e-9)

	assert.Len(t, Ellipse(Point{}, Point{1, 1}, 1), 3)
}

func TestLabelsNameTheApparatus(t *testing.T) {
	labels := NewScene(800, 400).Labels()
	var names []string
	for _, l := range labels {
		names = append(names, l.Text)
	}
	assert.Equal(t, []string{"Boiling vessel", "Condenser", "Collection vessel", "Heat source"}, names)
}

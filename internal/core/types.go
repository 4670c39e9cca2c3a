package core

// Size describes the dimensions of the drawing surface in pixels.
type Size struct {
	W int
	H int
}

// Empty reports whether the size has no drawable area.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

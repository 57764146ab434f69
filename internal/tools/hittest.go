package tools

import "CollabBoard/internal/state"

// Resize handles get a generous square tolerance so they are grabbable
// at the default zoom.
const handleTolerance = 16

// InBounds reports whether (x, y) falls inside the element's box.
// Only sticky notes and images expose a box; every other kind fails
// the test.
func InBounds(x, y float64, e state.Element) bool {
	ex, ey, w, h, ok := e.Bounds()
	if !ok {
		return false
	}
	return x >= ex && x <= ex+w && y >= ey && y <= ey+h
}

// InResizeHandle reports whether (x, y) is within the tolerance square
// around the element's bottom-right corner.
func InResizeHandle(x, y float64, e state.Element) bool {
	ex, ey, w, h, ok := e.Bounds()
	if !ok {
		return false
	}
	cx, cy := ex+w, ey+h
	return x >= cx-handleTolerance && x <= cx+handleTolerance &&
		y >= cy-handleTolerance && y <= cy+handleTolerance
}

// HitBody scans elements in reverse insertion order, restricted to the
// given layer, and returns the topmost element whose body contains
// (x, y).
func HitBody(x, y float64, elements []state.Element, layer int) (state.Element, bool) {
	for i := len(elements) - 1; i >= 0; i-- {
		e := elements[i]
		if e.Layer != layer {
			continue
		}
		if InBounds(x, y, e) {
			return e, true
		}
	}
	return state.Element{}, false
}

// HitHandle is HitBody for resize handles.
func HitHandle(x, y float64, elements []state.Element, layer int) (state.Element, bool) {
	for i := len(elements) - 1; i >= 0; i-- {
		e := elements[i]
		if e.Layer != layer {
			continue
		}
		if InResizeHandle(x, y, e) {
			return e, true
		}
	}
	return state.Element{}, false
}

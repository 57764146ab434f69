package state

import (
	"errors"
	"fmt"
)

// ErrLastLayer is returned when removing the only remaining layer.
var ErrLastLayer = errors.New("cannot remove the last layer")

// Layers is the ordered list of named layers for one board. Elements
// reference layers by index; only the active layer is rendered and
// hit-tested. Structural operations keep the active index valid and
// keep element tags pointing at the same visual content.
type Layers struct {
	names  []string
	active int
	canvas *Canvas
}

func NewLayers(canvas *Canvas) *Layers {
	return &Layers{names: []string{"Layer 1"}, canvas: canvas}
}

// Names returns a copy of the layer names in z-order.
func (l *Layers) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Active returns the index of the active layer.
func (l *Layers) Active() int {
	return l.active
}

// SetActive switches the active layer. Out-of-range indexes are
// ignored.
func (l *Layers) SetActive(i int) {
	if i >= 0 && i < len(l.names) {
		l.active = i
	}
}

// Add appends a new layer and makes it active.
func (l *Layers) Add() {
	l.names = append(l.names, fmt.Sprintf("Layer %d", len(l.names)+1))
	l.active = len(l.names) - 1
}

// Remove deletes the layer at i together with every element tagged
// with it. Elements on higher layers shift down one index. The last
// remaining layer cannot be removed.
func (l *Layers) Remove(i int) error {
	if len(l.names) == 1 {
		return ErrLastLayer
	}
	if i < 0 || i >= len(l.names) {
		return fmt.Errorf("layer %d out of range", i)
	}
	l.names = append(l.names[:i], l.names[i+1:]...)

	kept := make([]Element, 0)
	for _, e := range l.canvas.Elements() {
		if e.Layer == i {
			continue
		}
		if e.Layer > i {
			e.Layer--
		}
		kept = append(kept, e)
	}
	l.canvas.Replace(kept)

	if l.active >= len(l.names) {
		l.active = len(l.names) - 1
	}
	return nil
}

// MoveUp swaps layer i with the one above it and re-tags the elements
// of both so each layer keeps its visual content.
func (l *Layers) MoveUp(i int) {
	l.swap(i, i-1)
}

// MoveDown swaps layer i with the one below it.
func (l *Layers) MoveDown(i int) {
	l.swap(i, i+1)
}

func (l *Layers) swap(i, j int) {
	if i < 0 || j < 0 || i >= len(l.names) || j >= len(l.names) || i == j {
		return
	}
	l.names[i], l.names[j] = l.names[j], l.names[i]

	swapped := l.canvas.Elements()
	for k := range swapped {
		switch swapped[k].Layer {
		case i:
			swapped[k].Layer = j
		case j:
			swapped[k].Layer = i
		}
	}
	l.canvas.Replace(swapped)

	if l.active == i {
		l.active = j
	} else if l.active == j {
		l.active = i
	}
}

// Rename is a pure label edit.
func (l *Layers) Rename(i int, name string) {
	if i >= 0 && i < len(l.names) {
		l.names[i] = name
	}
}

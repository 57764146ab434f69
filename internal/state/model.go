package state

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Kind tags the element variant. The set is closed: render and
// hit-test sites switch over every kind.
type Kind string

const (
	KindStroke Kind = "stroke"
	KindShape  Kind = "shape"
	KindText   Kind = "text"
	KindSticky Kind = "sticky"
	KindImage  Kind = "image"
)

// ShapeKind selects the outline drawn between the drag start and end.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeTriangle  ShapeKind = "triangle"
	ShapeStar      ShapeKind = "star"
	ShapePentagon  ShapeKind = "pentagon"
	ShapeHexagon   ShapeKind = "hexagon"
	ShapeLine      ShapeKind = "line"
	ShapeArrow     ShapeKind = "arrow"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is one drawable unit on the board. Exactly one variant's
// fields are meaningful, selected by Kind:
//
//	stroke: Points, Color, Stroke
//	shape:  Shape, Start, End, Color, Stroke
//	text:   Pos, Text, FontSize, Color
//	sticky: Pos, W, H, Text
//	image:  Pos, W, H, ImageData
//
// ID gives the element a stable identity across undo snapshots and the
// relay; Layer indexes into the layer list (0 is the default layer).
type Element struct {
	ID    string `json:"id,omitempty"`
	Kind  Kind   `json:"kind"`
	Layer int    `json:"layer,omitempty"`

	Color  string  `json:"color,omitempty"`
	Stroke float64 `json:"stroke,omitempty"`

	Points []Point `json:"points,omitempty"`

	Shape ShapeKind `json:"shape,omitempty"`
	Start Point     `json:"start"`
	End   Point     `json:"end"`

	Pos      Point   `json:"pos"`
	W        float64 `json:"w,omitempty"`
	H        float64 `json:"h,omitempty"`
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`

	ImageData []byte `json:"image_data,omitempty"`
}

// NewID returns a fresh element id.
func NewID() string {
	return uuid.NewString()
}

// Clone returns a deep copy; Points and ImageData are not shared.
func (e Element) Clone() Element {
	c := e
	if e.Points != nil {
		c.Points = make([]Point, len(e.Points))
		copy(c.Points, e.Points)
	}
	if e.ImageData != nil {
		c.ImageData = make([]byte, len(e.ImageData))
		copy(c.ImageData, e.ImageData)
	}
	return c
}

// Bounds reports the axis-aligned box of an element, and whether the
// element kind carries a direct box at all. Only sticky notes and
// images do, which is why only they are directly selectable.
func (e Element) Bounds() (x, y, w, h float64, ok bool) {
	switch e.Kind {
	case KindSticky, KindImage:
		return e.Pos.X, e.Pos.Y, e.W, e.H, true
	case KindStroke, KindShape, KindText:
		return 0, 0, 0, 0, false
	}
	return 0, 0, 0, 0, false
}

// Canvas holds the ordered element set of one document. Later elements
// paint over earlier ones; the order is append-only except for
// whole-slice replacement during undo/redo and load.
type Canvas struct {
	mu       sync.RWMutex
	elements []Element
	seen     map[string]bool
}

func NewCanvas() *Canvas {
	return &Canvas{seen: make(map[string]bool)}
}

// Append adds a locally authored element at the top of the z-order.
func (c *Canvas) Append(e Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements = append(c.elements, e.Clone())
	if e.ID != "" {
		c.seen[e.ID] = true
	}
}

// Elements returns a copy of the current element slice.
func (c *Canvas) Elements() []Element {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Element, 0, len(c.elements))
	for _, e := range c.elements {
		out = append(out, e.Clone())
	}
	return out
}

// Len reports the element count.
func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.elements)
}

// Replace installs a whole new element slice (undo/redo, load).
func (c *Canvas) Replace(elements []Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements = make([]Element, 0, len(elements))
	c.seen = make(map[string]bool)
	for _, e := range elements {
		c.elements = append(c.elements, e.Clone())
		if e.ID != "" {
			c.seen[e.ID] = true
		}
	}
}

// Clear empties the canvas.
func (c *Canvas) Clear() {
	c.Replace(nil)
}

// Update rewrites the element with the given id in place (drag/resize).
// Returns false if no element carries that id.
func (c *Canvas) Update(id string, fn func(*Element)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.elements {
		if c.elements[i].ID == id {
			fn(&c.elements[i])
			return true
		}
	}
	return false
}

// Find returns a copy of the element with the given id.
func (c *Canvas) Find(id string) (Element, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.elements {
		if c.elements[i].ID == id {
			return c.elements[i].Clone(), true
		}
	}
	return Element{}, false
}

// MarshalJSON serializes the element slice, so a Canvas can be embedded
// directly in the document record.
func (c *Canvas) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Elements())
}

func (c *Canvas) UnmarshalJSON(data []byte) error {
	var elements []Element
	if err := json.Unmarshal(data, &elements); err != nil {
		return err
	}
	c.Replace(elements)
	return nil
}

package tools

import (
	"math"

	"CollabBoard/internal/state"
)

// Tool identifies the active interaction mode.
type Tool string

const (
	ToolPen      Tool = "pen"
	ToolEraser   Tool = "eraser"
	ToolSelect   Tool = "select"
	ToolText     Tool = "text"
	ToolSticky   Tool = "sticky"
	ToolRect     Tool = "rectangle"
	ToolCircle   Tool = "circle"
	ToolTriangle Tool = "triangle"
	ToolStar     Tool = "star"
	ToolPentagon Tool = "pentagon"
	ToolHexagon  Tool = "hexagon"
	ToolLine     Tool = "line"
	ToolArrow    Tool = "arrow"
)

var shapeForTool = map[Tool]state.ShapeKind{
	ToolRect:     state.ShapeRectangle,
	ToolCircle:   state.ShapeCircle,
	ToolTriangle: state.ShapeTriangle,
	ToolStar:     state.ShapeStar,
	ToolPentagon: state.ShapePentagon,
	ToolHexagon:  state.ShapeHexagon,
	ToolLine:     state.ShapeLine,
	ToolArrow:    state.ShapeArrow,
}

// Phase is the dispatcher's gesture state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDrawing
	PhaseShaping
	PhaseSelecting
	PhaseEditing
)

// Elements below this edge length cannot be produced by a resize drag.
const minResize = 50

// Default sizes for input-created elements.
const (
	defaultFontSize  = 18
	defaultStickyW   = 160
	defaultStickyH   = 120
	defaultLineWidth = 3
)

// Dispatcher is the pointer-to-element state machine. Pointer events
// come in from the UI, elements go out into the canvas, and every
// committed gesture pushes one history snapshot. Text and sticky input
// runs through a non-blocking editing phase: PointerDown parks the
// anchor, the UI collects the string however it likes, and SubmitInput
// finishes or CancelInput abandons the gesture.
type Dispatcher struct {
	canvas  *state.Canvas
	history *state.History
	layers  *state.Layers
	clock   *state.Clock

	phase       Phase
	tool        Tool
	color       string
	background  string
	strokeWidth float64
	fontSize    float64

	current    *state.Element
	selected   string
	resizing   bool
	dragOffset state.Point
	editAnchor state.Point

	// OnCommit fires once per newly created element, after it is in
	// the canvas. The sync bridge hangs off this hook.
	OnCommit func(state.Element)
	// OnChange fires after any visible mutation; the sole repaint path.
	OnChange func()
}

func NewDispatcher(canvas *state.Canvas, history *state.History, layers *state.Layers, clock *state.Clock, background string) *Dispatcher {
	return &Dispatcher{
		canvas:      canvas,
		history:     history,
		layers:      layers,
		clock:       clock,
		tool:        ToolPen,
		color:       "#000000",
		background:  background,
		strokeWidth: defaultLineWidth,
		fontSize:    defaultFontSize,
	}
}

func (d *Dispatcher) SetTool(t Tool)            { d.tool = t }
func (d *Dispatcher) Tool() Tool                { return d.tool }
func (d *Dispatcher) SetColor(c string)         { d.color = c }
func (d *Dispatcher) Color() string             { return d.color }
func (d *Dispatcher) SetStrokeWidth(w float64)  { d.strokeWidth = w }
func (d *Dispatcher) SetFontSize(size float64)  { d.fontSize = size }
func (d *Dispatcher) Phase() Phase              { return d.phase }
func (d *Dispatcher) Selected() string          { return d.selected }

// InProgress returns a copy of the element being drawn, if any. The
// renderer paints it last so the preview always sits on top.
func (d *Dispatcher) InProgress() (state.Element, bool) {
	if d.current == nil {
		return state.Element{}, false
	}
	return d.current.Clone(), true
}

// PointerDown begins a gesture according to the active tool.
func (d *Dispatcher) PointerDown(x, y float64) {
	if d.phase != PhaseIdle {
		return
	}
	p := state.Point{X: x, Y: y}

	switch d.tool {
	case ToolPen, ToolEraser:
		color := d.color
		if d.tool == ToolEraser {
			// The eraser is a background-colored stroke, not a delete.
			color = d.background
		}
		d.current = &state.Element{
			ID:     d.clock.Stamp(),
			Kind:   state.KindStroke,
			Layer:  d.layers.Active(),
			Color:  color,
			Stroke: d.strokeWidth,
			Points: []state.Point{p},
		}
		d.phase = PhaseDrawing

	case ToolText, ToolSticky:
		d.editAnchor = p
		d.phase = PhaseEditing

	case ToolSelect:
		elements := d.canvas.Elements()
		layer := d.layers.Active()
		if e, ok := HitHandle(x, y, elements, layer); ok {
			d.selected = e.ID
			d.resizing = true
			d.phase = PhaseSelecting
		} else if e, ok := HitBody(x, y, elements, layer); ok {
			d.selected = e.ID
			d.resizing = false
			d.dragOffset = state.Point{X: x - e.Pos.X, Y: y - e.Pos.Y}
			d.phase = PhaseSelecting
		} else {
			d.selected = ""
		}

	default:
		if shape, ok := shapeForTool[d.tool]; ok {
			d.current = &state.Element{
				ID:     d.clock.Stamp(),
				Kind:   state.KindShape,
				Layer:  d.layers.Active(),
				Shape:  shape,
				Start:  p,
				End:    p,
				Color:  d.color,
				Stroke: d.strokeWidth,
			}
			d.phase = PhaseShaping
		}
	}
	d.notify()
}

// PointerMove advances the gesture in progress.
func (d *Dispatcher) PointerMove(x, y float64) {
	switch d.phase {
	case PhaseDrawing:
		d.current.Points = append(d.current.Points, state.Point{X: x, Y: y})

	case PhaseShaping:
		d.current.End = state.Point{X: x, Y: y}

	case PhaseSelecting:
		if d.resizing {
			d.canvas.Update(d.selected, func(e *state.Element) {
				e.W = math.Max(minResize, x-e.Pos.X)
				e.H = math.Max(minResize, y-e.Pos.Y)
			})
		} else {
			dx, dy := x-d.dragOffset.X, y-d.dragOffset.Y
			d.canvas.Update(d.selected, func(e *state.Element) {
				e.Pos = state.Point{X: dx, Y: dy}
			})
		}

	default:
		return
	}
	d.notify()
}

// PointerUp commits the gesture. Strokes and shapes are committed even
// with zero extent; a selection drag just closes. Either way one
// snapshot lands in the history.
func (d *Dispatcher) PointerUp() {
	switch d.phase {
	case PhaseDrawing, PhaseShaping:
		el := *d.current
		d.current = nil
		d.commit(el)
	case PhaseSelecting:
		d.phase = PhaseIdle
		d.history.Push(d.canvas.Elements())
		d.notify()
	default:
		return
	}
}

// SubmitInput completes a text or sticky gesture with the collected
// string. An empty text is rejected outright; an empty sticky is a
// legal blank note.
func (d *Dispatcher) SubmitInput(text string) {
	if d.phase != PhaseEditing {
		return
	}
	tool := d.tool
	d.phase = PhaseIdle
	if tool == ToolText && text == "" {
		d.notify()
		return
	}

	var el state.Element
	switch tool {
	case ToolText:
		el = state.Element{
			ID:       d.clock.Stamp(),
			Kind:     state.KindText,
			Layer:    d.layers.Active(),
			Pos:      d.editAnchor,
			Text:     text,
			FontSize: d.fontSize,
			Color:    d.color,
		}
	case ToolSticky:
		el = state.Element{
			ID:    d.clock.Stamp(),
			Kind:  state.KindSticky,
			Layer: d.layers.Active(),
			Pos:   d.editAnchor,
			W:     defaultStickyW,
			H:     defaultStickyH,
			Text:  text,
		}
	default:
		return
	}
	d.commit(el)
}

// CancelInput abandons a pending text/sticky gesture.
func (d *Dispatcher) CancelInput() {
	if d.phase == PhaseEditing {
		d.phase = PhaseIdle
		d.notify()
	}
}

// PlaceImage drops an imported raster payload on the active layer at
// the given anchor and commits it like any other element.
func (d *Dispatcher) PlaceImage(x, y float64, data []byte, w, h float64) {
	if d.phase != PhaseIdle {
		return
	}
	d.commit(state.Element{
		ID:        d.clock.Stamp(),
		Kind:      state.KindImage,
		Layer:     d.layers.Active(),
		Pos:       state.Point{X: x, Y: y},
		W:         w,
		H:         h,
		ImageData: data,
	})
}

// ClearBoard wipes every element on every layer and records the wipe
// as one undoable step.
func (d *Dispatcher) ClearBoard() {
	if d.phase != PhaseIdle {
		return
	}
	d.canvas.Clear()
	d.selected = ""
	d.history.Push(d.canvas.Elements())
	d.notify()
}

// Undo installs the previous snapshot, Redo the next one. Both clear
// the selection, since the selected element may no longer exist.
func (d *Dispatcher) Undo() {
	if snap, ok := d.history.Undo(); ok {
		d.canvas.Replace(snap)
		d.selected = ""
		d.notify()
	}
}

func (d *Dispatcher) Redo() {
	if snap, ok := d.history.Redo(); ok {
		d.canvas.Replace(snap)
		d.selected = ""
		d.notify()
	}
}

func (d *Dispatcher) commit(el state.Element) {
	d.canvas.Append(el)
	d.history.Push(d.canvas.Elements())
	d.phase = PhaseIdle
	if d.OnCommit != nil {
		d.OnCommit(el.Clone())
	}
	d.notify()
}

func (d *Dispatcher) notify() {
	if d.OnChange != nil {
		d.OnChange()
	}
}

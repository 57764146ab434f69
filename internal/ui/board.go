package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"CollabBoard/internal/render"
	"CollabBoard/internal/state"
	"CollabBoard/internal/tools"
)

// BoardWidget is the drawing surface. All pointer input funnels into
// the dispatcher, and every state change funnels back out through one
// Redraw call — the widget itself holds no drawing state.
type BoardWidget struct {
	widget.BaseWidget

	dispatcher *tools.Dispatcher
	canvasSt   *state.Canvas
	layers     *state.Layers
	renderer   *render.Renderer

	surface *canvas.Image
	pressed bool

	// OnEditRequest fires when a text or sticky gesture needs input;
	// the shell opens the entry dialog and reports back through the
	// dispatcher's SubmitInput/CancelInput.
	OnEditRequest func(tool tools.Tool)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(d *tools.Dispatcher, c *state.Canvas, l *state.Layers, r *render.Renderer) *BoardWidget {
	b := &BoardWidget{
		dispatcher: d,
		canvasSt:   c,
		layers:     l,
		renderer:   r,
	}
	b.surface = canvas.NewImageFromImage(b.renderFrame())
	b.surface.FillMode = canvas.ImageFillOriginal
	d.OnChange = b.Redraw
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) renderFrame() image.Image {
	var inProgress *state.Element
	if el, ok := b.dispatcher.InProgress(); ok {
		inProgress = &el
	}
	return b.renderer.Render(
		b.canvasSt.Elements(),
		inProgress,
		b.dispatcher.Selected(),
		b.layers.Active(),
	)
}

// Redraw repaints the surface from current state. Safe to call from
// any event; it is the only path that touches pixels.
func (b *BoardWidget) Redraw() {
	b.surface.Image = b.renderFrame()
	b.surface.Refresh()
}

// Snapshot returns the current rendered frame, for export.
func (b *BoardWidget) Snapshot() image.Image {
	return b.renderFrame()
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pressed = true
	b.dispatcher.PointerDown(float64(e.Position.X), float64(e.Position.Y))
	if b.dispatcher.Phase() == tools.PhaseEditing && b.OnEditRequest != nil {
		b.OnEditRequest(b.dispatcher.Tool())
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.pressed {
		return
	}
	b.pressed = false
	b.dispatcher.PointerUp()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.pressed {
		b.dispatcher.PointerMove(float64(e.Position.X), float64(e.Position.Y))
	}
}

func (b *BoardWidget) DragEnd() {
	if b.pressed {
		b.pressed = false
		b.dispatcher.PointerUp()
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut()                   {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.pressed {
		b.dispatcher.PointerMove(float64(e.Position.X), float64(e.Position.Y))
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.surface)
}

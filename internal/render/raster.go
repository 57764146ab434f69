package render

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"strings"

	"github.com/gogpu/gg"

	"CollabBoard/internal/state"
)

// Sticky notes keep a fixed look regardless of the active pen color.
const (
	stickyFill     = "#fef08a"
	stickyBorder   = "#ca8a04"
	stickyInk      = "#1f2937"
	stickyFontSize = 14
	stickyPadding  = 8
)

const (
	selectionColor = "#2563eb"
	handleSize     = 8
	starInnerRatio = 0.5
)

// Renderer repaints the whole visible element set on every call: no
// dirty rectangles, no retained scene. The output image is a pure
// function of the inputs, so it is always safe to call again — the one
// redraw path of the whole application.
type Renderer struct {
	width, height int
	background    string
}

func New(width, height int, background string) *Renderer {
	return &Renderer{width: width, height: height, background: background}
}

func (r *Renderer) Background() string { return r.background }

// Render paints the elements of the active layer in slice order, then
// the in-progress element on top, then the selection affordance.
func (r *Renderer) Render(elements []state.Element, inProgress *state.Element, selectedID string, layer int) image.Image {
	dc := gg.NewContext(r.width, r.height)

	dc.SetHexColor(r.background)
	dc.DrawRectangle(0, 0, float64(r.width), float64(r.height))
	fill(dc)

	for _, e := range elements {
		if e.Layer != layer {
			continue
		}
		r.drawElement(dc, e)
	}
	if inProgress != nil && inProgress.Layer == layer {
		r.drawElement(dc, *inProgress)
	}
	if selectedID != "" {
		for _, e := range elements {
			if e.ID == selectedID && e.Layer == layer {
				r.drawSelection(dc, e)
				break
			}
		}
	}
	return dc.Image()
}

func (r *Renderer) drawElement(dc *gg.Context, e state.Element) {
	switch e.Kind {
	case state.KindStroke:
		r.drawStroke(dc, e)
	case state.KindShape:
		r.drawShape(dc, e)
	case state.KindText:
		r.drawText(dc, e)
	case state.KindSticky:
		r.drawSticky(dc, e)
	case state.KindImage:
		r.drawImage(dc, e)
	}
}

func (r *Renderer) drawStroke(dc *gg.Context, e state.Element) {
	if len(e.Points) == 0 {
		return
	}
	dc.SetHexColor(e.Color)
	dc.SetLineWidth(e.Stroke)
	if len(e.Points) == 1 {
		// A click without movement still leaves a dot.
		dc.DrawCircle(e.Points[0].X, e.Points[0].Y, e.Stroke/2)
		fill(dc)
		return
	}
	dc.MoveTo(e.Points[0].X, e.Points[0].Y)
	for _, p := range e.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	stroke(dc)
}

func (r *Renderer) drawShape(dc *gg.Context, e state.Element) {
	dc.SetHexColor(e.Color)
	dc.SetLineWidth(e.Stroke)

	switch e.Shape {
	case state.ShapeRectangle:
		x, y, w, h := state.NormalizeRect(e.Start, e.End)
		dc.DrawRectangle(x, y, w, h)
	case state.ShapeCircle:
		x, y, w, h := state.NormalizeRect(e.Start, e.End)
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	case state.ShapeTriangle:
		cx, cy, rad := state.ShapeCenter(e.Start, e.End)
		tracePolygon(dc, state.PolygonVertices(3, cx, cy, rad))
	case state.ShapePentagon:
		cx, cy, rad := state.ShapeCenter(e.Start, e.End)
		tracePolygon(dc, state.PolygonVertices(5, cx, cy, rad))
	case state.ShapeHexagon:
		cx, cy, rad := state.ShapeCenter(e.Start, e.End)
		tracePolygon(dc, state.PolygonVertices(6, cx, cy, rad))
	case state.ShapeStar:
		cx, cy, rad := state.ShapeCenter(e.Start, e.End)
		tracePolygon(dc, state.StarVertices(5, cx, cy, rad, rad*starInnerRatio))
	case state.ShapeLine:
		dc.DrawLine(e.Start.X, e.Start.Y, e.End.X, e.End.Y)
	case state.ShapeArrow:
		dc.DrawLine(e.Start.X, e.Start.Y, e.End.X, e.End.Y)
		left, right := state.ArrowHead(e.Start, e.End)
		dc.MoveTo(left.X, left.Y)
		dc.LineTo(e.End.X, e.End.Y)
		dc.LineTo(right.X, right.Y)
	}
	stroke(dc)
}

func (r *Renderer) drawText(dc *gg.Context, e state.Element) {
	face := fontFace(e.FontSize)
	if face == nil {
		return
	}
	dc.SetFont(face)
	dc.SetHexColor(e.Color)
	// Pos is the top-left anchor; DrawString wants the baseline.
	dc.DrawString(e.Text, e.Pos.X, e.Pos.Y+e.FontSize)
}

func (r *Renderer) drawSticky(dc *gg.Context, e state.Element) {
	dc.SetHexColor(stickyFill)
	dc.DrawRectangle(e.Pos.X, e.Pos.Y, e.W, e.H)
	fill(dc)
	dc.SetHexColor(stickyBorder)
	dc.SetLineWidth(1)
	dc.DrawRectangle(e.Pos.X, e.Pos.Y, e.W, e.H)
	stroke(dc)

	face := fontFace(stickyFontSize)
	if face == nil {
		return
	}
	dc.SetFont(face)
	dc.SetHexColor(stickyInk)
	y := e.Pos.Y + stickyPadding + stickyFontSize
	for _, line := range strings.Split(e.Text, "\n") {
		if y > e.Pos.Y+e.H-stickyPadding {
			break
		}
		dc.DrawString(line, e.Pos.X+stickyPadding, y)
		y += stickyFontSize * 1.4
	}
}

func (r *Renderer) drawImage(dc *gg.Context, e state.Element) {
	if len(e.ImageData) == 0 {
		return
	}
	img, _, err := image.Decode(bytes.NewReader(e.ImageData))
	if err != nil {
		// A bad payload degrades to an empty box, never a crash.
		log.Printf("[render] image decode failed for %s: %v", e.ID, err)
		return
	}
	dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:         e.Pos.X,
		Y:         e.Pos.Y,
		DstWidth:  e.W,
		DstHeight: e.H,
	})
}

func (r *Renderer) drawSelection(dc *gg.Context, e state.Element) {
	x, y, w, h, ok := e.Bounds()
	if !ok {
		return
	}
	dc.SetHexColor(selectionColor)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	dc.DrawRectangle(x, y, w, h)
	stroke(dc)
	dc.ClearDash()

	dc.DrawRectangle(x+w-handleSize/2, y+h-handleSize/2, handleSize, handleSize)
	fill(dc)
}

func tracePolygon(dc *gg.Context, pts []state.Point) {
	if len(pts) == 0 {
		return
	}
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}

func fill(dc *gg.Context) {
	if err := dc.Fill(); err != nil {
		log.Printf("[render] fill: %v", err)
	}
}

func stroke(dc *gg.Context) {
	if err := dc.Stroke(); err != nil {
		log.Printf("[render] stroke: %v", err)
	}
}

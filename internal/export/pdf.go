package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"CollabBoard/internal/state"
)

// A4 printable width in mm, minus margins.
const pdfPageWidth = 190.0

// PDF writes the board's vector content (strokes and shapes) to an A4
// page named after the title. Raster payloads and sticky styling are a
// PNG concern; the PDF keeps the line work printable.
func PDF(dir, title string, elements []state.Element, canvasWidth float64) (string, error) {
	if canvasWidth <= 0 {
		canvasWidth = 1200
	}
	scale := pdfPageWidth / canvasWidth

	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetDrawColor(0, 0, 0)

	for _, e := range elements {
		switch e.Kind {
		case state.KindStroke:
			p.SetLineWidth(e.Stroke * scale)
			for i := 1; i < len(e.Points); i++ {
				p.Line(
					e.Points[i-1].X*scale, e.Points[i-1].Y*scale,
					e.Points[i].X*scale, e.Points[i].Y*scale,
				)
			}
		case state.KindShape:
			p.SetLineWidth(e.Stroke * scale)
			drawShapePDF(p, e, scale)
		case state.KindText, state.KindSticky, state.KindImage:
			// Vector-only export.
		}
	}

	path := filepath.Join(dir, Filename(title, "pdf"))
	if err := p.OutputFileAndClose(path); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func drawShapePDF(p *gofpdf.Fpdf, e state.Element, scale float64) {
	switch e.Shape {
	case state.ShapeRectangle:
		x, y, w, h := state.NormalizeRect(e.Start, e.End)
		p.Rect(x*scale, y*scale, w*scale, h*scale, "D")
	case state.ShapeCircle:
		x, y, w, h := state.NormalizeRect(e.Start, e.End)
		p.Ellipse((x+w/2)*scale, (y+h/2)*scale, w/2*scale, h/2*scale, 0, "D")
	case state.ShapeLine:
		p.Line(e.Start.X*scale, e.Start.Y*scale, e.End.X*scale, e.End.Y*scale)
	case state.ShapeArrow:
		p.Line(e.Start.X*scale, e.Start.Y*scale, e.End.X*scale, e.End.Y*scale)
		left, right := state.ArrowHead(e.Start, e.End)
		p.Line(left.X*scale, left.Y*scale, e.End.X*scale, e.End.Y*scale)
		p.Line(right.X*scale, right.Y*scale, e.End.X*scale, e.End.Y*scale)
	case state.ShapeTriangle, state.ShapePentagon, state.ShapeHexagon, state.ShapeStar:
		drawPolylinePDF(p, shapeOutline(e), scale)
	}
}

func shapeOutline(e state.Element) []state.Point {
	cx, cy, r := state.ShapeCenter(e.Start, e.End)
	switch e.Shape {
	case state.ShapeTriangle:
		return state.PolygonVertices(3, cx, cy, r)
	case state.ShapePentagon:
		return state.PolygonVertices(5, cx, cy, r)
	case state.ShapeHexagon:
		return state.PolygonVertices(6, cx, cy, r)
	case state.ShapeStar:
		return state.StarVertices(5, cx, cy, r, r/2)
	}
	return nil
}

func drawPolylinePDF(p *gofpdf.Fpdf, pts []state.Point, scale float64) {
	if len(pts) < 2 {
		return
	}
	for i := 1; i < len(pts); i++ {
		p.Line(pts[i-1].X*scale, pts[i-1].Y*scale, pts[i].X*scale, pts[i].Y*scale)
	}
	p.Line(pts[len(pts)-1].X*scale, pts[len(pts)-1].Y*scale, pts[0].X*scale, pts[0].Y*scale)
}

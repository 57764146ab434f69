package ui

import (
	"image/color"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"CollabBoard/internal/render"
	"CollabBoard/internal/tools"
)

// colorSwatch is a tappable square of one palette color.
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(hexToColor(s.Hex))
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

func hexToColor(hex string) color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return color.Black
	}
	var r, g, b uint8
	nib := func(c byte) uint8 {
		switch {
		case c >= '0' && c <= '9':
			return c - '0'
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10
		}
		return 0
	}
	r = nib(hex[1])<<4 | nib(hex[2])
	g = nib(hex[3])<<4 | nib(hex[4])
	b = nib(hex[5])<<4 | nib(hex[6])
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// NewToolbar assembles the tool picker, palette, stroke slider and the
// undo/redo, layer and export controls above the board.
func NewToolbar(board *BoardWidget, win fyne.Window, palette []string, onExport func()) fyne.CanvasObject {
	d := board.dispatcher

	toolSelect := widget.NewSelect([]string{
		string(tools.ToolPen), string(tools.ToolEraser), string(tools.ToolSelect),
		string(tools.ToolRect), string(tools.ToolCircle), string(tools.ToolTriangle),
		string(tools.ToolStar), string(tools.ToolPentagon), string(tools.ToolHexagon),
		string(tools.ToolLine), string(tools.ToolArrow),
		string(tools.ToolText), string(tools.ToolSticky),
	}, func(val string) {
		d.SetTool(tools.Tool(val))
	})
	toolSelect.SetSelected(string(tools.ToolPen))

	colorBox := container.NewHBox()
	for _, hex := range palette {
		colorBox.Add(newColorSwatch(hex, d.SetColor))
	}

	strokeSlider := widget.NewSlider(1.0, 30.0)
	strokeSlider.SetValue(3.0)
	strokeSlider.OnChanged = func(val float64) {
		d.SetStrokeWidth(val)
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), strokeSlider)

	undoBtn := widget.NewButton("Undo", d.Undo)
	redoBtn := widget.NewButton("Redo", d.Redo)

	imageBtn := widget.NewButton("Image", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			data, err := io.ReadAll(reader)
			if err != nil {
				log.Printf("read image: %v", err)
				return
			}
			payload, w, h, err := render.ImportImage(data)
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			d.PlaceImage(40, 40, payload, w, h)
		}, win)
	})

	clearBtn := widget.NewButton("Clear", func() {
		dialog.ShowConfirm("Clear board", "Remove every element?", func(ok bool) {
			if ok {
				d.ClearBoard()
			}
		}, win)
	})

	exportBtn := widget.NewButton("Export", onExport)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		toolSelect,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		widget.NewSeparator(),
		undoBtn, redoBtn, imageBtn, clearBtn, exportBtn,
		layout.NewSpacer(),
	)
}

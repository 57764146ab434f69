package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"CollabBoard/internal/state"
	"CollabBoard/internal/tools"
)

// RunApp assembles the window around the board widget and blocks until
// the window closes. onClose runs on the way out: stop the autosaver,
// drop the relay subscription, shut the mDNS server down.
func RunApp(title, shareLink string, board *BoardWidget, layers *state.Layers, presence *PresenceBar, palette []string, onExport, onClose func()) {
	myApp := app.New()
	win := myApp.NewWindow(title)
	win.Resize(fyne.NewSize(1280, 860))

	// Text and sticky input arrives through a dialog rather than a
	// blocking prompt, so the dispatcher's editing phase stays live
	// while the user types.
	board.OnEditRequest = func(tool tools.Tool) {
		entry := widget.NewMultiLineEntry()
		prompt := "Sticky note"
		if tool == tools.ToolText {
			prompt = "Text"
		}
		dialog.ShowForm(prompt, "Add", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Content", entry)},
			func(ok bool) {
				if ok {
					board.dispatcher.SubmitInput(entry.Text)
				} else {
					board.dispatcher.CancelInput()
				}
			}, win)
	}

	toolbar := NewToolbar(board, win, palette, onExport)
	layerPanel := NewLayerPanel(board, layers, win)

	headerRows := []fyne.CanvasObject{toolbar}
	if shareLink != "" {
		headerRows = append(headerRows, widget.NewLabel("Share: "+shareLink))
	}
	headerRows = append(headerRows, presence.Object())
	header := container.NewVBox(headerRows...)

	content := container.NewBorder(header, nil, nil, layerPanel, board)
	win.SetContent(content)
	win.SetOnClosed(func() {
		if onClose != nil {
			onClose()
		}
	})
	win.ShowAndRun()
}

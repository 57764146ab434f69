package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"CollabBoard/internal/state"
)

// NewLayerPanel builds the layer sidebar: the layer list plus the
// structural controls. Every operation ends with a board redraw since
// layer changes alter what is visible.
func NewLayerPanel(board *BoardWidget, layers *state.Layers, win fyne.Window) fyne.CanvasObject {
	var list *widget.List

	list = widget.NewList(
		func() int { return len(layers.Names()) },
		func() fyne.CanvasObject { return widget.NewLabel("layer") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			name := layers.Names()[i]
			if i == layers.Active() {
				label.SetText("* " + name)
			} else {
				label.SetText("  " + name)
			}
		},
	)
	list.OnSelected = func(i widget.ListItemID) {
		layers.SetActive(i)
		list.Refresh()
		board.Redraw()
	}

	refresh := func() {
		list.Refresh()
		board.Redraw()
	}

	addBtn := widget.NewButton("+", func() {
		layers.Add()
		refresh()
	})
	removeBtn := widget.NewButton("-", func() {
		if err := layers.Remove(layers.Active()); err != nil {
			dialog.ShowError(err, win)
			return
		}
		refresh()
	})
	upBtn := widget.NewButton("Up", func() {
		layers.MoveUp(layers.Active())
		refresh()
	})
	downBtn := widget.NewButton("Down", func() {
		layers.MoveDown(layers.Active())
		refresh()
	})
	renameBtn := widget.NewButton("Rename", func() {
		entry := widget.NewEntry()
		entry.SetText(layers.Names()[layers.Active()])
		dialog.ShowForm("Rename layer", "Rename", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Name", entry)},
			func(ok bool) {
				if ok {
					layers.Rename(layers.Active(), entry.Text)
					refresh()
				}
			}, win)
	})

	controls := container.NewHBox(addBtn, removeBtn, upBtn, downBtn, renameBtn)
	return container.NewBorder(widget.NewLabel("Layers"), controls, nil, nil, list)
}

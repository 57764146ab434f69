package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// PresenceBar shows one chip per collaborator who has announced
// themselves on the board. Chips are keyed by participant id, so a
// re-announce updates the existing chip instead of adding another.
type PresenceBar struct {
	box   *fyne.Container
	chips map[string]*widget.Label
}

func NewPresenceBar() *PresenceBar {
	return &PresenceBar{
		box:   container.NewHBox(),
		chips: make(map[string]*widget.Label),
	}
}

// Object returns the bar for layout.
func (p *PresenceBar) Object() fyne.CanvasObject {
	return p.box
}

// Add places or updates the chip for one participant. Call it on the
// UI goroutine.
func (p *PresenceBar) Add(id, name, colorHex, role string) {
	text := name + " (" + role + ")"
	if chip, ok := p.chips[id]; ok {
		chip.SetText(text)
		return
	}
	label := widget.NewLabel(text)
	p.chips[id] = label
	p.box.Add(container.NewHBox(newColorSwatch(colorHex, nil), label))
	p.box.Refresh()
}

// Count reports how many collaborators have a chip.
func (p *PresenceBar) Count() int {
	return len(p.chips)
}

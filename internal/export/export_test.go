package export

import (
	"image"
	"os"
	"testing"

	"CollabBoard/internal/state"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		title, ext, want string
	}{
		{"My Board", "png", "My_Board.png"},
		{"  spaced   out  ", "pdf", "spaced_out.pdf"},
		{"plain", "png", "plain.png"},
		{"", "png", "untitled.png"},
		{"tabs\tand\nnewlines", "pdf", "tabs_and_newlines.pdf"},
	}
	for _, tt := range tests {
		if got := Filename(tt.title, tt.ext); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestPNGWritesFile(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	path, err := PNG(dir, "Test Board", img)
	if err != nil {
		t.Fatalf("png export: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty PNG written")
	}
}

func TestPDFWritesFile(t *testing.T) {
	dir := t.TempDir()
	elements := []state.Element{
		{Kind: state.KindStroke, Stroke: 3,
			Points: []state.Point{{X: 10, Y: 10}, {X: 200, Y: 200}}},
		{Kind: state.KindShape, Shape: state.ShapeRectangle, Stroke: 2,
			Start: state.Point{X: 300, Y: 100}, End: state.Point{X: 100, Y: 300}},
		{Kind: state.KindShape, Shape: state.ShapeStar, Stroke: 1,
			Start: state.Point{X: 400, Y: 400}, End: state.Point{X: 600, Y: 600}},
		{Kind: state.KindShape, Shape: state.ShapeArrow, Stroke: 2,
			Start: state.Point{X: 50, Y: 500}, End: state.Point{X: 500, Y: 50}},
		{Kind: state.KindSticky, Pos: state.Point{X: 1, Y: 1}, W: 100, H: 100},
	}
	path, err := PDF(dir, "Vector Board", elements, 1200)
	if err != nil {
		t.Fatalf("pdf export: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty PDF written")
	}
}

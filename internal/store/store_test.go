package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"CollabBoard/internal/state"
)

func testElements() []state.Element {
	return []state.Element{
		{ID: "s1", Kind: state.KindStroke, Color: "#000000", Stroke: 3,
			Points: []state.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}},
		{ID: "r1", Kind: state.KindShape, Shape: state.ShapeRectangle,
			Start: state.Point{X: 10, Y: 10}, End: state.Point{X: 5, Y: 5}},
		{ID: "t1", Kind: state.KindText, Pos: state.Point{X: 1, Y: 1},
			Text: "hi", FontSize: 18, Color: "#ef4444"},
		{ID: "n1", Kind: state.KindSticky, Layer: 2,
			Pos: state.Point{X: 7, Y: 7}, W: 160, H: 120, Text: "a\nb"},
		{ID: "i1", Kind: state.KindImage, Pos: state.Point{X: 0, Y: 0},
			W: 10, H: 10, ImageData: []byte{9, 8, 7}},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	in := Document{Name: "My Board", CanvasData: CanvasData{Elements: testElements()}}
	if err := s.Save("doc1", in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := s.Load("doc1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Name != "My Board" {
		t.Errorf("name = %q", out.Name)
	}
	if !reflect.DeepEqual(in.CanvasData.Elements, out.CanvasData.Elements) {
		t.Errorf("elements changed across the round trip:\n got %+v\nwant %+v",
			out.CanvasData.Elements, in.CanvasData.Elements)
	}
	if out.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped")
	}
}

func TestLoadMissingRecordIsEmpty(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	doc, err := s.Load("never-saved")
	if err != nil {
		t.Fatalf("missing record should not error, got %v", err)
	}
	if doc.Name != "" || len(doc.CanvasData.Elements) != 0 {
		t.Errorf("missing record should load empty, got %+v", doc)
	}
}

func TestLoadRecordWithoutElements(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	// A record without canvas_data.elements is a legal empty canvas.
	raw := []byte(`{"name":"bare","updated_at":"2026-01-01T00:00:00Z"}`)
	if err := os.WriteFile(filepath.Join(dir, "bare.json"), raw, 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := s.Load("bare")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Name != "bare" || len(doc.CanvasData.Elements) != 0 {
		t.Errorf("got %+v", doc)
	}
}

func TestLoadMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load("bad"); err == nil {
		t.Error("malformed record should surface a parse error")
	}
}

func TestAutosaverFinalFlush(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	canvas := state.NewCanvas()
	canvas.Append(state.Element{ID: "a", Kind: state.KindSticky, W: 50, H: 50})

	// Interval far beyond the test: only Close's flush can save.
	a := OpenAutosaver(s, canvas, "doc1", func() string { return "Flushed" }, time.Hour)
	a.Close()
	a.Close() // idempotent

	doc, err := s.Load("doc1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Name != "Flushed" || len(doc.CanvasData.Elements) != 1 {
		t.Errorf("final flush missing: %+v", doc)
	}
}

func TestAutosaverSkipsEmptyBoard(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := OpenAutosaver(s, state.NewCanvas(), "doc1", func() string { return "x" }, time.Hour)
	a.Close()

	doc, err := s.Load("doc1")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "" {
		t.Error("an empty board must never overwrite the record")
	}
}

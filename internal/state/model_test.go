package state

import (
	"encoding/json"
	"reflect"
	"testing"
)

func sampleElements() []Element {
	return []Element{
		{
			ID: "s1", Kind: KindStroke, Color: "#000000", Stroke: 3,
			Points: []Point{{1, 2}, {3, 4}, {5, 6}},
		},
		{
			// Negative extents stay negative on the wire; only
			// rendering normalizes.
			ID: "r1", Kind: KindShape, Shape: ShapeRectangle,
			Start: Point{10, 10}, End: Point{5, 5}, Color: "#ef4444", Stroke: 2,
		},
		{
			ID: "t1", Kind: KindText, Pos: Point{40, 40},
			Text: "hello", FontSize: 18, Color: "#22c55e",
		},
		{
			ID: "n1", Kind: KindSticky, Layer: 1, Pos: Point{100, 100},
			W: 160, H: 120, Text: "line one\nline two",
		},
		{
			ID: "i1", Kind: KindImage, Pos: Point{200, 50},
			W: 64, H: 48, ImageData: []byte{0x89, 0x50, 0x4e, 0x47},
		},
	}
}

func TestElementRoundTrip(t *testing.T) {
	for _, e := range sampleElements() {
		t.Run(string(e.Kind), func(t *testing.T) {
			data, err := json.Marshal(e)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var back Element
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(e, back) {
				t.Errorf("round trip changed element:\n got %+v\nwant %+v", back, e)
			}
		})
	}
}

func TestCanvasRoundTrip(t *testing.T) {
	c := NewCanvas()
	for _, e := range sampleElements() {
		c.Append(e)
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal canvas: %v", err)
	}
	back := NewCanvas()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("unmarshal canvas: %v", err)
	}
	if !reflect.DeepEqual(c.Elements(), back.Elements()) {
		t.Error("canvas round trip changed elements")
	}
}

func TestCloneIsDeep(t *testing.T) {
	e := Element{
		ID: "a", Kind: KindStroke,
		Points:    []Point{{1, 1}},
		ImageData: []byte{1, 2, 3},
	}
	c := e.Clone()
	c.Points[0].X = 99
	c.ImageData[0] = 99
	if e.Points[0].X == 99 || e.ImageData[0] == 99 {
		t.Error("Clone shares backing arrays")
	}
}

func TestCanvasAppendOrder(t *testing.T) {
	c := NewCanvas()
	c.Append(Element{ID: "a", Kind: KindSticky})
	c.Append(Element{ID: "b", Kind: KindSticky})
	els := c.Elements()
	if len(els) != 2 || els[0].ID != "a" || els[1].ID != "b" {
		t.Errorf("insertion order not preserved: %+v", els)
	}
}

func TestCanvasUpdateAndFind(t *testing.T) {
	c := NewCanvas()
	c.Append(Element{ID: "a", Kind: KindSticky, Pos: Point{1, 1}, W: 50, H: 50})

	if ok := c.Update("a", func(e *Element) { e.Pos = Point{9, 9} }); !ok {
		t.Fatal("Update reported missing element")
	}
	got, ok := c.Find("a")
	if !ok || got.Pos != (Point{9, 9}) {
		t.Errorf("Find after Update = %+v, %v", got, ok)
	}

	if c.Update("missing", func(*Element) {}) {
		t.Error("Update of unknown id reported success")
	}
}

func TestBoundsOnlyForBoxKinds(t *testing.T) {
	for _, e := range sampleElements() {
		_, _, _, _, ok := e.Bounds()
		want := e.Kind == KindSticky || e.Kind == KindImage
		if ok != want {
			t.Errorf("%s: Bounds ok = %v, want %v", e.Kind, ok, want)
		}
	}
}

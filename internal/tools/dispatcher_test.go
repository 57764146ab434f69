package tools

import (
	"testing"

	"CollabBoard/internal/state"
)

const testBackground = "#ffffff"

func newTestDispatcher() (*Dispatcher, *state.Canvas, *state.History) {
	canvas := state.NewCanvas()
	history := state.NewHistory()
	layers := state.NewLayers(canvas)
	clock := state.NewClock()
	d := NewDispatcher(canvas, history, layers, clock, testBackground)
	return d, canvas, history
}

func TestPenStrokeCommit(t *testing.T) {
	// Empty board, one pen stroke of three points.
	d, canvas, history := newTestDispatcher()
	d.SetTool(ToolPen)
	d.PointerDown(1, 1)
	if d.Phase() != PhaseDrawing {
		t.Fatalf("phase = %v, want drawing", d.Phase())
	}
	d.PointerMove(2, 2)
	d.PointerMove(3, 3)
	d.PointerUp()

	if canvas.Len() != 1 {
		t.Errorf("element count = %d, want 1", canvas.Len())
	}
	if history.Len() != 1 || history.Step() != 0 {
		t.Errorf("history len=%d step=%d, want 1 and 0", history.Len(), history.Step())
	}
	el := canvas.Elements()[0]
	if el.Kind != state.KindStroke || len(el.Points) != 3 {
		t.Errorf("committed %s with %d points, want stroke with 3", el.Kind, len(el.Points))
	}
	if d.Phase() != PhaseIdle {
		t.Errorf("phase after commit = %v, want idle", d.Phase())
	}
}

func TestEraserIsBackgroundStroke(t *testing.T) {
	d, canvas, _ := newTestDispatcher()
	d.SetColor("#123456")
	d.SetTool(ToolEraser)
	d.PointerDown(5, 5)
	d.PointerUp()

	el := canvas.Elements()[0]
	if el.Kind != state.KindStroke || el.Color != testBackground {
		t.Errorf("eraser produced %s in %s, want background-colored stroke", el.Kind, el.Color)
	}
}

func TestShapeDragUpdatesEnd(t *testing.T) {
	d, canvas, _ := newTestDispatcher()
	d.SetTool(ToolRect)
	d.PointerDown(10, 10)
	if d.Phase() != PhaseShaping {
		t.Fatalf("phase = %v, want shaping", d.Phase())
	}
	el, ok := d.InProgress()
	if !ok || el.Start != el.End {
		t.Fatalf("shape should start with start == end, got %+v", el)
	}
	d.PointerMove(5, 5) // backwards drag, still legal
	d.PointerUp()

	got := canvas.Elements()[0]
	if got.Start != (state.Point{X: 10, Y: 10}) || got.End != (state.Point{X: 5, Y: 5}) {
		t.Errorf("committed shape %+v", got)
	}
}

func TestZeroExtentShapeStillCommits(t *testing.T) {
	d, canvas, _ := newTestDispatcher()
	d.SetTool(ToolCircle)
	d.PointerDown(10, 10)
	d.PointerUp()
	if canvas.Len() != 1 {
		t.Errorf("zero-extent shape rejected, count = %d", canvas.Len())
	}
}

func TestTextInputRules(t *testing.T) {
	d, canvas, _ := newTestDispatcher()

	// Empty text: rejected, nothing committed.
	d.SetTool(ToolText)
	d.PointerDown(30, 30)
	if d.Phase() != PhaseEditing {
		t.Fatalf("phase = %v, want editing", d.Phase())
	}
	d.SubmitInput("")
	if canvas.Len() != 0 {
		t.Error("empty text should create no element")
	}
	if d.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", d.Phase())
	}

	// Non-empty text commits at the anchor.
	d.PointerDown(30, 30)
	d.SubmitInput("note")
	if canvas.Len() != 1 {
		t.Fatal("text element missing")
	}
	el := canvas.Elements()[0]
	if el.Kind != state.KindText || el.Pos != (state.Point{X: 30, Y: 30}) {
		t.Errorf("text element %+v", el)
	}

	// Empty sticky: a blank note is legal.
	d.SetTool(ToolSticky)
	d.PointerDown(60, 60)
	d.SubmitInput("")
	if canvas.Len() != 2 {
		t.Error("empty sticky should still commit")
	}
}

func TestCancelInput(t *testing.T) {
	d, canvas, history := newTestDispatcher()
	d.SetTool(ToolSticky)
	d.PointerDown(10, 10)
	d.CancelInput()
	if canvas.Len() != 0 || history.Len() != 0 || d.Phase() != PhaseIdle {
		t.Error("cancelled input left state behind")
	}
}

func commitSticky(d *Dispatcher, x, y float64) {
	d.SetTool(ToolSticky)
	d.PointerDown(x, y)
	d.SubmitInput("note")
}

func TestSelectAndDrag(t *testing.T) {
	d, canvas, _ := newTestDispatcher()
	commitSticky(d, 100, 100)
	id := canvas.Elements()[0].ID

	d.SetTool(ToolSelect)
	d.PointerDown(110, 110) // inside the body, offset (10,10)
	if d.Selected() != id || d.Phase() != PhaseSelecting {
		t.Fatalf("selected=%q phase=%v", d.Selected(), d.Phase())
	}
	d.PointerMove(210, 160)
	d.PointerUp()

	el, _ := canvas.Find(id)
	if el.Pos != (state.Point{X: 200, Y: 150}) {
		t.Errorf("dragged to %+v, want (200,150)", el.Pos)
	}
	if d.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", d.Phase())
	}
}

func TestSelectMissClearsSelection(t *testing.T) {
	d, canvas, _ := newTestDispatcher()
	commitSticky(d, 100, 100)
	id := canvas.Elements()[0].ID

	d.SetTool(ToolSelect)
	d.PointerDown(110, 110)
	d.PointerUp()
	if d.Selected() != id {
		t.Fatal("selection lost after gesture")
	}
	d.PointerDown(500, 500) // miss
	if d.Selected() != "" {
		t.Error("click on empty space should clear the selection")
	}
}

func TestResizeClamp(t *testing.T) {
	d, canvas, _ := newTestDispatcher()
	commitSticky(d, 100, 100) // sticky is 160x120, corner at (260,220)
	id := canvas.Elements()[0].ID

	d.SetTool(ToolSelect)
	d.PointerDown(260, 220) // grab the handle
	if d.Phase() != PhaseSelecting {
		t.Fatal("handle grab did not enter selecting")
	}

	// Drag past the origin: both extents clamp to exactly 50.
	d.PointerMove(90, 60)
	el, _ := canvas.Find(id)
	if el.W != 50 || el.H != 50 {
		t.Errorf("clamped size = %vx%v, want 50x50", el.W, el.H)
	}

	// A legal drag resizes freely.
	d.PointerMove(300, 180)
	el, _ = canvas.Find(id)
	if el.W != 200 || el.H != 80 {
		t.Errorf("resized to %vx%v, want 200x80", el.W, el.H)
	}
	d.PointerUp()
}

func TestUndoRedoThroughDispatcher(t *testing.T) {
	d, canvas, _ := newTestDispatcher()
	d.SetTool(ToolPen)
	for i := 0; i < 3; i++ {
		d.PointerDown(float64(i), float64(i))
		d.PointerUp()
	}
	d.Undo()
	d.Undo()
	if canvas.Len() != 1 {
		t.Errorf("after two undos: %d elements, want 1", canvas.Len())
	}
	d.Redo()
	if canvas.Len() != 2 {
		t.Errorf("after redo: %d elements, want 2", canvas.Len())
	}

	// A fresh commit makes redo a no-op.
	d.PointerDown(9, 9)
	d.PointerUp()
	before := canvas.Len()
	d.Redo()
	if canvas.Len() != before {
		t.Error("redo revived a discarded branch")
	}
}

func TestCommitHookFires(t *testing.T) {
	d, _, _ := newTestDispatcher()
	var committed []state.Element
	d.OnCommit = func(e state.Element) { committed = append(committed, e) }

	d.SetTool(ToolPen)
	d.PointerDown(1, 1)
	d.PointerUp()

	d.SetTool(ToolSelect)
	d.PointerDown(500, 500)
	d.PointerUp()

	if len(committed) != 1 {
		t.Errorf("commit hook fired %d times, want once (selection gestures don't broadcast)", len(committed))
	}
	if committed[0].ID == "" {
		t.Error("committed element missing id")
	}
}

func TestPlaceImage(t *testing.T) {
	d, canvas, history := newTestDispatcher()
	d.PlaceImage(40, 40, []byte{1, 2, 3}, 64, 48)
	if canvas.Len() != 1 || history.Len() != 1 {
		t.Fatal("image placement should commit like any element")
	}
	el := canvas.Elements()[0]
	if el.Kind != state.KindImage || el.W != 64 || el.H != 48 {
		t.Errorf("image element %+v", el)
	}
}

func TestClearBoardIsUndoable(t *testing.T) {
	d, canvas, history := newTestDispatcher()
	d.SetTool(ToolPen)
	d.PointerDown(1, 1)
	d.PointerUp()
	d.PointerDown(2, 2)
	d.PointerUp()

	d.ClearBoard()
	if canvas.Len() != 0 {
		t.Fatalf("after clear: %d elements, want 0", canvas.Len())
	}
	if history.Len() != 3 {
		t.Errorf("clear should record one snapshot, history len = %d", history.Len())
	}
	d.Undo()
	if canvas.Len() != 2 {
		t.Errorf("undo after clear restored %d elements, want 2", canvas.Len())
	}
}

func TestElementsLandOnActiveLayer(t *testing.T) {
	d, canvas, _ := newTestDispatcher()
	d.SetTool(ToolPen)
	d.PointerDown(1, 1)
	d.PointerUp()
	if canvas.Elements()[0].Layer != 0 {
		t.Errorf("element layer = %d, want active layer 0", canvas.Elements()[0].Layer)
	}
}

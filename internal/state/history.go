package state

// History is the undo/redo stack: full snapshots of the element slice
// plus a cursor indexing the snapshot currently applied. Cursor -1 is
// the empty board before the first commit. A new push discards every
// snapshot past the cursor, so an undone branch is unreachable
// afterwards. O(n) memory per step is a deliberate trade for
// single-document sessions.
type History struct {
	snapshots [][]Element
	step      int
}

func NewHistory() *History {
	return &History{step: -1}
}

// Push records a new snapshot after a committed mutation.
func (h *History) Push(elements []Element) {
	h.snapshots = h.snapshots[:h.step+1]
	h.snapshots = append(h.snapshots, cloneElements(elements))
	h.step++
}

// Undo steps the cursor back and returns the snapshot to install
// (nil at the empty board). The second return is false when there is
// nothing left to undo.
func (h *History) Undo() ([]Element, bool) {
	if h.step < 0 {
		return nil, false
	}
	h.step--
	if h.step < 0 {
		return nil, true
	}
	return cloneElements(h.snapshots[h.step]), true
}

// Redo steps the cursor forward and returns the snapshot to install.
// The second return is false when already at the newest snapshot.
func (h *History) Redo() ([]Element, bool) {
	if h.step >= len(h.snapshots)-1 {
		return nil, false
	}
	h.step++
	return cloneElements(h.snapshots[h.step]), true
}

// Len reports the number of recorded snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Step reports the cursor: -1 before the first commit, otherwise the
// index of the applied snapshot.
func (h *History) Step() int {
	return h.step
}

func cloneElements(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, 0, len(elements))
	for _, e := range elements {
		out = append(out, e.Clone())
	}
	return out
}

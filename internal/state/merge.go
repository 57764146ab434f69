package state

import "log"

// ApplyRemote merges an element received from the relay into the
// canvas. Appends are keyed by element id, so a replayed message is a
// no-op; two participants appending concurrently simply interleave.
// Concurrent edits to the same element are not reconciled — last
// received wins at the document level, an accepted limitation.
func (c *Canvas) ApplyRemote(e Element) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.ID != "" && c.seen[e.ID] {
		log.Printf("[merge] element %s already applied, ignoring", e.ID)
		return false
	}

	c.elements = append(c.elements, e.Clone())
	if e.ID != "" {
		c.seen[e.ID] = true
	}
	return true
}

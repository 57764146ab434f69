package store

import (
	"log"
	"sync"
	"time"

	"CollabBoard/internal/state"
)

// DefaultAutosaveInterval is used when the config does not set one.
const DefaultAutosaveInterval = 10 * time.Second

// Autosaver periodically writes the canvas into the document record
// while the board is open. Failures are logged and retried on the next
// tick; nothing surfaces to the user beyond the log. Close stops the
// loop and performs one final best-effort save so navigation away does
// not lose the last few seconds.
type Autosaver struct {
	store    *FileStore
	canvas   *state.Canvas
	docID    string
	title    func() string
	interval time.Duration

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// OpenAutosaver starts the save loop. The title callback is read at
// each save so renames land in the record without extra plumbing.
func OpenAutosaver(store *FileStore, canvas *state.Canvas, docID string, title func() string, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	a := &Autosaver{
		store:    store,
		canvas:   canvas,
		docID:    docID,
		title:    title,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go a.loop()
	return a
}

func (a *Autosaver) loop() {
	defer close(a.done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.save()
		case <-a.stop:
			return
		}
	}
}

// save skips empty boards so opening a document and walking away never
// overwrites its record with nothing.
func (a *Autosaver) save() {
	if a.docID == "" || a.canvas.Len() == 0 {
		return
	}
	doc := Document{
		Name:       a.title(),
		CanvasData: CanvasData{Elements: a.canvas.Elements()},
	}
	if err := a.store.Save(a.docID, doc); err != nil {
		log.Printf("[store] autosave %s failed: %v", a.docID, err)
	}
}

// Close stops the loop and flushes once. Safe to call more than once.
func (a *Autosaver) Close() {
	a.stopOnce.Do(func() {
		close(a.stop)
		<-a.done
		a.save()
	})
}

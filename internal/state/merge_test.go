package state

import (
	"strings"
	"testing"
)

func TestApplyRemoteAppends(t *testing.T) {
	c := NewCanvas()
	e := Element{ID: "remote-1", Kind: KindStroke, Points: []Point{{1, 1}, {2, 2}}}
	if !c.ApplyRemote(e) {
		t.Fatal("first apply should report new")
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
}

func TestApplyRemoteIsIdempotent(t *testing.T) {
	c := NewCanvas()
	e := Element{ID: "remote-1", Kind: KindStroke, Points: []Point{{1, 1}}}
	c.ApplyRemote(e)
	if c.ApplyRemote(e) {
		t.Error("replayed element should be ignored")
	}
	if c.Len() != 1 {
		t.Errorf("replay duplicated the element: len = %d", c.Len())
	}
}

func TestApplyRemoteSeesLocalElements(t *testing.T) {
	c := NewCanvas()
	c.Append(Element{ID: "local-1", Kind: KindSticky})
	// The relay may echo our own element back; it must not duplicate.
	if c.ApplyRemote(Element{ID: "local-1", Kind: KindSticky}) {
		t.Error("echo of a local element should be ignored")
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestConcurrentAppendsInterleave(t *testing.T) {
	c := NewCanvas()
	c.ApplyRemote(Element{ID: "site-a-1", Kind: KindStroke})
	c.Append(Element{ID: "site-b-1", Kind: KindStroke})
	c.ApplyRemote(Element{ID: "site-a-2", Kind: KindStroke})
	if c.Len() != 3 {
		t.Errorf("interleaved appends: len = %d, want 3", c.Len())
	}
}

func TestClockStampsAreUniqueAndOrdered(t *testing.T) {
	clock := NewClock()
	a := clock.Stamp()
	b := clock.Stamp()
	if a == b {
		t.Error("consecutive stamps collide")
	}
	clock.Observe(100)
	if next := clock.Tick(); next != 101 {
		t.Errorf("tick after observing 100 = %d, want 101", next)
	}
}

func TestObserveStampKeepsLocalTimeAhead(t *testing.T) {
	remote := NewClock()
	for i := 0; i < 41; i++ {
		remote.Tick()
	}
	stamp := remote.Stamp() // counter 42

	local := NewClock()
	local.ObserveStamp(stamp)
	next := local.Stamp()
	if !strings.HasSuffix(next, "-43") {
		t.Errorf("stamp after observing %q = %q, want counter 43", stamp, next)
	}

	// Ids without a counter suffix leave the clock alone.
	local.ObserveStamp("not a stamp")
	local.ObserveStamp("el-abc-")
	if got := local.Tick(); got != 44 {
		t.Errorf("malformed ids moved the clock: tick = %d, want 44", got)
	}
}

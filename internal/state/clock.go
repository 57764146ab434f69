package state

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Clock is a Lamport clock paired with a per-session site id. Stamped
// element ids are unique across participants without coordination, and
// observing a remote stamp keeps local time ahead of it.
type Clock struct {
	site    string
	counter uint64
	mu      sync.Mutex
}

func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

// Site returns this session's id.
func (c *Clock) Site() string {
	return c.site
}

// Tick advances the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	return c.counter
}

// Observe folds a remote timestamp into the clock.
func (c *Clock) Observe(t uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t > c.counter {
		c.counter = t
	}
}

// Stamp returns a globally unique, ordered element id.
func (c *Clock) Stamp() string {
	return fmt.Sprintf("el-%s-%d", c.site, c.Tick())
}

// ObserveStamp folds the counter of a remote element id into the clock,
// so ids stamped after a remote apply sort later than the remote one.
// Ids that do not carry a counter suffix are ignored.
func (c *Clock) ObserveStamp(id string) {
	i := strings.LastIndex(id, "-")
	if i < 0 {
		return
	}
	t, err := strconv.ParseUint(id[i+1:], 10, 64)
	if err != nil {
		return
	}
	c.Observe(t)
}

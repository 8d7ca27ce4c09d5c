//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
	"time"
)

// scanGrace is how recently the matrix must have been read for the firmware to
// count as listening.
const scanGrace = 10 * time.Millisecond

// tapQueue turns typed characters into matrix taps, one at a time, and only while
// the firmware is scanning so no key is lost to the boot banner.
type tapQueue struct {
	m   *Matrix
	sim SimConfig

	mu    sync.Mutex
	queue []rune
}

func newTapQueue(m *Matrix, sim SimConfig) *tapQueue {
	return &tapQueue{m: m, sim: sim}
}

// push queues r. It fails when no switch produces r.
func (q *tapQueue) push(r rune) error {
	if q.sim.Locate == nil {
		return fmt.Errorf("sim: no keypad layout to type %q", string(r))
	}
	if _, _, ok := q.sim.Locate(r); !ok {
		return fmt.Errorf("sim: no key for %q", string(r))
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = append(q.queue, r)
	return nil
}

// pump taps the next queued key once the previous one has settled.
func (q *tapQueue) pump() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) == 0 || q.m.Active() || !q.m.ScannedWithin(scanGrace) {
		return nil
	}
	r := q.queue[0]
	q.queue = q.queue[1:]
	row, col, _ := q.sim.Locate(r)
	return q.m.Tap(row, col, q.sim.Bounce, q.sim.Hold)
}

// idle reports whether every queued key has been tapped and released.
func (q *tapQueue) idle() bool {
	q.mu.Lock()
	n := len(q.queue)
	q.mu.Unlock()
	return n == 0 && !q.m.Active()
}

// heldKeys mirrors a set of held keyboard characters onto the matrix: a character
// that appears closes its switch (with bounce) and one that disappears opens it.
type heldKeys struct {
	held map[rune]bool
}

func (k *heldKeys) update(m *Matrix, sim SimConfig, now map[rune]bool) {
	if sim.Locate == nil {
		return
	}
	for r := range k.held {
		if now[r] {
			continue
		}
		if row, col, ok := sim.Locate(r); ok {
			m.Release(row, col)
		}
	}
	for r := range now {
		if k.held[r] {
			continue
		}
		if row, col, ok := sim.Locate(r); ok {
			_ = m.PressBounce(row, col, sim.Bounce)
		}
	}
	k.held = now
}

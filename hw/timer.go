package hw

import (
	"container/heap"
	"time"

	"neon250/emu/log"
)

// Clock is the virtual clock the device schedules completion events on.
// The owning emulation advances it from its single thread; events fire
// synchronously, in deadline order, during Advance. There is no real
// concurrency behind it, which keeps completion timing deterministic.
type Clock struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Advance moves virtual time forward by d, firing every timer that comes
// due, in deadline order. Ties fire in arming order.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	for len(c.queue) > 0 && c.queue[0].when <= target {
		t := c.queue[0]
		heap.Pop(&c.queue)
		c.now = t.when
		t.armed = false
		t.cb()
	}
	c.now = target
}

// Pending reports whether any timer is armed.
func (c *Clock) Pending() bool {
	return len(c.queue) > 0
}

// NewTimer registers a one-shot timer on the clock. The callback runs
// from Advance, never from another goroutine.
func (c *Clock) NewTimer(name string, cb func()) *Timer {
	return &Timer{clock: c, name: name, cb: cb, idx: -1}
}

// Timer is a one-shot virtual-time event. Arming an already armed timer
// reschedules it: last write wins, matching how a second start request
// overwrites the hardware's single delay counter.
type Timer struct {
	clock *Clock
	name  string
	cb    func()
	when  time.Duration
	seq   uint64
	armed bool
	idx   int
}

func (t *Timer) Arm(d time.Duration) {
	c := t.clock
	if t.armed {
		log.ModTimer.WarnZ("re-arming pending timer").
			String("timer", t.name).
			Duration("delay", d).
			End()
		heap.Remove(&c.queue, t.idx)
	}
	t.when = c.now + d
	t.seq = c.seq
	c.seq++
	t.armed = true
	heap.Push(&c.queue, t)

	log.ModTimer.DebugZ("timer armed").
		String("timer", t.name).
		Duration("delay", d).
		End()
}

// Armed reports whether the timer is pending.
func (t *Timer) Armed() bool {
	return t.armed
}

// timerQueue is a min-heap of timers ordered by (deadline, arming order).
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].when != q[j].when {
		return q[i].when < q[j].when
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].idx = i
	q[j].idx = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.idx = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.idx = -1
	*q = old[:n-1]
	return t
}

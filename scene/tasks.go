package scene

import (
	"time"

	"golang.org/x/time/rate"

	"classicgo/world"
)

// Condition reports whether a task may run at totalMS.
type Condition func(totalMS float64) bool

// After returns a condition that holds from atMS onward.
func After(atMS float64) Condition {
	return func(totalMS float64) bool { return totalMS >= atMS }
}

type task struct {
	cond     Condition
	then     func()
	interval float64
	next     float64
}

// Tasks is a queue of continuations polled once per update. A repeating
// task re-arms itself after each run.
type Tasks struct {
	q       []task
	running bool
	added   []task
}

// Add schedules then to run once cond holds.
func (t *Tasks) Add(cond Condition, then func()) {
	t.push(task{cond: cond, then: then})
}

// Every runs fn every intervalMS, starting at startMS.
func (t *Tasks) Every(startMS, intervalMS float64, fn func()) {
	t.push(task{then: fn, interval: intervalMS, next: startMS})
}

func (t *Tasks) push(k task) {
	if t.running {
		t.added = append(t.added, k)
		return
	}
	t.q = append(t.q, k)
}

// Len returns the number of pending tasks.
func (t *Tasks) Len() int { return len(t.q) + len(t.added) }

// Clear drops every task.
func (t *Tasks) Clear() {
	t.q = t.q[:0]
	t.added = t.added[:0]
}

// Run fires every ready task. Tasks scheduled by a continuation wait for
// the next call.
func (t *Tasks) Run(totalMS float64) {
	t.running = true
	keep := t.q[:0]
	for _, k := range t.q {
		switch {
		case k.interval > 0:
			if totalMS >= k.next {
				k.next = totalMS + k.interval
				k.then()
			}
			keep = append(keep, k)
		case k.cond == nil || k.cond(totalMS):
			k.then()
		default:
			keep = append(keep, k)
		}
	}
	clear(t.q[len(keep):])
	t.q = append(keep, t.added...)
	t.added = t.added[:0]
	t.running = false
}

// deferredAction is a pending action on one object.
type deferredAction struct {
	owner     world.Object
	remaining float64
	action    func()
}

// deferQueue holds at most one pending action per object.
type deferQueue struct {
	q []deferredAction
}

func (d *deferQueue) add(o world.Object, delayMS float64, action func()) {
	for i := range d.q {
		if d.q[i].owner == o {
			d.q[i] = deferredAction{owner: o, remaining: delayMS, action: action}
			return
		}
	}
	d.q = append(d.q, deferredAction{owner: o, remaining: delayMS, action: action})
}

func (d *deferQueue) cancel(o world.Object) bool {
	for i := range d.q {
		if d.q[i].owner == o {
			d.q = append(d.q[:i], d.q[i+1:]...)
			return true
		}
	}
	return false
}

// update counts every entry down by frameMS and fires those that are due.
// Entries whose owner was disposed are dropped without running.
func (d *deferQueue) update(frameMS float64) {
	var due []func()
	keep := d.q[:0]
	for _, e := range d.q {
		if !world.Alive(e.owner) {
			continue
		}
		e.remaining -= frameMS
		if e.remaining <= 0 {
			due = append(due, e.action)
			continue
		}
		keep = append(keep, e)
	}
	clear(d.q[len(keep):])
	d.q = keep
	for _, fn := range due {
		fn()
	}
}

func (d *deferQueue) len() int { return len(d.q) }

// UseItemIntervalMS spaces queued double clicks so the server does not
// reject them.
const UseItemIntervalMS = 1000

var clockEpoch = time.Unix(0, 0)

// virtualTime maps the frame clock onto a time.Time for rate limiters.
func virtualTime(totalMS float64) time.Time {
	return clockEpoch.Add(time.Duration(totalMS * float64(time.Millisecond)))
}

// useItemQueue replays double clicks one at a time.
type useItemQueue struct {
	serials []world.Serial
	lim     *rate.Limiter
}

func newUseItemQueue() *useItemQueue {
	return &useItemQueue{lim: rate.NewLimiter(rate.Every(UseItemIntervalMS*time.Millisecond), 1)}
}

// add queues s unless it is already waiting.
func (q *useItemQueue) add(s world.Serial) bool {
	for _, v := range q.serials {
		if v == s {
			return false
		}
	}
	q.serials = append(q.serials, s)
	return true
}

func (q *useItemQueue) update(totalMS float64, fire func(world.Serial)) {
	if len(q.serials) == 0 || !q.lim.AllowN(virtualTime(totalMS), 1) {
		return
	}
	s := q.serials[0]
	q.serials = q.serials[1:]
	fire(s)
}

func (q *useItemQueue) clear() { q.serials = nil }

package executor

import (
	"time"
)

// Handle identifies a registered call. The zero Handle is never issued.
type Handle uint64

// call is one deferred callback and its timer.
type call struct {
	handle    Handle
	delay     time.Duration
	action    func()
	guard     func() bool
	armedAt   time.Duration
	cancelled bool
}

func (c *call) due(now time.Duration) bool {
	if now-c.armedAt < c.delay {
		return false
	}
	return c.guard == nil || c.guard()
}

// Executor runs callbacks after a delay without blocking the frame loop.
// One-shot calls fire once and are dropped; repeating calls fire every time
// their delay elapses until cancelled or Reset.
//
// Update must be called once per frame. Callbacks run on the caller's
// goroutine; a panicking callback is not recovered.
type Executor struct {
	clock Clock

	once    []*call
	repeats []*call

	nextHandle Handle
	// epoch changes on Reset so an in-flight Update can tell its lists were
	// dropped by a callback.
	epoch uint64
}

func New(clock Clock) *Executor {
	if clock == nil {
		clock = NewMonotonicClock()
	}
	return &Executor{clock: clock}
}

// Init re-arms every registered call to now.
func (e *Executor) Init() {
	if e == nil {
		return
	}
	now := e.clock.Now()
	for _, c := range e.once {
		c.armedAt = now
	}
	for _, c := range e.repeats {
		c.armedAt = now
	}
}

// Reset drops every registered call. Call it between matches.
func (e *Executor) Reset() {
	if e == nil {
		return
	}
	e.once = nil
	e.repeats = nil
	e.epoch++
}

// Wait registers action to run once, delay after now, as soon as guard (if
// any) also holds.
func (e *Executor) Wait(delay time.Duration, action func(), guard func() bool) Handle {
	if e == nil || action == nil {
		return 0
	}
	c := e.newCall(delay, action, guard)
	e.once = append(e.once, c)
	return c.handle
}

// Repeat registers action to run every delay while guard (if any) holds.
// The timer restarts each time the action fires.
func (e *Executor) Repeat(delay time.Duration, action func(), guard func() bool) Handle {
	if e == nil || action == nil {
		return 0
	}
	c := e.newCall(delay, action, guard)
	e.repeats = append(e.repeats, c)
	return c.handle
}

func (e *Executor) newCall(delay time.Duration, action func(), guard func() bool) *call {
	e.nextHandle++
	return &call{
		handle:  e.nextHandle,
		delay:   delay,
		action:  action,
		guard:   guard,
		armedAt: e.clock.Now(),
	}
}

// Cancel removes a pending one-shot or repeating call. It reports whether
// the handle was still registered.
func (e *Executor) Cancel(h Handle) bool {
	if e == nil || h == 0 {
		return false
	}
	for _, list := range [][]*call{e.once, e.repeats} {
		for _, c := range list {
			if c.handle == h && !c.cancelled {
				c.cancelled = true
				return true
			}
		}
	}
	return false
}

// Pending returns the number of live one-shot and repeating calls.
func (e *Executor) Pending() (once, repeats int) {
	if e == nil {
		return 0, 0
	}
	for _, c := range e.once {
		if !c.cancelled {
			once++
		}
	}
	for _, c := range e.repeats {
		if !c.cancelled {
			repeats++
		}
	}
	return once, repeats
}

// Update fires every due call in registration order. Calls registered by a
// callback are first considered on the next Update.
func (e *Executor) Update() {
	if e == nil {
		return
	}
	now := e.clock.Now()
	epoch := e.epoch

	n := len(e.once)
	for i := 0; i < n; i++ {
		c := e.once[i]
		if c.cancelled || !c.due(now) {
			continue
		}
		c.cancelled = true
		c.action()
		if e.epoch != epoch {
			return
		}
	}
	e.once = compact(e.once)

	n = len(e.repeats)
	for i := 0; i < n; i++ {
		c := e.repeats[i]
		if c.cancelled || !c.due(now) {
			continue
		}
		c.action()
		if e.epoch != epoch {
			return
		}
		c.armedAt = now
	}
	e.repeats = compact(e.repeats)
}

// compact drops cancelled calls in place, keeping order.
func compact(calls []*call) []*call {
	live := calls[:0]
	for _, c := range calls {
		if !c.cancelled {
			live = append(live, c)
		}
	}
	clear(calls[len(live):])
	return live
}

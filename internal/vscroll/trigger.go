package vscroll

// Trigger turns sentinel visibility into load invocations. It is a two-state
// machine, idle and invoking: a visible signal while idle and enabled starts
// the callback, and the machine stays in invoking until the callback calls
// its completion func, ignoring further visibility signals in between.
// Hosts compute visibility however they like; for a scroll panel the usual
// oracle is Engine.DistanceToEnd against a proximity margin.
type Trigger struct {
	invoke   func(done func())
	invoking bool
	disabled bool
}

// NewTrigger creates a trigger around the given callback. The callback may
// complete asynchronously: it receives a done func to call exactly once when
// the work finishes, successfully or not. done is idempotent.
func NewTrigger(invoke func(done func())) *Trigger {
	return &Trigger{invoke: invoke}
}

// OnVisibilityChange feeds one visibility transition into the machine and
// reports whether an invocation started. Signals are ignored while the
// trigger is disabled or an invocation is outstanding.
func (t *Trigger) OnVisibilityChange(visible bool) bool {
	if !visible || t.disabled || t.invoking || t.invoke == nil {
		return false
	}
	t.invoking = true
	var completed bool
	t.invoke(func() {
		if completed {
			return
		}
		completed = true
		t.invoking = false
	})
	return true
}

// Disable suppresses new invocations. An in-flight invocation is not
// cancelled; it still completes and returns the machine to idle.
func (t *Trigger) Disable() { t.disabled = true }

// Enable allows invocations again.
func (t *Trigger) Enable() { t.disabled = false }

// Enabled reports whether new invocations may start.
func (t *Trigger) Enabled() bool { return !t.disabled }

// Invoking reports whether an invocation is outstanding.
func (t *Trigger) Invoking() bool { return t.invoking }

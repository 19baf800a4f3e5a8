package native

// releaser binds native allocations to their type-specific free routines.
// Every allocation site registers its release immediately after the
// allocation succeeds; run is deferred so releases fire on every exit path
// (normal return, early error return, panic) exactly once, in reverse
// registration order.
//
// Ownership transfer uses keep: when a native call takes over an
// allocation (e.g. the handle adopts the config params on success), keep
// disowns the releases registered so far so they do not double-free.
type releaser struct {
	frees []func()
	done  bool
}

// add registers a release routine for an allocation that just succeeded.
func (r *releaser) add(free func()) {
	r.frees = append(r.frees, free)
}

// run fires all registered releases exactly once, most recent first.
// Safe to call multiple times; only the first call releases.
func (r *releaser) run() {
	if r.done {
		return
	}
	r.done = true
	for i := len(r.frees) - 1; i >= 0; i-- {
		r.frees[i]()
	}
	r.frees = nil
}

// keep disowns every release registered so far. Used when ownership of the
// underlying allocations has been transferred.
func (r *releaser) keep() {
	r.done = true
	r.frees = nil
}

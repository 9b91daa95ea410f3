// Package session tracks per-tool request state: the in-flight indicator
// and the latest normalized result. Requests carry monotonically increasing
// sequence numbers so that a slow response finishing after a newer request
// was issued is recognized as stale and never overwrites fresher state.
package session

import "sync"

// State is the request tracker for one tool. The zero value is ready to
// use.
type State struct {
	mu       sync.Mutex
	nextSeq  uint64
	applied  uint64 // sequence of the value currently held
	inFlight int
	value    any
	hasValue bool
}

// Begin registers a new request and returns its sequence number. The tool
// is considered busy until the matching Apply or Fail call.
func (s *State) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.inFlight++
	return s.nextSeq
}

// Busy reports whether any request is in flight.
func (s *State) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// Apply records the result of a completed request. It reports whether the
// result was applied: a completion is discarded as stale when a newer
// request has been issued since, or when a newer result has already been
// applied. The in-flight count drops either way.
func (s *State) Apply(seq uint64, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked()
	if seq != s.nextSeq || seq <= s.applied {
		return false
	}
	s.applied = seq
	s.value = v
	s.hasValue = true
	return true
}

// Fail records that a request completed without a result. The in-flight
// count drops unconditionally so the busy indicator never sticks.
func (s *State) Fail(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked()
}

func (s *State) finishLocked() {
	if s.inFlight > 0 {
		s.inFlight--
	}
}

// Latest returns the most recently applied result, if any.
func (s *State) Latest() (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.hasValue
}

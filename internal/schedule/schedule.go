// Package schedule runs delayed and periodic events against an explicit
// elapsed-time counter instead of wall-clock timers, so a level advances
// deterministically with whatever frame delta it is given.
package schedule

import "time"

// Handle identifies a scheduled entry for cancellation.
type Handle uint64

type entry[T any] struct {
	handle  Handle
	due     time.Duration // Absolute time on the schedule clock
	every   time.Duration // Repeat interval, 0 for one-shot entries
	payload T
}

// Schedule holds pending events carrying a payload of type T.
// Not safe for concurrent use; a level owns its schedule.
type Schedule[T any] struct {
	now     time.Duration
	entries []*entry[T]
	next    Handle
}

// New creates an empty schedule with its clock at zero.
func New[T any]() *Schedule[T] {
	return &Schedule[T]{next: 1}
}

// Now returns the elapsed time on the schedule clock.
func (s *Schedule[T]) Now() time.Duration {
	return s.now
}

// Len returns the number of pending entries.
func (s *Schedule[T]) Len() int {
	return len(s.entries)
}

// After schedules payload to fire once, d from now.
func (s *Schedule[T]) After(d time.Duration, payload T) Handle {
	return s.add(d, 0, payload)
}

// Every schedules payload to fire every d, first time d from now.
// A non-positive interval is treated as one-shot to avoid an endless loop.
func (s *Schedule[T]) Every(d time.Duration, payload T) Handle {
	if d <= 0 {
		return s.add(d, 0, payload)
	}
	return s.add(d, d, payload)
}

func (s *Schedule[T]) add(d, every time.Duration, payload T) Handle {
	if d < 0 {
		d = 0
	}
	h := s.next
	s.next++
	s.entries = append(s.entries, &entry[T]{
		handle:  h,
		due:     s.now + d,
		every:   every,
		payload: payload,
	})
	return h
}

// Cancel removes an entry. Returns false if it already fired or was cancelled.
func (s *Schedule[T]) Cancel(h Handle) bool {
	for i, e := range s.entries {
		if e.handle == h {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every pending entry. The clock keeps its value.
func (s *Schedule[T]) Clear() {
	s.entries = s.entries[:0]
}

// Advance moves the clock forward by dt and returns the payloads of all
// entries that became due, ordered by due time and then by handle.
// Periodic entries fire once for every period that elapsed.
func (s *Schedule[T]) Advance(dt time.Duration) []T {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	var fired []T
	for {
		idx := s.earliestDue(target)
		if idx < 0 {
			break
		}
		e := s.entries[idx]
		fired = append(fired, e.payload)

		if e.every > 0 {
			e.due += e.every
		} else {
			s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
		}
	}

	s.now = target
	return fired
}

// earliestDue returns the index of the entry with the smallest due time
// not after target, or -1 if none is due.
func (s *Schedule[T]) earliestDue(target time.Duration) int {
	best := -1
	for i, e := range s.entries {
		if e.due > target {
			continue
		}
		if best < 0 || e.due < s.entries[best].due ||
			(e.due == s.entries[best].due && e.handle < s.entries[best].handle) {
			best = i
		}
	}
	return best
}

package game

import "fmt"

// Handle is a generation-checked reference into an Arena. A handle whose
// slot has been freed (and possibly reused) no longer resolves. The zero
// Handle never resolves.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	if h.IsZero() {
		return "#nil"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

type slot[T any] struct {
	gen   uint32
	alive bool
	value T
}

// Arena owns values of T in reusable slots addressed by Handle.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}
	s := &a.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.alive = true
	s.value = v
	a.live++
	return Handle{index: idx, gen: s.gen}
}

// Get resolves h. ok is false for stale or zero handles.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.index]
	if !s.alive || s.gen != h.gen {
		return nil, false
	}
	return &s.value, true
}

// Valid reports whether h still resolves.
func (a *Arena[T]) Valid(h Handle) bool {
	_, ok := a.Get(h)
	return ok
}

// Remove frees the slot behind h. Removing a stale handle is a no-op that
// returns false.
func (a *Arena[T]) Remove(h Handle) bool {
	if !a.Valid(h) {
		return false
	}
	s := &a.slots[h.index]
	s.alive = false
	var zero T
	s.value = zero
	a.free = append(a.free, h.index)
	a.live--
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int { return a.live }

// Each visits live values in slot order until fn returns false. Values
// removed during the walk are skipped; values inserted during the walk are
// not visited, and inserting may move storage, so v must not be used after
// an Insert into the same arena.
func (a *Arena[T]) Each(fn func(h Handle, v *T) bool) {
	n := len(a.slots)
	for i := 0; i < n; i++ {
		s := &a.slots[i]
		if !s.alive {
			continue
		}
		if !fn(Handle{index: uint32(i), gen: s.gen}, &s.value) {
			return
		}
	}
}

// Handles returns the live handles in slot order.
func (a *Arena[T]) Handles() []Handle {
	out := make([]Handle, 0, a.live)
	a.Each(func(h Handle, _ *T) bool {
		out = append(out, h)
		return true
	})
	return out
}

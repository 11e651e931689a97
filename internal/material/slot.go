package material

import (
	"context"
	"errors"
	"sync"
)

// ErrNotReady is returned by Slot.Get before the slot has been settled.
var ErrNotReady = errors.New("material: not loaded yet")

// Slot holds the result of one asynchronous build. It starts unsettled and is settled
// exactly once, with either a value or an error. Slots are safe for concurrent use.
type Slot[T any] struct {
	mu      sync.Mutex
	done    chan struct{}
	settled bool
	val     T
	err     error
}

// NewSlot returns an unsettled slot.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{done: make(chan struct{})}
}

// Settle stores the result and wakes waiters. Only the first call has an effect; it
// reports whether this call settled the slot. On error the stored value stays zero.
func (s *Slot[T]) Settle(v T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settled {
		return false
	}
	if err == nil {
		s.val = v
	}
	s.err = err
	s.settled = true
	close(s.done)
	return true
}

// Peek returns whatever the slot holds right now without checking readiness: the zero
// value before the build completes or after it failed.
func (s *Slot[T]) Peek() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val
}

// Ready reports whether the slot was settled with a value.
func (s *Slot[T]) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled && s.err == nil
}

// Settled reports whether the build finished, successfully or not.
func (s *Slot[T]) Settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// Get returns the value, the build error, or ErrNotReady when still unsettled.
func (s *Slot[T]) Get() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settled {
		var zero T
		return zero, ErrNotReady
	}
	return s.val, s.err
}

// Wait blocks until the slot is settled or ctx is done.
func (s *Slot[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-s.done:
		return s.Get()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Slots are the three material results the app selects from.
type Slots struct {
	Color   *Slot[*Material]
	Texture *Slot[*Material]
	Custom  *Slot[*Material]
}

// NewSlots returns three unsettled slots.
func NewSlots() *Slots {
	return &Slots{
		Color:   NewSlot[*Material](),
		Texture: NewSlot[*Material](),
		Custom:  NewSlot[*Material](),
	}
}

// For returns the slot holding materials of kind k.
func (s *Slots) For(k Kind) *Slot[*Material] {
	switch k {
	case KindColor:
		return s.Color
	case KindTexture:
		return s.Texture
	default:
		return s.Custom
	}
}

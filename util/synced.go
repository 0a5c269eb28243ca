package util

import "sync/atomic"

// SafeCounter is a frame counter that is safe to use concurrently.
type SafeCounter struct {
	value atomic.Uint64
}

// NewSafeCounter creates a new SafeCounter starting at zero.
func NewSafeCounter() *SafeCounter {
	return &SafeCounter{}
}

// Increment increments the counter and returns the new value.
func (sc *SafeCounter) Increment() uint64 {
	return sc.value.Add(1)
}

// Value returns the current value of the counter.
func (sc *SafeCounter) Value() uint64 {
	return sc.value.Load()
}

// SafeFlag is a boolean that is safe to use concurrently.
type SafeFlag struct {
	value atomic.Bool
}

// NewSafeFlag creates a new SafeFlag with an initial value.
func NewSafeFlag(initial bool) *SafeFlag {
	sf := &SafeFlag{}
	sf.value.Store(initial)
	return sf
}

// TrySet flips the flag from false to true. It reports whether this call won.
func (sf *SafeFlag) TrySet() bool {
	return sf.value.CompareAndSwap(false, true)
}

// Value returns the current value of the flag.
func (sf *SafeFlag) Value() bool {
	return sf.value.Load()
}

package tuning

import "sync/atomic"

// Store is the shared, live-editable TuningConfig. Readers get a consistent
// snapshot without locking; writers swap the whole value.
type Store struct {
	current atomic.Pointer[TuningConfig]
}

// NewStore creates a store holding cfg.
func NewStore(cfg TuningConfig) *Store {
	s := &Store{}
	s.Store(cfg)
	return s
}

// Load returns a copy of the current config. A nil store yields defaults.
func (s *Store) Load() TuningConfig {
	if s == nil {
		return DefaultTuningConfig()
	}
	if p := s.current.Load(); p != nil {
		return *p
	}
	return DefaultTuningConfig()
}

// Store replaces the current config.
func (s *Store) Store(cfg TuningConfig) {
	cfg = cfg.Sanitized()
	s.current.Store(&cfg)
}

// Update applies fn to a copy of the current config and publishes the result.
// Concurrent updates are retried so none is lost.
func (s *Store) Update(fn func(*TuningConfig)) TuningConfig {
	for {
		old := s.current.Load()
		next := DefaultTuningConfig()
		if old != nil {
			next = *old
		}
		fn(&next)
		next = next.Sanitized()
		if s.current.CompareAndSwap(old, &next) {
			return next
		}
	}
}

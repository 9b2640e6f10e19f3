package session

import "time"

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*sessionImpl)

// WithMode sets the session's initial interaction mode, as selected by the
// input chord that invoked it.
//
// Parameters:
//   - mode: the initial mode
//
// Returns:
//   - SessionOption: functional option to set the mode
func WithMode(mode Mode) SessionOption {
	return func(s *sessionImpl) {
		s.mode = mode
	}
}

// WithConfig supplies the tunables read from the host's preferences store.
// The config is clamped to its documented ranges and then read-only for the
// session's lifetime.
//
// Parameters:
//   - cfg: the configuration to use
//
// Returns:
//   - SessionOption: functional option to set the configuration
func WithConfig(cfg Config) SessionOption {
	return func(s *sessionImpl) {
		s.cfg = cfg
	}
}

// WithTickInterval overrides the periodic timer cadence armed at Start.
//
// Parameters:
//   - interval: timer interval (defaults to DefaultTickInterval)
//
// Returns:
//   - SessionOption: functional option to set the tick interval
func WithTickInterval(interval time.Duration) SessionOption {
	return func(s *sessionImpl) {
		if interval > 0 {
			s.tickInterval = interval
		}
	}
}

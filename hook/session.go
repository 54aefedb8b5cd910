package hook

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Runner performs the refresh
type Runner interface {
	Run(ctx context.Context) error
}

// Session tracks whether the library changed since the last refresh
type Session struct {
	mu     sync.Mutex
	armed  bool
	runner Runner
	logger zerolog.Logger
}

// NewSession creates a disarmed session that fires runner
func NewSession(runner Runner, logger zerolog.Logger) *Session {
	return &Session{
		runner: runner,
		logger: logger,
	}
}

// Changed arms the session
func (s *Session) Changed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.armed {
		s.logger.Debug().Msg("Library changed, refresh armed")
	}
	s.armed = true
}

// Armed reports whether a change is pending
func (s *Session) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// Exit disarms the session and runs the refresh if it was armed. Concurrent
// calls fire at most once per armed cycle.
func (s *Session) Exit(ctx context.Context) (bool, error) {
	s.mu.Lock()
	armed := s.armed
	s.armed = false
	s.mu.Unlock()

	if !armed {
		s.logger.Debug().Msg("No library changes, skipping refresh")
		return false, nil
	}

	return true, s.runner.Run(ctx)
}

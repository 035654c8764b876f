// Package backup implements the backup workflow: pushing timestamped
// snapshots to a separate backup repository and bringing them back.
package backup

import (
	"time"

	"github.com/dmissoh/stash-away/internal/git"
	"github.com/dmissoh/stash-away/internal/tui"
)

// Service orchestrates backup operations over a git.Client
type Service struct {
	client git.Client
	splog  *tui.Splog
	now    func() time.Time
}

// Option customizes a Service
type Option func(*Service)

// WithClock overrides the clock used for backup labels
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithSplog overrides the output logger
func WithSplog(splog *tui.Splog) Option {
	return func(s *Service) {
		s.splog = splog
	}
}

// NewService creates a Service backed by the given client
func NewService(client git.Client, opts ...Option) *Service {
	s := &Service{
		client: client,
		splog:  tui.NewSplog(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

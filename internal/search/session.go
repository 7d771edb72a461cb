package search

import (
	"context"
	"log"
	"sync"
	"time"
)

const DefaultDebounce = 300 * time.Millisecond

type Searcher interface {
	Search(ctx context.Context, text string) ([]Result, error)
}

// Response is what a Session hands to its deliver callback. Generation is
// the value returned by the Submit call that produced it.
type Response struct {
	Generation uint64
	Query      string
	Results    []Result
	Err        error
}

// Session debounces search-as-you-type input for one client.
//
// Every Submit takes a new generation number. Only the response for the
// latest generation is delivered: a pending timer is stopped, an in-flight
// query has its context cancelled, and any result that still arrives for an
// older generation is dropped.
type Session struct {
	searcher Searcher
	delay    time.Duration
	deliver  func(Response)
	logger   *log.Logger

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	gen      uint64
	timer    *time.Timer
	inflight context.CancelFunc
	closed   bool
}

// NewSession creates a session bound to parent. deliver is called with the
// session lock held, so it must not call back into the Session and should
// not block.
func NewSession(parent context.Context, searcher Searcher, delay time.Duration, deliver func(Response), logger *log.Logger) *Session {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if deliver == nil {
		deliver = func(Response) {}
	}
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		searcher: searcher,
		delay:    delay,
		deliver:  deliver,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Submit records new input and returns its generation. Blank input clears
// the results right away without querying.
func (s *Session) Submit(text string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}

	s.gen++
	g := s.gen
	s.stopPendingLocked()

	if IsBlank(text) {
		s.deliver(Response{Generation: g, Results: []Result{}})
		return g
	}

	q := Normalize(text)
	s.timer = time.AfterFunc(s.delay, func() { s.fire(g, q) })
	return g
}

// Generation returns the latest issued generation.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stopPendingLocked()
	s.cancel()
}

func (s *Session) stopPendingLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
}

func (s *Session) fire(g uint64, q string) {
	s.mu.Lock()
	if s.closed || g != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.timer = nil
	s.inflight = cancel
	s.mu.Unlock()

	results, err := s.searcher.Search(ctx, q)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || g != s.gen {
		if s.logger != nil {
			s.logger.Printf("[Search] stale response dropped | generation=%d latest=%d", g, s.gen)
		}
		return
	}
	s.inflight = nil

	if err != nil {
		if s.logger != nil {
			s.logger.Printf("[Search] query failed | generation=%d error=%v", g, err)
		}
		s.deliver(Response{Generation: g, Query: q, Err: err})
		return
	}
	if results == nil {
		results = []Result{}
	}
	s.deliver(Response{Generation: g, Query: q, Results: results})
}

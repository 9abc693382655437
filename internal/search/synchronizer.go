package search

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	recordTimeout = 10 * time.Second
	eventBuffer   = 16
)

type rawTextEvent struct {
	text string
	ack  chan struct{}
}

// pageEvent moves to page, or by delta when delta is non-zero.
type pageEvent struct {
	page  int
	delta int
	ack   chan struct{}
}

type settleEvent struct {
	gen uint64
}

type fetchDoneEvent struct {
	result fetchResult
}

// Synchronizer owns the search session. Every mutation is an event handled
// in order by a single loop goroutine; catalog calls run outside the loop
// and report back as events, tagged with the sequence number they were
// issued under. Only the response to the latest issued fetch is applied.
type Synchronizer struct {
	catalog    Catalog
	recorder   Recorder
	delay      time.Duration
	totalPages int
	logger     *slog.Logger

	events  chan any
	updates chan Session
	stopped chan struct{}

	started   atomic.Bool
	closeOnce sync.Once
	cancel    context.CancelFunc
	inflight  sync.WaitGroup

	mu       sync.RWMutex
	snapshot Session

	// Loop-owned.
	state     Session
	timer     *time.Timer
	settleGen uint64
	seq       uint64
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithDebounce sets the quiet period before typed text settles.
func WithDebounce(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithTotalPages sets the size of the pagination window.
func WithTotalPages(n int) Option {
	return func(s *Synchronizer) {
		if n > 0 {
			s.totalPages = n
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Synchronizer. recorder may be nil to disable trending events.
// Nothing happens until Start is called.
func New(catalog Catalog, recorder Recorder, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		catalog:    catalog,
		recorder:   recorder,
		delay:      DefaultDebounce,
		totalPages: DefaultTotalPages,
		logger:     slog.Default(),
		events:     make(chan any, eventBuffer),
		updates:    make(chan Session, 1),
		stopped:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state = Session{
		Query:      Query{Page: 1},
		TotalPages: s.totalPages,
		Results:    nil,
	}
	s.snapshot = s.state.clone()
	return s
}

// Start issues the initial fetch (discover, page 1) and starts the event
// loop. It stops when ctx is cancelled or Close is called. Calling Start
// more than once has no effect.
func (s *Synchronizer) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.issueFetch(ctx)
	go s.run(ctx)
}

// Close cancels the settle timer and any in-flight calls, stops the loop
// and waits for background work to finish. The Updates channel is closed.
func (s *Synchronizer) Close() {
	s.closeOnce.Do(func() {
		if !s.started.Load() {
			// Block later Start calls; there is no loop to stop.
			s.started.Store(true)
			close(s.stopped)
			close(s.updates)
			return
		}
		s.cancel()
		<-s.stopped
		s.inflight.Wait()
		close(s.updates)
	})
}

// SetRawText records a keystroke and re-arms the settle timer. The new
// text is visible in Snapshot as soon as SetRawText returns.
func (s *Synchronizer) SetRawText(text string) {
	ack := make(chan struct{})
	s.dispatch(rawTextEvent{text: text, ack: ack}, ack)
}

// SetPage moves to page n, clamped to the window, and fetches immediately
// when the page changed.
func (s *Synchronizer) SetPage(n int) {
	ack := make(chan struct{})
	s.dispatch(pageEvent{page: n, ack: ack}, ack)
}

// NextPage moves one page forward within the window.
func (s *Synchronizer) NextPage() {
	ack := make(chan struct{})
	s.dispatch(pageEvent{delta: 1, ack: ack}, ack)
}

// PrevPage moves one page back within the window.
func (s *Synchronizer) PrevPage() {
	ack := make(chan struct{})
	s.dispatch(pageEvent{delta: -1, ack: ack}, ack)
}

// Snapshot returns a copy of the current session.
func (s *Synchronizer) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.clone()
}

// Updates delivers the latest session after every change. Intermediate
// states are dropped when the reader falls behind.
func (s *Synchronizer) Updates() <-chan Session {
	return s.updates
}

func (s *Synchronizer) dispatch(ev any, ack chan struct{}) {
	if !s.started.Load() {
		s.logger.Debug("Synchronizer not started, dropping event")
		return
	}
	select {
	case s.events <- ev:
	case <-s.stopped:
		return
	}
	select {
	case <-ack:
	case <-s.stopped:
	}
}

// post is used by timers and fetch goroutines; it never blocks past shutdown.
func (s *Synchronizer) post(ev any) {
	select {
	case s.events <- ev:
	case <-s.stopped:
	}
}

func (s *Synchronizer) run(ctx context.Context) {
	defer close(s.stopped)
	defer s.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			s.handle(ctx, ev)
		}
	}
}

func (s *Synchronizer) handle(ctx context.Context, ev any) {
	switch ev := ev.(type) {
	case rawTextEvent:
		s.state.Query.RawText = ev.text
		s.armSettle()
		s.publish()
		close(ev.ack)

	case settleEvent:
		if ev.gen != s.settleGen {
			// A later keystroke re-armed the timer after this one fired.
			return
		}
		s.timer = nil
		if s.state.Query.SettledText == s.state.Query.RawText {
			return
		}
		s.state.Query.SettledText = s.state.Query.RawText
		s.logger.Debug("Search text settled", "query", s.state.Query.SettledText)
		s.issueFetch(ctx)

	case pageEvent:
		target := ev.page
		if ev.delta != 0 {
			target = s.state.Query.Page + ev.delta
		}
		target = s.state.Window().Clamp(target)
		if target != s.state.Query.Page {
			s.state.Query.Page = target
			s.issueFetch(ctx)
		}
		close(ev.ack)

	case fetchDoneEvent:
		res := ev.result
		if res.req.seq != s.seq {
			s.logger.Debug("Discarding stale catalog response", "seq", res.req.seq, "latest", s.seq)
			return
		}
		s.state.resolve(res, s.logger)
		if res.shouldRecord() {
			s.recordAsync(ctx, res.req.text, res)
		}
		s.publish()
	}
}

func (s *Synchronizer) armSettle() {
	s.stopTimer()
	s.settleGen++
	gen := s.settleGen
	s.timer = time.AfterFunc(s.delay, func() {
		s.post(settleEvent{gen: gen})
	})
}

func (s *Synchronizer) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Synchronizer) issueFetch(ctx context.Context) {
	s.seq++
	req := planFetch(s.seq, s.state.Query)

	s.state.Loading = true
	s.state.Err = ""
	s.publish()

	s.logger.Debug("Issuing catalog fetch", "kind", req.kind, "query", req.text, "page", req.page, "seq", req.seq)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.post(fetchDoneEvent{result: runFetch(ctx, s.catalog, req)})
	}()
}

// recordAsync reports a completed search to the recorder. Failures are
// logged and never reach the session.
func (s *Synchronizer) recordAsync(ctx context.Context, term string, res fetchResult) {
	if s.recorder == nil {
		return
	}
	top := res.movies[0]
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		recordCtx, cancel := context.WithTimeout(ctx, recordTimeout)
		defer cancel()
		if err := s.recorder.RecordSearch(recordCtx, term, top); err != nil {
			s.logger.Warn("Failed to record trending search", "query", term, "error", err)
		}
	}()
}

func (s *Synchronizer) publish() {
	snap := s.state.clone()

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- snap:
	default:
	}
}

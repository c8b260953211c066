package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
)

// DefaultInterval is used when the scheduler is built with a non-positive
// interval.
const DefaultInterval = 60 * time.Second

// Passer runs a single reconciliation pass.
type Passer interface {
	Run(ctx context.Context, now time.Time) (model.RunReport, error)
}

// RunStateStore persists the scheduler run state.
type RunStateStore interface {
	Load(ctx context.Context) (model.RunState, error)
	Save(ctx context.Context, state model.RunState) error
}

// Ticker is the subset of *time.Ticker the scheduler needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time {
	return t.Ticker.C
}

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{Ticker: time.NewTicker(d)}
}

// SchedulerOption customizes a Scheduler.
type SchedulerOption func(*Scheduler)

// WithTicker replaces the ticker factory.
func WithTicker(factory TickerFactory) SchedulerOption {
	return func(s *Scheduler) {
		s.newTicker = factory
	}
}

// WithClock replaces the time source used to stamp passes.
func WithClock(clock func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// WithPassTimeout bounds each pass. Zero means no bound.
func WithPassTimeout(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.passTimeout = d
	}
}

// Scheduler drives the engine on a fixed interval. It is either stopped or
// running; the enabled flag is persisted so a restart can resume the loop.
// At most one pass runs at a time.
type Scheduler struct {
	engine      Passer
	states      RunStateStore
	communities CommunityReader
	interval    time.Duration
	passTimeout time.Duration
	newTicker   TickerFactory
	clock       func() time.Time
	logger      *logger.Logger

	mu         sync.Mutex
	running    bool
	state      model.RunState
	stopCh     chan struct{}
	done       chan struct{}
	ticker     Ticker
	lastReport *model.RunReport
	listeners  []func(running bool)

	passMu sync.Mutex
}

func NewScheduler(
	engine Passer,
	states RunStateStore,
	communities CommunityReader,
	interval time.Duration,
	logger *logger.Logger,
	opts ...SchedulerOption,
) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}

	s := &Scheduler{
		engine:      engine,
		states:      states,
		communities: communities,
		interval:    interval,
		newTicker:   newTimeTicker,
		clock:       time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnStatusChange registers fn to be called whenever the scheduler starts or
// stops.
func (s *Scheduler) OnStatusChange(fn func(running bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Load reads the persisted run state without starting anything.
func (s *Scheduler) Load(ctx context.Context) error {
	state, err := s.states.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load run state: %w", err)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Start moves the scheduler to running and persists enabled=true. The first
// pass happens one full interval later.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	if len(s.communities.Configured()) == 0 {
		s.mu.Unlock()
		return model.ErrNotConfigured
	}

	next := s.state
	next.Enabled = true
	next.IntervalSeconds = int(s.interval / time.Second)
	if err := s.states.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist run state: %w", err)
	}
	s.state = next
	s.startLoopLocked()
	listeners := s.listeners
	s.mu.Unlock()

	s.logger.Info("reconciliation loop started", "interval", s.interval)
	notify(listeners, true)
	return nil
}

// Stop moves the scheduler to stopped and persists enabled=false. Future
// ticks are cancelled; a pass already in flight runs to completion.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running && !s.state.Enabled {
		s.mu.Unlock()
		return nil
	}

	next := s.state
	next.Enabled = false
	if err := s.states.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist run state: %w", err)
	}
	s.state = next
	wasRunning := s.running
	s.stopLoopLocked()
	listeners := s.listeners
	s.mu.Unlock()

	if wasRunning {
		s.logger.Info("reconciliation loop stopped")
		notify(listeners, false)
	}
	return nil
}

// Resume re-enters running when enabled=true was persisted. It is a no-op
// otherwise, and when the loop is already running.
func (s *Scheduler) Resume(ctx context.Context) error {
	state, err := s.states.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load run state: %w", err)
	}

	s.mu.Lock()
	s.state = state
	if !state.Enabled || s.running {
		s.mu.Unlock()
		return nil
	}
	if len(s.communities.Configured()) == 0 {
		s.mu.Unlock()
		s.logger.Warn("run state is enabled but no community is configured, staying stopped")
		return nil
	}
	s.startLoopLocked()
	listeners := s.listeners
	s.mu.Unlock()

	s.logger.Info("reconciliation loop resumed", "interval", s.interval)
	notify(listeners, true)
	return nil
}

// RunNow runs a pass immediately. It fails with model.ErrPassInFlight when
// another pass is running.
func (s *Scheduler) RunNow(ctx context.Context) (model.RunReport, error) {
	if !s.passMu.TryLock() {
		return model.RunReport{}, model.ErrPassInFlight
	}
	defer s.passMu.Unlock()

	if len(s.communities.Configured()) == 0 {
		return model.RunReport{}, model.ErrNotConfigured
	}
	return s.runPass(ctx)
}

// Status returns a snapshot of the scheduler state.
func (s *Scheduler) Status() model.SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := model.SchedulerStatus{
		Running:  s.running,
		Interval: s.interval,
	}
	if s.state.LastFetch != nil {
		t := *s.state.LastFetch
		status.LastFetch = &t
	}
	if s.lastReport != nil {
		r := *s.lastReport
		status.LastReport = &r
	}
	return status
}

// Close ends the loop without touching the persisted state, so the next
// process resumes where this one left off. It waits for an in-flight pass.
func (s *Scheduler) Close(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.stopLoopLocked()
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) startLoopLocked() {
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	s.ticker = s.newTicker(s.interval)
	s.running = true

	go s.loop(s.ticker, s.stopCh, s.done)
}

func (s *Scheduler) stopLoopLocked() {
	if !s.running {
		return
	}
	s.ticker.Stop()
	close(s.stopCh)
	s.running = false
}

func (s *Scheduler) loop(ticker Ticker, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var passEnd time.Time
	for {
		select {
		case <-stopCh:
			return
		case t := <-ticker.C():
			select {
			case <-stopCh:
				return
			default:
			}
			// a tick that fired while the previous pass ran is dropped
			if t.Before(passEnd) {
				s.logger.Debug("tick arrived during a pass, dropped")
				continue
			}
			s.tick()
			passEnd = s.clock()
		}
	}
}

func (s *Scheduler) tick() {
	if len(s.communities.Configured()) == 0 {
		s.logger.Info("no community is configured, stopping reconciliation loop")
		if err := s.Stop(context.Background()); err != nil {
			s.logger.Error("failed to stop reconciliation loop", "error", err)
		}
		return
	}

	if !s.passMu.TryLock() {
		s.logger.Debug("pass already in flight, tick dropped")
		return
	}
	defer s.passMu.Unlock()

	if _, err := s.runPass(context.Background()); err != nil {
		var fetchErr *model.FetchError
		if !errors.As(err, &fetchErr) {
			s.logger.Error("reconciliation pass failed", "error", err)
		}
	}
}

// runPass must be called with passMu held.
func (s *Scheduler) runPass(ctx context.Context) (model.RunReport, error) {
	if s.passTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.passTimeout)
		defer cancel()
	}

	now := s.clock()
	report, err := s.engine.Run(ctx, now)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastReport = &report
	if err != nil {
		return report, err
	}

	// Start and Stop also write under mu; the writes stay ordered.
	next := s.state
	next.LastFetch = &now
	if saveErr := s.states.Save(context.WithoutCancel(ctx), next); saveErr != nil {
		s.logger.Warn("failed to persist last fetch time", "error", saveErr)
	}
	s.state = next
	return report, nil
}

func notify(listeners []func(bool), running bool) {
	for _, fn := range listeners {
		fn(running)
	}
}

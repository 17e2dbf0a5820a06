// Package alarm evaluates task alarms on a fixed polling interval and fires
// each task at most once per calendar day.
package alarm

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/notify"
)

const (
	DefaultInterval = 10 * time.Second
	DefaultBuffer   = 16
	clockLayout     = "15:04"
)

type TaskSource interface {
	List() []model.Task
}

type Event struct {
	ID       string
	TaskID   int64
	Name     string
	Time     string
	FiredAt  time.Time
	AudioErr error
}

type Option func(*Scheduler)

func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

func WithBuffer(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.buffer = n
		}
	}
}

func WithRecord(r *Record) Option {
	return func(s *Scheduler) {
		if r != nil {
			s.record = r
		}
	}
}

type Scheduler struct {
	scanMu sync.Mutex

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	src      TaskSource
	ch       notify.Channel
	record   *Record
	log      *zap.Logger
	now      func() time.Time
	interval time.Duration
	buffer   int
	out      chan Event

	dropped       uint64
	audioFailures uint64
}

func New(src TaskSource, ch notify.Channel, opts ...Option) *Scheduler {
	s := &Scheduler{
		src:      src,
		ch:       ch,
		record:   NewRecord(),
		log:      zap.NewNop(),
		now:      time.Now,
		interval: DefaultInterval,
		buffer:   DefaultBuffer,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.out = make(chan Event, s.buffer)
	return s
}

// C delivers fired events. Events are dropped when the buffer is full and
// the channel is closed by Stop.
func (s *Scheduler) C() <-chan Event {
	return s.out
}

func (s *Scheduler) Record() *Record {
	return s.record
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

func (s *Scheduler) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}

func (s *Scheduler) AudioFailures() uint64 {
	return atomic.LoadUint64(&s.audioFailures)
}

// Tick evaluates every task against now and fires the ones that are
// pending, scheduled for now's minute and not yet fired today. Scans never
// overlap.
func (s *Scheduler) Tick(now time.Time) []Event {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	clock := now.Format(clockLayout)
	fired := make([]Event, 0)
	for _, t := range s.src.List() {
		if t.Completed || t.Time != clock {
			continue
		}
		if s.record.Fired(t.ID, now) {
			continue
		}
		fired = append(fired, s.fire(t, now))
	}
	return fired
}

func (s *Scheduler) fire(t model.Task, now time.Time) Event {
	ev := Event{
		ID:      uuid.NewString(),
		TaskID:  t.ID,
		Name:    t.Name,
		Time:    t.Time,
		FiredAt: now,
	}
	// The visual alert goes first so a slow player never holds it back.
	s.ch.ShowMessage(t.Name)
	if err := s.ch.PlayAlert(); err != nil {
		// Audio is best effort; the record below still marks the task.
		atomic.AddUint64(&s.audioFailures, 1)
		s.log.Warn("alarm audio failed", zap.Int64("task_id", t.ID), zap.Error(err))
		ev.AudioErr = err
	}
	s.record.Mark(t.ID, now)
	s.log.Info("alarm fired", zap.Int64("task_id", t.ID), zap.String("time", t.Time), zap.String("event_id", ev.ID))
	s.publish(ev)
	return ev
}

func (s *Scheduler) publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	select {
	case s.out <- ev:
	default:
		atomic.AddUint64(&s.dropped, 1)
		s.log.Warn("alarm event dropped, consumer too slow", zap.String("event_id", ev.ID))
	}
}

// Start runs the polling loop in the background. It evaluates once right
// away and then every interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	go s.loop()
}

// Stop halts the loop, waits for an in-flight scan and closes C.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	close(s.stopCh)
	s.mu.Unlock()

	if started {
		<-s.doneCh
	}
	s.mu.Lock()
	close(s.out)
	s.mu.Unlock()
}

// Run starts the loop and blocks until ctx is cancelled or Stop is called.
func (s *Scheduler) Run(ctx context.Context) {
	s.Start()
	select {
	case <-ctx.Done():
	case <-s.stopCh:
	}
	s.Stop()
}

func (s *Scheduler) loop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("alarm scheduler started", zap.Duration("interval", s.interval))
	s.Tick(s.now())
	for {
		select {
		case <-ticker.C:
			s.Tick(s.now())
		case <-s.stopCh:
			s.log.Info("alarm scheduler stopped")
			return
		}
	}
}

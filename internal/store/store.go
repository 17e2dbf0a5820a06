// Package store owns the task collection and its persisted snapshot.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/storage"
)

var (
	ErrNotFound    = errors.New("store: task not found")
	ErrPersistence = errors.New("store: persistence failed")
)

const DefaultKey = "tasks"

type Option func(*Store)

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Store is the single writer of the task snapshot. Every mutation rewrites
// the full collection. When that write fails the in-memory change is kept
// and the returned error wraps ErrPersistence.
type Store struct {
	mu      sync.RWMutex
	backend storage.Backend
	key     string
	log     *zap.Logger
	now     func() time.Time
	tasks   []model.Task
	lastID  int64
}

func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		log:     zap.NewNop(),
		now:     time.Now,
		tasks:   []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the persisted snapshot. A missing or
// malformed snapshot yields an empty collection and no error. Backend read
// failures also leave the collection empty but are reported.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.backend.Load(ctx, s.key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = []model.Task{}
	s.lastID = 0

	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.log.Debug("no task snapshot found, starting empty", zap.String("key", s.key))
		return nil
	case err != nil:
		s.log.Error("task snapshot read failed, starting empty", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: load %s: %w", ErrPersistence, s.key, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var loaded []model.Task
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.log.Warn("task snapshot malformed, starting empty", zap.String("key", s.key), zap.Error(err))
		return nil
	}

	seen := make(map[int64]bool, len(loaded))
	for _, t := range loaded {
		if err := t.Validate(); err != nil {
			s.log.Warn("dropping invalid task from snapshot", zap.Int64("task_id", t.ID), zap.Error(err))
			continue
		}
		if seen[t.ID] {
			s.log.Warn("dropping duplicate task id from snapshot", zap.Int64("task_id", t.ID))
			continue
		}
		seen[t.ID] = true
		// Validate checks a trimmed copy; store that form so Time matches
		// the scheduler's HH:MM clock exactly.
		t.Apply(t.Input())
		s.tasks = append(s.tasks, t)
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	s.log.Debug("task snapshot loaded", zap.Int("tasks", len(s.tasks)))
	return nil
}

func (s *Store) Create(ctx context.Context, in model.TaskInput) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	task := model.Task{ID: s.nextIDLocked()}
	task.Apply(in)
	s.tasks = append(s.tasks, task)
	s.log.Debug("task created", zap.Int64("task_id", task.ID), zap.String("time", task.Time))
	return task, s.persistLocked(ctx)
}

func (s *Store) Update(ctx context.Context, id int64, in model.TaskInput) (model.Task, error) {
	return s.mutate(ctx, id, func(t *model.Task) error {
		if err := in.Validate(); err != nil {
			return err
		}
		t.Apply(in)
		return nil
	})
}

func (s *Store) ToggleCompleted(ctx context.Context, id int64) (model.Task, error) {
	return s.mutate(ctx, id, func(t *model.Task) error {
		t.Completed = !t.Completed
		return nil
	})
}

func (s *Store) ToggleFavorite(ctx context.Context, id int64) (model.Task, error) {
	return s.mutate(ctx, id, func(t *model.Task) error {
		t.Favorite = !t.Favorite
		return nil
	})
}

// Delete removes the task. Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.log.Debug("task deleted", zap.Int64("task_id", id))
	return s.persistLocked(ctx)
}

func (s *Store) Get(id int64) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// List returns a copy of the collection in creation order.
func (s *Store) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func (s *Store) mutate(ctx context.Context, id int64, fn func(*model.Task) error) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	next := s.tasks[i]
	if err := fn(&next); err != nil {
		return model.Task{}, err
	}
	s.tasks[i] = next
	return next, s.persistLocked(ctx)
}

// nextIDLocked derives ids from the millisecond clock and bumps past the
// last issued id, so two creations in the same millisecond never collide.
func (s *Store) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersistence, err)
	}
	if err := s.backend.Save(ctx, s.key, payload); err != nil {
		s.log.Error("task snapshot write failed", zap.String("key", s.key), zap.Int("tasks", len(s.tasks)), zap.Error(err))
		return fmt.Errorf("%w: save %s: %w", ErrPersistence, s.key, err)
	}
	return nil
}

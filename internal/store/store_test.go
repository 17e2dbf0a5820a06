package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/storage"
)

func frozenClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestStore(t *testing.T) (*Store, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	s := New(backend, WithClock(frozenClock(time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC))))
	require.NoError(t, s.Load(t.Context()))
	return s, backend
}

func medicine() model.TaskInput {
	return model.TaskInput{Name: "Take medicine", Time: "14:30", Frequency: "daily"}
}

func TestCreateThenList(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := t.Context()

	existing, err := s.Create(ctx, model.TaskInput{Name: "Water plants", Time: "08:00"})
	require.NoError(t, err)

	created, err := s.Create(ctx, medicine())
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, created.ID)
	assert.Equal(t, "Take medicine", created.Name)
	assert.Equal(t, "14:30", created.Time)
	assert.Equal(t, "daily", created.Frequency)
	assert.False(t, created.Completed)
	assert.False(t, created.Favorite)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, created, list[1])
	assert.Equal(t, 2, backend.Saves())
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	s, backend := newTestStore(t)

	_, err := s.Create(t.Context(), model.TaskInput{Name: "  ", Time: "10:00"})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = s.Create(t.Context(), model.TaskInput{Name: "x", Time: "25:00"})
	require.ErrorIs(t, err, model.ErrValidation)

	assert.Empty(t, s.List())
	assert.Equal(t, 0, backend.Saves())
}

func TestIDsStrictlyIncreaseUnderFrozenClock(t *testing.T) {
	s, _ := newTestStore(t)
	var last int64
	for i := 0; i < 50; i++ {
		task, err := s.Create(t.Context(), medicine())
		require.NoError(t, err)
		require.Greater(t, task.ID, last)
		last = task.ID
	}
}

func TestIDsContinueAfterReload(t *testing.T) {
	backend := storage.NewMemoryBackend()
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	first := New(backend, WithClock(frozenClock(future)))
	require.NoError(t, first.Load(t.Context()))
	a, err := first.Create(t.Context(), medicine())
	require.NoError(t, err)

	// A clock that went backwards must not reuse persisted ids.
	second := New(backend, WithClock(frozenClock(future.Add(-time.Hour))))
	require.NoError(t, second.Load(t.Context()))
	b, err := second.Create(t.Context(), medicine())
	require.NoError(t, err)
	assert.Greater(t, b.ID, a.ID)
}

func TestPersistRoundTrip(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := t.Context()

	a, err := s.Create(ctx, medicine())
	require.NoError(t, err)
	b, err := s.Create(ctx, model.TaskInput{Name: "Stretch", Time: "07:15", Frequency: "weekdays"})
	require.NoError(t, err)
	_, err = s.ToggleCompleted(ctx, a.ID)
	require.NoError(t, err)
	_, err = s.ToggleFavorite(ctx, b.ID)
	require.NoError(t, err)

	reloaded := New(backend)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, s.List(), reloaded.List())
}

func TestLoadAcceptsBrowserSnapshotShape(t *testing.T) {
	backend := storage.NewMemoryBackend()
	backend.Put(DefaultKey, []byte(`[{"id":1707480000000,"name":"Gym","time":"18:30","frequency":"weekdays","completed":false,"favorite":true}]`))
	s := New(backend)
	require.NoError(t, s.Load(t.Context()))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, int64(1707480000000), list[0].ID)
	assert.True(t, list[0].Favorite)
}

func TestLoadDegradesToEmpty(t *testing.T) {
	cases := map[string]string{
		"malformed": `{not json`,
		"empty":     `   `,
		"null":      `null`,
		"object":    `{"id":1}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			backend := storage.NewMemoryBackend()
			backend.Put(DefaultKey, []byte(payload))
			s := New(backend)
			require.NoError(t, s.Load(t.Context()))
			assert.Empty(t, s.List())
		})
	}
}

func TestLoadDropsInvalidAndDuplicateTasks(t *testing.T) {
	backend := storage.NewMemoryBackend()
	backend.Put(DefaultKey, []byte(`[
		{"id":1,"name":"ok","time":"08:00"},
		{"id":2,"name":"","time":"08:00"},
		{"id":3,"name":"bad time","time":"8am"},
		{"id":1,"name":"dup","time":"09:00"}
	]`))
	s := New(backend)
	require.NoError(t, s.Load(t.Context()))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "ok", list[0].Name)
}

func TestLoadTrimsPaddedFields(t *testing.T) {
	backend := storage.NewMemoryBackend()
	backend.Put(DefaultKey, []byte(`[{"id":1,"name":" Gym ","time":"09:00 ","frequency":" daily "}]`))
	s := New(backend)
	require.NoError(t, s.Load(t.Context()))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Gym", list[0].Name)
	assert.Equal(t, "09:00", list[0].Time)
	assert.Equal(t, "daily", list[0].Frequency)
	assert.True(t, model.ValidClock(list[0].Time))
}

type failingBackend struct {
	storage.Backend
	err error
}

func (f failingBackend) Load(context.Context, string) ([]byte, error) { return nil, f.err }

func TestLoadBackendFailureReportsPersistenceError(t *testing.T) {
	s := New(failingBackend{Backend: storage.NewMemoryBackend(), err: errors.New("io")})
	err := s.Load(t.Context())
	require.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, s.List())

	_, err = s.Create(t.Context(), medicine())
	require.NoError(t, err)
}

func TestUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()
	task, err := s.Create(ctx, medicine())
	require.NoError(t, err)
	_, err = s.ToggleFavorite(ctx, task.ID)
	require.NoError(t, err)

	updated, err := s.Update(ctx, task.ID, model.TaskInput{Name: "Take vitamins", Time: "15:00", Frequency: "weekly"})
	require.NoError(t, err)
	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, "Take vitamins", updated.Name)
	assert.Equal(t, "15:00", updated.Time)
	assert.True(t, updated.Favorite)

	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, updated, got)
}

func TestUpdateErrors(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := t.Context()
	task, err := s.Create(ctx, medicine())
	require.NoError(t, err)

	_, err = s.Update(ctx, task.ID+1000, medicine())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, task.ID, model.TaskInput{Name: "", Time: "15:00"})
	require.ErrorIs(t, err, model.ErrValidation)

	got, _ := s.Get(task.ID)
	assert.Equal(t, task, got)
	assert.Equal(t, 1, backend.Saves())
}

func TestToggles(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := t.Context()
	task, err := s.Create(ctx, medicine())
	require.NoError(t, err)

	done, err := s.ToggleCompleted(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	undone, err := s.ToggleCompleted(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, undone.Completed)

	fav, err := s.ToggleFavorite(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, fav.Favorite)

	_, err = s.ToggleCompleted(ctx, 42)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.ToggleFavorite(ctx, 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := t.Context()
	a, err := s.Create(ctx, medicine())
	require.NoError(t, err)
	b, err := s.Create(ctx, model.TaskInput{Name: "b", Time: "10:00"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, a.ID))
	afterFirst := s.List()
	savesAfterFirst := backend.Saves()

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.Equal(t, afterFirst, s.List())
	assert.Equal(t, savesAfterFirst, backend.Saves())
	require.Len(t, afterFirst, 1)
	assert.Equal(t, b.ID, afterFirst[0].ID)
}

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := t.Context()
	backend.FailSaves(errors.New("disk full"))

	task, err := s.Create(ctx, medicine())
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "Take medicine", task.Name)
	require.Len(t, s.List(), 1)

	toggled, err := s.ToggleCompleted(ctx, task.ID)
	require.ErrorIs(t, err, ErrPersistence)
	assert.True(t, toggled.Completed)

	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)

	backend.FailSaves(nil)
	require.NoError(t, s.Delete(ctx, task.ID))
	raw, err := backend.Load(ctx, DefaultKey)
	require.NoError(t, err)
	var persisted []model.Task
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Empty(t, persisted)
}

func TestListReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create(t.Context(), medicine())
	require.NoError(t, err)

	list := s.List()
	list[0].Name = "mutated"
	assert.Equal(t, "Take medicine", s.List()[0].Name)
}

func TestWithKeyUsesCustomSnapshotKey(t *testing.T) {
	backend := storage.NewMemoryBackend()
	s := New(backend, WithKey("work"))
	require.NoError(t, s.Load(t.Context()))
	_, err := s.Create(t.Context(), medicine())
	require.NoError(t, err)

	_, err = backend.Load(t.Context(), "work")
	require.NoError(t, err)
	_, err = backend.Load(t.Context(), DefaultKey)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

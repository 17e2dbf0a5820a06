package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/remindd/internal/model"
)

func TestWriteAndReadTasks(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Name: "Take medicine", Time: "08:00", Frequency: "daily", Favorite: true},
		{ID: 2, Name: "Gym", Time: "18:30", Completed: true},
	}
	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeTasks(&buf, format, tasks))

			got, err := readTasks(&buf)
			require.NoError(t, err)
			assert.Equal(t, tasks, got)
		})
	}
}

func TestWriteTasksUnknownFormat(t *testing.T) {
	err := writeTasks(&bytes.Buffer{}, "csv", nil)
	assert.ErrorContains(t, err, "unknown format")
}

func TestReadTasksRejectsGarbage(t *testing.T) {
	_, err := readTasks(strings.NewReader("name: [unterminated"))
	assert.Error(t, err)
}

type closeRecorder struct {
	bytes.Buffer
	closeErr error
	closed   int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return c.closeErr
}

func TestWriteTasksAndCloseReportsCloseError(t *testing.T) {
	tasks := []model.Task{{ID: 1, Name: "Gym", Time: "18:30"}}

	ok := &closeRecorder{}
	require.NoError(t, writeTasksAndClose(ok, "tasks.yaml", "yaml", tasks))
	assert.Equal(t, 1, ok.closed)
	assert.Contains(t, ok.String(), "Gym")

	diskFull := errors.New("no space left on device")
	failing := &closeRecorder{closeErr: diskFull}
	err := writeTasksAndClose(failing, "tasks.yaml", "yaml", tasks)
	require.ErrorIs(t, err, diskFull)
	assert.ErrorContains(t, err, "tasks.yaml")
}

func TestWriteTasksAndCloseKeepsWriteError(t *testing.T) {
	rec := &closeRecorder{closeErr: errors.New("close")}
	err := writeTasksAndClose(rec, "tasks.csv", "csv", nil)
	assert.ErrorContains(t, err, "unknown format")
	assert.Equal(t, 1, rec.closed)
}

func TestParseTaskID(t *testing.T) {
	id, err := parseTaskID("#42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseTaskID("0")
	assert.Error(t, err)
	_, err = parseTaskID("abc")
	assert.Error(t, err)
}

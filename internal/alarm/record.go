package alarm

import (
	"fmt"
	"sync"
	"time"
)

// RecordKey names the (task, calendar day) pair in the local calendar of t.
func RecordKey(taskID int64, t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("notified_%d_%d-%d-%d", taskID, y, int(m), d)
}

// Record remembers which tasks already fired on which day. It lives only in
// memory, so a new process re-arms every alarm.
type Record struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

func NewRecord() *Record {
	return &Record{keys: make(map[string]struct{})}
}

func (r *Record) Fired(taskID int64, t time.Time) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keys[RecordKey(taskID, t)]
	return ok
}

func (r *Record) Mark(taskID int64, t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[RecordKey(taskID, t)] = struct{}{}
}

func (r *Record) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

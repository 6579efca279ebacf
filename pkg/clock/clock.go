package clock

import (
	"sync"
	"time"
)

type Clock interface {
	UtcNow() time.Time
	Now() time.Time
	Today() time.Time
}

type System struct{}

func NewSystem() System { return System{} }

func (System) UtcNow() time.Time { return time.Now().UTC() }
func (System) Now() time.Time    { return time.Now() }

func (System) Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Fake is a manually driven clock for tests. Safe for concurrent use.
type Fake struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFake(start time.Time) *Fake {
	if start.IsZero() {
		start = time.Now()
	}
	return &Fake{now: start.UTC()}
}

func (f *Fake) UtcNow() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

func (f *Fake) Now() time.Time {
	return f.UtcNow().Local()
}

func (f *Fake) Today() time.Time {
	y, m, d := f.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t.UTC()
	f.mu.Unlock()
}

package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxAttempts bounds the activity history kept in memory.
const MaxAttempts = 20

// Outcome is the result of one install attempt.
type Outcome string

const (
	OutcomePending  Outcome = "pending"
	OutcomeStarted  Outcome = "started"
	OutcomeFailed   Outcome = "failed"
	OutcomeRejected Outcome = "rejected"
)

// Attempt records one install action for the activity list.
type Attempt struct {
	ID         uuid.UUID
	Host       string
	PackageID  int
	Title      string
	Outcome    Outcome
	StartedAt  time.Time
	FinishedAt time.Time
	Err        error
}

// Done reports whether the attempt has resolved.
func (a Attempt) Done() bool {
	return a.Outcome != OutcomePending
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Host        string
	Status      string
	Error       string
	Scanning    bool
	Attempts    []Attempt // newest first
	LastUpdated time.Time
}

// InFlight counts attempts that have not resolved yet.
func (s Snapshot) InFlight() int {
	n := 0
	for _, a := range s.Attempts {
		if !a.Done() {
			n++
		}
	}
	return n
}

// Store coordinates concurrent updates to the snapshot. Writers are not
// ordered; whichever write lands last is what readers see.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetHost replaces the target host.
func (s *Store) SetHost(host string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Host = host
	s.snapshot.LastUpdated = time.Now()
}

// SetStatus replaces the status message.
func (s *Store) SetStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Status = msg
	s.snapshot.LastUpdated = time.Now()
}

// SetError replaces the error message. An empty msg clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Error = msg
	s.snapshot.LastUpdated = time.Now()
}

// SetScanning toggles the scan indicator.
func (s *Store) SetScanning(scanning bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Scanning = scanning
	s.snapshot.LastUpdated = time.Now()
}

// RecordAttempt inserts a new attempt at the front of the history, or
// replaces the existing entry with the same ID in place. An unknown attempt
// that started before the oldest entry of a full history has already been
// evicted and is dropped.
func (s *Store) RecordAttempt(a Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastUpdated = time.Now()

	for i := range s.snapshot.Attempts {
		if s.snapshot.Attempts[i].ID == a.ID {
			s.snapshot.Attempts[i] = a
			return
		}
	}

	if n := len(s.snapshot.Attempts); n >= MaxAttempts && a.StartedAt.Before(s.snapshot.Attempts[n-1].StartedAt) {
		return
	}

	attempts := make([]Attempt, 0, len(s.snapshot.Attempts)+1)
	attempts = append(attempts, a)
	attempts = append(attempts, s.snapshot.Attempts...)
	if len(attempts) > MaxAttempts {
		attempts = attempts[:MaxAttempts]
	}
	s.snapshot.Attempts = attempts
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Attempts = cloneAttempts(s.snapshot.Attempts)
	return snap
}

func cloneAttempts(items []Attempt) []Attempt {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Attempt, len(items))
	copy(dup, items)
	return dup
}

package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStore_SettersAndSnapshot(t *testing.T) {
	var s Store

	before := time.Now()
	s.SetHost("192.168.1.50")
	s.SetStatus("Installing Game...")
	s.SetError("boom")
	s.SetScanning(true)

	snap := s.Snapshot()
	if snap.Host != "192.168.1.50" {
		t.Fatalf("Host = %q, want 192.168.1.50", snap.Host)
	}
	if snap.Status != "Installing Game..." {
		t.Fatalf("Status = %q, want Installing Game...", snap.Status)
	}
	if snap.Error != "boom" {
		t.Fatalf("Error = %q, want boom", snap.Error)
	}
	if !snap.Scanning {
		t.Fatalf("Scanning = false, want true")
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	s.SetError("")
	if got := s.Snapshot().Error; got != "" {
		t.Fatalf("Error after clear = %q, want empty", got)
	}
}

func TestStore_RecordAttemptInsertsAndUpdates(t *testing.T) {
	var s Store

	first := Attempt{ID: uuid.New(), Title: "A", Outcome: OutcomePending}
	second := Attempt{ID: uuid.New(), Title: "B", Outcome: OutcomePending}
	s.RecordAttempt(first)
	s.RecordAttempt(second)

	snap := s.Snapshot()
	if len(snap.Attempts) != 2 || snap.Attempts[0].Title != "B" || snap.Attempts[1].Title != "A" {
		t.Fatalf("Attempts = %#v, want [B A]", snap.Attempts)
	}
	if snap.InFlight() != 2 {
		t.Fatalf("InFlight = %d, want 2", snap.InFlight())
	}

	first.Outcome = OutcomeFailed
	first.Err = errors.New("refused")
	s.RecordAttempt(first)

	snap = s.Snapshot()
	if len(snap.Attempts) != 2 {
		t.Fatalf("len(Attempts) = %d, want 2 after update", len(snap.Attempts))
	}
	if snap.Attempts[1].Outcome != OutcomeFailed {
		t.Fatalf("Attempts[1].Outcome = %q, want failed", snap.Attempts[1].Outcome)
	}
	if snap.InFlight() != 1 {
		t.Fatalf("InFlight = %d, want 1", snap.InFlight())
	}
}

func TestStore_RecordAttemptCapsHistory(t *testing.T) {
	var s Store
	for i := 0; i < MaxAttempts+5; i++ {
		s.RecordAttempt(Attempt{ID: uuid.New(), PackageID: i, Outcome: OutcomeStarted})
	}
	snap := s.Snapshot()
	if len(snap.Attempts) != MaxAttempts {
		t.Fatalf("len(Attempts) = %d, want %d", len(snap.Attempts), MaxAttempts)
	}
	if snap.Attempts[0].PackageID != MaxAttempts+4 {
		t.Fatalf("newest PackageID = %d, want %d", snap.Attempts[0].PackageID, MaxAttempts+4)
	}
}

func TestStore_SnapshotClonesAttempts(t *testing.T) {
	var s Store
	s.RecordAttempt(Attempt{ID: uuid.New(), Title: "A"})

	snap := s.Snapshot()
	snap.Attempts[0].Title = "mutated"
	if got := s.Snapshot().Attempts[0].Title; got != "A" {
		t.Fatalf("Snapshot should clone attempts; got %q want A", got)
	}
}

func TestStore_ConcurrentWritersLastWins(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetStatus("status")
			s.SetError("error")
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.Status != "status" || snap.Error != "error" {
		t.Fatalf("snapshot = %#v, want status/error set", snap)
	}
}

func TestStore_RecordAttemptDropsEvicted(t *testing.T) {
	var s Store
	base := time.Now()

	old := Attempt{ID: uuid.New(), Title: "old", Outcome: OutcomePending, StartedAt: base}
	s.RecordAttempt(old)
	for i := 1; i <= MaxAttempts; i++ {
		s.RecordAttempt(Attempt{ID: uuid.New(), Title: "new", Outcome: OutcomeStarted, StartedAt: base.Add(time.Duration(i) * time.Second)})
	}

	old.Outcome = OutcomeStarted
	old.FinishedAt = base.Add(time.Minute)
	s.RecordAttempt(old)

	snap := s.Snapshot()
	if len(snap.Attempts) != MaxAttempts {
		t.Fatalf("Attempts = %d, want %d", len(snap.Attempts), MaxAttempts)
	}
	for _, a := range snap.Attempts {
		if a.ID == old.ID {
			t.Fatalf("evicted attempt came back: %#v", a)
		}
	}

	// A fresh attempt still goes in front of a full history.
	fresh := Attempt{ID: uuid.New(), Title: "fresh", Outcome: OutcomeRejected, StartedAt: base.Add(time.Hour)}
	s.RecordAttempt(fresh)
	if got := s.Snapshot().Attempts[0].ID; got != fresh.ID {
		t.Fatalf("front attempt = %v, want fresh attempt", got)
	}
}

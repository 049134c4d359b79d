package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubPresenceStore struct {
	touched []uint
	touchAt time.Time
	cutoff  time.Time
	flipped int64
}

func (s *stubPresenceStore) TouchHeartbeat(userID uint, at time.Time) error {
	s.touched = append(s.touched, userID)
	s.touchAt = at
	return nil
}

func (s *stubPresenceStore) MarkStaleOffline(cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.flipped, nil
}

func TestSweepOnceUsesStalenessCutoff(t *testing.T) {
	store := &stubPresenceStore{flipped: 3}
	svc := NewPresenceService(store, time.Minute, 2*time.Minute, zerolog.Nop())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	flipped, err := svc.SweepOnce()
	if err != nil {
		t.Fatalf("SweepOnce: %v", err)
	}
	if flipped != 3 {
		t.Errorf("flipped = %d, want 3", flipped)
	}
	want := now.Add(-2 * time.Minute)
	if !store.cutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", store.cutoff, want)
	}
}

func TestHeartbeatTouchesStore(t *testing.T) {
	store := &stubPresenceStore{}
	svc := NewPresenceService(store, time.Minute, 2*time.Minute, zerolog.Nop())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if err := svc.Heartbeat(7); err != nil {
		t.Fatalf("Heartbeat: %v", err)
	}
	if len(store.touched) != 1 || store.touched[0] != 7 {
		t.Errorf("touched = %v, want [7]", store.touched)
	}
	if !store.touchAt.Equal(now) {
		t.Errorf("touchAt = %v, want %v", store.touchAt, now)
	}
}

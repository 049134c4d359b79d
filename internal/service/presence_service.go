package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type presenceStore interface {
	TouchHeartbeat(userID uint, at time.Time) error
	MarkStaleOffline(cutoff time.Time) (int64, error)
}

// PresenceService tracks astrologer liveness. Astrologer apps send
// periodic heartbeats; a background sweep flips anyone offline whose
// heartbeat has gone stale.
type PresenceService struct {
	astrologers presenceStore
	staleness   time.Duration
	interval    time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

func NewPresenceService(astrologers presenceStore, interval, staleness time.Duration, log zerolog.Logger) *PresenceService {
	return &PresenceService{
		astrologers: astrologers,
		staleness:   staleness,
		interval:    interval,
		log:         log.With().Str("component", "presence").Logger(),
		now:         time.Now,
	}
}

func (s *PresenceService) Heartbeat(astrologerUserID uint) error {
	return s.astrologers.TouchHeartbeat(astrologerUserID, s.now())
}

// SweepOnce marks stale astrologers offline and returns how many were flipped.
func (s *PresenceService) SweepOnce() (int64, error) {
	return s.astrologers.MarkStaleOffline(s.now().Add(-s.staleness))
}

// RunSweeper loops until ctx is cancelled. Started from main as a goroutine.
func (s *PresenceService) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			flipped, err := s.SweepOnce()
			if err != nil {
				s.log.Warn().Err(err).Msg("presence sweep failed")
				continue
			}
			if flipped > 0 {
				s.log.Info().Int64("flipped_offline", flipped).Msg("presence sweep")
			}
		}
	}
}

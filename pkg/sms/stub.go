package sms

import (
	"context"

	"github.com/rs/zerolog/log"
)

// StubSender logs the code instead of sending it; used in development
// when no gateway credentials are configured.
type StubSender struct{}

func (StubSender) SendOTP(_ context.Context, phone, code string) error {
	log.Info().Str("phone", phone).Str("code", code).Msg("sms stub delivery")
	return nil
}

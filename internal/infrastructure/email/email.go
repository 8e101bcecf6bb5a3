// Package email defines the outbound mail seam. Actual delivery is an
// external concern; the service only needs somewhere to hand messages.
package email

import (
	"context"

	"github.com/rs/zerolog"
)

type Message struct {
	Subject string
	To      []string
	Body    string
	HTML    string
}

// LogSender records outgoing mail instead of delivering it. Stands in
// wherever a real provider adapter is not configured.
type LogSender struct {
	logger zerolog.Logger
}

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Msg("confirmation email (delivery not configured)")
	return nil
}

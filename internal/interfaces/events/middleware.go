package events

import (
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"tickets/internal/observability"
)

// CorrelationIDMiddleware seeds each message context with a correlation id
// and a correlation-scoped child of the base logger; everything downstream
// reads it back via zerolog.Ctx.
func CorrelationIDMiddleware(base zerolog.Logger) message.HandlerMiddleware {
	return func(next message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			correlationID := msg.Metadata.Get("correlation_id")
			if correlationID == "" {
				correlationID = uuid.NewString()
			}

			ctx := observability.ContextWithCorrelationID(msg.Context(), correlationID)
			logger := base.With().
				Str("correlation_id", correlationID).
				Str("message_uuid", msg.UUID).
				Logger()
			msg.SetContext(logger.WithContext(ctx))

			return next(msg)
		}
	}
}

func LoggingMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		logger := zerolog.Ctx(msg.Context())
		logger.Info().
			Str("metadata_type", msg.Metadata.Get("name")).
			Msg("handling a message")

		messages, err := next(msg)
		if err != nil {
			logger.Error().
				Err(err).
				Str("payload", string(msg.Payload)).
				Msg("message handling error")
		}
		return messages, err
	}
}

var ErrJSONUnmarshal = errors.New("json unmarshal error")

// SkipMarshallingErrorsMiddleware drops malformed messages instead of
// retrying them forever.
func SkipMarshallingErrorsMiddleware(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgs, err := h(msg)
		if err != nil && errors.Is(err, ErrJSONUnmarshal) {
			zerolog.Ctx(msg.Context()).Warn().
				Err(err).
				Msg("skipping message that cannot be unmarshalled")
			return nil, nil
		}
		return msgs, err
	}
}

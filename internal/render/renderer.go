// Package render drives the per-request receipt pipeline:
// fetch the cached record, compose the page, protect it when the variant
// calls for it. One pass per request, no internal retries.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"tickets/internal/domain/ticket"
	"tickets/internal/observability"
)

type Store interface {
	GetRecord(ctx context.Context, key string) (ticket.Record, error)
}

type Composer interface {
	Compose(rec ticket.Record, v ticket.Variant, protected bool) ([]byte, error)
}

type Protector interface {
	Protect(raw []byte, password string) ([]byte, error)
}

// Receipt is the finished artifact, positioned at the start of the stream
// and ready to be handed to the HTTP layer as a download.
type Receipt struct {
	Data        []byte
	ContentType string
	Filename    string
}

type Renderer struct {
	store     Store
	composer  Composer
	protector Protector
	policy    ticket.ProtectionPolicy
	logger    zerolog.Logger
	metrics   *observability.RenderMetrics
}

func NewRenderer(
	store Store,
	composer Composer,
	protector Protector,
	policy ticket.ProtectionPolicy,
	logger zerolog.Logger,
	metrics *observability.RenderMetrics,
) *Renderer {
	if policy == nil {
		policy = ticket.DefaultProtectionPolicy()
	}
	return &Renderer{
		store:     store,
		composer:  composer,
		protector: protector,
		policy:    policy,
		logger:    logger,
		metrics:   metrics,
	}
}

// Render produces the receipt for reference in the given variant. Failures
// carry exactly one of the ticket error kinds; callers branch with
// errors.Is. The call blocks for the duration of the pipeline, so invoke
// it off the request-dispatch path.
func (r *Renderer) Render(ctx context.Context, reference string, v ticket.Variant) (receipt *Receipt, err error) {
	started := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = outcomeOf(err)
		}
		r.metrics.Observe(v.String(), outcome, time.Since(started))
	}()

	logger := r.logger.With().Str("reference", reference).Stringer("variant", v).Logger()

	rec, err := r.store.GetRecord(ctx, reference)
	if err != nil {
		if !errors.Is(err, ticket.ErrNotFound) && !errors.Is(err, ticket.ErrCacheUnavailable) {
			err = fmt.Errorf("%w: %v", ticket.ErrCacheUnavailable, err)
		}
		logger.Warn().Err(err).Msg("fetching ticket record failed")
		return nil, err
	}

	protected := r.policy.Protected(v)

	data, err := r.composer.Compose(rec, v, protected)
	if err != nil {
		if !errors.Is(err, ticket.ErrRender) {
			err = fmt.Errorf("%w: %v", ticket.ErrRender, err)
		}
		logger.Error().Err(err).Msg("composing receipt failed")
		return nil, err
	}

	if protected {
		if rec.Password == "" {
			return nil, fmt.Errorf("%w: record has no unlock password", ticket.ErrRender)
		}
		data, err = r.protector.Protect(data, rec.Password)
		if err != nil {
			logger.Error().Err(err).Msg("protecting receipt failed")
			return nil, fmt.Errorf("%w: %v", ticket.ErrRender, err)
		}
	}

	logger.Info().Int("bytes", len(data)).Dur("elapsed", time.Since(started)).Msg("receipt rendered")
	return &Receipt{
		Data:        data,
		ContentType: "application/pdf",
		Filename:    reference + "_receipt.pdf",
	}, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ticket.ErrNotFound):
		return "not_found"
	case errors.Is(err, ticket.ErrCacheUnavailable):
		return "cache_unavailable"
	default:
		return "render_error"
	}
}

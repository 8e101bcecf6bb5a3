package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"tickets/internal/domain/ticket"
	"tickets/internal/infrastructure/email"
	"tickets/internal/render"
)

// bulkRenderConcurrency bounds how many receipts one bulk job renders at a
// time; rendering is CPU- and I/O-heavy per document.
const bulkRenderConcurrency = 4

type ReceiptRenderer interface {
	Render(ctx context.Context, reference string, v ticket.Variant) (*render.Receipt, error)
}

type FileStorage interface {
	Upload(ctx context.Context, fileID string, content []byte) error
}

type EmailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

// BulkReceiptHandler renders every reference in a bulk job and parks the
// documents in file storage. References whose records are gone or broken
// are logged and skipped; the job is fire-and-forget. Storage failures
// are returned so the router's retry middleware gets a chance.
func BulkReceiptHandler(renderer ReceiptRenderer, files FileStorage) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"bulk_receipt_handler",
		func(ctx context.Context, event *ticket.BulkReceiptRequested) error {
			variant, err := ticket.ParseVariant(event.Variant)
			if err != nil {
				// Malformed job; retrying will not fix it.
				zerolog.Ctx(ctx).Error().Err(err).Str("job_id", event.JobID).Msg("dropping bulk job")
				return nil
			}

			g, ctx := errgroup.WithContext(ctx)
			g.SetLimit(bulkRenderConcurrency)
			for _, reference := range event.References {
				reference := reference
				g.Go(func() error {
					receipt, err := renderer.Render(ctx, reference, variant)
					if err != nil {
						zerolog.Ctx(ctx).Warn().
							Err(err).
							Str("job_id", event.JobID).
							Str("reference", reference).
							Msg("skipping receipt in bulk job")
						return nil
					}
					fileID := fmt.Sprintf("%s_%s", event.JobID, receipt.Filename)
					return files.Upload(ctx, fileID, receipt.Data)
				})
			}
			return g.Wait()
		},
	)
}

// OrderConfirmationHandler mails the customer their QR code link and the
// one-time PDF unlock code after an order is created.
func OrderConfirmationHandler(mailer EmailSender) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"order_confirmation_handler",
		func(ctx context.Context, event *ticket.OrderCreated) error {
			if event.Email == "" {
				return nil
			}
			return mailer.Send(ctx, email.Message{
				Subject: fmt.Sprintf("You're all set for %s", event.EventName),
				To:      []string{event.Email},
				Body: fmt.Sprintf(
					"Hello %s,\n\nYour ticket for %s is ready.\nQR code: %s\nPDF unlock code: %s\n\nSee you there!",
					event.UserName, event.EventName, event.QRCodeURL, event.UnlockToken,
				),
				HTML: confirmationHTML(event),
			})
		},
	)
}

func confirmationHTML(event *ticket.OrderCreated) string {
	return fmt.Sprintf(`<html><body>
<h2>Hello, %s</h2>
<p>Your ticket for <strong>%s</strong> is ready.</p>
<ul>
<li><strong>QR code:</strong> <a href="%s">%s</a></li>
<li><strong>Unlock code for PDF ticket:</strong> <em>%s</em></li>
</ul>
<p>Show the QR code at the gate and you're in.</p>
</body></html>`,
		event.UserName, event.EventName, event.QRCodeURL, event.QRCodeURL, event.UnlockToken)
}

package app

import (
	"context"

	"tickets/internal/infrastructure/email"
)

type FileStorage interface {
	Upload(ctx context.Context, fileID string, content []byte) error
}

type EmailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

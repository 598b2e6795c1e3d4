package localauth

import (
	"context"

	"cat-lifecycle/internal/platform/logger"
)

// Mailer entrega el link de acceso.
type Mailer interface {
	SendLink(ctx context.Context, email, link string) error
}

// LogMailer escribe el link en el log (entornos locales).
type LogMailer struct {
	log logger.Logger
}

func NewLogMailer(l logger.Logger) *LogMailer {
	if l == nil {
		l = logger.Nop()
	}
	return &LogMailer{log: l}
}

func (m *LogMailer) SendLink(ctx context.Context, email, link string) error {
	m.log.Info("sign-in link", map[string]any{"email": email, "link": link})
	return nil
}

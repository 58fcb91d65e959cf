// Package mailer provides outbound mail delivery. The default implementation
// only logs the message; deployments plug in a real sender behind the same
// port.
package mailer

import (
	"context"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/infrastructure/service/logger"
)

type LogMailer struct {
	logger logger.Logger
}

func NewLogMailer(log logger.Logger) *LogMailer {
	return &LogMailer{logger: log}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.Info(ctx, "Outbound email", map[string]interface{}{
		"to":      to,
		"subject": subject,
		"bytes":   len(body),
	})
	return nil
}

var _ outbound.EmailSender = (*LogMailer)(nil)

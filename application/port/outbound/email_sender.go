package outbound

import "context"

// EmailSender hands outbound mail to whatever delivery mechanism the
// deployment wires in. Delivery itself is outside this application.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

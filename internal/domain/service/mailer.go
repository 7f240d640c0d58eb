package service

import "context"

// Mailer sends transactional email. Delivery failures are the caller's to
// interpret; forgot-password deliberately swallows them so the response
// never reveals whether an address is registered.
type Mailer interface {
	// SendPasswordReset mails the reset link to the given address.
	SendPasswordReset(ctx context.Context, to, link string) error
}

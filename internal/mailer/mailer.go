// Package mailer renders the transactional email templates of the system and
// delivers them through a transactional email API. Delivery is one-way: no
// retry and no delivery confirmation flows back into the data model.
package mailer

import "context"

// Message is a rendered email ready for delivery.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Sender delivers rendered messages. Implementations: the SendGrid HTTP API
// sender and the queue-backed sender that defers delivery to a worker.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

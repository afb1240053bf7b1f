package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendGridSender delivers messages through the SendGrid HTTP API using a
// single configured sender address.
type sendGridSender struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridSender creates a Sender backed by the SendGrid API.
func NewSendGridSender(apiKey, from string) Sender {
	return &sendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

// Send delivers the message. Errors are returned to the caller; the calling
// workflow decides whether they are fatal (they are not for welcome mail).
func (s *sendGridSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("recipient email address cannot be empty")
	}
	if msg.Subject == "" {
		return errors.New("email subject cannot be empty")
	}

	from := sgmail.NewEmail("", s.from)
	to := sgmail.NewEmail("", msg.To)
	email := sgmail.NewSingleEmail(from, msg.Subject, to, "", msg.HTML)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to send email to '%s': %w", msg.To, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("email API rejected message to '%s': status %d: %s", msg.To, resp.StatusCode, resp.Body)
	}
	return nil
}

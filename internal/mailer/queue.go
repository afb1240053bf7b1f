package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"pdv-backend-go/pkg/messagequeue"
)

// queueSender publishes rendered messages to a broker queue instead of
// delivering them inline. Delivery then happens in MailWorker.
type queueSender struct {
	queue     messagequeue.MessageQueue
	queueName string
}

// NewQueueSender creates a Sender that defers delivery through a message queue.
func NewQueueSender(queue messagequeue.MessageQueue, queueName string) Sender {
	return &queueSender{queue: queue, queueName: queueName}
}

// Send serializes the message and hands it to the queue. The fire-and-forget
// contract is unchanged: a successful publish is a successful send.
func (s *queueSender) Send(_ context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal email message for queue: %w", err)
	}
	if err := s.queue.Publish(s.queueName, body); err != nil {
		return fmt.Errorf("failed to publish email message to queue '%s': %w", s.queueName, err)
	}
	return nil
}

// MailWorker drains the email queue and delivers messages through the real
// sender. Failures are logged and dropped; there is no retry.
type MailWorker struct {
	queue     messagequeue.MessageQueue
	queueName string
	sender    Sender
	logger    *zap.Logger
}

// NewMailWorker creates a worker bound to the queue and the delivery sender.
func NewMailWorker(queue messagequeue.MessageQueue, queueName string, sender Sender, logger *zap.Logger) *MailWorker {
	return &MailWorker{queue: queue, queueName: queueName, sender: sender, logger: logger}
}

// Start registers the consumer. Delivery runs on the queue's goroutine until
// the queue is closed.
func (w *MailWorker) Start(ctx context.Context) error {
	return w.queue.Consume(w.queueName, func(body []byte) {
		var msg Message
		if err := json.Unmarshal(body, &msg); err != nil {
			w.logger.Error("mail worker: invalid queue payload", zap.Error(err))
			return
		}
		if msg.To == "" {
			w.logger.Warn("mail worker: empty recipient, dropping message")
			return
		}
		if err := w.sender.Send(ctx, msg); err != nil {
			w.logger.Error("mail worker: failed to deliver email",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
			return
		}
		w.logger.Info("mail worker: email delivered", zap.String("to", msg.To))
	})
}

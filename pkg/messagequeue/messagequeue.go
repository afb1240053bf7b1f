package messagequeue

// MessageQueue defines the interface for message queue services.
type MessageQueue interface {
	Publish(queueName string, body []byte) error
	// Consume registers a handler for the queue and returns; delivery runs on
	// a background goroutine until Close is called.
	Consume(queueName string, handler func(body []byte)) error
	Close() error
}

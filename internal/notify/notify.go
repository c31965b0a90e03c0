package notify

import "log"

// Notifier is the fire-and-forget feedback sink. A failed or dropped
// notification never fails the operation that produced it.
type Notifier interface {
	Notify(kind, message string)
}

type message struct {
	kind string
	text string
}

// LogNotifier delivers notifications asynchronously to the process log.
// It stands where a push/email collaborator would be wired.
type LogNotifier struct {
	queue chan message
}

func NewLogNotifier() *LogNotifier {
	n := &LogNotifier{
		queue: make(chan message, 100),
	}

	go n.worker()
	return n
}

func (n *LogNotifier) worker() {
	for m := range n.queue {
		log.Printf("notify [%s] %s", m.kind, m.text)
	}
}

func (n *LogNotifier) Notify(kind, text string) {
	select {
	case n.queue <- message{kind: kind, text: text}:
	default:
		// full queue drops the notification, never blocks the caller
	}
}

var _ Notifier = (*LogNotifier)(nil)

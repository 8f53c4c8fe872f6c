package notifier

import "sync"

// Notifier is the outbound messaging channel used by workflows as a
// fire-and-forget side effect. Send failures must never surface to API callers.
type Notifier interface {
	Send(chatID int64, text string) error
}

// Noop discards every message. Used when no bot token is configured.
type Noop struct{}

func (Noop) Send(int64, string) error {
	return nil
}

// Message is a single recorded notification.
type Message struct {
	ChatID int64
	Text   string
}

// Recorder keeps every sent message in memory for assertions in tests.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
	Err      error
}

func (r *Recorder) Send(chatID int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.messages = append(r.messages, Message{ChatID: chatID, Text: text})
	return nil
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Level classifies a user-visible notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is a single user-visible notification
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Notifier receives user-visible notifications. Every failed user action
// produces exactly one notification; validation rejections are warnings,
// backend failures are errors.
type Notifier interface {
	Notify(level Level, text string)
}

// ZapNotifier surfaces notifications through the structured log
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a notifier backed by the given logger
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{logger: logger}
}

// Notify logs the notification at a level matching its severity
func (n *ZapNotifier) Notify(level Level, text string) {
	switch level {
	case LevelError:
		n.logger.Error("notification", zap.String("text", text))
	case LevelWarning:
		n.logger.Warn("notification", zap.String("text", text))
	default:
		n.logger.Info("notification", zap.String("text", text))
	}
}

// Fanout duplicates every notification to all wrapped notifiers
type Fanout []Notifier

// Notify forwards the notification to each wrapped notifier in order
func (f Fanout) Notify(level Level, text string) {
	for _, n := range f {
		n.Notify(level, text)
	}
}

// Recorder collects notifications; tests inspect them and the HTTP surface
// drains them like a snackbar queue
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify appends the notification to the record
func (r *Recorder) Notify(level Level, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Text: text})
}

// Messages returns a copy of all recorded notifications
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Last returns the most recent notification, if any
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

// Count returns the number of recorded notifications
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// Drain returns all recorded notifications and clears the record
func (r *Recorder) Drain() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.messages
	r.messages = nil
	return out
}

// Reset clears the record
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}

package mocknotify

import "sync"

// RecordingNotifier implements notify.Notifier for testing, capturing every
// warning it receives
type RecordingNotifier struct {
	mu       sync.Mutex
	warnings []string
}

// NewRecordingNotifier creates a new recording notifier
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// Warn implements notify.Notifier
func (n *RecordingNotifier) Warn(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, message)
}

// Warnings returns a copy of the captured warnings
func (n *RecordingNotifier) Warnings() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.warnings))
	copy(out, n.warnings)
	return out
}

// Reset clears captured warnings
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = nil
}

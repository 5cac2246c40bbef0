// Package notify is the fire-and-forget channel for user-visible,
// non-fatal problems, such as a reference pointing at a table that no
// longer exists.
package notify

import "log"

// Notifier delivers a warning to whoever is running the world. Delivery
// failures are swallowed; a lost warning must never fail the pipeline.
type Notifier interface {
	Warn(message string)
}

// LogNotifier writes warnings to the process log
type LogNotifier struct {
	Prefix string
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(prefix string) *LogNotifier {
	return &LogNotifier{Prefix: prefix}
}

// Warn implements Notifier
func (n *LogNotifier) Warn(message string) {
	log.Printf("%s | %s", n.Prefix, message)
}

package core

import "time"

// LogEvent is a single structured log event handed to a sink by the host
// logging pipeline. An event is owned by its producer: a sink may read it for
// the duration of one Emit call and must not retain it afterwards.
type LogEvent struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Level is the severity of the event.
	Level LogEventLevel

	// MessageTemplate is the original message template with placeholders.
	// The template text, not the rendered message, is the stable identity
	// of a log statement and is what event-ID derivation hashes.
	MessageTemplate string

	// Properties contains the event's properties, already captured by the
	// host pipeline.
	Properties map[string]any

	// Exception is the error associated with the event, if any.
	Exception error
}

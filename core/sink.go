package core

// LogEventSink outputs log events to a destination.
type LogEventSink interface {
	// Emit writes the log event to the sink's destination. A non-nil error
	// means the event was not durably recorded.
	Emit(event *LogEvent) error

	// Close releases any resources held by the sink.
	Close() error
}

// TextFormatter renders a log event as a single string payload.
type TextFormatter interface {
	// Format renders the event. Implementations must not mutate the event.
	Format(event *LogEvent) string
}

package winlog

import (
	"testing"
	"time"

	"github.com/willibrandon/winlog/core"
)

// discardRegistry accepts every write and records nothing (for benchmarking).
type discardRegistry struct{}

func (discardRegistry) SourceExists(string) (bool, error)                  { return true, nil }
func (discardRegistry) LogNameForSource(string) (string, error)            { return DefaultLogName, nil }
func (discardRegistry) CreateSource(string, string) error                  { return nil }
func (discardRegistry) DeleteSource(string) error                          { return nil }
func (discardRegistry) WriteEntry(string, EntryType, uint16, string) error { return nil }
func (discardRegistry) Close() error                                       { return nil }

func benchmarkEvent() *core.LogEvent {
	return &core.LogEvent{
		Timestamp:       time.Now(),
		Level:           core.InformationLevel,
		MessageTemplate: "User {UserId} performed action {Action}",
		Properties: map[string]any{
			"UserId": 123,
			"Action": "login",
		},
	}
}

func BenchmarkEmit(b *testing.B) {
	sink, err := NewSink("Bench", WithRegistry(discardRegistry{}))
	if err != nil {
		b.Fatalf("NewSink() error = %v", err)
	}
	defer sink.Close()

	event := benchmarkEvent()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := sink.Emit(event); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEmitPlainMessage(b *testing.B) {
	sink, err := NewSink("Bench",
		WithRegistry(discardRegistry{}),
		WithOutputTemplate("${Message}"))
	if err != nil {
		b.Fatalf("NewSink() error = %v", err)
	}
	defer sink.Close()

	event := &core.LogEvent{
		Timestamp:       time.Now(),
		Level:           core.InformationLevel,
		MessageTemplate: "This is a simple log message",
		Properties:      map[string]any{},
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := sink.Emit(event); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHashEventID(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = hashEventID("User {UserId} performed action {Action}")
	}
}

func BenchmarkHashEventIDLongTemplate(b *testing.B) {
	template := "Request {RequestId} from {ClientIp} to {Path} completed with {StatusCode} in {Elapsed} ms " +
		"(user agent {UserAgent}, referrer {Referrer}, bytes {Bytes})"

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = hashEventID(template)
	}
}

func BenchmarkTruncatePayloadShort(b *testing.B) {
	payload := "Service indexer started"

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = truncatePayload(payload, discardDiag)
	}
}

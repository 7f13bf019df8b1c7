// Package winlog writes structured log events to the Windows Event Log.
//
// The package is a sink, not a logging framework: it expects a host pipeline
// that constructs, filters, and enriches events, and it turns each event it
// is handed into exactly one synchronous event log write. Event sources can
// be registered (and safely migrated between logs) at construction, payloads
// are rendered through a pluggable formatter, and every entry carries a
// deterministic 16-bit event id derived from the event's message template.
package winlog

import (
	"fmt"
	"strings"

	"github.com/willibrandon/winlog/core"
	"github.com/willibrandon/winlog/formatters/output"
	"github.com/willibrandon/winlog/selflog"
)

// DiagnosticFunc receives the sink's internal advisory messages: trimmed
// source names, truncated payloads, source migrations. Diagnostics are
// best-effort and never reach the event log itself. Implementations must be
// safe for concurrent use.
type DiagnosticFunc func(format string, args ...any)

// selflogDiagnostics is the default DiagnosticFunc. The IsEnabled guard is
// redundant for Printf itself but keeps the cost of a disabled channel at a
// single atomic load.
func selflogDiagnostics(format string, args ...any) {
	if selflog.IsEnabled() {
		selflog.Printf(format, args...)
	}
}

// Sink writes each log event it receives as one entry in the Windows Event
// Log. Construction registers the event source when asked to; emission
// renders, truncates, classifies, and writes, synchronously on the caller's
// goroutine, with no buffering or retries. Concurrent Emit calls are safe as
// long as the underlying Registry accepts concurrent writes, which the
// bundled implementations do.
type Sink struct {
	source     string
	logName    string
	registry   Registry
	formatter  core.TextFormatter
	idProvider EventIDProvider
	diag       DiagnosticFunc
}

// Sink must satisfy the pipeline's sink contract.
var _ core.LogEventSink = (*Sink)(nil)

// NewSink builds a sink writing through the given source name.
//
// The source name is required and is sanitized to the platform's constraints
// before use. By default the sink targets the Application log on the local
// machine, renders payloads with DefaultOutputTemplate, derives event ids by
// hashing message templates, and assumes the source is already registered;
// options override each of these.
//
// On platforms without an event log facility NewSink fails with
// ErrPlatformNotSupported unless WithRegistry supplies a substitute. If
// construction fails, a registry injected by the caller is left open.
func NewSink(source string, opts ...Option) (*Sink, error) {
	if source == "" {
		return nil, fmt.Errorf("winlog: source name is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	logName := strings.TrimSpace(cfg.logName)
	if logName == "" {
		logName = DefaultLogName
	}

	machine := strings.TrimPrefix(cfg.machineName, `\\`)
	if machine == "." {
		machine = ""
	}

	formatter := cfg.formatter
	if formatter == nil {
		f, err := output.NewTemplateFormatter(DefaultOutputTemplate)
		if err != nil {
			return nil, fmt.Errorf("winlog: building default formatter: %w", err)
		}
		formatter = f
	}

	sanitized := sanitizeSourceName(source, cfg.diag)

	reg := cfg.registry
	ownsPlatformRegistry := false
	if reg == nil {
		r, err := newPlatformRegistry(machine)
		if err != nil {
			return nil, err
		}
		reg = r
		ownsPlatformRegistry = true
	}

	if cfg.manageSource {
		if err := ensureSourceRegistration(reg, sanitized, logName, cfg.diag); err != nil {
			if ownsPlatformRegistry {
				reg.Close()
			}
			return nil, err
		}
	}

	return &Sink{
		source:     sanitized,
		logName:    logName,
		registry:   reg,
		formatter:  formatter,
		idProvider: cfg.idProvider,
		diag:       cfg.diag,
	}, nil
}

// Source returns the sanitized source name entries are written through.
func (s *Sink) Source() string {
	return s.source
}

// LogName returns the log the sink targets.
func (s *Sink) LogName() string {
	return s.logName
}

// Emit writes one event as one entry: render the payload, truncate it to the
// platform ceiling, fold the level onto the platform severity, compute the
// event id, write. A write failure is returned to the caller as-is; the sink
// does not retry, buffer, or swallow it.
func (s *Sink) Emit(event *core.LogEvent) error {
	if event == nil {
		return fmt.Errorf("winlog: cannot emit a nil event")
	}

	payload := truncatePayload(s.formatter.Format(event), s.diag)
	entryType := levelToEntryType(event.Level, s.diag)
	eventID := s.idProvider.ComputeEventID(event)

	if err := s.registry.WriteEntry(s.source, entryType, eventID, payload); err != nil {
		return fmt.Errorf("winlog: writing entry to log %q: %w", s.logName, err)
	}
	return nil
}

// Close releases the sink's registry, including one injected through
// WithRegistry.
func (s *Sink) Close() error {
	return s.registry.Close()
}

// levelToEntryType folds the pipeline's six levels onto the three severities
// the platform understands. It is total: a level outside the known range
// degrades to Information instead of failing.
func levelToEntryType(level core.LogEventLevel, diag DiagnosticFunc) EntryType {
	switch level {
	case core.VerboseLevel, core.DebugLevel, core.InformationLevel:
		return EntryInformation
	case core.WarningLevel:
		return EntryWarning
	case core.ErrorLevel, core.FatalLevel:
		return EntryError
	default:
		diag("[eventlog] unexpected logging level %v, writing entry as Information", level)
		return EntryInformation
	}
}

// truncatePayload enforces the ReportEvent payload ceiling. The bound counts
// UTF-16 code units and the cut never splits a surrogate pair, so a payload
// ending in one may come back a single unit under the maximum.
func truncatePayload(payload string, diag DiagnosticFunc) string {
	// A string's UTF-16 length never exceeds its byte length, so short
	// payloads need no scan.
	if len(payload) <= MaxPayloadLength {
		return payload
	}

	units := 0
	for i, r := range payload {
		width := 1
		if r >= 0x10000 {
			width = 2
		}
		if units+width > MaxPayloadLength {
			diag("[eventlog] trimming long event log entry payload to %d characters", MaxPayloadLength)
			return payload[:i]
		}
		units += width
	}
	return payload
}

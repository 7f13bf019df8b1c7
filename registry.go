package winlog

import (
	"errors"
	"fmt"
)

// Platform bounds and well-known names. These mirror the Windows Event Log
// facility and are not configurable.
const (
	// DefaultLogName is the log events are written to when no log name is
	// configured.
	DefaultLogName = "Application"

	// MaxSourceNameLength is the longest source name the platform registry
	// accepts, in characters.
	MaxSourceNameLength = 212

	// MaxPayloadLength is the longest entry payload ReportEvent accepts,
	// counted in UTF-16 code units.
	MaxPayloadLength = 31839

	// SourceMovedEventID tags the warning entry written to the destination
	// log when an event source is migrated there from another log.
	SourceMovedEventID uint16 = 3
)

// ErrPlatformNotSupported is returned by NewSink when no registry override is
// configured and the host platform has no event log facility. Use
// WithRegistry to supply a substitute, such as NewMemoryRegistry.
var ErrPlatformNotSupported = errors.New("winlog: the Windows Event Log is not available on this platform")

// EntryType classifies an event log entry with one of the three severities
// the platform viewer understands. The values are the EVENTLOG_*_TYPE
// constants from the Windows headers.
type EntryType uint16

const (
	// EntryError marks an entry as an error.
	EntryError EntryType = 1

	// EntryWarning marks an entry as a warning.
	EntryWarning EntryType = 2

	// EntryInformation marks an entry as informational.
	EntryInformation EntryType = 4
)

// String returns the viewer's name for the entry type.
func (t EntryType) String() string {
	switch t {
	case EntryError:
		return "Error"
	case EntryWarning:
		return "Warning"
	case EntryInformation:
		return "Information"
	default:
		return fmt.Sprintf("EntryType(%d)", uint16(t))
	}
}

// Registry is the platform event-log facility the sink writes through: a
// persistent source-to-log mapping plus a per-source append operation.
// Registrations outlive the process; entries land in whichever log the
// writing source is registered under.
//
// The live Windows implementation is bound automatically by NewSink. Any
// substitute supplied through WithRegistry must be safe for concurrent
// WriteEntry calls, as the sink adds no locking of its own.
type Registry interface {
	// SourceExists reports whether the source is registered under any log.
	SourceExists(source string) (bool, error)

	// LogNameForSource returns the name of the log the source is registered
	// under, or "" when the source is not registered anywhere.
	LogNameForSource(source string) (string, error)

	// CreateSource registers the source under the given log. It fails if
	// the source is already registered.
	CreateSource(source, logName string) error

	// DeleteSource removes the source's registration from whichever log
	// holds it.
	DeleteSource(source string) error

	// WriteEntry appends one entry through the source.
	WriteEntry(source string, entryType EntryType, eventID uint16, message string) error

	// Close releases any handles held by the registry.
	Close() error
}

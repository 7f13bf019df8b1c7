package winlog

import (
	"fmt"
	"strings"
)

// migrationSourcePrefix names the fallback source, "winlog-<log>", used to
// write the migration notice before the real source is re-registered.
const migrationSourcePrefix = "winlog"

// sanitizeSourceName makes a raw source name acceptable to the platform
// registry. Names longer than MaxSourceNameLength are cut to exactly that
// many characters, and the two characters the source-name grammar forbids,
// '<' and '>', become '_'. Nothing else is filtered; the platform's naming
// rules may be stricter, but conformance tests pin this narrow behavior.
func sanitizeSourceName(source string, diag DiagnosticFunc) string {
	if runes := []rune(source); len(runes) > MaxSourceNameLength {
		diag("[eventlog] trimming long event source name to %d characters", MaxSourceNameLength)
		source = string(runes[:MaxSourceNameLength])
	}
	source = strings.ReplaceAll(source, "<", "_")
	return strings.ReplaceAll(source, ">", "_")
}

// ensureSourceRegistration drives the source's registration into the desired
// log: absent sources are created, sources already under the log (compared
// case-insensitively, as the registry compares) are left alone, and sources
// held by a different log are migrated. Registration runs once, at sink
// construction; any registry failure aborts construction and is not retried.
func ensureSourceRegistration(reg Registry, source, logName string, diag DiagnosticFunc) error {
	exists, err := reg.SourceExists(source)
	if err != nil {
		return fmt.Errorf("winlog: checking event source %q: %w", source, err)
	}

	if !exists {
		if err := reg.CreateSource(source, logName); err != nil {
			return fmt.Errorf("winlog: creating event source %q in log %q: %w", source, logName, err)
		}
		return nil
	}

	existingLog, err := reg.LogNameForSource(source)
	if err != nil {
		return fmt.Errorf("winlog: resolving log for event source %q: %w", source, err)
	}
	// A blank resolution means the registry knows the source but cannot say
	// where; leaving it alone beats deleting a registration we cannot see.
	if strings.TrimSpace(existingLog) == "" || strings.EqualFold(existingLog, logName) {
		return nil
	}

	return migrateSource(reg, source, existingLog, logName, diag)
}

// migrateSource re-homes a source registered under a different log. The
// stale registration is deleted, one warning entry documenting the move is
// written to the destination log through a fallback source, and the source
// is re-created under the destination log. The warning is written through
// the fallback because the source itself has no usable registration at that
// moment.
func migrateSource(reg Registry, source, existingLog, logName string, diag DiagnosticFunc) error {
	if err := reg.DeleteSource(source); err != nil {
		return fmt.Errorf("winlog: removing event source %q from log %q: %w", source, existingLog, err)
	}

	fallback := migrationSourcePrefix + "-" + logName
	fallbackExists, err := reg.SourceExists(fallback)
	if err != nil {
		return fmt.Errorf("winlog: checking fallback source %q: %w", fallback, err)
	}
	if !fallbackExists {
		if err := reg.CreateSource(fallback, logName); err != nil {
			return fmt.Errorf("winlog: creating fallback source %q in log %q: %w", fallback, logName, err)
		}
	}

	notice := fmt.Sprintf(
		"Event source %s was previously registered in log %s. "+
			"The source has been registered with this log, %s, however a computer restart may be required "+
			"before entries appear in %s with source %s. Until then, entries may continue to be logged to %s.",
		source, existingLog, logName, logName, source, existingLog)
	if err := reg.WriteEntry(fallback, EntryWarning, SourceMovedEventID, notice); err != nil {
		return fmt.Errorf("winlog: writing source migration notice to log %q: %w", logName, err)
	}

	if err := reg.CreateSource(source, logName); err != nil {
		return fmt.Errorf("winlog: re-creating event source %q in log %q: %w", source, logName, err)
	}

	diag("[eventlog] event source %q moved from log %q to %q", source, existingLog, logName)
	return nil
}

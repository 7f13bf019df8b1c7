package winlog

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is one recorded event log write, kept by MemoryRegistry for
// inspection.
type Entry struct {
	// Log is the log the entry landed in.
	Log string

	// Source is the source the entry was written through.
	Source string

	// Type is the entry's severity.
	Type EntryType

	// EventID is the 16-bit identifier recorded with the entry.
	EventID uint16

	// Message is the entry's payload text.
	Message string
}

// MemoryRegistry is an in-memory Registry for tests, development, and
// non-Windows environments. It mirrors the platform's observable behavior:
// source and log names compare case-insensitively, registrations persist
// for the registry's lifetime, and writes from unregistered sources are
// routed to the Application log rather than rejected.
type MemoryRegistry struct {
	mu      sync.RWMutex
	sources map[string]string  // lower(source) -> registered log name
	entries map[string][]Entry // lower(log) -> entries in write order
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		sources: make(map[string]string),
		entries: make(map[string][]Entry),
	}
}

// SourceExists reports whether the source is registered under any log.
func (m *MemoryRegistry) SourceExists(source string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.sources[strings.ToLower(source)]
	return ok, nil
}

// LogNameForSource returns the log the source was registered under, or ""
// when it is not registered.
func (m *MemoryRegistry) LogNameForSource(source string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sources[strings.ToLower(source)], nil
}

// CreateSource registers the source under the given log. Like the platform,
// it rejects a source that is already registered.
func (m *MemoryRegistry) CreateSource(source, logName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(source)
	if existing, ok := m.sources[key]; ok {
		return fmt.Errorf("source %q is already registered in log %q", source, existing)
	}
	m.sources[key] = logName
	return nil
}

// DeleteSource removes the source's registration. Entries already written
// stay in their logs.
func (m *MemoryRegistry) DeleteSource(source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(source)
	if _, ok := m.sources[key]; !ok {
		return fmt.Errorf("source %q is not registered", source)
	}
	delete(m.sources, key)
	return nil
}

// WriteEntry appends one entry to the log the source is registered under.
// An unregistered source lands in the Application log, exactly as the
// platform routes it.
func (m *MemoryRegistry) WriteEntry(source string, entryType EntryType, eventID uint16, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	logName, ok := m.sources[strings.ToLower(source)]
	if !ok {
		logName = DefaultLogName
	}
	key := strings.ToLower(logName)
	m.entries[key] = append(m.entries[key], Entry{
		Log:     logName,
		Source:  source,
		Type:    entryType,
		EventID: eventID,
		Message: message,
	})
	return nil
}

// Close does nothing for a memory registry.
func (m *MemoryRegistry) Close() error {
	return nil
}

// Entries returns a copy of all entries written to the named log, oldest
// first.
func (m *MemoryRegistry) Entries(logName string) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.entries[strings.ToLower(logName)]
	result := make([]Entry, len(stored))
	copy(result, stored)
	return result
}

// Count returns the number of entries written to the named log.
func (m *MemoryRegistry) Count(logName string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries[strings.ToLower(logName)])
}

// LastEntry returns the most recent entry in the named log, or nil if the
// log is empty.
func (m *MemoryRegistry) LastEntry(logName string) *Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.entries[strings.ToLower(logName)]
	if len(stored) == 0 {
		return nil
	}
	entry := stored[len(stored)-1]
	return &entry
}

// FindEntries returns the entries in the named log that match the predicate,
// oldest first.
func (m *MemoryRegistry) FindEntries(logName string, predicate func(Entry) bool) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Entry
	for _, entry := range m.entries[strings.ToLower(logName)] {
		if predicate(entry) {
			result = append(result, entry)
		}
	}
	return result
}

// Clear removes all entries and registrations.
func (m *MemoryRegistry) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = make(map[string]string)
	m.entries = make(map[string][]Entry)
}

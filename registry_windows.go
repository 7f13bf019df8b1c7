//go:build windows
// +build windows

package winlog

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows/registry"
	"golang.org/x/sys/windows/svc/eventlog"
)

// eventLogKeyPath is where the platform keeps source registrations.
const eventLogKeyPath = `SYSTEM\CurrentControlSet\Services\EventLog`

// eventCreateMsgFile carries the generic message table that renders an
// arbitrary string payload, the same file EventCreate.exe registers.
const eventCreateMsgFile = `%SystemRoot%\System32\EventCreate.exe`

// typesSupported advertises Error, Warning and Information entries on
// sources this registry creates.
const typesSupported = uint32(eventlog.Error | eventlog.Warning | eventlog.Info)

// windowsRegistry is the live platform binding: source registrations are
// subkeys of SYSTEM\CurrentControlSet\Services\EventLog, writes go through
// ReportEvent handles opened per source.
type windowsRegistry struct {
	machine string // "" targets the local machine

	mu      sync.Mutex
	handles map[string]*eventlog.Log
}

// newPlatformRegistry returns the live Windows event log registry. An empty
// machine name targets the local machine.
func newPlatformRegistry(machine string) (Registry, error) {
	return &windowsRegistry{
		machine: machine,
		handles: make(map[string]*eventlog.Log),
	}, nil
}

// openEventLogKey opens the EventLog services key with the given access on
// the configured machine. The returned closer releases the key and, for
// remote machines, the connection beneath it.
func (r *windowsRegistry) openEventLogKey(access uint32) (registry.Key, func(), error) {
	if r.machine == "" {
		k, err := registry.OpenKey(registry.LOCAL_MACHINE, eventLogKeyPath, access)
		if err != nil {
			return 0, nil, err
		}
		return k, func() { k.Close() }, nil
	}

	remote, err := registry.OpenRemoteKey(r.machine, registry.LOCAL_MACHINE)
	if err != nil {
		return 0, nil, fmt.Errorf("connecting to registry on %q: %w", r.machine, err)
	}
	k, err := registry.OpenKey(remote, eventLogKeyPath, access)
	if err != nil {
		remote.Close()
		return 0, nil, err
	}
	return k, func() { k.Close(); remote.Close() }, nil
}

func (r *windowsRegistry) SourceExists(source string) (bool, error) {
	logName, err := r.LogNameForSource(source)
	if err != nil {
		return false, err
	}
	return logName != "", nil
}

// LogNameForSource scans every log's registrations for the source. Registry
// keys are case-insensitive, so the lookup is too.
func (r *windowsRegistry) LogNameForSource(source string) (string, error) {
	elkey, closeKey, err := r.openEventLogKey(registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return "", fmt.Errorf("opening event log registry key: %w", err)
	}
	defer closeKey()

	logs, err := elkey.ReadSubKeyNames(-1)
	if err != nil {
		return "", fmt.Errorf("enumerating event logs: %w", err)
	}

	// A log the caller cannot probe (the Security log, typically) may still
	// hold the source, so a probe failure only matters when no readable log
	// has it.
	var probeErr error
	for _, logName := range logs {
		sk, err := registry.OpenKey(elkey, logName+`\`+source, registry.QUERY_VALUE)
		if err == nil {
			sk.Close()
			return logName, nil
		}
		if err != registry.ErrNotExist && probeErr == nil {
			probeErr = fmt.Errorf("probing log %q for source %q: %w", logName, source, err)
		}
	}
	if probeErr != nil {
		return "", probeErr
	}
	return "", nil
}

// CreateSource writes the same registration InstallAsEventCreate does, into
// an arbitrary log: CustomSource, the EventCreate message table, and the
// three supported entry types.
func (r *windowsRegistry) CreateSource(source, logName string) error {
	elkey, closeKey, err := r.openEventLogKey(registry.CREATE_SUB_KEY)
	if err != nil {
		return fmt.Errorf("opening event log registry key: %w", err)
	}
	defer closeKey()

	logKey, _, err := registry.CreateKey(elkey, logName, registry.CREATE_SUB_KEY)
	if err != nil {
		return fmt.Errorf("creating log key %q: %w", logName, err)
	}
	defer logKey.Close()

	srcKey, alreadyExists, err := registry.CreateKey(logKey, source, registry.ALL_ACCESS)
	if err != nil {
		return fmt.Errorf("creating source key %q in log %q: %w", source, logName, err)
	}
	defer srcKey.Close()
	if alreadyExists {
		return fmt.Errorf("source %q is already registered in log %q", source, logName)
	}

	if err := srcKey.SetDWordValue("CustomSource", 1); err != nil {
		return fmt.Errorf("marking source %q as custom: %w", source, err)
	}
	if err := srcKey.SetExpandStringValue("EventMessageFile", eventCreateMsgFile); err != nil {
		return fmt.Errorf("setting message file for source %q: %w", source, err)
	}
	if err := srcKey.SetDWordValue("TypesSupported", typesSupported); err != nil {
		return fmt.Errorf("setting supported types for source %q: %w", source, err)
	}
	return nil
}

func (r *windowsRegistry) DeleteSource(source string) error {
	logName, err := r.LogNameForSource(source)
	if err != nil {
		return err
	}
	if logName == "" {
		return fmt.Errorf("source %q is not registered", source)
	}

	elkey, closeKey, err := r.openEventLogKey(registry.CREATE_SUB_KEY)
	if err != nil {
		return fmt.Errorf("opening event log registry key: %w", err)
	}
	defer closeKey()

	if err := registry.DeleteKey(elkey, logName+`\`+source); err != nil {
		return fmt.Errorf("deleting source %q from log %q: %w", source, logName, err)
	}
	return nil
}

func (r *windowsRegistry) WriteEntry(source string, entryType EntryType, eventID uint16, message string) error {
	l, err := r.handle(source)
	if err != nil {
		return fmt.Errorf("opening event source %q: %w", source, err)
	}

	switch entryType {
	case EntryInformation:
		return l.Info(uint32(eventID), message)
	case EntryWarning:
		return l.Warning(uint32(eventID), message)
	case EntryError:
		return l.Error(uint32(eventID), message)
	default:
		return fmt.Errorf("unsupported entry type %v", entryType)
	}
}

// handle returns the cached ReportEvent handle for the source, opening one on
// first use. RegisterEventSource succeeds even for unregistered sources; the
// platform then routes their entries to the Application log.
func (r *windowsRegistry) handle(source string) (*eventlog.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.handles[source]; ok {
		return l, nil
	}
	l, err := eventlog.OpenRemote(r.machine, source)
	if err != nil {
		return nil, err
	}
	r.handles[source] = l
	return l, nil
}

func (r *windowsRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for source, l := range r.handles {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing event source %q: %w", source, err)
		}
	}
	r.handles = make(map[string]*eventlog.Log)
	return firstErr
}

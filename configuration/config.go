package configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/willibrandon/winlog/core"
	"github.com/willibrandon/winlog/selflog"
)

// SinkConfiguration describes an event log sink in JSON form: the source
// entries are written under, the log and machine they target, and how
// payloads and event ids are produced.
type SinkConfiguration struct {
	// MinimumLevel is a hint for the host pipeline's level filter. The sink
	// writes every event it is handed; filtering happens before Emit.
	MinimumLevel string `json:"MinimumLevel,omitempty"`

	Source            string `json:"Source"`
	LogName           string `json:"LogName,omitempty"`
	MachineName       string `json:"MachineName,omitempty"`
	ManageEventSource bool   `json:"ManageEventSource,omitempty"`
	OutputTemplate    string `json:"OutputTemplate,omitempty"`

	// EventID, when nonzero, is recorded for every entry whose template is
	// not listed in EventIDs.
	EventID uint16 `json:"EventId,omitempty"`

	// EventIDs maps message template text to a reserved event id.
	EventIDs map[string]uint16 `json:"EventIds,omitempty"`
}

// Configuration is the root configuration object.
type Configuration struct {
	WinLog SinkConfiguration `json:"WinLog"`
}

// LoadFromFile loads configuration from a JSON file.
func LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromJSON(data)
}

// LoadFromJSON loads configuration from JSON data.
func LoadFromJSON(data []byte) (*Configuration, error) {
	var config Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	// Apply defaults
	if config.WinLog.MinimumLevel == "" {
		config.WinLog.MinimumLevel = "Information"
	}

	return &config, nil
}

// MinimumLevelOrDefault parses the MinimumLevel hint, defaulting to
// Information when it is blank or unrecognized.
func (c *SinkConfiguration) MinimumLevelOrDefault() core.LogEventLevel {
	if strings.TrimSpace(c.MinimumLevel) == "" {
		return core.InformationLevel
	}
	level, _ := ParseLevel(c.MinimumLevel)
	return level
}

// ParseLevel parses a log level string.
func ParseLevel(levelStr string) (core.LogEventLevel, error) {
	switch strings.ToLower(levelStr) {
	case "verbose", "vrb":
		return core.VerboseLevel, nil
	case "debug", "dbg":
		return core.DebugLevel, nil
	case "information", "info", "inf":
		return core.InformationLevel, nil
	case "warning", "warn", "wrn":
		return core.WarningLevel, nil
	case "error", "err":
		return core.ErrorLevel, nil
	case "fatal", "ftl":
		return core.FatalLevel, nil
	default:
		if selflog.IsEnabled() {
			selflog.Printf("[configuration] unknown log level '%s', defaulting to Information", levelStr)
		}
		return core.InformationLevel, fmt.Errorf("unknown log level: %s", levelStr)
	}
}

// GetString gets a string value from configuration args.
func GetString(args map[string]any, key string, defaultValue string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		if selflog.IsEnabled() {
			selflog.Printf("[configuration] expected string for '%s', got %T", key, v)
		}
	}
	return defaultValue
}

// GetInt gets an int value from configuration args.
func GetInt(args map[string]any, key string, defaultValue int) int {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case float64:
			return int(val)
		case int:
			return val
		case string:
			// Try to parse string as int
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				return i
			}
			if selflog.IsEnabled() {
				selflog.Printf("[configuration] failed to parse '%s' as int for '%s'", val, key)
			}
		}
	}
	return defaultValue
}

// GetInt64 gets an int64 value from configuration args.
func GetInt64(args map[string]any, key string, defaultValue int64) int64 {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case float64:
			return int64(val)
		case int64:
			return val
		case int:
			return int64(val)
		case string:
			// Try to parse string as int64
			var i int64
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				return i
			}
			if selflog.IsEnabled() {
				selflog.Printf("[configuration] failed to parse '%s' as int64 for '%s'", val, key)
			}
		}
	}
	return defaultValue
}

// GetBool gets a bool value from configuration args.
func GetBool(args map[string]any, key string, defaultValue bool) bool {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case bool:
			return val
		case string:
			return strings.ToLower(val) == "true"
		}
	}
	return defaultValue
}

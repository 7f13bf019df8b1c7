package configuration

import (
	"fmt"

	"github.com/willibrandon/winlog"
)

// CreateSinkFromFile creates an event log sink from a JSON configuration
// file. This is the main entry point for configuration-based sink creation.
func CreateSinkFromFile(filename string, opts ...winlog.Option) (*winlog.Sink, error) {
	config, err := LoadFromFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return BuildSink(&config.WinLog, opts...)
}

// CreateSinkFromJSON creates an event log sink from JSON configuration data.
func CreateSinkFromJSON(jsonData []byte, opts ...winlog.Option) (*winlog.Sink, error) {
	config, err := LoadFromJSON(jsonData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return BuildSink(&config.WinLog, opts...)
}

package configuration

import (
	"fmt"
	"math"
	"strings"

	"github.com/willibrandon/winlog"
	"github.com/willibrandon/winlog/selflog"
)

// BuildSink constructs an event log sink from a typed configuration.
//
// Options are applied after the ones derived from the configuration, so a
// caller can override any of it; tests typically append
// winlog.WithRegistry(winlog.NewMemoryRegistry()).
func BuildSink(config *SinkConfiguration, opts ...winlog.Option) (*winlog.Sink, error) {
	if config == nil {
		return nil, fmt.Errorf("sink configuration is nil")
	}
	if strings.TrimSpace(config.Source) == "" {
		if selflog.IsEnabled() {
			selflog.Printf("[configuration] event log sink configuration is missing 'Source'")
		}
		return nil, fmt.Errorf("event log sink requires a source name")
	}

	var options []winlog.Option
	if config.LogName != "" {
		options = append(options, winlog.WithLogName(config.LogName))
	}
	if config.MachineName != "" {
		options = append(options, winlog.WithMachineName(config.MachineName))
	}
	if config.ManageEventSource {
		options = append(options, winlog.WithManagedSource())
	}
	if config.OutputTemplate != "" {
		options = append(options, winlog.WithOutputTemplate(config.OutputTemplate))
	}
	if provider := eventIDProvider(config); provider != nil {
		options = append(options, winlog.WithEventIDProvider(provider))
	}
	options = append(options, opts...)

	return winlog.NewSink(config.Source, options...)
}

// BuildSinkFromArgs constructs an event log sink from loosely typed
// arguments, the shape factory-driven logging pipelines hand to their sink
// factories. Recognized keys are "source", "logName", "machineName",
// "manageEventSource", "outputTemplate", "eventId", and "eventIds".
func BuildSinkFromArgs(args map[string]any, opts ...winlog.Option) (*winlog.Sink, error) {
	config := &SinkConfiguration{
		Source:            GetString(args, "source", ""),
		LogName:           GetString(args, "logName", ""),
		MachineName:       GetString(args, "machineName", ""),
		ManageEventSource: GetBool(args, "manageEventSource", false),
		OutputTemplate:    GetString(args, "outputTemplate", ""),
		EventIDs:          eventIDTable(args, "eventIds"),
	}

	if id := GetInt(args, "eventId", 0); id != 0 {
		if id < 0 || id > math.MaxUint16 {
			if selflog.IsEnabled() {
				selflog.Printf("[configuration] event id %d for 'eventId' is outside 0-65535, ignoring", id)
			}
		} else {
			config.EventID = uint16(id)
		}
	}

	return BuildSink(config, opts...)
}

// eventIDProvider assembles the provider the configuration asks for, or nil
// when the default hash provider should stand.
func eventIDProvider(config *SinkConfiguration) winlog.EventIDProvider {
	var fixed winlog.EventIDProvider
	if config.EventID != 0 {
		fixed = winlog.FixedEventIDProvider{ID: config.EventID}
	}
	if len(config.EventIDs) > 0 {
		return winlog.MapEventIDProvider{IDs: config.EventIDs, Fallback: fixed}
	}
	return fixed
}

// eventIDTable coerces a JSON-shaped template-to-id table. Entries that are
// not whole numbers in the 16-bit range are dropped with a diagnostic.
func eventIDTable(args map[string]any, key string) map[string]uint16 {
	raw, ok := args[key].(map[string]any)
	if !ok {
		return nil
	}

	ids := make(map[string]uint16, len(raw))
	for template, v := range raw {
		id, ok := toEventID(v)
		if !ok {
			if selflog.IsEnabled() {
				selflog.Printf("[configuration] event id for template '%s' must be a whole number between 0 and 65535, got %v", template, v)
			}
			continue
		}
		ids[template] = id
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}

func toEventID(v any) (uint16, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n < 0 || n > math.MaxUint16 {
			return 0, false
		}
		return uint16(n), true
	case int:
		if n < 0 || n > math.MaxUint16 {
			return 0, false
		}
		return uint16(n), true
	}
	return 0, false
}

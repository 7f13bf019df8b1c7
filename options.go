package winlog

import (
	"fmt"

	"github.com/willibrandon/winlog/core"
	"github.com/willibrandon/winlog/formatters/output"
)

// DefaultOutputTemplate is the payload rendering used when neither
// WithFormatter nor WithOutputTemplate is given: the rendered message,
// followed by the event's error on its own line when one is present.
const DefaultOutputTemplate = "${Message}${NewLine}${Exception}"

// config holds the configuration for building a sink.
type config struct {
	logName      string
	machineName  string
	manageSource bool
	formatter    core.TextFormatter
	idProvider   EventIDProvider
	registry     Registry
	diag         DiagnosticFunc
	err          error // first error encountered during configuration
}

func defaultConfig() *config {
	return &config{
		idProvider: HashEventIDProvider{},
		diag:       selflogDiagnostics,
	}
}

// Option is a functional option for configuring a sink.
type Option func(*config)

// WithLogName targets the named log instead of the Application log. An empty
// or all-whitespace name falls back to the Application log.
func WithLogName(logName string) Option {
	return func(c *config) {
		c.logName = logName
	}
}

// WithMachineName targets the event log of another machine. "." and "" both
// mean the local machine; a leading `\\` is accepted and stripped.
func WithMachineName(machineName string) Option {
	return func(c *config) {
		c.machineName = machineName
	}
}

// WithManagedSource has the sink create the source's registration at
// construction, migrating the source if a different log currently holds it.
// Without this option the sink assumes the source is already registered
// correctly; if it is not, the platform routes its entries to the
// Application log.
func WithManagedSource() Option {
	return func(c *config) {
		c.manageSource = true
	}
}

// WithFormatter renders payload text with a custom formatter instead of the
// default output template.
func WithFormatter(formatter core.TextFormatter) Option {
	return func(c *config) {
		if c.err != nil {
			return
		}
		if formatter == nil {
			c.err = fmt.Errorf("winlog: formatter cannot be nil")
			return
		}
		c.formatter = formatter
	}
}

// WithOutputTemplate renders payload text through an output template, for
// example "[${Level:u3}] ${Message}${NewLine}${Exception}". An invalid
// template fails construction.
func WithOutputTemplate(template string) Option {
	return func(c *config) {
		if c.err != nil {
			return
		}
		formatter, err := output.NewTemplateFormatter(template)
		if err != nil {
			c.err = fmt.Errorf("winlog: invalid output template: %w", err)
			return
		}
		c.formatter = formatter
	}
}

// WithEventIDProvider computes entry event ids with the given provider
// instead of the default template-hash provider.
func WithEventIDProvider(provider EventIDProvider) Option {
	return func(c *config) {
		if c.err != nil {
			return
		}
		if provider == nil {
			c.err = fmt.Errorf("winlog: event id provider cannot be nil")
			return
		}
		c.idProvider = provider
	}
}

// WithRegistry writes through the given registry instead of the live
// platform binding. The sink takes ownership: Close closes it. Injecting
// NewMemoryRegistry makes sinks usable in tests and on platforms without an
// event log.
func WithRegistry(registry Registry) Option {
	return func(c *config) {
		if c.err != nil {
			return
		}
		if registry == nil {
			c.err = fmt.Errorf("winlog: registry cannot be nil")
			return
		}
		c.registry = registry
	}
}

// WithDiagnostics routes the sink's internal advisory messages to fn instead
// of the process-wide selflog channel.
func WithDiagnostics(fn DiagnosticFunc) Option {
	return func(c *config) {
		if c.err != nil {
			return
		}
		if fn == nil {
			c.err = fmt.Errorf("winlog: diagnostics function cannot be nil")
			return
		}
		c.diag = fn
	}
}

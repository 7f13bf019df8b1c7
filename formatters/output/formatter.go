package output

import "github.com/willibrandon/winlog/core"

// TemplateFormatter renders events through a parsed output template. It is
// the formatter sinks use by default and is safe for concurrent use: the
// template is parsed once, at construction, and rendering never mutates it.
type TemplateFormatter struct {
	template *Template
}

// TemplateFormatter satisfies the sink formatter contract.
var _ core.TextFormatter = (*TemplateFormatter)(nil)

// NewTemplateFormatter parses the output template and returns a formatter
// rendering through it.
func NewTemplateFormatter(template string) (*TemplateFormatter, error) {
	parsed, err := Parse(template)
	if err != nil {
		return nil, err
	}
	return &TemplateFormatter{template: parsed}, nil
}

// Format renders the event.
func (f *TemplateFormatter) Format(event *core.LogEvent) string {
	return f.template.Render(event)
}

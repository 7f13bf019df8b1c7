// Package output renders log events through output templates.
//
// An output template is ordinary text with ${...} directives for the
// built-in elements of an event and {...} references to its properties:
//
//	"[${Timestamp:HH:mm:ss} ${Level:u3}] ${Message}${NewLine}${Exception}"
//
// Built-ins are ${Timestamp}, ${Level}, ${Message}, ${Exception},
// ${NewLine}, and ${Properties}; each accepts an optional format after a
// colon. Property references render the named event property and accept the
// same format specifiers message templates use.
package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/willibrandon/winlog/core"
	"github.com/willibrandon/winlog/parser"
)

// Token is one renderable element of a parsed output template.
type Token interface {
	Render(event *core.LogEvent) string
}

// TextToken is literal template text.
type TextToken struct {
	Text string
}

func (t *TextToken) Render(event *core.LogEvent) string {
	return t.Text
}

// BuiltInToken is a ${Name} or ${Name:format} directive.
type BuiltInToken struct {
	Name   string
	Format string
}

func (t *BuiltInToken) Render(event *core.LogEvent) string {
	switch t.Name {
	case "Timestamp":
		return formatTimestamp(event.Timestamp, t.Format)
	case "Level":
		return formatLevel(event.Level, t.Format)
	case "Message":
		return formatMessage(event, t.Format)
	case "Exception":
		if event.Exception != nil {
			return event.Exception.Error()
		}
		return ""
	case "NewLine":
		return "\n"
	case "Properties":
		return formatProperties(event)
	default:
		// An unknown built-in round-trips as text.
		return "${" + t.Name + "}"
	}
}

// PropertyToken is a {Name} or {Name:format} reference to an event property.
type PropertyToken struct {
	PropertyName string
	Format       string
}

// Render returns the property's formatted value. A property the event does
// not carry renders as its placeholder, braces included.
func (t *PropertyToken) Render(event *core.LogEvent) string {
	if val, ok := event.Properties[t.PropertyName]; ok {
		return formatValue(val, t.Format)
	}
	return "{" + t.PropertyName + "}"
}

// Template is a parsed output template.
type Template struct {
	Raw    string
	Tokens []Token
}

// Render renders the template against one event.
func (t *Template) Render(event *core.LogEvent) string {
	var sb strings.Builder
	sb.Grow(len(t.Raw))
	for _, token := range t.Tokens {
		sb.WriteString(token.Render(event))
	}
	return sb.String()
}

// Parse parses an output template string. It fails on an unclosed ${...}
// directive or {...} reference.
func Parse(template string) (*Template, error) {
	var tokens []Token
	runes := []rune(template)
	i := 0

	for i < len(runes) {
		// Built-in directive ${...}
		if i+1 < len(runes) && runes[i] == '$' && runes[i+1] == '{' {
			start := i
			i += 2

			for i < len(runes) && runes[i] != '}' {
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("unclosed built-in at position %d", start)
			}

			tokens = append(tokens, parseBuiltIn(string(runes[start+2:i])))
			i++
			continue
		}

		// Escaped brace
		if runes[i] == '{' && i+1 < len(runes) && runes[i+1] == '{' {
			tokens = append(tokens, &TextToken{Text: "{"})
			i += 2
			continue
		}

		// Property reference {...}
		if runes[i] == '{' {
			start := i
			depth := 1
			i++

			for i < len(runes) && depth > 0 {
				if runes[i] == '{' {
					depth++
				} else if runes[i] == '}' {
					depth--
				}
				i++
			}
			if depth != 0 {
				return nil, fmt.Errorf("unclosed property at position %d", start)
			}

			tokens = append(tokens, parseProperty(string(runes[start+1:i-1])))
			continue
		}

		// Literal text up to the next directive or reference
		start := i
		for i < len(runes) && runes[i] != '{' && !(i+1 < len(runes) && runes[i] == '$' && runes[i+1] == '{') {
			i++
		}
		tokens = append(tokens, &TextToken{Text: string(runes[start:i])})
	}

	return &Template{
		Raw:    template,
		Tokens: tokens,
	}, nil
}

// parseBuiltIn splits a directive body like "Level:u3" into name and format.
func parseBuiltIn(str string) *BuiltInToken {
	parts := strings.SplitN(str, ":", 2)
	builtIn := &BuiltInToken{
		Name: strings.TrimSpace(parts[0]),
	}
	if len(parts) > 1 {
		builtIn.Format = strings.TrimSpace(parts[1])
	}
	return builtIn
}

// parseProperty splits a reference body like "Count:000" into name and
// format.
func parseProperty(str string) *PropertyToken {
	parts := strings.SplitN(str, ":", 2)
	prop := &PropertyToken{
		PropertyName: strings.TrimSpace(parts[0]),
	}
	if len(parts) > 1 {
		prop.Format = strings.TrimSpace(parts[1])
	}
	return prop
}

// formatTimestamp formats a timestamp, converting .NET-style patterns such
// as "yyyy-MM-dd HH:mm:ss" to Go's reference layout first.
func formatTimestamp(t time.Time, format string) string {
	if format == "" {
		format = "2006-01-02 15:04:05"
	}
	return t.Format(convertTimeFormat(format))
}

// convertTimeFormat converts a .NET time format to a Go layout. Longer
// patterns are replaced first so "yyyy" is not half-eaten by "yy".
func convertTimeFormat(format string) string {
	replacements := []struct {
		old string
		new string
	}{
		{"yyyy", "2006"},
		{"yy", "06"},
		{"MM", "01"},
		{"dd", "02"},
		{"HH", "15"},
		{"mm", "04"},
		{"ss", "05"},
		{"fff", "000"},
		{"ff", "00"},
		{"f", "0"},
		{"zzz", "-07:00"},
		{"zz", "-07"},
	}

	for _, r := range replacements {
		format = strings.ReplaceAll(format, r.old, r.new)
	}
	return format
}

// formatLevel formats a log level: "u3"/"w3" are the three-letter
// abbreviations in upper/lower case, "u"/"w" the full name in upper/lower
// case, "l" lowercase, anything else the canonical name.
func formatLevel(level core.LogEventLevel, format string) string {
	switch format {
	case "u3", "w3":
		abbr := "UNK"
		switch level {
		case core.VerboseLevel:
			abbr = "VRB"
		case core.DebugLevel:
			abbr = "DBG"
		case core.InformationLevel:
			abbr = "INF"
		case core.WarningLevel:
			abbr = "WRN"
		case core.ErrorLevel:
			abbr = "ERR"
		case core.FatalLevel:
			abbr = "FTL"
		}
		if format == "w3" {
			return strings.ToLower(abbr)
		}
		return abbr
	case "u":
		return strings.ToUpper(level.String())
	case "w", "l":
		return strings.ToLower(level.String())
	default:
		return level.String()
	}
}

// formatMessage renders the event's message template with its properties.
// A template that fails to parse renders as its raw text.
func formatMessage(event *core.LogEvent, format string) string {
	tmpl, err := parser.ParseCached(event.MessageTemplate)
	if err != nil {
		return event.MessageTemplate
	}

	message := tmpl.Render(event.Properties)

	switch format {
	case "j": // JSON escaped
		return strings.ReplaceAll(strings.ReplaceAll(message, "\\", "\\\\"), "\"", "\\\"")
	default: // includes "lj", the literal default
		return message
	}
}

// formatValue formats a property value with the given format specifier.
func formatValue(val any, format string) string {
	if format == "" {
		return fmt.Sprintf("%v", val)
	}

	switch v := val.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return formatNumeric(v, format)
	case float32, float64:
		return formatFloat(v, format)
	case string:
		return formatString(v, format)
	case time.Time:
		return formatTimestamp(v, format)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatNumeric formats integers. "D3" and "000" both zero-pad to width 3.
func formatNumeric(val any, format string) string {
	if strings.HasPrefix(format, "D") {
		width := 0
		_, _ = fmt.Sscanf(format[1:], "%d", &width)
		return fmt.Sprintf("%0*d", width, val)
	}

	if len(format) > 0 && format[0] == '0' {
		return fmt.Sprintf("%0*d", len(format), val)
	}

	return fmt.Sprintf("%v", val)
}

// formatFloat formats floating point values. "F2" is fixed-point with two
// decimals, "P1" a percentage with one.
func formatFloat(val any, format string) string {
	var f float64
	switch v := val.(type) {
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return fmt.Sprintf("%v", val)
	}

	if strings.HasPrefix(format, "F") {
		precision := 2
		if len(format) > 1 {
			_, _ = fmt.Sscanf(format[1:], "%d", &precision)
		}
		return fmt.Sprintf("%.*f", precision, f)
	}

	if strings.HasPrefix(format, "P") {
		precision := 2
		if len(format) > 1 {
			_, _ = fmt.Sscanf(format[1:], "%d", &precision)
		}
		return fmt.Sprintf("%.*f%%", precision, f*100)
	}

	return fmt.Sprintf("%v", f)
}

// formatString formats strings: "l" lowercases, "u" uppercases, "j" escapes
// for embedding in JSON.
func formatString(val string, format string) string {
	switch format {
	case "l":
		return strings.ToLower(val)
	case "u":
		return strings.ToUpper(val)
	case "j":
		return strings.ReplaceAll(strings.ReplaceAll(val, "\\", "\\\\"), "\"", "\\\"")
	default:
		return val
	}
}

// formatProperties renders all properties as sorted key=value pairs.
func formatProperties(event *core.LogEvent) string {
	if len(event.Properties) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(event.Properties))
	for k, v := range event.Properties {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
	}

	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}

package parser

import (
	"fmt"
	"strings"
	"time"
)

// MessageTemplateToken represents a single token in a message template.
type MessageTemplateToken interface {
	// Render returns the string representation of the token using the provided properties.
	Render(properties map[string]interface{}) string
}

// TextToken represents literal text in a message template.
type TextToken struct {
	// Text is the literal text content.
	Text string
}

// Render returns the literal text.
func (t *TextToken) Render(properties map[string]interface{}) string {
	return t.Text
}

// PropertyToken represents a property placeholder in a message template.
//
// Capturing prefixes (@ and $) are recognized during parsing and stripped from
// PropertyName: events arrive with their properties already captured, so the
// hint has no remaining work to do at render time.
type PropertyToken struct {
	// PropertyName is the name of the property.
	PropertyName string

	// Format specifies the format string, if any.
	Format string

	// Alignment specifies text alignment, if any. Positive values right-align,
	// negative values left-align.
	Alignment int
}

// Render returns the string representation of the property value.
// A property absent from the map renders as its placeholder, braces included.
func (p *PropertyToken) Render(properties map[string]interface{}) string {
	value, ok := properties[p.PropertyName]
	if !ok {
		return "{" + p.PropertyName + "}"
	}

	s := formatValue(value, p.Format)
	return alignText(s, p.Alignment)
}

// formatValue formats a value with the given format specifier.
func formatValue(value interface{}, format string) string {
	if value == nil {
		return ""
	}
	if format == "" {
		return fmt.Sprintf("%v", value)
	}

	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return formatNumeric(v, format)
	case float32, float64:
		return formatFloat(v, format)
	case string:
		return formatString(v, format)
	case time.Time:
		return v.Format(convertTimeFormat(format))
	default:
		return fmt.Sprintf("%v", value)
	}
}

// convertTimeFormat converts a .NET-style time format such as
// "yyyy-MM-dd HH:mm:ss" to a Go layout. Longer patterns are replaced first so
// "yyyy" is not half-eaten by "yy".
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

// formatNumeric formats integer values.
// "D3" and "000" both zero-pad to the given width.
func formatNumeric(val interface{}, format string) string {
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

// formatFloat formats floating point values.
func formatFloat(val interface{}, format string) string {
	var f float64
	switch v := val.(type) {
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return fmt.Sprintf("%v", val)
	}

	// "F2" is fixed-point with 2 decimals
	if strings.HasPrefix(format, "F") {
		precision := 2
		if len(format) > 1 {
			_, _ = fmt.Sscanf(format[1:], "%d", &precision)
		}
		return fmt.Sprintf("%.*f", precision, f)
	}

	// "P1" is percentage with 1 decimal
	if strings.HasPrefix(format, "P") {
		precision := 2
		if len(format) > 1 {
			_, _ = fmt.Sscanf(format[1:], "%d", &precision)
		}
		return fmt.Sprintf("%.*f%%", precision, f*100)
	}

	return fmt.Sprintf("%v", f)
}

// formatString formats string values.
func formatString(val string, format string) string {
	switch format {
	case "l":
		return strings.ToLower(val)
	case "u":
		return strings.ToUpper(val)
	default:
		return val
	}
}

// alignText pads text to the given width. Positive widths right-align,
// negative widths left-align. Text already at or past the width is unchanged.
func alignText(s string, alignment int) string {
	if alignment == 0 {
		return s
	}

	width := alignment
	if width < 0 {
		width = -width
	}
	if len(s) >= width {
		return s
	}

	pad := strings.Repeat(" ", width-len(s))
	if alignment > 0 {
		return pad + s
	}
	return s + pad
}

// Package parser parses message templates into token sequences.
//
// A message template is ordinary text with named placeholders in braces:
//
//	"User {UserId} logged in from {City}"
//
// Placeholders may carry a capturing prefix (@ or $), an alignment
// ({Name,10}), and a format specifier ({Count:000}). Braces are escaped by
// doubling ({{ and }}).
//
// The template text itself, not the rendered message, is the stable identity
// of a log statement.
package parser

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse parses a message template string into a MessageTemplate.
func Parse(template string) (*MessageTemplate, error) {
	if template == "" {
		return &MessageTemplate{
			Raw:    template,
			Tokens: []MessageTemplateToken{},
		}, nil
	}

	tokens := []MessageTemplateToken{}
	i := 0
	textStart := 0

	for i < len(template) {
		if template[i] == '{' {
			// Add any preceding text as a text token
			if i > textStart {
				tokens = append(tokens, &TextToken{Text: template[textStart:i]})
			}

			// Check for escaped brace
			if i+1 < len(template) && template[i+1] == '{' {
				tokens = append(tokens, &TextToken{Text: "{"})
				i += 2
				textStart = i
				continue
			}

			// Parse property token
			propStart := i + 1
			propEnd := strings.IndexByte(template[propStart:], '}')
			if propEnd == -1 {
				// Unclosed property - treat as text
				tokens = append(tokens, &TextToken{Text: template[i:]})
				textStart = len(template)
				break
			}

			propEnd += propStart
			tokens = append(tokens, parsePropertyToken(template[propStart:propEnd]))

			i = propEnd + 1
			textStart = i
		} else if template[i] == '}' {
			// Check for escaped brace
			if i+1 < len(template) && template[i+1] == '}' {
				if i > textStart {
					tokens = append(tokens, &TextToken{Text: template[textStart:i]})
				}
				tokens = append(tokens, &TextToken{Text: "}"})
				i += 2
				textStart = i
				continue
			}
			i++
		} else {
			i++
		}
	}

	// Add any remaining text
	if textStart < len(template) {
		tokens = append(tokens, &TextToken{Text: template[textStart:]})
	}

	return &MessageTemplate{
		Raw:    template,
		Tokens: tokens,
	}, nil
}

// parsePropertyToken parses the content of a property token.
// Content can be: Name, @Name, $Name, Name:format, Name,alignment,
// Name,alignment:format.
func parsePropertyToken(content string) *PropertyToken {
	propertyName := content
	format := ""
	alignment := 0

	// Strip the capturing prefix, if any
	if len(content) > 0 && (content[0] == '@' || content[0] == '$') {
		propertyName = content[1:]
	}

	commaIdx := strings.IndexByte(propertyName, ',')
	colonIdx := strings.IndexByte(propertyName, ':')

	if commaIdx != -1 && (colonIdx == -1 || commaIdx < colonIdx) {
		// We have alignment, possibly followed by a format
		name := strings.TrimSpace(propertyName[:commaIdx])
		rest := propertyName[commaIdx+1:]

		colonInRest := strings.IndexByte(rest, ':')
		if colonInRest != -1 {
			if align, err := parseAlignment(strings.TrimSpace(rest[:colonInRest])); err == nil {
				alignment = align
			}
			format = strings.TrimSpace(rest[colonInRest+1:])
		} else {
			if align, err := parseAlignment(strings.TrimSpace(rest)); err == nil {
				alignment = align
			}
		}
		propertyName = name
	} else if colonIdx != -1 {
		// Just format, no alignment
		name := strings.TrimSpace(propertyName[:colonIdx])
		format = strings.TrimSpace(propertyName[colonIdx+1:])
		propertyName = name
	} else {
		propertyName = strings.TrimSpace(propertyName)
	}

	// An invalid property name keeps the raw content so it round-trips
	// through rendering unchanged
	if !isValidPropertyName(propertyName) {
		return &PropertyToken{PropertyName: content}
	}

	return &PropertyToken{
		PropertyName: propertyName,
		Format:       format,
		Alignment:    alignment,
	}
}

// parseAlignment parses an alignment specification.
// Positive numbers mean right-align, negative mean left-align.
func parseAlignment(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
	}

	width := 0
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("invalid alignment: %s", s)
		}
		width = width*10 + int(ch-'0')
	}

	if negative {
		width = -width
	}
	return width, nil
}

// isValidPropertyName checks if a string is a valid property name.
func isValidPropertyName(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
		} else {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				return false
			}
		}
	}

	return true
}

// ExtractPropertyNames returns the distinct property names from a template,
// in order of first appearance.
func ExtractPropertyNames(template string) []string {
	mt, err := Parse(template)
	if err != nil {
		return []string{}
	}

	names := []string{}
	seen := make(map[string]bool)

	for _, token := range mt.Tokens {
		if prop, ok := token.(*PropertyToken); ok {
			if !seen[prop.PropertyName] {
				names = append(names, prop.PropertyName)
				seen[prop.PropertyName] = true
			}
		}
	}

	return names
}

package parser

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []MessageTemplateToken
	}{
		{
			name:     "empty template",
			template: "",
			want:     []MessageTemplateToken{},
		},
		{
			name:     "text only",
			template: "Hello, World!",
			want: []MessageTemplateToken{
				&TextToken{Text: "Hello, World!"},
			},
		},
		{
			name:     "single property",
			template: "Hello, {Name}!",
			want: []MessageTemplateToken{
				&TextToken{Text: "Hello, "},
				&PropertyToken{PropertyName: "Name"},
				&TextToken{Text: "!"},
			},
		},
		{
			name:     "multiple properties",
			template: "User {UserId} logged in from {IpAddress}",
			want: []MessageTemplateToken{
				&TextToken{Text: "User "},
				&PropertyToken{PropertyName: "UserId"},
				&TextToken{Text: " logged in from "},
				&PropertyToken{PropertyName: "IpAddress"},
			},
		},
		{
			name:     "capturing prefixes are stripped",
			template: "Processing {@User} with {$Exception}",
			want: []MessageTemplateToken{
				&TextToken{Text: "Processing "},
				&PropertyToken{PropertyName: "User"},
				&TextToken{Text: " with "},
				&PropertyToken{PropertyName: "Exception"},
			},
		},
		{
			name:     "escaped braces",
			template: "Use {{double braces}} to escape",
			want: []MessageTemplateToken{
				&TextToken{Text: "Use "},
				&TextToken{Text: "{"},
				&TextToken{Text: "double braces"},
				&TextToken{Text: "}"},
				&TextToken{Text: " to escape"},
			},
		},
		{
			name:     "unclosed property becomes text",
			template: "Hello {Name",
			want: []MessageTemplateToken{
				&TextToken{Text: "Hello "},
				&TextToken{Text: "{Name"},
			},
		},
		{
			name:     "empty property",
			template: "Hello {}!",
			want: []MessageTemplateToken{
				&TextToken{Text: "Hello "},
				&PropertyToken{PropertyName: ""},
				&TextToken{Text: "!"},
			},
		},
		{
			name:     "property at start",
			template: "{Name} says hello",
			want: []MessageTemplateToken{
				&PropertyToken{PropertyName: "Name"},
				&TextToken{Text: " says hello"},
			},
		},
		{
			name:     "property at end",
			template: "Hello, {Name}",
			want: []MessageTemplateToken{
				&TextToken{Text: "Hello, "},
				&PropertyToken{PropertyName: "Name"},
			},
		},
		{
			name:     "adjacent properties",
			template: "{First}{Last}",
			want: []MessageTemplateToken{
				&PropertyToken{PropertyName: "First"},
				&PropertyToken{PropertyName: "Last"},
			},
		},
		{
			name:     "property with format",
			template: "Count is {Count:000}",
			want: []MessageTemplateToken{
				&TextToken{Text: "Count is "},
				&PropertyToken{PropertyName: "Count", Format: "000"},
			},
		},
		{
			name:     "property with alignment",
			template: "|{Name,10}|",
			want: []MessageTemplateToken{
				&TextToken{Text: "|"},
				&PropertyToken{PropertyName: "Name", Alignment: 10},
				&TextToken{Text: "|"},
			},
		},
		{
			name:     "invalid name keeps raw content",
			template: "{not valid}",
			want: []MessageTemplateToken{
				&PropertyToken{PropertyName: "not valid"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.template)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if len(got.Tokens) != len(tt.want) {
				t.Fatalf("Parse() got %d tokens, want %d", len(got.Tokens), len(tt.want))
			}

			for i, token := range got.Tokens {
				if !tokensEqual(token, tt.want[i]) {
					t.Errorf("Parse() token[%d] = %#v, want %#v", i, token, tt.want[i])
				}
			}

			if got.Raw != tt.template {
				t.Errorf("Parse() Raw = %q, want %q", got.Raw, tt.template)
			}
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name       string
		template   string
		properties map[string]interface{}
		want       string
	}{
		{
			name:       "text only",
			template:   "Hello, World!",
			properties: nil,
			want:       "Hello, World!",
		},
		{
			name:       "single property",
			template:   "Hello, {Name}!",
			properties: map[string]interface{}{"Name": "Alice"},
			want:       "Hello, Alice!",
		},
		{
			name:       "missing property keeps placeholder",
			template:   "Hello, {Name}!",
			properties: map[string]interface{}{},
			want:       "Hello, {Name}!",
		},
		{
			name:       "numeric property",
			template:   "User {UserId} logged in",
			properties: map[string]interface{}{"UserId": 12345},
			want:       "User 12345 logged in",
		},
		{
			name:       "nil property renders empty",
			template:   "Value: {Value}",
			properties: map[string]interface{}{"Value": nil},
			want:       "Value: ",
		},
		{
			name:       "escaped braces",
			template:   "Use {{braces}} here",
			properties: nil,
			want:       "Use {braces} here",
		},
		{
			name:       "duplicate property renders twice",
			template:   "{Name} and {Name}",
			properties: map[string]interface{}{"Name": "Bob"},
			want:       "Bob and Bob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt, err := Parse(tt.template)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := mt.Render(tt.properties); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractPropertyNames(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{
			name:     "no properties",
			template: "Hello, World!",
			want:     []string{},
		},
		{
			name:     "single property",
			template: "Hello, {Name}!",
			want:     []string{"Name"},
		},
		{
			name:     "multiple properties",
			template: "User {UserId} logged in from {IpAddress}",
			want:     []string{"UserId", "IpAddress"},
		},
		{
			name:     "duplicate properties",
			template: "{Name} is {Name}",
			want:     []string{"Name"},
		},
		{
			name:     "capturing prefixes stripped",
			template: "Processing {@User} with {$Exception}",
			want:     []string{"User", "Exception"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPropertyNames(tt.template)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractPropertyNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidPropertyName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid simple", "Name", true},
		{"valid with underscore", "user_id", true},
		{"valid with number", "user123", true},
		{"starts with underscore", "_private", true},
		{"empty", "", false},
		{"starts with number", "123user", false},
		{"contains space", "user name", false},
		{"contains hyphen", "user-id", false},
		{"contains dot", "user.id", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidPropertyName(tt.input); got != tt.want {
				t.Errorf("isValidPropertyName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCached(t *testing.T) {
	ClearCache()

	first, err := ParseCached("User {UserId} logged in")
	if err != nil {
		t.Fatalf("ParseCached() error = %v", err)
	}

	second, err := ParseCached("User {UserId} logged in")
	if err != nil {
		t.Fatalf("ParseCached() error = %v", err)
	}

	if first != second {
		t.Error("ParseCached() returned a different instance for the same template")
	}

	ClearCache()
	third, err := ParseCached("User {UserId} logged in")
	if err != nil {
		t.Fatalf("ParseCached() error = %v", err)
	}
	if third == first {
		t.Error("ParseCached() returned a cached instance after ClearCache()")
	}
}

// tokensEqual compares two tokens for equality.
func tokensEqual(a, b MessageTemplateToken) bool {
	switch ta := a.(type) {
	case *TextToken:
		tb, ok := b.(*TextToken)
		return ok && ta.Text == tb.Text
	case *PropertyToken:
		tb, ok := b.(*PropertyToken)
		return ok && ta.PropertyName == tb.PropertyName &&
			ta.Format == tb.Format &&
			ta.Alignment == tb.Alignment
	default:
		return false
	}
}

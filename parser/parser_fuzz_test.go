//go:build go1.18
// +build go1.18

package parser

import "testing"

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, World!",
		"Hello, {Name}!",
		"User {UserId} logged in from {IpAddress}",
		"{@User} {$Scalar}",
		"{Count:000} {Price,8:F2}",
		"{{escaped}}",
		"{unclosed",
		"unopened}",
		"{}",
		"{ }",
		"{,}",
		"{:}",
		"{Name,}",
		"{Name,abc}",
		"{Name,-}",
		"{a{b}c}",
		"{{{}}}",
		"brace }} here",
		"日本語 {名前} テンプレート",
		"emoji 🙂 {Smiley}",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	props := map[string]interface{}{
		"Name":      "Alice",
		"UserId":    42,
		"IpAddress": "192.168.1.1",
		"Count":     7,
		"Price":     19.995,
	}

	f.Fuzz(func(t *testing.T, input string) {
		mt, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", input, err)
		}
		if mt == nil {
			t.Fatalf("Parse(%q) returned nil template", input)
		}
		if mt.Tokens == nil {
			t.Fatalf("Parse(%q) returned nil tokens", input)
		}

		// Rendering must not panic for any input.
		_ = mt.Render(props)
		_ = ExtractPropertyNames(input)
	})
}

// Package testutil provides small assertion helpers shared by tests.
package testutil

import (
	"errors"
	"strings"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error, message string) {
	t.Helper()
	if err != nil {
		if message != "" {
			t.Fatalf("%s: %v", message, err)
		} else {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		if message != "" {
			t.Fatal(message)
		} else {
			t.Fatal("Expected error but got nil")
		}
	}
}

// AssertErrorIs fails the test if err does not wrap target.
func AssertErrorIs(t *testing.T, err, target error, message string) {
	t.Helper()
	if !errors.Is(err, target) {
		if message != "" {
			t.Fatalf("%s: error %v does not wrap %v", message, err, target)
		} else {
			t.Fatalf("Error %v does not wrap %v", err, target)
		}
	}
}

// AssertEqual fails the test if actual != expected.
func AssertEqual[T comparable](t *testing.T, actual, expected T, message string) {
	t.Helper()
	if actual != expected {
		if message != "" {
			t.Fatalf("%s: expected %v, got %v", message, expected, actual)
		} else {
			t.Fatalf("Expected %v, got %v", expected, actual)
		}
	}
}

// AssertStringContains fails the test if s does not contain substr.
func AssertStringContains(t *testing.T, s, substr, message string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		if message != "" {
			t.Fatalf("%s: %q not found in %q", message, substr, s)
		} else {
			t.Fatalf("%q not found in %q", substr, s)
		}
	}
}

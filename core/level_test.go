package core

import "testing"

func TestLogEventLevelString(t *testing.T) {
	tests := []struct {
		level LogEventLevel
		want  string
	}{
		{VerboseLevel, "Verbose"},
		{DebugLevel, "Debug"},
		{InformationLevel, "Information"},
		{WarningLevel, "Warning"},
		{ErrorLevel, "Error"},
		{FatalLevel, "Fatal"},
		{LogEventLevel(99), "Unknown"},
		{LogEventLevel(-1), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogEventLevel(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestLogEventLevelOrdering(t *testing.T) {
	ordered := []LogEventLevel{
		VerboseLevel,
		DebugLevel,
		InformationLevel,
		WarningLevel,
		ErrorLevel,
		FatalLevel,
	}

	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("expected %v < %v", ordered[i-1], ordered[i])
		}
	}
}

package match

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"AlarmInfo", "alarminfo"},
		{"alarm_info", "alarminfo"},
		{"alarm-info", "alarminfo"},
		{"alarmInfo", "alarminfo"},
		{"ALARMINFO", "alarminfo"},

		// Qualified schema names
		{"alarms.Alarm", "alarmsalarm"},
		{"devtools.panels", "devtoolspanels"},

		// Mixed separators
		{"tab_status-Info", "tabstatusinfo"},

		// Edge cases
		{"", ""},
		{"a", "a"},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeName(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

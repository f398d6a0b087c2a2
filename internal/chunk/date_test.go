package chunk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDate_MarshalUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		yamlInput   string
		expectError bool
		expectedDay string // YYYY-MM-DD format
	}{
		{
			name:        "plain YYYY-MM-DD format",
			yamlInput:   `added_on: "2026-01-15"`,
			expectError: false,
			expectedDay: "2026-01-15",
		},
		{
			name:        "RFC3339 format",
			yamlInput:   `added_on: 2026-01-15T00:00:00Z`,
			expectError: false,
			expectedDay: "2026-01-15",
		},
		{
			name:        "RFC3339Nano format with timezone",
			yamlInput:   `added_on: 2026-01-15T20:05:49.744339678-07:00`,
			expectError: false,
			expectedDay: "2026-01-15",
		},
		{
			name:        "invalid format",
			yamlInput:   `added_on: "not-a-date"`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record struct {
				AddedOn Date `yaml:"added_on"`
			}

			err := yaml.Unmarshal([]byte(tt.yamlInput), &record)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedDay, record.AddedOn.Format("2006-01-02"))

			data, err := yaml.Marshal(record)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.expectedDay)
		})
	}
}

func TestNewDate(t *testing.T) {
	date := NewDate(time.Date(2026, 1, 15, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, "2026-01-15", date.Format("2006-01-02"))
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexigarden/lexigarden/internal/statistics"
)

func TestGranularityFlag_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    GranularityFlag
		wantErr bool
	}{
		{
			name:  "monthly",
			value: "monthly",
			want:  GranularityFlag(statistics.Monthly),
		},
		{
			name:  "weekly",
			value: "weekly",
			want:  GranularityFlag(statistics.Weekly),
		},
		{
			name:    "invalid value",
			value:   "daily",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag GranularityFlag
			err := flag.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid value")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, flag)
		})
	}
}

func TestGranularityFlag_String(t *testing.T) {
	tests := []struct {
		name string
		flag *GranularityFlag
		want string
	}{
		{
			name: "monthly",
			flag: func() *GranularityFlag { f := GranularityFlag(statistics.Monthly); return &f }(),
			want: "monthly",
		},
		{
			name: "weekly",
			flag: func() *GranularityFlag { f := GranularityFlag(statistics.Weekly); return &f }(),
			want: "weekly",
		},
		{
			name: "nil pointer",
			flag: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.flag.String())
		})
	}
}

func TestNewStatsCommand(t *testing.T) {
	cmd := newStatsCommand()

	assert.Equal(t, "stats", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	granularityFlag := cmd.Flags().Lookup("granularity")
	assert.NotNil(t, granularityFlag)
	assert.Equal(t, "monthly", granularityFlag.DefValue)

	yearFlag := cmd.Flags().Lookup("year")
	assert.NotNil(t, yearFlag)
	assert.Equal(t, "0", yearFlag.DefValue)

	monthFlag := cmd.Flags().Lookup("month")
	assert.NotNil(t, monthFlag)
	assert.Equal(t, "0", monthFlag.DefValue)
}

func TestNewStatsCommand_FlagValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "month without year",
			args:    []string{"--month", "3"},
			wantErr: "--month requires --year",
		},
		{
			name:    "month out of range",
			args:    []string{"--year", "2025", "--month", "13"},
			wantErr: "--month must be between 1 and 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newStatsCommand()
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

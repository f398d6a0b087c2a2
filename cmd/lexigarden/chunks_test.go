package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexigarden/lexigarden/internal/chunk"
)

func TestNewChunksCommand(t *testing.T) {
	cmd := newChunksCommand()

	assert.Equal(t, "chunks", cmd.Use)
	assert.True(t, cmd.HasSubCommands())
}

func TestDisplayValidationResults(t *testing.T) {
	tests := []struct {
		name   string
		result *chunk.ValidationResult
		want   []string
	}{
		{
			name:   "no errors or warnings",
			result: &chunk.ValidationResult{},
			want:   []string{"All validations passed!"},
		},
		{
			name: "pack index errors",
			result: &chunk.ValidationResult{
				Errors: []chunk.ValidationError{
					{File: "packs/animals/index.yml", Message: "pack has no name"},
				},
			},
			want: []string{"Pack Validation Errors (1)", "Pack index errors (1)", "pack has no name", "Total errors: 1"},
		},
		{
			name: "duplicate chunk ids",
			result: &chunk.ValidationResult{
				Errors: []chunk.ValidationError{
					{File: "packs/colors/chunks.yml", Location: "animal-cat", Message: `chunk id already used by pack "animals"`},
				},
			},
			want: []string{"Duplicate chunk ids (1)"},
		},
		{
			name: "chunk errors",
			result: &chunk.ValidationResult{
				Errors: []chunk.ValidationError{
					{File: "packs/animals/chunks.yml", Location: "chunk 2", Message: "chunk has no text"},
				},
			},
			want: []string{"Chunk errors (1)", "chunk has no text"},
		},
		{
			name: "warnings - ignored slots",
			result: &chunk.ValidationResult{
				Warnings: []chunk.ValidationError{
					{File: "packs/animals/chunks.yml", Location: "animal-cat", Message: "slots are ignored for polyword chunks"},
				},
			},
			want: []string{"Warnings (1)", "Ignored slots (1)", "Total warnings: 1"},
		},
		{
			name: "warnings - empty pack",
			result: &chunk.ValidationResult{
				Warnings: []chunk.ValidationError{
					{File: "packs/empty/index.yml", Message: "pack lists no chunk files"},
				},
			},
			want: []string{"Packs without chunk files (1)"},
		},
		{
			name: "warnings - other",
			result: &chunk.ValidationResult{
				Warnings: []chunk.ValidationError{
					{File: "packs/animals/chunks.yml", Message: "some other warning"},
				},
			},
			want: []string{"Other warnings (1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Capture stdout
			old := os.Stdout
			r, w, _ := os.Pipe()
			os.Stdout = w

			displayValidationResults(tt.result)

			w.Close()
			os.Stdout = old

			var buf bytes.Buffer
			_, _ = io.Copy(&buf, r)
			output := buf.String()

			for _, want := range tt.want {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestDisplayValidationResults_ManyChunkErrors(t *testing.T) {
	// Test truncation of chunk errors (>10)
	result := &chunk.ValidationResult{}
	for i := 0; i < 15; i++ {
		result.Errors = append(result.Errors, chunk.ValidationError{
			File:    "packs/animals/chunks.yml",
			Message: "chunk has no id",
		})
	}

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	displayValidationResults(result)

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	output := buf.String()

	assert.Contains(t, output, "... and 5 more")
}

func TestNewChunksValidateCommand_RunE_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	cmd := newChunksValidateCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}

func TestNewChunksValidateCommand_RunE(t *testing.T) {
	setConfigFile(t, setupPackConfigFile(t))

	cmd := newChunksValidateCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.NoError(t, err)
}

func TestNewChunksListCommand_RunE(t *testing.T) {
	setConfigFile(t, setupPackConfigFile(t))

	cmd := newChunksListCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.NoError(t, err)
}

func TestNewChunksListCommand_RunE_UnknownPack(t *testing.T) {
	setConfigFile(t, setupPackConfigFile(t))

	cmd := newChunksListCommand()
	cmd.SetArgs([]string{"--pack", "no-such-pack"})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `unknown pack "no-such-pack"`)
}

// Package chunk provides the curriculum content model: vocabulary chunks
// authored as YAML packs on disk, loaded into an in-memory catalog.
package chunk

import "fmt"

// ChunkType classifies what kind of language material a chunk is.
type ChunkType string

const (
	// TypePolyword is a fixed multi-word expression ("once upon a time").
	TypePolyword ChunkType = "polyword"
	// TypeCollocation is a conventional word pairing ("heavy rain").
	TypeCollocation ChunkType = "collocation"
	// TypeUtterance is a complete conversational move ("no way!").
	TypeUtterance ChunkType = "utterance"
	// TypeSentence is a full example sentence.
	TypeSentence ChunkType = "sentence"
	// TypeFrame is a sentence frame with slots ("can I have ___ please").
	TypeFrame ChunkType = "frame"
)

// IsValid reports whether the chunk type is one of the known values.
func (t ChunkType) IsValid() bool {
	switch t {
	case TypePolyword, TypeCollocation, TypeUtterance, TypeSentence, TypeFrame:
		return true
	}
	return false
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Slot is a fillable position in a frame chunk.
type Slot struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values,omitempty"`
}

// Chunk is one piece of learnable language material. Chunks are immutable
// content: the per-learner state lives elsewhere and references them by ID.
type Chunk struct {
	ID          string    `yaml:"id"`
	Text        string    `yaml:"text"`
	Translation string    `yaml:"translation,omitempty"`
	Type        ChunkType `yaml:"type"`

	// Difficulty ranges from MinDifficulty to MaxDifficulty.
	Difficulty int `yaml:"difficulty,omitempty"`

	// Frequency is the corpus rank; lower means more frequent.
	Frequency int `yaml:"frequency,omitempty"`

	// BaseIntervalDays optionally seeds the first review interval.
	BaseIntervalDays int `yaml:"base_interval_days,omitempty"`

	// Slots is only meaningful for frame chunks.
	Slots []Slot `yaml:"slots,omitempty"`

	Topics  []string `yaml:"topics,omitempty"`
	AddedOn Date     `yaml:"added_on,omitempty"`
}

// validate collects the findings for a single chunk. file and location tell
// the reader where the chunk came from.
func (c Chunk) validate(file, location string) []ValidationError {
	var errs []ValidationError
	add := func(message string, suggestions ...string) {
		errs = append(errs, ValidationError{
			File:        file,
			Location:    location,
			Message:     message,
			Severity:    "error",
			Suggestions: suggestions,
		})
	}

	if c.ID == "" {
		add("chunk has no id")
	}
	if c.Text == "" {
		add("chunk has no text")
	}
	if !c.Type.IsValid() {
		add(fmt.Sprintf("unknown chunk type %q", c.Type),
			"use one of polyword, collocation, utterance, sentence, frame")
	}
	if c.Difficulty != 0 && (c.Difficulty < MinDifficulty || c.Difficulty > MaxDifficulty) {
		add(fmt.Sprintf("difficulty %d outside %d-%d", c.Difficulty, MinDifficulty, MaxDifficulty))
	}
	if c.Frequency < 0 {
		add(fmt.Sprintf("negative frequency %d", c.Frequency))
	}
	if c.BaseIntervalDays < 0 {
		add(fmt.Sprintf("negative base interval %d", c.BaseIntervalDays))
	}
	if c.Type == TypeFrame && len(c.Slots) == 0 {
		add("frame chunk has no slots", "add a slots list or change the type")
	}
	for _, slot := range c.Slots {
		if slot.Name == "" {
			add("slot has no name")
		}
	}
	return errs
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexigarden/lexigarden/internal/chunk"
	"github.com/lexigarden/lexigarden/internal/service"
	"github.com/lexigarden/lexigarden/internal/srs"
	"github.com/lexigarden/lexigarden/internal/store"
)

// newTestCatalog writes two small packs to disk and loads them. The pack
// layout matches the authoring format: an index.yml next to its chunk files.
func newTestCatalog(t *testing.T) *chunk.Catalog {
	t.Helper()
	root := t.TempDir()

	writePack := func(dir, index, chunks string) {
		packDir := filepath.Join(root, dir)
		require.NoError(t, os.MkdirAll(packDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(packDir, "index.yml"), []byte(index), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(packDir, "chunks.yml"), []byte(chunks), 0o644))
	}

	writePack("animals",
		"id: animals\nname: Animals\ntarget_language: en\nnative_language: ja\nchunk_paths:\n  - chunks.yml\n",
		"- id: animal-cat\n  text: cat\n  translation: ねこ\n  type: polyword\n- id: animal-dog\n  text: dog\n  translation: いぬ\n  type: polyword\n")
	writePack("colors",
		"id: colors\nname: Colors\ntarget_language: en\nnative_language: ja\nchunk_paths:\n  - chunks.yml\n",
		"- id: color-red\n  text: red\n  translation: あか\n  type: polyword\n")

	catalog, err := chunk.NewCatalog([]string{root})
	require.NoError(t, err)
	return catalog
}

func TestRenderGarden(t *testing.T) {
	died := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		trees        []store.UserTree
		wantContains []string
	}{
		{
			name:         "empty garden",
			wantContains: []string{"The garden is empty"},
		},
		{
			name: "living and dead trees",
			trees: []store.UserTree{
				{SkillPathID: "animals", Status: "growing", GrowthStage: 6, Health: 80, SunDropsTotal: 145},
				{SkillPathID: "colors", Status: "dead", IsDead: true, GrowthStage: 2, SunDropsTotal: 30, DiedAt: &died},
			},
			wantContains: []string{
				"\U0001F33F", "animals", "stage  6/14", "health  80/100", "sun drops 145",
				"\U0001FAA6", "colors", "died on 2025-03-05, send a health gift or replant",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := &bytes.Buffer{}
			RenderGarden(output, tt.trees)
			for _, want := range tt.wantContains {
				assert.Contains(t, output.String(), want)
			}
		})
	}
}

func TestRenderDueQueue(t *testing.T) {
	catalog := newTestCatalog(t)

	t.Run("empty queue", func(t *testing.T) {
		output := &bytes.Buffer{}
		RenderDueQueue(output, nil, catalog.Chunk)
		assert.Contains(t, output.String(), "Nothing is due.")
	})

	t.Run("labels resolve through the catalog", func(t *testing.T) {
		queue := []service.DueChunk{
			{ChunkID: "animal-cat", State: srs.ChunkState{Status: srs.StatusLearning}},
			{ChunkID: "mystery-x", State: srs.ChunkState{Status: srs.StatusNew}},
		}
		output := &bytes.Buffer{}
		RenderDueQueue(output, queue, catalog.Chunk)
		assert.Contains(t, output.String(), " 1. cat (animal-cat)")
		assert.Contains(t, output.String(), "[learning]")
		assert.Contains(t, output.String(), "mystery-x")
		assert.Contains(t, output.String(), "[new]")
	})
}

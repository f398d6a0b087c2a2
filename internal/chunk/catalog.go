package chunk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// PackIndex is the index.yml at the root of one chunk pack directory.
type PackIndex struct {
	Kind           string   `yaml:"kind,omitempty"`
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	TargetLanguage string   `yaml:"target_language"`
	NativeLanguage string   `yaml:"native_language"`
	Topics         []string `yaml:"topics,omitempty"`
	ChunkPaths     []string `yaml:"chunk_paths"`

	path string
}

// Dir returns the directory the index was loaded from.
func (i PackIndex) Dir() string {
	return i.path
}

// Catalog holds every chunk pack found under the configured directories and
// resolves chunks by ID.
type Catalog struct {
	packs      map[string]PackIndex
	chunks     map[string]Chunk
	packChunks map[string][]string
}

// walkIndexFiles walks a directory and loads index.yml files into the map.
func walkIndexFiles(rootDir string, indexMap map[string]PackIndex) error {
	if rootDir == "" {
		return nil
	}

	return filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Base(path) != "index.yml" {
			return nil
		}

		index, err := readYamlFile[PackIndex](path)
		if err != nil {
			return err
		}
		index.path = filepath.Dir(path)
		indexMap[index.ID] = index
		return nil
	})
}

// NewCatalog loads all packs under the given directories. Loading fails on
// unreadable files; content problems are left for Validate so authors see
// all findings at once.
func NewCatalog(packDirectories []string) (*Catalog, error) {
	packs := make(map[string]PackIndex, 0)
	for _, dir := range packDirectories {
		if err := walkIndexFiles(dir, packs); err != nil {
			return nil, fmt.Errorf("walkIndexFiles(%s) > %w", dir, err)
		}
	}

	catalog := &Catalog{
		packs:      packs,
		chunks:     make(map[string]Chunk),
		packChunks: make(map[string][]string),
	}
	for _, pack := range packs {
		for _, chunkPath := range pack.ChunkPaths {
			path := filepath.Join(pack.path, chunkPath)
			chunks, err := readYamlFile[[]Chunk](path)
			if err != nil {
				return nil, fmt.Errorf("readYamlFile(%s) > %w", path, err)
			}
			for _, c := range chunks {
				if c.ID == "" {
					continue // Validate reports these
				}
				if _, ok := catalog.chunks[c.ID]; !ok {
					catalog.chunks[c.ID] = c
				}
				catalog.packChunks[pack.ID] = append(catalog.packChunks[pack.ID], c.ID)
			}
		}
	}
	return catalog, nil
}

// Chunk resolves a chunk by ID.
func (c *Catalog) Chunk(id string) (Chunk, bool) {
	found, ok := c.chunks[id]
	return found, ok
}

// Chunks returns every chunk in the catalog, ordered by ID.
func (c *Catalog) Chunks() []Chunk {
	ids := make([]string, 0, len(c.chunks))
	for id := range c.chunks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	chunks := make([]Chunk, 0, len(ids))
	for _, id := range ids {
		chunks = append(chunks, c.chunks[id])
	}
	return chunks
}

// Packs returns every pack index, ordered by ID.
func (c *Catalog) Packs() []PackIndex {
	packs := make([]PackIndex, 0, len(c.packs))
	for _, pack := range c.packs {
		packs = append(packs, pack)
	}
	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs
}

// PackChunks returns the chunks of one pack in authored order.
func (c *Catalog) PackChunks(packID string) ([]Chunk, error) {
	ids, ok := c.packChunks[packID]
	if !ok {
		if _, exists := c.packs[packID]; !exists {
			return nil, fmt.Errorf("unknown pack %q", packID)
		}
		return nil, nil
	}
	chunks := make([]Chunk, 0, len(ids))
	for _, id := range ids {
		chunks = append(chunks, c.chunks[id])
	}
	return chunks, nil
}

// Validate checks every pack and chunk and returns all findings.
func (c *Catalog) Validate() *ValidationResult {
	result := &ValidationResult{}

	seen := make(map[string]string) // chunk ID -> pack ID that first used it
	for _, pack := range c.Packs() {
		indexFile := filepath.Join(pack.path, "index.yml")
		if pack.Name == "" {
			result.AddError(ValidationError{File: indexFile, Message: "pack has no name"})
		}
		if pack.TargetLanguage == "" {
			result.AddError(ValidationError{File: indexFile, Message: "pack has no target_language"})
		}
		if pack.NativeLanguage == "" {
			result.AddError(ValidationError{File: indexFile, Message: "pack has no native_language"})
		}
		if len(pack.ChunkPaths) == 0 {
			result.AddWarning(ValidationError{File: indexFile, Message: "pack lists no chunk files"})
		}

		for _, chunkPath := range pack.ChunkPaths {
			file := filepath.Join(pack.path, chunkPath)
			chunks, err := readYamlFile[[]Chunk](file)
			if err != nil {
				result.AddError(ValidationError{File: file, Message: err.Error()})
				continue
			}
			for i, chunk := range chunks {
				location := fmt.Sprintf("chunk %d", i+1)
				if chunk.ID != "" {
					location = chunk.ID
				}
				for _, e := range chunk.validate(file, location) {
					result.AddError(e)
				}
				if chunk.ID == "" {
					continue
				}
				if firstPack, dup := seen[chunk.ID]; dup && firstPack != pack.ID {
					result.AddError(ValidationError{
						File:     file,
						Location: chunk.ID,
						Message:  fmt.Sprintf("chunk id already used by pack %q", firstPack),
					})
					continue
				}
				seen[chunk.ID] = pack.ID
				if chunk.Type != TypeFrame && len(chunk.Slots) > 0 {
					result.AddWarning(ValidationError{
						File:     file,
						Location: chunk.ID,
						Message:  fmt.Sprintf("slots are ignored for %s chunks", chunk.Type),
					})
				}
			}
		}
	}
	return result
}

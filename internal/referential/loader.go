// Package referential loads and validates the skill referential, tolerating
// missing or malformed files by falling back to a built-in payload.
package referential

import (
	_ "embed"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/skill-profiler/internal/types"
)

//go:embed referential.json
var defaultPayload []byte

//go:embed schema.json
var schemaPayload []byte

// Default returns the built-in referential shipped with the binary.
func Default() *types.Referential {
	var ref types.Referential
	if err := json.Unmarshal(defaultPayload, &ref); err != nil {
		// The embedded payload is fixed at compile time and covered by tests.
		panic("embedded referential is invalid: " + err.Error())
	}
	finalize(&ref)
	return &ref
}

// Load reads a referential JSON file. It never fails: a missing file is
// created from the minimal fallback, and an empty, unparsable or
// schema-invalid file is replaced by the minimal fallback in memory (with a
// best-effort rewrite on disk). The returned aggregate always has unique
// competency ids and positive block weights.
func Load(path string) *types.Referential {
	if path == "" {
		return Default()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Referential not found, creating %s", path)
		ref := minimalFallback()
		writeFallback(path, ref)
		finishFromDisk(ref, path)
		return ref
	}

	data, err := os.ReadFile(path)
	if err != nil || !validPayload(data) {
		log.Printf("Referential file %s is empty or invalid, using minimal fallback", path)
		ref := minimalFallback()
		writeFallback(path, ref)
		finishFromDisk(ref, path)
		return ref
	}

	var ref types.Referential
	if err := json.Unmarshal(data, &ref); err != nil {
		log.Printf("Referential file %s failed to decode, using minimal fallback", path)
		fallback := minimalFallback()
		writeFallback(path, fallback)
		finishFromDisk(fallback, path)
		return fallback
	}

	finalize(&ref)
	finishFromDisk(&ref, path)
	return &ref
}

// validPayload checks the raw bytes against the referential JSON schema.
func validPayload(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaPayload),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return false
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			log.Printf("Referential schema violation: %s", desc)
		}
		return false
	}
	return true
}

// finalize enforces load-time invariants: unique competency ids across the
// whole referential (first occurrence wins, duplicates dropped with a
// warning), back-filled block ids on competencies, and positive block
// weights (absent weights default to 1.0).
func finalize(ref *types.Referential) {
	seen := make(map[string]bool)
	for i := range ref.Blocks {
		block := &ref.Blocks[i]
		if block.Weight == 0 {
			block.Weight = 1.0
		}
		unique := block.Competencies[:0]
		for _, comp := range block.Competencies {
			if seen[comp.ID] {
				log.Printf("Duplicate competency id %s dropped (first occurrence wins)", comp.ID)
				continue
			}
			seen[comp.ID] = true
			comp.BlockID = block.ID
			unique = append(unique, comp)
		}
		block.Competencies = unique
	}
}

// finishFromDisk records the on-disk origin used by the embedding-cache
// signature.
func finishFromDisk(ref *types.Referential, path string) {
	ref.SourcePath = path
	if info, err := os.Stat(path); err == nil {
		ref.SourceModTime = info.ModTime()
	}
}

// minimalFallback is the smallest referential the pipeline can run against.
func minimalFallback() *types.Referential {
	ref := &types.Referential{
		Version:     "0.0.0",
		Description: "Auto-generated minimal referential",
		Blocks: []types.Block{
			{
				ID:          "B1",
				Name:        "Data Analyst",
				Description: "Default fallback block",
				Weight:      1.0,
				Competencies: []types.Competency{
					{ID: "C1", Name: "Data analysis", Description: "Exploratory data analysis", BlockID: "B1"},
				},
			},
		},
		Fallback: true,
	}
	return ref
}

// writeFallback best-effort persists the fallback so the next run finds a
// valid file. Write errors are ignored: the in-memory fallback is enough.
func writeFallback(path string, ref *types.Referential) {
	data, err := json.MarshalIndent(ref, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

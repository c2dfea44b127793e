package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jonathan/skill-profiler/internal/parsing"
	"github.com/jonathan/skill-profiler/internal/types"
)

// Vectors maps competency id to its embedding vector.
type Vectors map[string][]float32

// Cache computes and persists one vector per referential competency, keyed by
// a signature of (referential version, referential mtime, embedding model).
// The signature changes whenever the referential content or the model
// changes, so a stale cache can never survive a referential edit.
type Cache struct {
	dir      string
	provider Provider
}

// NewCache creates a cache rooted at dir, backed by the given provider.
func NewCache(dir string, provider Provider) *Cache {
	return &Cache{dir: dir, provider: provider}
}

// signature derives the cache key for a referential and the provider's model.
func (c *Cache) signature(ref *types.Referential) string {
	mtime := ""
	if !ref.SourceModTime.IsZero() {
		mtime = fmt.Sprintf("%d", ref.SourceModTime.UnixNano())
	}
	raw := fmt.Sprintf("%s_%s_%s", ref.Version, mtime, c.provider.ModelID())
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:16]
}

func (c *Cache) path(signature string) string {
	return filepath.Join(c.dir, "competency_embeddings_"+signature+".json")
}

// Load returns the competency vectors for ref, reusing the persisted cache
// when the signature is unchanged. An unreadable or corrupt cache file is
// rebuilt silently and overwritten; concurrent rebuilds for the same
// signature are safe because the output is deterministic (last writer wins).
func (c *Cache) Load(ctx context.Context, ref *types.Referential) (Vectors, error) {
	sig := c.signature(ref)
	file := c.path(sig)

	if data, err := os.ReadFile(file); err == nil {
		var vectors Vectors
		if err := json.Unmarshal(data, &vectors); err == nil {
			return vectors, nil
		}
		log.Printf("Corrupt embedding cache %s, rebuilding", file)
	}

	vectors, err := c.build(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := c.store(file, vectors); err != nil {
		// A write failure only costs a recompute next run.
		log.Printf("Failed to persist embedding cache: %v", err)
	}
	return vectors, nil
}

// build embeds every competency description in referential order.
func (c *Cache) build(ctx context.Context, ref *types.Referential) (Vectors, error) {
	var ids []string
	var texts []string
	for _, block := range ref.Blocks {
		for _, comp := range block.Competencies {
			ids = append(ids, comp.ID)
			texts = append(texts, parsing.NormalizeText(comp.Name+". "+comp.Description))
		}
	}

	embedded, err := c.provider.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed competencies: %w", err)
	}
	if len(embedded) != len(ids) {
		return nil, fmt.Errorf("embedding count mismatch: got %d for %d competencies", len(embedded), len(ids))
	}

	vectors := make(Vectors, len(ids))
	for i, id := range ids {
		vectors[id] = embedded[i]
	}
	return vectors, nil
}

func (c *Cache) store(file string, vectors Vectors) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(vectors)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0o644)
}

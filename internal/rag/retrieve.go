// Package rag retrieves referential snippets semantically relevant to the
// user's free-text answers, used to ground downstream text generation.
package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/skill-profiler/internal/embedding"
	"github.com/jonathan/skill-profiler/internal/parsing"
	"github.com/jonathan/skill-profiler/internal/types"
)

// DefaultTopK is the default number of snippets returned.
const DefaultTopK = 5

// Snippet is one retrieved grounding chunk: a human-readable composite of
// competency name, block name and description, with its similarity to the
// query. Not used in scoring.
type Snippet struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// RetrieveContext embeds the concatenation of all free-text answers and ranks
// every referential competency by cosine similarity against its cached
// vector, returning the topK best snippets. Empty query text yields an empty
// list, not an error. topK <= 0 selects DefaultTopK.
func RetrieveContext(
	ctx context.Context,
	queryTexts []string,
	ref *types.Referential,
	vectors embedding.Vectors,
	provider embedding.Provider,
	topK int,
) ([]Snippet, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	query := parsing.NormalizeText(strings.Join(queryTexts, " "))
	if query == "" {
		return []Snippet{}, nil
	}

	embedded, err := provider.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embedded) == 0 {
		return []Snippet{}, nil
	}
	queryVector := embedded[0]

	var snippets []Snippet
	for _, block := range ref.Blocks {
		for _, comp := range block.Competencies {
			vector, cached := vectors[comp.ID]
			if !cached {
				continue
			}
			snippets = append(snippets, Snippet{
				Text:       fmt.Sprintf("%s (%s) - %s", comp.Name, block.Name, comp.Description),
				Similarity: embedding.CosineSimilarity(queryVector, vector),
			})
		}
	}

	sort.SliceStable(snippets, func(i, j int) bool {
		return snippets[i].Similarity > snippets[j].Similarity
	})

	if len(snippets) > topK {
		snippets = snippets[:topK]
	}
	return snippets, nil
}

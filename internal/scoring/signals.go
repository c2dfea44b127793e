// Package scoring turns questionnaire answers into normalized competency and
// block scores.
package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/skill-profiler/internal/embedding"
	"github.com/jonathan/skill-profiler/internal/parsing"
	"github.com/jonathan/skill-profiler/internal/types"
)

// ratingScoreMap is a fixed non-linear mapping from the 1..5 self-report
// scale to a score. It compresses the low and high ends and separates the
// mid-scale, modeling typical self-report bias. Behavioral constant, do not
// retune without product sign-off.
var ratingScoreMap = map[int]float64{
	1: 0.08,
	2: 0.25,
	3: 0.55,
	4: 0.78,
	5: 0.95,
}

// Length bonus for open-text answers: up to lengthBonusCap, earned at
// lengthBonusWords words across all answers.
const (
	lengthBonusWords = 300
	lengthBonusCap   = 0.1
)

// ScoreRatings scores rating-scale answers. When a competency is linked to
// several questions, the max wins: one confident answer should not be diluted
// by an unrelated lower one. Unanswered questions contribute nothing.
func ScoreRatings(responses *types.UserResponses, ref *types.Referential) types.CompetencyScores {
	scores := make(types.CompetencyScores)
	for _, q := range ref.Questions.Rating {
		value, answered := responses.Ratings[q.ID]
		if !answered {
			continue
		}
		score, known := ratingScoreMap[value]
		if !known {
			// Out-of-scale answers fall back to a linear mapping.
			score = float64(value) / 5
		}
		for _, compID := range q.CompetencyIDs {
			if score > scores[compID] {
				scores[compID] = score
			}
		}
	}
	return scores
}

// ScoreChoices scores multi-select answers: relevance is the fraction of
// options selected, capped at 1. The same max-across-questions rule applies.
func ScoreChoices(responses *types.UserResponses, ref *types.Referential) types.CompetencyScores {
	scores := make(types.CompetencyScores)
	for _, q := range ref.Questions.Choice {
		selected := responses.Choices[q.ID]
		if len(selected) == 0 {
			continue
		}
		total := len(q.Options)
		if total == 0 {
			total = 1
		}
		relevance := float64(len(selected)) / float64(total)
		if relevance > 1.0 {
			relevance = 1.0
		}
		for _, compID := range q.CompetencyIDs {
			if relevance > scores[compID] {
				scores[compID] = relevance
			}
		}
	}
	return scores
}

// ScoreOpenTexts scores free-text answers semantically: each competency gets
// the mean cosine similarity between its cached vector and every answer
// vector, clipped to [0,1], plus a small length bonus. With no non-empty text
// every known competency scores an explicit 0, not "unknown".
func ScoreOpenTexts(
	ctx context.Context,
	responses *types.UserResponses,
	vectors embedding.Vectors,
	provider embedding.Provider,
) (types.CompetencyScores, error) {
	var texts []string
	for _, t := range responses.OpenTextValues() {
		if normalized := parsing.NormalizeText(t); normalized != "" {
			texts = append(texts, normalized)
		}
	}

	scores := make(types.CompetencyScores, len(vectors))
	if len(texts) == 0 {
		for compID := range vectors {
			scores[compID] = 0.0
		}
		return scores, nil
	}

	answerVectors, err := provider.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed open answers: %w", err)
	}

	lengthBonus := float64(parsing.CountWords(strings.Join(texts, " "))) / lengthBonusWords
	if lengthBonus > lengthBonusCap {
		lengthBonus = lengthBonusCap
	}

	for compID, compVector := range vectors {
		var total float64
		for _, av := range answerVectors {
			total += embedding.CosineSimilarity(av, compVector)
		}
		base := clip(total / float64(len(answerVectors)))
		scores[compID] = min(base+lengthBonus, 1.0)
	}
	return scores, nil
}

// clip bounds a score to [0,1].
func clip(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

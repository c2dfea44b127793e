// Package ranking recommends job roles against computed competency and block
// scores.
package ranking

import (
	"sort"

	"github.com/jonathan/skill-profiler/internal/types"
)

// Blend weights for the final role score and the threshold-penalty floor.
// Behavioral constants, do not retune without product sign-off.
const (
	blockComponentWeight = 0.55
	coverageWeight       = 0.45
	penaltyFloor         = 0.45
)

// Compatibility tier cut-offs, inclusive on the lower bound.
const (
	tierExcellentMin = 0.60
	tierGoodMin      = 0.45
	tierMediumMin    = 0.30
)

// missingThreshold marks a required competency as missing when its score is
// strictly below this value.
const missingThreshold = 0.35

// maxRecommendations caps the returned shortlist.
const maxRecommendations = 3

// RecommendRoles ranks every role in the referential and returns the top 3
// (or fewer if fewer roles exist), sorted descending by final score. Exact
// ties preserve referential order. A role whose minimum threshold exceeds the
// user's overall mean score is penalized, but never below a 0.45x floor, so a
// large gap dims a role without eliminating it.
func RecommendRoles(
	blockScores []types.BlockScore,
	scores types.CompetencyScores,
	ref *types.Referential,
) []types.Recommendation {
	blockMap := make(map[string]float64, len(blockScores))
	for _, bs := range blockScores {
		blockMap[bs.BlockID] = bs.Score
	}
	overallMean := meanOf(scores)

	recommendations := make([]types.Recommendation, 0, len(ref.Roles))
	for _, role := range ref.Roles {
		coverage := 0.0
		if len(role.RequiredCompetencyIDs) > 0 {
			total := 0.0
			for _, compID := range role.RequiredCompetencyIDs {
				total += scores[compID]
			}
			coverage = total / float64(len(role.RequiredCompetencyIDs))
		}

		blockComponent := 0.0
		if len(role.KeyBlockIDs) > 0 {
			total := 0.0
			for _, blockID := range role.KeyBlockIDs {
				total += blockMap[blockID]
			}
			blockComponent = total / float64(len(role.KeyBlockIDs))
		}

		final := blockComponentWeight*blockComponent + coverageWeight*coverage

		if overallMean < role.MinimumThreshold {
			gap := role.MinimumThreshold - overallMean
			multiplier := 1 - gap
			if multiplier < penaltyFloor {
				multiplier = penaltyFloor
			}
			final *= multiplier
		}
		final = clip(final)

		var missing []string
		for _, compID := range role.RequiredCompetencyIDs {
			if scores[compID] < missingThreshold {
				missing = append(missing, compID)
			}
		}

		recommendations = append(recommendations, types.Recommendation{
			Role:                role,
			Score:               final,
			CoverageScore:       coverage,
			MissingCompetencies: missing,
			Compatibility:       classify(final),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

// classify buckets a final score into a compatibility tier.
func classify(score float64) types.CompatibilityTier {
	switch {
	case score >= tierExcellentMin:
		return types.TierExcellent
	case score >= tierGoodMin:
		return types.TierGood
	case score >= tierMediumMin:
		return types.TierMedium
	default:
		return types.TierWeak
	}
}

func meanOf(scores types.CompetencyScores) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

func clip(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

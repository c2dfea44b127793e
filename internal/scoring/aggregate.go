package scoring

import (
	"github.com/jonathan/skill-profiler/internal/clustering"
	"github.com/jonathan/skill-profiler/internal/types"
)

// Signal weights for the aggregated competency score. Open text is weighted
// highest because it carries the richest signal. Behavioral constants, do not
// retune without product sign-off.
const (
	ratingWeight   = 0.25
	openTextWeight = 0.55
	choiceWeight   = 0.15
)

// ParticipationBonus is a small flat credit applied when the user answered at
// least one question of any type, independent of content.
const ParticipationBonus = 0.06

// Aggregate combines the three signal score maps over the union of all
// competency ids, adds the participation bonus, clips to [0,1], then applies
// cluster fusion as a final pass so fusion always sees settled raw scores.
func Aggregate(
	ratings, openTexts, choices types.CompetencyScores,
	participation float64,
	clusters clustering.ClusterSet,
) types.CompetencyScores {
	ids := make(map[string]struct{})
	for id := range ratings {
		ids[id] = struct{}{}
	}
	for id := range openTexts {
		ids[id] = struct{}{}
	}
	for id := range choices {
		ids[id] = struct{}{}
	}

	raw := make(types.CompetencyScores, len(ids))
	for id := range ids {
		score := ratingWeight*ratings[id] +
			openTextWeight*openTexts[id] +
			choiceWeight*choices[id] +
			participation
		raw[id] = clip(score)
	}

	return clusters.Fuse(raw)
}

package scoring

import (
	"sort"

	"github.com/jonathan/skill-profiler/internal/types"
)

// Block aggregation blends the mean of all member scores with the mean of the
// top few, rewarding blocks with a few strong signals without ignoring
// breadth.
const (
	blockMeanAllWeight = 0.6
	blockMeanTopWeight = 0.4
	blockTopCount      = 3
)

// ComputeBlockScores aggregates competency scores per block, in referential
// order. Unscored members default to 0; a block with no members scores
// exactly 0. The blended average is scaled by the block's weight and clipped.
func ComputeBlockScores(scores types.CompetencyScores, ref *types.Referential) []types.BlockScore {
	blockScores := make([]types.BlockScore, 0, len(ref.Blocks))
	for _, block := range ref.Blocks {
		memberScores := make(types.CompetencyScores, len(block.Competencies))
		values := make([]float64, 0, len(block.Competencies))
		for _, comp := range block.Competencies {
			s := scores[comp.ID]
			memberScores[comp.ID] = s
			values = append(values, s)
		}

		score := 0.0
		if len(values) > 0 {
			sort.Sort(sort.Reverse(sort.Float64Slice(values)))
			topN := blockTopCount
			if len(values) < topN {
				topN = len(values)
			}
			raw := blockMeanAllWeight*mean(values) + blockMeanTopWeight*mean(values[:topN])
			score = clip(raw * block.Weight)
		}

		blockScores = append(blockScores, types.BlockScore{
			BlockID:          block.ID,
			BlockName:        block.Name,
			Score:            score,
			CompetencyScores: memberScores,
		})
	}
	return blockScores
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

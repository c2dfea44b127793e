package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-profiler/internal/clustering"
	"github.com/jonathan/skill-profiler/internal/embedding"
	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/types"
)

// stubEmbedder produces deterministic vectors keyed on text length so cache
// builds and answer embeddings are stable across runs.
type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text)%7) + 1, 1}
	}
	return vectors, nil
}

func (stubEmbedder) ModelID() string { return "stub-model" }

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(_ context.Context, _ string, _ int) (string, error) {
	return s.text, s.err
}

func (s *stubGenerator) Close() error { return nil }

func pipelineReferential() *types.Referential {
	return &types.Referential{
		Version: "test",
		Blocks: []types.Block{
			{
				ID: "B1", Name: "Analysis", Weight: 1.0,
				Competencies: []types.Competency{
					{ID: "C1", Name: "Data cleaning", Description: "Preprocessing", BlockID: "B1"},
					{ID: "C2", Name: "Visualization", Description: "Charts", BlockID: "B1"},
				},
			},
			{
				ID: "B2", Name: "Engineering", Weight: 1.0,
				Competencies: []types.Competency{
					{ID: "C3", Name: "Pipelines", Description: "Orchestration", BlockID: "B2"},
				},
			},
		},
		Roles: []types.Role{
			{ID: "M1", Title: "Data Analyst", RequiredCompetencyIDs: []string{"C1", "C2"}, KeyBlockIDs: []string{"B1"}},
			{ID: "M2", Title: "Data Engineer", RequiredCompetencyIDs: []string{"C3"}, KeyBlockIDs: []string{"B2"}},
		},
		Questions: types.Questions{
			Rating: []types.RatingQuestion{
				{ID: "L1", CompetencyIDs: []string{"C1"}},
				{ID: "L2", CompetencyIDs: []string{"C2"}},
				{ID: "L3", CompetencyIDs: []string{"C3"}},
			},
			Open: []types.OpenQuestion{{ID: "O1"}},
			Choice: []types.ChoiceQuestion{
				{ID: "Q1", Options: []string{"a", "b"}, CompetencyIDs: []string{"C1"}},
			},
		},
	}
}

func newTestPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	if opts.Clusters == nil {
		// The fixture has no near-duplicate competencies.
		opts.Clusters = clustering.ClusterSet{}
	}
	cache := embedding.NewCache(t.TempDir(), stubEmbedder{})
	p, err := New(context.Background(), pipelineReferential(), stubEmbedder{}, cache, opts)
	require.NoError(t, err)
	return p
}

func TestAnalyze_FullScoringPath(t *testing.T) {
	p := newTestPipeline(t, Options{})
	responses := &types.UserResponses{
		Ratings:   map[string]int{"L1": 5, "L2": 4, "L3": 1},
		OpenTexts: map[string]string{"O1": "cleaning messy datasets and building charts"},
		Choices:   map[string][]string{"Q1": {"a", "b"}},
	}

	result, err := p.Analyze(context.Background(), responses)
	require.NoError(t, err)

	require.Len(t, result.BlockScores, 2)
	assert.Equal(t, "B1", result.BlockScores[0].BlockID)
	assert.Greater(t, result.BlockScores[0].Score, result.BlockScores[1].Score)

	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "M1", result.Recommendations[0].Role.ID)

	assert.Greater(t, result.GlobalScore, 0.0)
	assert.LessOrEqual(t, result.GlobalScore, 1.0)
	assert.Empty(t, result.ProgressionPlan, "Analyze must not generate text")
}

func TestAnalyze_EmptyResponses(t *testing.T) {
	p := newTestPipeline(t, Options{})

	result, err := p.Analyze(context.Background(), &types.UserResponses{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.GlobalScore)
	for _, bs := range result.BlockScores {
		assert.Equal(t, 0.0, bs.Score)
	}
	assert.Len(t, result.Recommendations, 2)
	for _, rec := range result.Recommendations {
		assert.Equal(t, 0.0, rec.Score)
		assert.Equal(t, types.TierWeak, rec.Compatibility)
	}
	assert.Empty(t, result.StrongCompetencies)
	assert.Len(t, result.WeakCompetencies, 3)
}

func TestRun_SkipGeneration(t *testing.T) {
	p := newTestPipeline(t, Options{Generator: &stubGenerator{text: "should not be called"}})
	responses := &types.UserResponses{Ratings: map[string]int{"L1": 5}}

	result, err := p.Run(context.Background(), responses, false)
	require.NoError(t, err)

	assert.Empty(t, result.ProgressionPlan)
	assert.Empty(t, result.ProfessionalBio)
}

func TestRun_WithGeneration(t *testing.T) {
	p := newTestPipeline(t, Options{Generator: &stubGenerator{text: "generated output"}})
	responses := &types.UserResponses{
		Ratings:   map[string]int{"L1": 5},
		OpenTexts: map[string]string{"O1": "years of data experience"},
	}

	result, err := p.Run(context.Background(), responses, true)
	require.NoError(t, err)

	assert.Equal(t, "generated output", result.ProgressionPlan)
	assert.Equal(t, "generated output", result.ProfessionalBio)
}

func TestRun_GenerationFailureFallsBack(t *testing.T) {
	p := newTestPipeline(t, Options{Generator: &stubGenerator{err: errors.New("quota exceeded")}})
	responses := &types.UserResponses{Ratings: map[string]int{"L1": 5}}

	result, err := p.Run(context.Background(), responses, true)
	require.NoError(t, err)

	assert.Equal(t, llm.FallbackPlan, result.ProgressionPlan)
	assert.Equal(t, llm.FallbackBio, result.ProfessionalBio)
}

func TestRun_NoGeneratorUsesFallbacks(t *testing.T) {
	p := newTestPipeline(t, Options{})
	responses := &types.UserResponses{Ratings: map[string]int{"L1": 5}}

	result, err := p.Run(context.Background(), responses, true)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.ProgressionPlan, "[GENERATION UNAVAILABLE]"))
	assert.True(t, strings.HasPrefix(result.ProfessionalBio, "[GENERATION UNAVAILABLE]"))
}

func TestSummarizeCompetencies_ThresholdsAndOrder(t *testing.T) {
	names := map[string]string{
		"C1": "Data cleaning",
		"C2": "Visualization",
		"C3": "Pipelines",
		"C4": "Modeling",
	}
	scores := types.CompetencyScores{
		"C1": 0.9,
		"C2": 0.6,
		"C3": 0.4, // neither strong nor weak
		"C4": 0.1,
	}

	strong, weak := summarizeCompetencies(scores, names)

	assert.Equal(t, []string{"Data cleaning", "Visualization"}, strong)
	assert.Equal(t, []string{"Modeling"}, weak)
}

func TestSummarizeCompetencies_TiesBreakOnID(t *testing.T) {
	scores := types.CompetencyScores{
		"C2": 0.7,
		"C1": 0.7,
	}

	strong, _ := summarizeCompetencies(scores, nil)

	assert.Equal(t, []string{"C1", "C2"}, strong)
}

func TestSummarizeCompetencies_CapsAtFive(t *testing.T) {
	scores := make(types.CompetencyScores)
	for _, id := range []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7"} {
		scores[id] = 0.8
	}

	strong, _ := summarizeCompetencies(scores, nil)

	assert.Len(t, strong, 5)
}

func TestReferential_Accessor(t *testing.T) {
	p := newTestPipeline(t, Options{})

	assert.Equal(t, "test", p.Referential().Version)
}

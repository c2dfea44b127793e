// Package pipeline orchestrates the full analysis: signal scoring,
// aggregation, block scoring, role recommendation and the optional
// generation stage.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-profiler/internal/clustering"
	"github.com/jonathan/skill-profiler/internal/embedding"
	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/prompts"
	"github.com/jonathan/skill-profiler/internal/rag"
	"github.com/jonathan/skill-profiler/internal/ranking"
	"github.com/jonathan/skill-profiler/internal/scoring"
	"github.com/jonathan/skill-profiler/internal/types"
)

// Thresholds and caps for the strong/weak competency summaries.
const (
	strongThreshold     = 0.55
	weakThreshold       = 0.35
	summaryCompetencies = 5
)

// Token budgets for the two generation calls.
const (
	planMaxTokens = 320
	bioMaxTokens  = 120
)

// Options configures a Pipeline.
type Options struct {
	// Generator is the optional text-generation client; nil disables
	// generation and selects the static fallbacks.
	Generator llm.Client
	// Clusters overrides the default near-duplicate competency clusters.
	Clusters clustering.ClusterSet
	// TopK is the number of RAG snippets retrieved; <= 0 uses the default.
	TopK int
}

// Pipeline runs analyses against one referential with injected capability
// providers. Construct once at process start and share across requests: the
// referential and competency vectors are read-only after New returns.
type Pipeline struct {
	ref       *types.Referential
	embedder  embedding.Provider
	vectors   embedding.Vectors
	generator llm.Client
	clusters  clustering.ClusterSet
	topK      int
}

// New builds a Pipeline, loading (or computing) the competency embedding
// cache up front.
func New(ctx context.Context, ref *types.Referential, embedder embedding.Provider, cache *embedding.Cache, opts Options) (*Pipeline, error) {
	vectors, err := cache.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load competency embeddings: %w", err)
	}

	clusters := opts.Clusters
	if clusters == nil {
		clusters = clustering.DefaultClusters()
	}

	return &Pipeline{
		ref:       ref,
		embedder:  embedder,
		vectors:   vectors,
		generator: opts.Generator,
		clusters:  clusters,
		topK:      opts.TopK,
	}, nil
}

// Analyze runs the scoring path: the three signal scorers, aggregation with
// cluster fusion, block scoring and role recommendation. The result carries
// no generated text; Enrich attaches it in a second pass.
func (p *Pipeline) Analyze(ctx context.Context, responses *types.UserResponses) (*types.AnalysisResult, error) {
	ratingScores := scoring.ScoreRatings(responses, p.ref)
	choiceScores := scoring.ScoreChoices(responses, p.ref)
	openScores, err := scoring.ScoreOpenTexts(ctx, responses, p.vectors, p.embedder)
	if err != nil {
		return nil, err
	}

	participation := 0.0
	if responses.HasAnyAnswer() {
		participation = scoring.ParticipationBonus
	}

	competencyScores := scoring.Aggregate(ratingScores, openScores, choiceScores, participation, p.clusters)
	blockScores := scoring.ComputeBlockScores(competencyScores, p.ref)
	recommendations := ranking.RecommendRoles(blockScores, competencyScores, p.ref)

	strong, weak := summarizeCompetencies(competencyScores, p.ref.CompetencyNames())

	return &types.AnalysisResult{
		BlockScores:        blockScores,
		Recommendations:    recommendations,
		StrongCompetencies: strong,
		WeakCompetencies:   weak,
		GlobalScore:        meanOf(competencyScores),
	}, nil
}

// Enrich retrieves grounding context, builds the generation prompts and
// attaches the progression plan and professional bio. Generation failures
// degrade to deterministic static fallbacks and never fail the analysis.
func (p *Pipeline) Enrich(ctx context.Context, result *types.AnalysisResult, responses *types.UserResponses) {
	snippets, err := rag.RetrieveContext(ctx, responses.OpenTextValues(), p.ref, p.vectors, p.embedder, p.topK)
	if err != nil {
		log.Printf("Context retrieval failed, generating without grounding: %v", err)
		snippets = nil
	}

	planPrompt := prompts.BuildProgressionPrompt(result, snippets)
	bioPrompt := prompts.BuildBioPrompt(result, responses)

	var planOutcome, bioOutcome llm.Outcome
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		planOutcome = llm.Generate(gctx, p.generator, planPrompt, planMaxTokens)
		return nil
	})
	g.Go(func() error {
		bioOutcome = llm.Generate(gctx, p.generator, bioPrompt, bioMaxTokens)
		return nil
	})
	_ = g.Wait()

	if !planOutcome.OK() {
		log.Printf("Plan generation unavailable (%s), using static fallback", planOutcome.FailureReason)
	}
	if !bioOutcome.OK() {
		log.Printf("Bio generation unavailable (%s), using static fallback", bioOutcome.FailureReason)
	}

	result.ProgressionPlan = planOutcome.TextOr(llm.FallbackPlan)
	result.ProfessionalBio = bioOutcome.TextOr(llm.FallbackBio)
}

// Run executes the full pipeline. includeGeneration=false skips the
// generation stage entirely while still returning full scoring output.
func (p *Pipeline) Run(ctx context.Context, responses *types.UserResponses, includeGeneration bool) (*types.AnalysisResult, error) {
	result, err := p.Analyze(ctx, responses)
	if err != nil {
		return nil, err
	}
	if includeGeneration {
		p.Enrich(ctx, result, responses)
	}
	return result, nil
}

// Referential exposes the referential the pipeline was built against.
func (p *Pipeline) Referential() *types.Referential {
	return p.ref
}

// summarizeCompetencies picks the top-5 strong (score >= 0.55) and weak
// (score < 0.35) competency names, strongest first. Ties break on id so the
// output is deterministic.
func summarizeCompetencies(scores types.CompetencyScores, names map[string]string) (strong, weak []string) {
	type scored struct {
		id    string
		score float64
	}
	sorted := make([]scored, 0, len(scores))
	for id, s := range scores {
		sorted = append(sorted, scored{id: id, score: s})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].score != sorted[j].score {
			return sorted[i].score > sorted[j].score
		}
		return sorted[i].id < sorted[j].id
	})

	for _, entry := range sorted {
		label := names[entry.id]
		if label == "" {
			label = entry.id
		}
		switch {
		case entry.score >= strongThreshold && len(strong) < summaryCompetencies:
			strong = append(strong, label)
		case entry.score < weakThreshold && len(weak) < summaryCompetencies:
			weak = append(weak, label)
		}
	}
	return strong, weak
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

package types

// CompetencyScores maps competency id to a score in [0,1]. Derived per
// analysis; after cluster fusion every id in a cluster shares one value.
type CompetencyScores map[string]float64

// CompatibilityTier buckets a recommendation's final score.
type CompatibilityTier string

// Compatibility tiers, inclusive on the lower bound of each tier.
const (
	TierExcellent CompatibilityTier = "excellent"
	TierGood      CompatibilityTier = "good"
	TierMedium    CompatibilityTier = "medium"
	TierWeak      CompatibilityTier = "weak"
)

// BlockScore is the aggregated score of one block together with the
// per-competency scores that produced it.
type BlockScore struct {
	BlockID          string           `json:"block_id"`
	BlockName        string           `json:"block_name"`
	Score            float64          `json:"score"`
	CompetencyScores CompetencyScores `json:"competency_scores"`
}

// Recommendation is one ranked role candidate.
type Recommendation struct {
	Role                Role              `json:"role"`
	Score               float64           `json:"score"`
	CoverageScore       float64           `json:"coverage_score"`
	MissingCompetencies []string          `json:"missing_competencies"`
	Compatibility       CompatibilityTier `json:"compatibility"`
}

// AnalysisResult aggregates everything one "analyze" invocation produces.
// Immutable after construction except the two generation fields, which may be
// attached in a second pass.
type AnalysisResult struct {
	BlockScores        []BlockScore     `json:"block_scores"`
	Recommendations    []Recommendation `json:"recommendations"`
	StrongCompetencies []string         `json:"strong_competencies"`
	WeakCompetencies   []string         `json:"weak_competencies"`
	GlobalScore        float64          `json:"global_score"`
	ProgressionPlan    string           `json:"progression_plan,omitempty"`
	ProfessionalBio    string           `json:"professional_bio,omitempty"`
}

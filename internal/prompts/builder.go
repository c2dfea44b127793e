package prompts

import (
	"fmt"
	"strings"

	"github.com/jonathan/skill-profiler/internal/rag"
	"github.com/jonathan/skill-profiler/internal/types"
)

const generationFile = "generation.json"

// bioExperienceLimit truncates the open-text excerpt fed into the bio prompt.
const bioExperienceLimit = 600

// BuildProgressionPrompt assembles the progression-plan prompt from the top
// recommendation, the strong/weak competency lists and the retrieved context
// snippets. Pure string assembly, no side effects.
func BuildProgressionPrompt(result *types.AnalysisResult, context []rag.Snippet) string {
	var lines []string
	for _, snippet := range context {
		lines = append(lines, fmt.Sprintf("- %s (sim=%.2f)", snippet.Text, snippet.Similarity))
	}

	return Format(MustGet(generationFile, "progression_plan"), map[string]string{
		"TargetRole": topRoleTitle(result, "Data profile"),
		"Strengths":  joinOr(result.StrongCompetencies, "to be clarified"),
		"Weaknesses": joinOr(result.WeakCompetencies, "no major gap"),
		"Context":    strings.Join(lines, "\n"),
	})
}

// BuildBioPrompt assembles the professional-bio prompt from the top
// recommendation, the global score and a truncated slice of the user's
// open-text answers.
func BuildBioPrompt(result *types.AnalysisResult, responses *types.UserResponses) string {
	texts := responses.OpenTextValues()
	if len(texts) > 2 {
		texts = texts[:2]
	}
	experience := strings.Join(texts, " ")
	if runes := []rune(experience); len(runes) > bioExperienceLimit {
		experience = string(runes[:bioExperienceLimit])
	}

	return Format(MustGet(generationFile, "professional_bio"), map[string]string{
		"TargetRole":  topRoleTitle(result, "Data/AI"),
		"Strengths":   joinOr(result.StrongCompetencies, "fast learning"),
		"GlobalScore": fmt.Sprintf("%d", int(result.GlobalScore*100)),
		"Experience":  experience,
	})
}

func topRoleTitle(result *types.AnalysisResult, fallback string) string {
	if len(result.Recommendations) > 0 {
		return result.Recommendations[0].Role.Title
	}
	return fallback
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

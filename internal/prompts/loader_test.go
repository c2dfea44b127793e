package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ExistingTemplates(t *testing.T) {
	plan, err := Get("generation.json", "progression_plan")
	require.NoError(t, err)
	assert.Contains(t, plan, "{{.TargetRole}}")
	assert.Contains(t, plan, "{{.Context}}")

	bio, err := Get("generation.json", "professional_bio")
	require.NoError(t, err)
	assert.Contains(t, bio, "{{.GlobalScore}}")
	assert.Contains(t, bio, "{{.Experience}}")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("generation.json", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "progression_plan")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("generation.json", "nonexistent")
	})
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	result := Format("Role: {{.Role}}, Score: {{.Score}}", map[string]string{
		"Role":  "Analyst",
		"Score": "72",
	})

	assert.Equal(t, "Role: Analyst, Score: 72", result)
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	result := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "x"})

	assert.Equal(t, "x and {{.Unknown}}", result)
}

package referential

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-profiler/internal/types"
)

func TestDefault_EmbeddedReferential(t *testing.T) {
	ref := Default()

	assert.NotEmpty(t, ref.Version)
	require.NotEmpty(t, ref.Blocks)
	assert.NotEmpty(t, ref.Roles)
	assert.NotEmpty(t, ref.Questions.Rating)
	assert.NotEmpty(t, ref.Questions.Open)
	assert.NotEmpty(t, ref.Questions.Choice)
	assert.False(t, ref.Fallback)

	for _, block := range ref.Blocks {
		assert.Greater(t, block.Weight, 0.0, "block %s", block.ID)
		for _, comp := range block.Competencies {
			assert.Equal(t, block.ID, comp.BlockID)
		}
	}
}

func TestDefault_UniqueCompetencyIDs(t *testing.T) {
	ref := Default()

	seen := make(map[string]bool)
	for _, comp := range ref.Competencies() {
		assert.False(t, seen[comp.ID], "duplicate competency id %s", comp.ID)
		seen[comp.ID] = true
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	ref := Load("")

	assert.Equal(t, Default().Version, ref.Version)
	assert.False(t, ref.Fallback)
}

func TestLoad_MissingFileCreatesFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "referential.json")

	ref := Load(path)

	assert.True(t, ref.Fallback)
	assert.Equal(t, "0.0.0", ref.Version)
	require.Len(t, ref.Blocks, 1)
	assert.Equal(t, path, ref.SourcePath)

	// The fallback is persisted so the next run finds a valid file.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk types.Referential
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, "0.0.0", onDisk.Version)
}

func TestLoad_CorruptFileUsesFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "referential.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	ref := Load(path)

	assert.True(t, ref.Fallback)
	assert.Equal(t, "0.0.0", ref.Version)
}

func TestLoad_EmptyFileUsesFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "referential.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	ref := Load(path)

	assert.True(t, ref.Fallback)
}

func TestLoad_SchemaInvalidUsesFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "referential.json")
	// Valid JSON but missing the required blocks array.
	require.NoError(t, os.WriteFile(path, []byte(`{"version": "9.9.9"}`), 0o644))

	ref := Load(path)

	assert.True(t, ref.Fallback)
	assert.NotEqual(t, "9.9.9", ref.Version)
}

func TestLoad_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "referential.json")
	payload := `{
		"version": "2.0.0",
		"blocks": [
			{
				"id": "B1",
				"name": "Custom",
				"competencies": [
					{"id": "C1", "name": "Custom skill", "description": "d"}
				]
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	ref := Load(path)

	assert.False(t, ref.Fallback)
	assert.Equal(t, "2.0.0", ref.Version)
	require.Len(t, ref.Blocks, 1)
	assert.Equal(t, 1.0, ref.Blocks[0].Weight, "absent weight defaults to 1")
	assert.Equal(t, "B1", ref.Blocks[0].Competencies[0].BlockID)
	assert.Equal(t, path, ref.SourcePath)
	assert.False(t, ref.SourceModTime.IsZero())
}

func TestLoad_DuplicateCompetencyFirstWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "referential.json")
	payload := `{
		"version": "2.0.0",
		"blocks": [
			{
				"id": "B1",
				"name": "First",
				"competencies": [
					{"id": "C1", "name": "Original", "description": "d"}
				]
			},
			{
				"id": "B2",
				"name": "Second",
				"competencies": [
					{"id": "C1", "name": "Duplicate", "description": "d"},
					{"id": "C2", "name": "Kept", "description": "d"}
				]
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	ref := Load(path)

	require.Len(t, ref.Blocks, 2)
	require.Len(t, ref.Blocks[0].Competencies, 1)
	assert.Equal(t, "Original", ref.Blocks[0].Competencies[0].Name)
	require.Len(t, ref.Blocks[1].Competencies, 1)
	assert.Equal(t, "C2", ref.Blocks[1].Competencies[0].ID)
}

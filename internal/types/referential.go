// Package types provides type definitions for structured data used throughout the skill-profiler system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Competency represents an atomic, scorable skill belonging to exactly one block.
type Competency struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BlockID     string `json:"block_id"`
}

// Block represents a named grouping of related competencies (a sub-domain,
// e.g. "Data Analyst" skills). Weight scales the block's aggregate score.
type Block struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Weight       float64      `json:"weight"`
	Competencies []Competency `json:"competencies"`
}

// Role represents a job title candidate for recommendation.
type Role struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Level                 string   `json:"level"`
	RequiredCompetencyIDs []string `json:"required_competencies"`
	KeyBlockIDs           []string `json:"key_blocks"`
	MinimumThreshold      float64  `json:"minimum_threshold"`
}

// RatingQuestion is a 1..5 scale question linked to one or more competencies.
type RatingQuestion struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	CompetencyIDs []string `json:"competencies"`
	BlockID       string   `json:"block"`
}

// OpenQuestion is a free-text question linked to blocks, with a minimum-word hint.
type OpenQuestion struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	BlockIDs []string `json:"blocks"`
	MinWords int      `json:"min_words"`
}

// ChoiceQuestion is a multi-select question linking chosen options to competencies.
type ChoiceQuestion struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CompetencyIDs []string `json:"competencies"`
	BlockID       string   `json:"block"`
}

// Questions groups the questionnaire definitions of a referential.
type Questions struct {
	Rating []RatingQuestion `json:"rating"`
	Open   []OpenQuestion   `json:"open"`
	Choice []ChoiceQuestion `json:"choice"`
}

// Referential is the root aggregate: a versioned collection of blocks, roles
// and question definitions. It is loaded once and shared read-only across
// analyses; competency ids are unique across the whole referential.
type Referential struct {
	Version     string    `json:"version"`
	Description string    `json:"description,omitempty"`
	LastUpdated string    `json:"last_updated,omitempty"`
	Blocks      []Block   `json:"blocks"`
	Roles       []Role    `json:"roles"`
	Questions   Questions `json:"questions"`

	// SourcePath and SourceModTime identify the on-disk origin; both feed the
	// embedding-cache signature. Fallback marks the built-in minimal payload.
	SourcePath    string    `json:"-"`
	SourceModTime time.Time `json:"-"`
	Fallback      bool      `json:"-"`
}

// Competencies returns all competencies across all blocks in referential order.
func (r *Referential) Competencies() []Competency {
	var out []Competency
	for _, b := range r.Blocks {
		out = append(out, b.Competencies...)
	}
	return out
}

// CompetencyNames returns a lookup from competency id to display name.
func (r *Referential) CompetencyNames() map[string]string {
	names := make(map[string]string)
	for _, b := range r.Blocks {
		for _, c := range b.Competencies {
			names[c.ID] = c.Name
		}
	}
	return names
}

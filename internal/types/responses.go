package types

import "sort"

// UserResponses holds one evaluation session's answers. It is transient:
// the scoring core never persists it.
type UserResponses struct {
	Ratings   map[string]int      `json:"ratings"`
	OpenTexts map[string]string   `json:"open_texts"`
	Choices   map[string][]string `json:"choices"`
	Timestamp string              `json:"timestamp,omitempty"`
}

// HasAnyAnswer reports whether the user answered at least one question of any
// type. Drives the participation bonus.
func (u *UserResponses) HasAnyAnswer() bool {
	return len(u.Ratings) > 0 || len(u.OpenTexts) > 0 || len(u.Choices) > 0
}

// OpenTextValues returns the non-empty free-text answers ordered by question
// id, so downstream consumers (embedding, prompt assembly) are deterministic.
func (u *UserResponses) OpenTextValues() []string {
	ids := make([]string, 0, len(u.OpenTexts))
	for id, t := range u.OpenTexts {
		if t != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	texts := make([]string, 0, len(ids))
	for _, id := range ids {
		texts = append(texts, u.OpenTexts[id])
	}
	return texts
}

// Package clustering merges near-duplicate competencies so semantically
// overlapping skills are neither double-counted nor under-counted.
package clustering

// ClusterSet maps a canonical competency id to the member ids considered
// near-duplicates of it. The canonical id is itself a member.
type ClusterSet map[string][]string

// DefaultClusters covers known near-synonymous NLP competencies:
// word embeddings, semantic analysis and sentiment analysis.
func DefaultClusters() ClusterSet {
	return ClusterSet{
		"C12": {"C12", "C14", "C15"},
	}
}

// Canonical returns the canonical id for a cluster member, or the id
// unchanged when it belongs to no cluster.
func (cs ClusterSet) Canonical(id string) string {
	for canonical, members := range cs {
		for _, m := range members {
			if m == id {
				return canonical
			}
		}
	}
	return id
}

// Fuse assigns each cluster the max score over its members (missing members
// count as 0) and writes that score back to every member and the canonical
// id. Non-cluster ids pass through unchanged. Taking the max avoids
// penalizing a profile that mentions only one variant of a skill while also
// avoiding a double reward when several variants fire.
func (cs ClusterSet) Fuse(scores map[string]float64) map[string]float64 {
	fused := make(map[string]float64, len(scores))
	for id, s := range scores {
		fused[id] = s
	}

	for canonical, members := range cs {
		if len(members) == 0 {
			continue
		}
		best := 0.0
		for _, m := range members {
			if s := scores[m]; s > best {
				best = s
			}
		}
		for _, m := range members {
			fused[m] = best
		}
		fused[canonical] = best
	}

	return fused
}

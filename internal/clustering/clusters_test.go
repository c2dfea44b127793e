package clustering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical_ClusterMember(t *testing.T) {
	clusters := DefaultClusters()

	assert.Equal(t, "C12", clusters.Canonical("C12"))
	assert.Equal(t, "C12", clusters.Canonical("C14"))
	assert.Equal(t, "C12", clusters.Canonical("C15"))
}

func TestCanonical_NonMemberPassesThrough(t *testing.T) {
	clusters := DefaultClusters()

	assert.Equal(t, "C01", clusters.Canonical("C01"))
	assert.Equal(t, "unknown", clusters.Canonical("unknown"))
}

func TestFuse_AssignsMaxToAllMembers(t *testing.T) {
	clusters := DefaultClusters()
	fused := clusters.Fuse(map[string]float64{
		"C12": 0.2,
		"C14": 0.9,
		"C15": 0.1,
	})

	assert.Equal(t, 0.9, fused["C12"])
	assert.Equal(t, 0.9, fused["C14"])
	assert.Equal(t, 0.9, fused["C15"])
}

func TestFuse_MissingMembersCountAsZero(t *testing.T) {
	clusters := DefaultClusters()
	fused := clusters.Fuse(map[string]float64{"C14": 0.4})

	assert.Equal(t, 0.4, fused["C12"])
	assert.Equal(t, 0.4, fused["C14"])
	assert.Equal(t, 0.4, fused["C15"])
}

func TestFuse_NonClusterIdsUnchanged(t *testing.T) {
	clusters := DefaultClusters()
	fused := clusters.Fuse(map[string]float64{
		"C01": 0.7,
		"C14": 0.3,
	})

	assert.Equal(t, 0.7, fused["C01"])
	assert.Equal(t, 0.3, fused["C12"])
}

func TestFuse_DoesNotMutateInput(t *testing.T) {
	clusters := DefaultClusters()
	input := map[string]float64{"C12": 0.2, "C14": 0.9}

	clusters.Fuse(input)

	assert.Equal(t, 0.2, input["C12"])
	_, exists := input["C15"]
	assert.False(t, exists)
}

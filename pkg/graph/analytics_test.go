package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianreza/wayangkg/pkg/types"
)

func TestStatisticsEmptyGraph(t *testing.T) {
	s := NewStore()
	stats := s.Statistics(DefaultTopK)

	assert.Equal(t, 0, stats.NodeCount)
	assert.Equal(t, 0, stats.EdgeCount)
	assert.Zero(t, stats.Density)
	assert.Zero(t, stats.AverageClustering)
	assert.Equal(t, 0, stats.ComponentCount)
	assert.Empty(t, stats.TopEntities)
}

func TestStatisticsDensity(t *testing.T) {
	s := NewStore()
	for i := 0; i < 10; i++ {
		register(t, s, fmt.Sprintf("E%02d", i), types.EntityPerson)
	}
	// 20 distinct directed pairs in a 10-node graph.
	added := 0
	for i := 0; i < 10 && added < 20; i++ {
		for j := 0; j < 10 && added < 20; j++ {
			if i == j {
				continue
			}
			s.AddCandidate(types.RelationCandidate{
				SubjectID:    fmt.Sprintf("E%02d", i),
				RelationType: "membantu",
				Category:     types.CategorySocial,
				ObjectID:     fmt.Sprintf("E%02d", j),
				Confidence:   0.65,
			})
			added++
		}
	}

	stats := s.Statistics(DefaultTopK)
	assert.Equal(t, 10, stats.NodeCount)
	assert.Equal(t, 20, stats.EdgeCount)
	assert.InDelta(t, 20.0/90.0, stats.Density, 1e-9)
}

func TestStatisticsDistributionsAndRanking(t *testing.T) {
	s := NewStore()
	register(t, s, "Arjuna", types.EntityPerson)
	register(t, s, "Bima", types.EntityPerson)
	register(t, s, "Astina", types.EntityLoc)

	s.AddCandidate(types.RelationCandidate{
		SubjectID: "Arjuna", RelationType: "saudara_dari",
		Category: types.CategoryFamily, ObjectID: "Bima",
		Confidence: 0.85, Bidirectional: true,
	})
	s.AddCandidate(types.RelationCandidate{
		SubjectID: "Arjuna", RelationType: "berada_di",
		Category: types.CategoryLocation, ObjectID: "Astina", Confidence: 0.55,
	})

	stats := s.Statistics(2)

	assert.Equal(t, 2, stats.EntityTypeDistribution[types.EntityPerson])
	assert.Equal(t, 1, stats.EntityTypeDistribution[types.EntityLoc])

	// saudara_dari appears on both directed edges of the symmetric pair.
	assert.Equal(t, 2, stats.RelationDistribution["saudara_dari"])
	assert.Equal(t, 1, stats.RelationDistribution["berada_di"])
	assert.Equal(t, 2, stats.CategoryDistribution[types.CategoryFamily])
	assert.Equal(t, 1, stats.CategoryDistribution[types.CategoryLocation])

	require.Len(t, stats.TopEntities, 2, "ranking truncated to top k")
	assert.Equal(t, "Arjuna", stats.TopEntities[0].ID)
	assert.Equal(t, 3, stats.TopEntities[0].Degree)
	assert.Equal(t, "Bima", stats.TopEntities[1].ID)
}

func TestStatisticsClusteringAndComponents(t *testing.T) {
	s := NewStore()
	// Triangle A-B-C plus an isolated pair X-Y and a lone node Z.
	for _, id := range []string{"A", "B", "C", "X", "Y", "Z"} {
		register(t, s, id, types.EntityPerson)
	}
	for _, pair := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}, {"X", "Y"}} {
		s.AddCandidate(types.RelationCandidate{
			SubjectID: pair[0], RelationType: "membantu",
			Category: types.CategorySocial, ObjectID: pair[1], Confidence: 0.65,
		})
	}

	stats := s.Statistics(DefaultTopK)

	// Triangle nodes each have coefficient 1; X, Y, Z have fewer than two
	// neighbors and are excluded from the average.
	assert.InDelta(t, 1.0, stats.AverageClustering, 1e-9)
	assert.Equal(t, 3, stats.ComponentCount)
	assert.Equal(t, []int{3, 2, 1}, stats.ComponentSizes)
}

func TestCommunitiesDetectsDenseGroups(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"A", "B", "C", "X", "Y", "Z"} {
		register(t, s, id, types.EntityPerson)
	}
	// Two triangles with repeated evidence and no bridge between them.
	groups := [][][2]string{
		{{"A", "B"}, {"B", "C"}, {"C", "A"}},
		{{"X", "Y"}, {"Y", "Z"}, {"Z", "X"}},
	}
	for _, group := range groups {
		for _, pair := range group {
			for i := 0; i < 3; i++ {
				s.AddCandidate(types.RelationCandidate{
					SubjectID: pair[0], RelationType: "membantu",
					Category: types.CategorySocial, ObjectID: pair[1], Confidence: 0.65,
				})
			}
		}
	}

	clusters := s.Communities()
	require.Len(t, clusters, 2)
	assert.Equal(t, []string{"A", "B", "C"}, clusters[0])
	assert.Equal(t, []string{"X", "Y", "Z"}, clusters[1])
}

func TestCommunitiesEmptyGraph(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.Communities())
}

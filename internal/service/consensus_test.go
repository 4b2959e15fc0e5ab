package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingIncident() *models.Incident {
	return &models.Incident{
		ID:         uuid.New(),
		Type:       models.TypeRobbery,
		Severity:   3,
		Status:     models.StatusPending,
		ReporterID: "reporter",
	}
}

func vote(validator string, v models.Vote, confidence float64, rep int) *models.Validation {
	return &models.Validation{ValidatorID: validator, Vote: v, Confidence: confidence, ValidatorRep: rep}
}

func TestConsensus_ThreeUpvotesVerify(t *testing.T) {
	engine := NewConsensusEngine(DefaultConsensusPolicy())
	inc := pendingIncident()

	for i := 0; i < 2; i++ {
		status, err := engine.Apply(inc, vote(fmt.Sprintf("v%d", i), models.VoteUp, 1, 100))
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, status)
	}
	status, err := engine.Apply(inc, vote("v2", models.VoteUp, 1, 100))
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, status)
	assert.Equal(t, 3, inc.Count)
	assert.InDelta(t, 1.0, inc.Score, 1e-12)
}

func TestConsensus_ThreeDownvotesReject(t *testing.T) {
	engine := NewConsensusEngine(DefaultConsensusPolicy())
	inc := pendingIncident()

	var status models.Status
	var err error
	for i := 0; i < 3; i++ {
		status, err = engine.Apply(inc, vote(fmt.Sprintf("v%d", i), models.VoteDown, 1, 100))
		require.NoError(t, err)
	}
	assert.Equal(t, models.StatusRejected, status)
	assert.InDelta(t, -1.0, inc.Score, 1e-12)
}

func TestConsensus_MixedVotesStayPending(t *testing.T) {
	engine := NewConsensusEngine(DefaultConsensusPolicy())
	inc := pendingIncident()

	_, err := engine.Apply(inc, vote("a", models.VoteUp, 1, 100))
	require.NoError(t, err)
	_, err = engine.Apply(inc, vote("b", models.VoteDown, 1, 100))
	require.NoError(t, err)
	status, err := engine.Apply(inc, vote("c", models.VoteUp, 1, 100))
	require.NoError(t, err)

	// (1 - 1 + 1) / 3 = 0.33 < 0.5
	assert.Equal(t, models.StatusPending, status)
	assert.InDelta(t, 1.0/3.0, inc.Score, 1e-12)
	assert.Equal(t, 3, inc.Count)
}

func TestConsensus_WeightedByReputationAndConfidence(t *testing.T) {
	engine := NewConsensusEngine(DefaultConsensusPolicy())
	inc := pendingIncident()

	// вес 1.0 за +1 и 0.5*0.5=0.25 за -1
	_, err := engine.Apply(inc, vote("trusted", models.VoteUp, 1, 100))
	require.NoError(t, err)
	_, err = engine.Apply(inc, vote("newbie", models.VoteDown, 0.5, 0))
	require.NoError(t, err)

	assert.InDelta(t, (1.0-0.25)/1.25, inc.Score, 1e-12)
	assert.InDelta(t, 1.25, inc.VoteWeight, 1e-12)
	assert.GreaterOrEqual(t, inc.Score, -1.0)
	assert.LessOrEqual(t, inc.Score, 1.0)
}

func TestConsensus_ZeroConfidenceCountsButDoesNotMoveScore(t *testing.T) {
	engine := NewConsensusEngine(DefaultConsensusPolicy())
	inc := pendingIncident()

	_, err := engine.Apply(inc, vote("a", models.VoteUp, 0, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, inc.Count)
	assert.Zero(t, inc.Score)
}

func TestConsensus_Preconditions(t *testing.T) {
	engine := NewConsensusEngine(DefaultConsensusPolicy())

	inc := pendingIncident()
	_, err := engine.Apply(inc, vote("reporter", models.VoteUp, 1, 100))
	assert.ErrorIs(t, err, models.ErrSelfVote)
	assert.Equal(t, 0, inc.Count)

	_, err = engine.Apply(inc, vote("x", models.Vote(2), 1, 100))
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = engine.Apply(inc, vote("x", models.VoteUp, 1.5, 100))
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	for _, st := range []models.Status{models.StatusVerified, models.StatusRejected, models.StatusAutoVerified} {
		inc := pendingIncident()
		inc.Status = st
		_, err := engine.Apply(inc, vote("x", models.VoteUp, 1, 100))
		assert.ErrorIs(t, err, models.ErrNotPending, "status %s", st)
		assert.Equal(t, 0, inc.Count)
	}
}

func TestConsensus_CustomPolicy(t *testing.T) {
	engine := NewConsensusEngine(ConsensusPolicy{
		MinVotes:          1,
		PositiveThreshold: 0.9,
		NegativeThreshold: -0.9,
		Weight:            func(int, float64) float64 { return 1 },
	})
	inc := pendingIncident()

	status, err := engine.Apply(inc, vote("a", models.VoteUp, 0.1, 0))
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, status)
}

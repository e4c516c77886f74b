package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundStatus(t *testing.T) {
	assert.True(t, RoundStatusOpen.IsValid())
	assert.True(t, RoundStatusClosed.IsValid())
	assert.False(t, RoundStatus("draft").IsValid())
	assert.False(t, RoundStatus("").IsValid())

	assert.True(t, (&Round{Status: RoundStatusOpen}).CanAccept())
	assert.False(t, (&Round{Status: RoundStatusClosed}).CanAccept())
	assert.False(t, (*Round)(nil).CanAccept())
}

func TestDistributionNonZero(t *testing.T) {
	var d Distribution
	d.Counts[60] = 2
	d.Counts[0] = 1
	d.Counts[100] = 3

	assert.Equal(t, []DistributionEntry{
		{Value: 0, Count: 1},
		{Value: 60, Count: 2},
		{Value: 100, Count: 3},
	}, d.NonZero())
	assert.Equal(t, 6, d.Total())
	assert.Len(t, d.Counts, 101)
}

func TestDistributionNonZeroEmpty(t *testing.T) {
	var d Distribution
	assert.NotNil(t, d.NonZero())
	assert.Empty(t, d.NonZero())
	assert.Zero(t, d.Total())
}

func TestDistributionFromEntries(t *testing.T) {
	roundID := int64(4)
	entries := []DistributionEntry{{Value: 0, Count: 1}, {Value: 60, Count: 2}, {Value: 100, Count: 3}}

	d := DistributionFromEntries(&roundID, append(entries, DistributionEntry{Value: 101, Count: 9}))

	assert.Equal(t, &roundID, d.RoundID)
	assert.Equal(t, entries, d.NonZero())
	assert.Equal(t, 6, d.Total())
}

func TestRoundViewJSON(t *testing.T) {
	count := 2
	open, err := json.Marshal(&RoundView{RoundID: 1, Status: RoundStatusOpen, AnswersCount: &count})
	require.NoError(t, err)
	assert.JSONEq(t, `{"roundId":1,"status":"open","answersCount":2}`, string(open))

	zero := 0
	closed, err := json.Marshal(&RoundView{RoundID: 2, Status: RoundStatusClosed, TotalAnswers: &zero})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"roundId":2,"status":"closed","mean":null,"winningValue":null,"totalAnswers":0,"winners":[],"distribution":[]}`,
		string(closed))
}

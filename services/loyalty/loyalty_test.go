package loyalty

import (
	"testing"

	"flexispace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		points int
		tier   string
		next   string
		toNext int
	}{
		{points: 0, tier: "Bronze", next: "Silver", toNext: 1000},
		{points: 999, tier: "Bronze", next: "Silver", toNext: 1},
		{points: 1000, tier: "Silver", next: "Gold", toNext: 1000},
		{points: 2450, tier: "Gold", next: "Platinum", toNext: 2550},
		{points: 5000, tier: "Platinum"},
		{points: 12000, tier: "Platinum"},
	}
	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			assert.Equal(t, tt.tier, TierFor(tt.points).Name)
			next, ok := NextTier(tt.points)
			assert.Equal(t, tt.next != "", ok)
			assert.Equal(t, tt.next, next.Name)
			assert.Equal(t, tt.toNext, PointsToNext(tt.points))
		})
	}
}

func TestPointsForSkipsCancelled(t *testing.T) {
	records := []models.BookingRecord{
		{Amount: models.FromMajor(19800), Status: models.StatusUpcoming},
		{Amount: models.FromMajor(4800), Status: models.StatusCompleted},
		{Amount: models.FromMajor(100000), Status: models.StatusCancelled},
	}
	assert.Equal(t, 2460, PointsFor(records))
}

func TestSummarize(t *testing.T) {
	s := Summarize(2450)
	assert.Equal(t, "Gold", s.Tier.Name)
	require.NotNil(t, s.Next)
	assert.Equal(t, "Platinum", s.Next.Name)
	assert.Equal(t, 2550, s.PointsToNext)

	assert.Nil(t, Summarize(6000).Next)
}

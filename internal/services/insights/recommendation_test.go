package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foliotrack/foliotrack/internal/models"
)

func TestRecommend_LowScore(t *testing.T) {
	rec := Recommend(dec("18"), 2)

	assert.Equal(t, models.RecommendationDiversification, rec.Category)
	assert.Equal(t, models.PriorityHigh, rec.Priority)
	assert.Contains(t, rec.Message, "low diversification")
	assert.Equal(t, []string{"VTI", "VEA", "VWO", "BND", "VNQ", "GLD", "TLT", "IWM"}, rec.SuggestedSymbols)
}

func TestRecommend_GoodScoreFewHoldings(t *testing.T) {
	rec := Recommend(dec("75"), 3)

	assert.Equal(t, models.RecommendationExpansion, rec.Category)
	assert.Equal(t, models.PriorityMedium, rec.Priority)
	assert.Equal(t, []string{"SPY", "QQQ", "IWM", "EFA", "EEM", "AGG", "LQD", "HYG"}, rec.SuggestedSymbols)
}

func TestRecommend_WellDiversified(t *testing.T) {
	rec := Recommend(dec("84"), 5)

	assert.Equal(t, models.RecommendationOptimization, rec.Category)
	assert.Equal(t, models.PriorityLow, rec.Priority)
	assert.Equal(t, []string{"VTI", "VXUS", "BND", "VNQ", "GLD", "TLT", "IEFA", "IEMG"}, rec.SuggestedSymbols)
}

func TestRecommend_BoundaryAt70(t *testing.T) {
	// exactly 70 is not "less than 70"
	rec := Recommend(dec("70"), 10)
	assert.Equal(t, models.RecommendationOptimization, rec.Category)

	rec = Recommend(dec("69.99"), 10)
	assert.Equal(t, models.RecommendationDiversification, rec.Category)
}

func TestRecommend_EveryInputResolves(t *testing.T) {
	scores := []string{"0", "39.99", "40", "69.99", "70", "100"}
	counts := []int{0, 1, 4, 5, 10, 50}
	for _, s := range scores {
		for _, c := range counts {
			rec := Recommend(dec(s), c)
			assert.NotEmpty(t, rec.Category, "score=%s count=%d", s, c)
			assert.NotEmpty(t, rec.Priority, "score=%s count=%d", s, c)
			assert.NotEmpty(t, rec.Message, "score=%s count=%d", s, c)
			assert.Len(t, rec.SuggestedSymbols, 8, "score=%s count=%d", s, c)
		}
	}
}

func TestRecommend_EmptyPortfolioIsDiversification(t *testing.T) {
	scored := ScoreDiversification(nil)
	rec := Recommend(scored.Score, scored.HoldingCount)
	assert.Equal(t, models.RecommendationDiversification, rec.Category)
}

func TestRecommend_PriorityOrdering(t *testing.T) {
	high := Recommend(dec("10"), 10)
	medium := Recommend(dec("90"), 2)
	low := Recommend(dec("90"), 8)
	assert.Equal(t, models.PriorityHigh, high.Priority)
	assert.Equal(t, models.PriorityMedium, medium.Priority)
	assert.Equal(t, models.PriorityLow, low.Priority)
}

package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreIsDeterministicAndBounded(t *testing.T) {
	items := businessWardrobe()
	first := Score(items, true, "business")
	second := Score(items, true, "business")

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0.0)
	assert.LessOrEqual(t, first, 1.0)
}

func TestScorePassedBeatsFailed(t *testing.T) {
	items := athleticWardrobe()
	assert.Greater(t, Score(items, true, "athletic"), Score(items, false, "athletic"))
}

func TestScoreBusinessOutfitWithFormalPair(t *testing.T) {
	// dress shirt + slacks + oxfords + blazer: every bonus applies, clamped
	assert.InDelta(t, 1.0, Score(businessWardrobe(), true, "business"), 1e-9)
}

func TestScoreNoFormalBonusOutsideFormalOccasions(t *testing.T) {
	items := businessWardrobe()
	casual := Score(items, true, "casual")
	business := Score(items, true, "business")

	assert.InDelta(t, 0.97, casual, 1e-9)
	assert.Greater(t, business, casual)
}

func TestScoreItemCountBonus(t *testing.T) {
	two := []Item{
		testItem(1, "White Tee", "t-shirt"),
		testItem(2, "Dark Jeans", "jeans"),
	}
	three := append(two, testItem(3, "Air Zoom", "sneakers"))

	assert.InDelta(t, 0.92, Score(two, true, "casual"), 1e-9)
	assert.InDelta(t, 0.97, Score(three, true, "casual"), 1e-9)
}

func TestScoreRelaxedOutfit(t *testing.T) {
	items := []Item{
		testItem(1, "Wool Sweater", "sweater"),
		testItem(2, "Grey Slacks", "slacks"),
		testItem(3, "Black Oxfords", "oxfords"),
	}
	assert.InDelta(t, 0.75, Score(items, false, "business"), 1e-9)
}

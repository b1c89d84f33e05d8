package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessRequirementsSatisfied(t *testing.T) {
	missing, violations := CheckRequirements(businessWardrobe(), "business")
	assert.Empty(t, missing)
	assert.Empty(t, violations)
}

func TestBusinessMissingShoes(t *testing.T) {
	items := []Item{
		testItem(1, "White Dress Shirt", "shirt"),
		testItem(2, "Grey Slacks", "slacks"),
	}
	missing, violations := CheckRequirements(items, "business")

	assert.Equal(t, []string{"shoes"}, missing)
	assert.Empty(t, violations)
}

func TestBusinessForbiddenReportedNotDropped(t *testing.T) {
	items := append(businessWardrobe(), testItem(9, "Beach Sandals", "sandals"))
	_, violations := CheckRequirements(items, "business")

	assert.Len(t, violations, 1)
	assert.Contains(t, violations[0], "Beach Sandals")
}

func TestCompositeRequirementEitherSideSatisfies(t *testing.T) {
	withSkirt := []Item{
		testItem(1, "Silk Blouse", "blouse"),
		testItem(2, "Pencil Skirt", "skirt"),
		testItem(3, "Black Heels", "heels"),
	}
	missing, _ := CheckRequirements(withSkirt, "formal")
	assert.Empty(t, missing)

	withPants := []Item{
		testItem(1, "White Dress Shirt", "shirt"),
		testItem(2, "Grey Slacks", "slacks"),
		testItem(3, "Black Oxfords", "oxfords"),
	}
	missing, _ = CheckRequirements(withPants, "formal")
	assert.Empty(t, missing)
}

func TestFormalRequiresDressShoesSubtype(t *testing.T) {
	items := []Item{
		testItem(1, "White Dress Shirt", "shirt"),
		testItem(2, "Grey Slacks", "slacks"),
		testItem(3, "Air Zoom", "sneakers"),
	}
	missing, violations := CheckRequirements(items, "formal")

	assert.Contains(t, missing, "dress_shoes")
	assert.Len(t, violations, 1, "sneakers are forbidden for formal")
}

func TestAthleticRequirements(t *testing.T) {
	missing, violations := CheckRequirements(athleticWardrobe(), "athletic")
	assert.Empty(t, missing)
	assert.Empty(t, violations)

	joggers := []Item{
		testItem(10, "Gym Tee", "t-shirt"),
		testItem(11, "Track Pants", "joggers"),
		testItem(12, "Air Zoom", "sneakers"),
	}
	missing, _ = CheckRequirements(joggers, "athletic")
	assert.Empty(t, missing, "athletic_pants subtype satisfies the composite")
}

func TestUnknownOccasionUsesDefaultRule(t *testing.T) {
	missing, _ := CheckRequirements([]Item{testItem(1, "White Tee", "t-shirt")}, "brunch")
	assert.Equal(t, []string{"bottom"}, missing)
}

func TestRelaxedCheckWidensAliases(t *testing.T) {
	items := []Item{
		testItem(1, "Wool Sweater", "sweater"),
		testItem(2, "Grey Slacks", "slacks"),
		testItem(3, "Black Oxfords", "oxfords"),
	}
	missing, _ := CheckRequirements(items, "business")
	assert.Equal(t, []string{"shirt"}, missing, "a sweater is not a shirt strictly")

	missing, violations := CheckRequirementsRelaxed(items, "business")
	assert.Empty(t, missing, "relaxed aliases accept a sweater for a shirt")
	assert.Empty(t, violations)
}

func TestResolveRelaxedSubstitutesFromPool(t *testing.T) {
	pool := []Item{
		testItem(1, "Grey Hoodie", "hoodie"),
		testItem(2, "Grey Slacks", "slacks"),
		testItem(3, "Black Oxfords", "oxfords"),
	}
	kept := Enforce(pool, "business")
	missing, _ := CheckRequirements(kept, "business")
	assert.Equal(t, []string{"shirt"}, missing)

	resolved := ResolveRelaxed(kept, pool, missing, "business")
	missing, _ = CheckRequirementsRelaxed(resolved, "business")
	assert.Empty(t, missing, "the hoodie covers the shirt requirement after widening")
}

func TestResolveRelaxedStillMissing(t *testing.T) {
	pool := []Item{
		testItem(1, "Gym Tee", "t-shirt"),
		testItem(2, "Running Shorts", "shorts"),
		testItem(3, "Chelsea Boot", "boots"),
	}
	kept := Enforce(pool, "athletic")
	missing, _ := CheckRequirements(kept, "athletic")
	assert.Contains(t, missing, "sneakers")

	resolved := ResolveRelaxed(kept, pool, missing, "athletic")
	missing, _ = CheckRequirementsRelaxed(resolved, "athletic")
	assert.Contains(t, missing, "sneakers", "boots never pass for sneakers, even relaxed")
}

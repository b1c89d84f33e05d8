package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnforceNeverGrowsAndKeepsOrder(t *testing.T) {
	items := append(businessWardrobe(), testItem(5, "Grey Hoodie", "hoodie"))
	kept := Enforce(items, "business")

	assert.LessOrEqual(t, len(kept), len(items))
	for i := 1; i < len(kept); i++ {
		assert.Less(t, kept[i-1].ID, kept[i].ID, "input order must survive")
	}
}

func TestEnforceDropsExcessTopsForBusiness(t *testing.T) {
	items := append(businessWardrobe(), testItem(5, "Grey Hoodie", "hoodie"))
	kept := Enforce(items, "business")

	assert.Len(t, kept, 4)
	for _, item := range kept {
		assert.NotEqual(t, "hoodie", item.Type, "first top wins the single slot")
	}
}

func TestEnforceDropsExactDuplicateIDs(t *testing.T) {
	sneaker := testItem(12, "Air Zoom", "sneakers")
	items := []Item{testItem(10, "Gym Tee", "t-shirt"), sneaker, sneaker}
	kept := Enforce(items, "athletic")

	assert.Len(t, kept, 2)
}

func TestEnforceDropsNearDuplicates(t *testing.T) {
	items := []Item{
		testColoredItem(1, "White Tee", "t-shirt", "white"),
		testColoredItem(2, "White Tee", "t-shirt", "white"),
		testColoredItem(3, "White Tee", "t-shirt", "black"),
	}
	kept := Enforce(items, "casual")

	// same name+type+color collapses, a different color survives
	assert.Len(t, kept, 2)
	assert.Equal(t, uint(1), kept[0].ID)
	assert.Equal(t, uint(3), kept[1].ID)
}

func TestEnforceCollapsesTypeSynonymDuplicates(t *testing.T) {
	items := []Item{
		testColoredItem(1, "Cozy Gray", "sweater", "gray"),
		testColoredItem(2, "Cozy Gray", "hoodie", "gray"),
	}
	kept := Enforce(items, "beach")

	// same name+color within one category collapses even across type tokens,
	// including on occasions that carry no limit table
	assert.Len(t, kept, 1)
	assert.Equal(t, uint(1), kept[0].ID)
}

func TestEnforceFootwearSubtypeUniqueness(t *testing.T) {
	items := []Item{
		testItem(10, "Gym Tee", "t-shirt"),
		testItem(11, "Running Shorts", "shorts"),
		testItem(12, "Air Zoom", "sneakers"),
		testItem(13, "Ultra Boost", "sneakers"),
	}
	kept := Enforce(items, "athletic")

	assert.Len(t, kept, 3)
	var sneakerCount int
	for _, item := range kept {
		if item.Subtype == SubtypeSneakers {
			sneakerCount++
		}
	}
	assert.Equal(t, 1, sneakerCount)
}

func TestEnforceFootwearUniquenessWithoutOccasionLimits(t *testing.T) {
	items := []Item{
		testItem(1, "Air Zoom", "sneakers"),
		testItem(2, "Ultra Boost", "sneakers"),
		testItem(3, "Chelsea Boot", "boots"),
	}
	kept := Enforce(items, "brunch")

	// unknown occasion has no category limits, subtype uniqueness still holds
	assert.Len(t, kept, 2)
	assert.Equal(t, uint(1), kept[0].ID)
	assert.Equal(t, uint(3), kept[1].ID)
}

func TestMissingMinimums(t *testing.T) {
	missing := MissingMinimums([]Item{testItem(1, "White Dress Shirt", "shirt")}, "business")
	assert.NotEmpty(t, missing)

	assert.Empty(t, MissingMinimums(businessWardrobe(), "business"))
	assert.Nil(t, MissingMinimums(nil, "brunch"))
}

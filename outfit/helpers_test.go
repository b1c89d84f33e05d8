package outfit

import (
	"time"

	"outfitapi/models"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func testItem(id uint, name, clothingType string) Item {
	return testColoredItem(id, name, clothingType, "black")
}

func testColoredItem(id uint, name, clothingType, color string) Item {
	return NewItem(models.ClothingItem{
		JsonModel: models.JsonModel{
			ID:        id,
			CreatedAt: testNow,
			UpdatedAt: testNow,
		},
		Name:         name,
		ClothingType: clothingType,
		Color:        color,
		Status:       "in_closet",
	})
}

// a wardrobe that cleanly satisfies the business occasion
func businessWardrobe() []Item {
	return []Item{
		testItem(1, "White Dress Shirt", "shirt"),
		testItem(2, "Grey Slacks", "slacks"),
		testItem(3, "Black Oxfords", "oxfords"),
		testItem(4, "Navy Blazer", "blazer"),
	}
}

func athleticWardrobe() []Item {
	return []Item{
		testItem(10, "Gym Tee", "t-shirt"),
		testItem(11, "Running Shorts", "shorts"),
		testItem(12, "Air Zoom", "sneakers"),
	}
}

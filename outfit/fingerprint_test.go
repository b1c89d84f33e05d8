package outfit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testContext() Context {
	return Context{
		UserID:   42,
		Occasion: "business",
		Style:    "classic",
		Mood:     "confident",
		Weather:  Weather{TemperatureF: 70, Condition: "clear"},
		Wardrobe: businessWardrobe(),
	}
}

func TestFingerprintStable(t *testing.T) {
	a := testContext()
	b := testContext()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)
}

func TestFingerprintChangesWithConstraints(t *testing.T) {
	base := testContext()

	occasion := testContext()
	occasion.Occasion = "casual"
	assert.NotEqual(t, base.Fingerprint(), occasion.Fingerprint())

	weather := testContext()
	weather.Weather.TemperatureF = 40
	assert.NotEqual(t, base.Fingerprint(), weather.Fingerprint())

	user := testContext()
	user.UserID = 43
	assert.NotEqual(t, base.Fingerprint(), user.Fingerprint())
}

func TestFingerprintChangesWithWardrobeEdits(t *testing.T) {
	base := testContext()

	removed := testContext()
	removed.Wardrobe = removed.Wardrobe[:len(removed.Wardrobe)-1]
	assert.NotEqual(t, base.Fingerprint(), removed.Fingerprint())

	touched := testContext()
	touched.Wardrobe[0].UpdatedAt = touched.Wardrobe[0].UpdatedAt.Add(time.Minute)
	assert.NotEqual(t, base.Fingerprint(), touched.Fingerprint())
}

func TestFingerprintBaseItemDistinguishes(t *testing.T) {
	base := testContext()

	withBase := testContext()
	id := uint(1)
	withBase.BaseItemID = &id
	assert.NotEqual(t, base.Fingerprint(), withBase.Fingerprint())
}

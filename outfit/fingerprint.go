package outfit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Weather is the slice of forecast the engine cares about.
type Weather struct {
	TemperatureF float64 `json:"temperature_f"`
	Condition    string  `json:"condition"`
}

// Context is one generation request: the user's constraints plus the wardrobe
// snapshot the attempt works from. Created per request and discarded after.
// Wardrobe order is the original listing order and must survive dedup.
type Context struct {
	UserID     uint
	Occasion   string
	Style      string
	Mood       string
	Weather    Weather
	BaseItemID *uint
	Wardrobe   []Item
}

// Fingerprint is the stable cache key for a context: user, constraints,
// weather and the wardrobe state (ids + update timestamps, in listing order).
// Any wardrobe edit changes the fingerprint.
func (c Context) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%s|%s|%s|%.1f|%s|",
		c.UserID,
		normalizeToken(c.Occasion),
		normalizeToken(c.Style),
		normalizeToken(c.Mood),
		c.Weather.TemperatureF,
		normalizeToken(c.Weather.Condition),
	)
	if c.BaseItemID != nil {
		fmt.Fprintf(&b, "%d", *c.BaseItemID)
	}
	for _, item := range c.Wardrobe {
		fmt.Fprintf(&b, "|%d:%d", item.ID, item.UpdatedAt.Unix())
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

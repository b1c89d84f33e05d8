package outfit

import (
	"strings"
	"time"

	"outfitapi/models"
)

// CoreCategory is the canonical bucket an item belongs to, derived from its
// raw clothing type token.
type CoreCategory string

const (
	CategoryTop       CoreCategory = "top"
	CategoryBottom    CoreCategory = "bottom"
	CategoryFootwear  CoreCategory = "footwear"
	CategoryJacket    CoreCategory = "jacket"
	CategoryAccessory CoreCategory = "accessory"
	CategoryOther     CoreCategory = "other"
)

// LayerLevel places an item in the layering stack.
type LayerLevel string

const (
	LayerBase      LayerLevel = "base"
	LayerInner     LayerLevel = "inner"
	LayerMid       LayerLevel = "mid"
	LayerOuter     LayerLevel = "outer"
	LayerBottom    LayerLevel = "bottom"
	LayerFootwear  LayerLevel = "footwear"
	LayerAccessory LayerLevel = "accessory"
)

// Warmth is a rough heuristic for how much insulation an item contributes.
type Warmth string

const (
	WarmthLight  Warmth = "light"
	WarmthMedium Warmth = "medium"
	WarmthHeavy  Warmth = "heavy"
)

// Item is the engine-side read-only view of a wardrobe item. It carries the
// derived classification next to the raw fields so every validator works on
// one typed value instead of raw maps.
type Item struct {
	ID        uint
	Name      string
	Type      string
	Subtype   string
	Color     string
	Material  string
	Category  CoreCategory
	Layer     LayerLevel
	Warmth    Warmth
	CanLayer  bool
	MaxLayers int
	UpdatedAt time.Time
}

// NewItem builds an engine Item from a stored wardrobe model, running the
// classifier and the name-based subtype refinement.
func NewItem(m models.ClothingItem) Item {
	c := Classify(m.ClothingType)
	subtype := refineSubtype(m.ClothingType, m.Name, c.Category)
	if m.Subtype != nil && *m.Subtype != "" {
		subtype = normalizeToken(*m.Subtype)
	}
	return Item{
		ID:        m.ID,
		Name:      m.Name,
		Type:      normalizeToken(m.ClothingType),
		Subtype:   subtype,
		Color:     strings.ToLower(strings.TrimSpace(m.Color)),
		Material:  strings.ToLower(strings.TrimSpace(m.Material)),
		Category:  c.Category,
		Layer:     c.Layer,
		Warmth:    c.Warmth,
		CanLayer:  c.CanLayer,
		MaxLayers: c.MaxLayers,
		UpdatedAt: m.UpdatedAt,
	}
}

// NewItems maps a wardrobe snapshot preserving its listing order.
func NewItems(ms []models.ClothingItem) []Item {
	items := make([]Item, 0, len(ms))
	for _, m := range ms {
		items = append(items, NewItem(m))
	}
	return items
}

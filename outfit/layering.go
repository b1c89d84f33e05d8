package outfit

import (
	"fmt"
	"math"
)

// TempBand is one row of the temperature table: how many stackable layers an
// outfit should have in [MinF, MaxF) and which warmth factors fit.
type TempBand struct {
	Name            string
	MinF            float64
	MaxF            float64
	MinLayers       int
	MaxLayers       int
	PreferredWarmth []Warmth
}

var tempBands = []TempBand{
	{"freezing", math.Inf(-1), 32, 3, 5, []Warmth{WarmthHeavy, WarmthMedium}},
	{"cold", 32, 50, 2, 4, []Warmth{WarmthMedium, WarmthHeavy}},
	{"cool", 50, 65, 2, 3, []Warmth{WarmthMedium, WarmthLight}},
	{"mild", 65, 75, 1, 3, []Warmth{WarmthLight, WarmthMedium}},
	{"warm", 75, 85, 1, 2, []Warmth{WarmthLight}},
	{"hot", 85, math.Inf(1), 1, 1, []Warmth{WarmthLight}},
}

// BandFor returns the temperature band covering tempF.
func BandFor(tempF float64) TempBand {
	for _, band := range tempBands {
		if tempF >= band.MinF && tempF < band.MaxF {
			return band
		}
	}
	return tempBands[len(tempBands)-1]
}

// LayeringResult is the advisory verdict of the layering/warmth check.
type LayeringResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// ValidateLayering checks the stackable-layer count and the warmth mix
// against the band for tempF. Read-only: it never mutates the candidate
// outfit. A one-band-off warmth mismatch is a warning, a severe one is an
// error.
func ValidateLayering(items []Item, tempF float64) LayeringResult {
	band := BandFor(tempF)
	result := LayeringResult{IsValid: true}

	layerCount := stackableLayerCount(items)
	if layerCount < band.MinLayers {
		result.Errors = append(result.Errors,
			fmt.Sprintf("insufficient layers: have %d stackable, need at least %d for %s weather (%.0f°F)",
				layerCount, band.MinLayers, band.Name, tempF))
	}
	if layerCount > band.MaxLayers {
		result.Errors = append(result.Errors,
			fmt.Sprintf("too many layers: have %d stackable, at most %d fit %s weather (%.0f°F)",
				layerCount, band.MaxLayers, band.Name, tempF))
	}

	// severe warmth mismatches
	if band.Name == "hot" && hasWarmth(items, WarmthHeavy) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("warmth mismatch: heavy item in %.0f°F weather", tempF))
	}
	if band.Name == "freezing" && !hasWarmth(items, WarmthHeavy) && !hasWarmth(items, WarmthMedium) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("warmth mismatch: nothing warmer than light wear for %.0f°F weather", tempF))
	}

	// one-band-off mismatches stay warnings
	if band.Name == "warm" && hasWarmth(items, WarmthHeavy) {
		result.Warnings = append(result.Warnings, "a heavy item may be too warm for this weather")
	}
	if band.Name == "cold" && !hasWarmth(items, WarmthHeavy) && !hasWarmth(items, WarmthMedium) {
		result.Warnings = append(result.Warnings, "consider at least one medium-warmth piece for this weather")
	}
	if band.Name == "mild" && hasWarmth(items, WarmthHeavy) {
		result.Warnings = append(result.Warnings, "a heavy item may be too warm for mild weather")
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// Suggestions turns layering problems into human-readable remediation.
func Suggestions(items []Item, tempF float64) []string {
	band := BandFor(tempF)
	var suggestions []string

	layerCount := stackableLayerCount(items)
	if layerCount < band.MinLayers {
		suggestions = append(suggestions, "add a mid layer such as a sweater or cardigan")
		if !hasLayer(items, LayerOuter) && (band.Name == "freezing" || band.Name == "cold") {
			suggestions = append(suggestions, "add outerwear for cold weather")
		}
	}
	if layerCount > band.MaxLayers {
		suggestions = append(suggestions,
			fmt.Sprintf("remove a layer; %s weather calls for at most %d stackable pieces", band.Name, band.MaxLayers))
	}
	if band.Name == "freezing" && !hasWarmth(items, WarmthHeavy) {
		suggestions = append(suggestions, "add a heavy coat or parka")
	}
	if (band.Name == "hot" || band.Name == "warm") && hasWarmth(items, WarmthHeavy) {
		suggestions = append(suggestions, "swap heavy pieces for lighter fabrics")
	}
	return suggestions
}

func stackableLayerCount(items []Item) int {
	count := 0
	for _, item := range items {
		if item.CanLayer {
			count++
		}
	}
	return count
}

func hasWarmth(items []Item, warmth Warmth) bool {
	for _, item := range items {
		if item.Warmth == warmth {
			return true
		}
	}
	return false
}

func hasLayer(items []Item, layer LayerLevel) bool {
	for _, item := range items {
		if item.Layer == layer {
			return true
		}
	}
	return false
}

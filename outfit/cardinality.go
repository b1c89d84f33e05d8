package outfit

import (
	"fmt"
	"strings"
)

// CategoryLimit bounds how many items of a category an occasion tolerates.
type CategoryLimit struct {
	Min int
	Max int
}

// occasionLimits is the per-occasion cardinality table. A category absent
// from an occasion's map has no limit; an occasion absent from the table has
// no limits at all (footwear subtype uniqueness still applies).
var occasionLimits = map[string]map[CoreCategory]CategoryLimit{
	"business": {
		CategoryTop:      {1, 1},
		CategoryBottom:   {1, 1},
		CategoryFootwear: {1, 1},
		CategoryJacket:   {0, 1},
	},
	"formal": {
		CategoryTop:       {1, 1},
		CategoryBottom:    {1, 1},
		CategoryFootwear:  {1, 1},
		CategoryJacket:    {0, 1},
		CategoryAccessory: {0, 2},
	},
	"athletic": {
		CategoryTop:      {1, 2},
		CategoryBottom:   {1, 1},
		CategoryFootwear: {1, 1},
	},
	"casual": {
		CategoryTop:       {1, 2},
		CategoryBottom:    {1, 1},
		CategoryFootwear:  {1, 1},
		CategoryJacket:    {0, 1},
		CategoryAccessory: {0, 2},
	},
	"date": {
		CategoryTop:       {1, 2},
		CategoryBottom:    {1, 1},
		CategoryFootwear:  {1, 1},
		CategoryJacket:    {0, 1},
		CategoryAccessory: {0, 2},
	},
	"party": {
		CategoryTop:       {1, 2},
		CategoryBottom:    {1, 1},
		CategoryFootwear:  {1, 1},
		CategoryJacket:    {0, 1},
		CategoryAccessory: {0, 3},
	},
}

// LimitsFor returns the cardinality table row for an occasion, nil when the
// occasion has no limits.
func LimitsFor(occasion string) map[CoreCategory]CategoryLimit {
	return occasionLimits[normalizeToken(occasion)]
}

// Enforce deduplicates items and applies the occasion's category limits.
// The result is never longer than the input, keeps the input order, and the
// first-encountered item always wins a slot.
func Enforce(items []Item, occasion string) []Item {
	limits := LimitsFor(occasion)

	seenIDs := make(map[uint]bool)
	seenTriple := make(map[string]bool)
	seenInCategory := make(map[string]bool)
	categoryCount := make(map[CoreCategory]int)
	usedFootwearSubtypes := make(map[string]bool)

	kept := make([]Item, 0, len(items))
	for _, item := range items {
		// pass 1: exact and near-duplicate removal
		if seenIDs[item.ID] {
			continue
		}
		triple := dedupKey(item)
		if seenTriple[triple] {
			continue
		}
		categoryKey := categoryDedupKey(item)
		if seenInCategory[categoryKey] {
			continue
		}

		// pass 2: per-category limits
		if limit, ok := limits[item.Category]; ok {
			if categoryCount[item.Category] >= limit.Max {
				continue
			}
		}
		// footwear additionally never repeats a subtype
		if item.Category == CategoryFootwear {
			subtype := item.Subtype
			if subtype == "" {
				subtype = SubtypeOtherShoes
			}
			if usedFootwearSubtypes[subtype] {
				continue
			}
			usedFootwearSubtypes[subtype] = true
		}

		seenIDs[item.ID] = true
		seenTriple[triple] = true
		seenInCategory[categoryKey] = true
		categoryCount[item.Category]++
		kept = append(kept, item)
	}
	return kept
}

// MissingMinimums reports categories whose occasion minimum is not met by the
// kept items. Advisory; the requirement validator is the authority on what an
// occasion actually needs.
func MissingMinimums(items []Item, occasion string) []string {
	limits := LimitsFor(occasion)
	if limits == nil {
		return nil
	}
	counts := make(map[CoreCategory]int)
	for _, item := range items {
		counts[item.Category]++
	}
	var missing []string
	for category, limit := range limits {
		if counts[category] < limit.Min {
			missing = append(missing, fmt.Sprintf("%s (need at least %d)", category, limit.Min))
		}
	}
	return missing
}

func dedupKey(item Item) string {
	return strings.ToLower(item.Name) + "|" + item.Type + "|" + item.Color
}

// categoryDedupKey widens the near-duplicate check across type synonyms: two
// items sharing name and color within one core category are the same garment
// even when their raw type tokens differ.
func categoryDedupKey(item Item) string {
	return strings.ToLower(item.Name) + "|" + string(item.Category) + "|" + item.Color
}

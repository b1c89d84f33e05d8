package outfit

import "strings"

// Score is the deterministic confidence function. Base 0.70, +0.22 when full
// validation passed (no relaxed retry, no rule failures), +0.05 for a
// reasonable item count, +0.03 for a matching formal top+bottom pair on
// business/formal occasions. Clamped to [0, 1]; identical inputs always give
// identical scores.
func Score(items []Item, validationPassed bool, occasion string) float64 {
	score := 0.70
	if validationPassed {
		score += 0.22
	}
	if n := len(items); n >= 3 && n <= 6 {
		score += 0.05
	}
	if isFormalOccasion(occasion) && hasFormalTop(items) && hasFormalBottom(items) {
		score += 0.03
	}
	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score
}

func isFormalOccasion(occasion string) bool {
	switch normalizeToken(occasion) {
	case "business", "formal":
		return true
	}
	return false
}

func hasFormalTop(items []Item) bool {
	for _, item := range items {
		if item.Category != CategoryTop {
			continue
		}
		lower := strings.ToLower(item.Name)
		if strings.Contains(lower, "dress") || strings.Contains(lower, "button") {
			return true
		}
	}
	return false
}

func hasFormalBottom(items []Item) bool {
	for _, item := range items {
		if item.Category != CategoryBottom {
			continue
		}
		lower := strings.ToLower(item.Name)
		if strings.Contains(lower, "dress") || strings.Contains(lower, "slacks") {
			return true
		}
	}
	return false
}

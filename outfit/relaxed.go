package outfit

// relaxedAliases widens requirement matching for a single retry pass when the
// strict pass left requirements unmet, e.g. a missing "shirt" can be covered
// by a sweater or a t-shirt. Applied at most once per attempt.
var relaxedAliases = map[string][]string{
	"shirt":          {"sweater", "polo", "blouse", "t-shirt", "henley", "turtleneck", "hoodie"},
	"pants":          {"joggers", "sweatpants", "leggings", "shorts", "skirt"},
	"shoes":          {"shoes", "sneakers", "boots", "loafers", "sandals"},
	"sneakers":       {"shoes", "flip-flops", "sandals"},
	"dress-shoes":    {"boots", "shoes"},
	"dress":          {"skirt", "blouse"},
	"skirt":          {"dress", "shorts"},
	"shorts":         {"joggers", "sweatpants", "track-pants", "leggings"},
	"athletic-pants": {"shorts", "leggings", "pants"},
	"top":            {"jacket", "hoodie", "sweater", "cardigan"},
	"bottom":         {"leggings", "skirt", "shorts"},
}

// CheckRequirementsRelaxed is the widened-alias variant of CheckRequirements,
// used for the single relaxed re-check after ResolveRelaxed. Forbidden
// matching stays strict.
func CheckRequirementsRelaxed(items []Item, occasion string) (missing []string, violations []string) {
	return checkRequirements(items, occasion, widenedMatches)
}

// widenedMatches is the relaxed matcher: anything the strict matcher accepts
// plus the token's relaxed alias row.
func widenedMatches(item Item, token string) bool {
	if tokenMatches(item, token) {
		return true
	}
	for _, alias := range relaxedAliases[normalizeToken(token)] {
		alias = normalizeToken(alias)
		if item.Type == alias || normalizeToken(item.Subtype) == alias {
			return true
		}
	}
	return false
}

// ResolveRelaxed re-scans the pre-dedup candidate pool with widened aliases
// for each missing requirement and substitutes the first flexible alternative
// into the kept list, then re-runs cardinality enforcement on the expanded
// set. The alternative really is kept (not just logged) so the follow-up
// requirement check sees it.
func ResolveRelaxed(kept []Item, pool []Item, missing []string, occasion string) []Item {
	expanded := make([]Item, len(kept))
	copy(expanded, kept)

	for _, required := range missing {
		found := false
		for _, token := range splitComposite(required) {
			for _, candidate := range pool {
				if containsID(expanded, candidate.ID) {
					continue
				}
				if widenedMatches(candidate, token) {
					expanded = append(expanded, candidate)
					found = true
					break
				}
			}
			if found {
				break
			}
		}
	}
	return Enforce(expanded, occasion)
}

func containsID(items []Item, id uint) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}

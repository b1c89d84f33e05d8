package outfit

import (
	"fmt"
	"strings"
)

// OccasionRule lists what an occasion demands and what it rules out.
// Required entries are single tokens or "a OR b" composites; forbidden
// entries are plain tokens. Tokens match categories, types, subtypes or an
// alias row below.
type OccasionRule struct {
	Required  []string
	Forbidden []string
}

var occasionRules = map[string]OccasionRule{
	"business": {
		Required:  []string{"shirt", "pants", "shoes"},
		Forbidden: []string{"shorts", "sandals", "hoodie", "tank-top"},
	},
	"formal": {
		Required:  []string{"shirt OR dress", "pants OR skirt", "dress_shoes"},
		Forbidden: []string{"sneakers", "shorts", "hoodie", "sandals", "sweatpants"},
	},
	"athletic": {
		Required:  []string{"top", "shorts OR athletic-pants", "sneakers"},
		Forbidden: []string{"dress_shoes", "blazer", "slacks", "heels"},
	},
	"casual": {
		Required: []string{"top", "bottom"},
	},
	"date": {
		Required:  []string{"top", "bottom", "shoes"},
		Forbidden: []string{"sweatpants"},
	},
	"party": {
		Required: []string{"top", "bottom", "shoes"},
	},
}

// minimal fallback for occasions we have no rule for
var defaultOccasionRule = OccasionRule{Required: []string{"top", "bottom"}}

// RuleFor returns the requirement rule for an occasion.
func RuleFor(occasion string) OccasionRule {
	if rule, ok := occasionRules[normalizeToken(occasion)]; ok {
		return rule
	}
	return defaultOccasionRule
}

// requirementAliases widens a requirement token to the concrete types and
// subtypes that satisfy it on the strict (non-relaxed) pass.
var requirementAliases = map[string][]string{
	"shirt":          {"shirt", "dress_shirt", "blouse", "polo"},
	"pants":          {"pants", "trousers", "slacks", "jeans", "chinos", "dress_pants"},
	"shoes":          {"shoes", "sneakers", "trainers", "boots", "sandals", "heels", "loafers", "oxfords", "flip-flops", "dress_shoes"},
	"sneakers":       {"sneakers", "trainers"},
	"dress-shoes":    {"dress_shoes", "oxfords", "loafers", "heels"},
	"athletic-pants": {"athletic_pants", "joggers", "sweatpants", "track-pants", "leggings"},
	"shorts":         {"shorts"},
	"dress":          {"dress"},
	"skirt":          {"skirt"},
}

// CheckRequirements reports which required tokens no kept item satisfies and
// which forbidden tokens are present. Forbidden items are reported, never
// silently dropped.
func CheckRequirements(items []Item, occasion string) (missing []string, violations []string) {
	return checkRequirements(items, occasion, tokenMatches)
}

func checkRequirements(items []Item, occasion string, match func(Item, string) bool) (missing []string, violations []string) {
	rule := RuleFor(occasion)

	for _, required := range rule.Required {
		if !requirementSatisfied(items, required, match) {
			missing = append(missing, required)
		}
	}
	// forbidden matching is always strict
	for _, forbidden := range rule.Forbidden {
		for _, item := range items {
			if tokenMatches(item, forbidden) {
				violations = append(violations, fmt.Sprintf("%q (%s) is not allowed for %s", item.Name, item.Type, normalizeToken(occasion)))
			}
		}
	}
	return missing, violations
}

// requirementSatisfied handles "a OR b" composites: either side satisfies.
func requirementSatisfied(items []Item, required string, match func(Item, string) bool) bool {
	for _, token := range splitComposite(required) {
		for _, item := range items {
			if match(item, token) {
				return true
			}
		}
	}
	return false
}

func splitComposite(required string) []string {
	parts := strings.Split(required, " OR ")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		tokens = append(tokens, strings.TrimSpace(part))
	}
	return tokens
}

// tokenMatches is the strict matcher: category, exact type, exact subtype,
// or the token's alias row.
func tokenMatches(item Item, token string) bool {
	token = normalizeToken(token)
	if string(item.Category) == token {
		return true
	}
	if item.Type == token || normalizeToken(item.Subtype) == token {
		return true
	}
	for _, alias := range requirementAliases[token] {
		alias = normalizeToken(alias)
		if item.Type == alias || normalizeToken(item.Subtype) == alias {
			return true
		}
	}
	return false
}

package services

import (
	"regexp"
	"strings"

	"github.com/tablemate/waiterd/models"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	wordRe       = regexp.MustCompile(`[a-z']+`)

	// Phrases following an exclusion keyword, e.g. "no onions please".
	exclusionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`without\s+([a-z\s,'-]+)`),
		regexp.MustCompile(`no\s+([a-z\s,'-]+)`),
		regexp.MustCompile(`hold\s+([a-z\s,'-]+)`),
	}
	// Captured phrases end at the first conjunction or punctuation mark.
	phraseStopRe = regexp.MustCompile(`\band\b|\bplease\b|\bwith\b|\bthanks\b|\.|,|!`)
)

// normalizeIngredientName trims, collapses internal whitespace and lowercases
// so that "OLIVE  Oil" and "olive oil" identify the same ingredient.
func normalizeIngredientName(value string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), " ")
}

// removalClassification partitions requested exclusions for one offering.
// Every non-empty requested name lands in exactly one of the three lists.
type removalClassification struct {
	removable []models.OfferingIngredient
	missing   []string
	locked    []string
}

// classifyRemovalRequests matches requested names against the offering's
// ingredient associations by normalized name. Unknown names keep the
// caller's cleaned spelling, locked ones report the canonical name, and
// removable ones deduplicate by ingredient id so two spellings of the same
// ingredient yield a single removal.
func classifyRemovalRequests(offering *models.Offering, requested []string) removalClassification {
	lookup := make(map[string]models.OfferingIngredient, len(offering.Ingredients))
	for _, assoc := range offering.Ingredients {
		lookup[normalizeIngredientName(assoc.Ingredient.Name)] = assoc
	}

	var out removalClassification
	seen := make(map[uint]bool)

	for _, name := range requested {
		cleaned := strings.TrimSpace(name)
		if cleaned == "" {
			continue
		}
		normalized := normalizeIngredientName(cleaned)
		if normalized == "" {
			continue
		}

		assoc, ok := lookup[normalized]
		if !ok {
			out.missing = append(out.missing, cleaned)
			continue
		}
		if !assoc.IsRemovable {
			out.locked = append(out.locked, assoc.Ingredient.Name)
			continue
		}
		if seen[assoc.IngredientID] {
			continue
		}
		seen[assoc.IngredientID] = true
		out.removable = append(out.removable, assoc)
	}

	return out
}

// inferRemovableIngredients derives exclusion candidates from free-text
// instructions. It only runs when the caller gave no explicit list. Matching
// is word overlap between captured phrases and removable ingredient names,
// which can over- and under-match multi-word names.
func inferRemovableIngredients(offering *models.Offering, specialInstructions string) []string {
	if specialInstructions == "" {
		return nil
	}
	text := strings.ToLower(specialInstructions)

	var phrases []string
	for _, pattern := range exclusionPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			fragment := strings.TrimSpace(match[1])
			if fragment == "" {
				continue
			}
			fragment = strings.TrimSpace(phraseStopRe.Split(fragment, 2)[0])
			if fragment != "" {
				phrases = append(phrases, fragment)
			}
		}
	}
	if len(phrases) == 0 {
		return nil
	}

	var removals []string
	for _, assoc := range offering.Ingredients {
		if !assoc.IsRemovable {
			continue
		}
		ingredientTokens := tokenSet(strings.ToLower(assoc.Ingredient.Name))
		if len(ingredientTokens) == 0 {
			continue
		}
		for _, phrase := range phrases {
			if intersects(ingredientTokens, tokenSet(phrase)) {
				removals = append(removals, assoc.Ingredient.Name)
				break
			}
		}
	}

	seen := make(map[string]bool, len(removals))
	var unique []string
	for _, name := range removals {
		if !seen[name] {
			seen[name] = true
			unique = append(unique, name)
		}
	}
	return unique
}

func tokenSet(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range wordRe.FindAllString(s, -1) {
		tokens[tok] = true
	}
	return tokens
}

func intersects(a, b map[string]bool) bool {
	for tok := range b {
		if a[tok] {
			return true
		}
	}
	return false
}

package match

import "sort"

// minSuggestScore is the similarity floor below which a candidate is
// treated as unrelated rather than misspelled.
const minSuggestScore = 0.5

// Suggest ranks candidates by similarity to target and returns up to
// limit names likely to be the intended spelling, best first. Ties
// break alphabetically so suggestions stay deterministic.
func Suggest(target string, candidates []string, limit int) []string {
	targetNorm := NormalizeName(target)

	type scored struct {
		name  string
		score float64
	}

	var ranked []scored

	for _, candidate := range candidates {
		score := LevenshteinNormalized(targetNorm, NormalizeName(candidate))
		if score >= minSuggestScore {
			ranked = append(ranked, scored{name: candidate, score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.name
	}

	return names
}

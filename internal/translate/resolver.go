package translate

import (
	"sort"

	"github.com/thaisign/thsl-translate/internal/domain/sign"
)

// numeralOverrideOffset is added to the priority of numeral-category
// candidates when the token itself is a pure digit string. It is large
// enough to beat any sane table priority, so digit tokens always resolve to
// the numeral dictionary entry even when a homonym exists in a
// lower-priority category.
const numeralOverrideOffset = -1 << 20

// resolveEntry selects exactly one dictionary entry for a token out of its
// homonym candidates, per the category-priority tie-break. The bool return
// is false when the snapshot has no entry for the token.
func resolveEntry(token string, snapshot *sign.Snapshot) (sign.DictionaryEntry, bool) {
	candidates := snapshot.Candidates(token)
	if len(candidates) == 0 {
		return sign.DictionaryEntry{}, false
	}

	digits := isDigits(token)

	type ranked struct {
		entry    sign.DictionaryEntry
		priority int
	}
	rankedCands := make([]ranked, 0, len(candidates))
	for _, c := range candidates {
		// Categories missing from the role table rank last among candidates
		// rather than disqualifying the entry.
		prio := 1 << 19
		roleName, p, ok := snapshot.RolePriority(c.Category)
		if ok {
			prio = p
			if digits && ParseRole(roleName) == RoleNumeral {
				prio += numeralOverrideOffset
			}
		}
		rankedCands = append(rankedCands, ranked{entry: c, priority: prio})
	}

	// Stable: ties beyond priority keep original candidate order.
	sort.SliceStable(rankedCands, func(i, j int) bool {
		return rankedCands[i].priority < rankedCands[j].priority
	})
	return rankedCands[0].entry, true
}

// ResolveTokens binds each reordered token to one dictionary entry. Tokens
// absent from the dictionary are reported in notFound and excluded from the
// resolved sequence; a miss is not fatal to the request.
func ResolveTokens(tagged []TaggedToken, snapshot *sign.Snapshot) (resolved []sign.ResolvedToken, notFound []string) {
	resolved = make([]sign.ResolvedToken, 0, len(tagged))
	for _, t := range tagged {
		entry, ok := resolveEntry(t.Word, snapshot)
		if !ok {
			notFound = append(notFound, t.Word)
			continue
		}
		resolved = append(resolved, sign.ResolvedToken{
			Word:     entry.Word,
			Category: entry.Category,
			AssetRef: entry.AssetRef,
		})
	}
	return resolved, notFound
}

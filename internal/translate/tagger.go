package translate

import (
	"github.com/thaisign/thsl-translate/internal/domain/sign"
)

// Tagger assigns one Role to each normalized token. Resolution order, first
// match wins:
//
//  1. pure digit string → Numeral
//  2. dictionary-driven: the token's best-priority dictionary entry's
//     category, mapped through the category-role table
//  3. literal lexicon (negators, time, place, pronouns, verbs, question
//     particles) — only when the token has no dictionary entry, so literal
//     heuristics never override an explicit dictionary category
//  4. the Object-like default
//
// A token absent from both the dictionary and the lexicon always receives
// the default role, so common Subject-Verb-Object shapes still match.
type Tagger struct {
	lexicon *Lexicon
}

// NewTagger builds a Tagger. A nil lexicon falls back to DefaultLexicon.
func NewTagger(lexicon *Lexicon) *Tagger {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Tagger{lexicon: lexicon}
}

// Tag assigns a role to every token, preserving length and order. snapshot
// may be nil (category-role table unavailable); tagging then degrades to
// digits, lexicon and default roles rather than failing.
func (t *Tagger) Tag(tokens []string, snapshot *sign.Snapshot) []TaggedToken {
	out := make([]TaggedToken, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TaggedToken{Word: tok, Role: t.tagOne(tok, snapshot)})
	}
	return out
}

func (t *Tagger) tagOne(token string, snapshot *sign.Snapshot) Role {
	if isDigits(token) {
		return RoleNumeral
	}

	if entry, ok := resolveEntry(token, snapshot); ok {
		if roleName, _, found := snapshot.RolePriority(entry.Category); found {
			if role := ParseRole(roleName); role != RoleUnknown {
				return role
			}
		}
		// Entry exists but its category has no usable role mapping; fall
		// through to the default rather than the lexicon, since the
		// dictionary has spoken for this token.
		return DefaultRole
	}

	if role, ok := t.lexicon.Lookup(token); ok {
		return role
	}

	return DefaultRole
}

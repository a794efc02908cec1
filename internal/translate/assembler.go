package translate

import (
	"context"
	"sort"
	"strings"

	"github.com/thaisign/thsl-translate/internal/domain/sign"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
)

// Segmenter splits a Thai sentence into candidate tokens. Implementations
// are best-effort; the assembler degrades to whitespace splitting when
// segmentation fails.
type Segmenter interface {
	Segment(ctx context.Context, text string) ([]string, error)
}

// WhitespaceSegmenter is the degraded fallback segmenter: it splits on
// whitespace only, which suits pre-segmented input.
type WhitespaceSegmenter struct{}

func (WhitespaceSegmenter) Segment(_ context.Context, text string) ([]string, error) {
	return strings.Fields(text), nil
}

// Assembler builds the final ordered, deduplicated token list fed to the
// tagger: it merges the caller's keyword list with role-salient tokens mined
// from the full sentence, removes compound-shadowed substrings and restores
// Thai surface order.
type Assembler struct {
	segmenter Segmenter
	log       logging.Logger
}

// NewAssembler builds an Assembler. A nil segmenter falls back to
// whitespace splitting.
func NewAssembler(segmenter Segmenter, log logging.Logger) *Assembler {
	if segmenter == nil {
		segmenter = WhitespaceSegmenter{}
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Assembler{segmenter: segmenter, log: log.Named("assembler")}
}

// Assemble produces the token list for one request. Empty text and keywords
// short-circuit to an empty result.
func (a *Assembler) Assemble(ctx context.Context, text string, keywords []string, snapshot *sign.Snapshot) []string {
	text = Normalize(text)
	keywords = NormalizeAll(keywords)
	if text == "" && len(keywords) == 0 {
		return nil
	}

	// Mine the full sentence for salient tokens the keyword extraction may
	// have missed.
	segments, err := a.segmenter.Segment(ctx, text)
	if err != nil {
		a.log.Warn("segmentation failed, falling back to whitespace split", logging.Err(err))
		segments = strings.Fields(text)
	}
	salient := a.filterSalient(NormalizeAll(segments), snapshot)

	// Merge keywords first, then mined candidates; dedupe by normalized
	// word preserving first-seen order.
	merged := dedupe(append(append([]string{}, keywords...), salient...))

	// A compound dictionary entry must not be shadowed by its constituent
	// parts appearing separately.
	merged = dropSubstrings(merged)

	// Restore surface order: the rule table's input patterns are defined
	// against Thai word order, not extraction order.
	return orderByOccurrence(merged, text)
}

// filterSalient keeps segmented candidates whose best dictionary category
// maps to a salient role. Candidates without a dictionary entry are noise
// here (the keyword list is the authority for out-of-dictionary tokens).
func (a *Assembler) filterSalient(candidates []string, snapshot *sign.Snapshot) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		entry, ok := resolveEntry(c, snapshot)
		if !ok {
			continue
		}
		roleName, _, ok := snapshot.RolePriority(entry.Category)
		if !ok {
			continue
		}
		if ParseRole(roleName).Salient() {
			out = append(out, c)
		}
	}
	return out
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// dropSubstrings removes any token that is a strict substring of another
// surviving token, preferring the longest compound form.
func dropSubstrings(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i, t := range tokens {
		shadowed := false
		for j, other := range tokens {
			if i == j || t == other {
				continue
			}
			if strings.Contains(other, t) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			out = append(out, t)
		}
	}
	return out
}

// orderByOccurrence sorts tokens by their first character-offset occurrence
// in the source text. Tokens absent from the text sort last, keeping their
// relative order.
func orderByOccurrence(tokens []string, text string) []string {
	type positioned struct {
		token string
		pos   int
	}
	ps := make([]positioned, 0, len(tokens))
	for _, t := range tokens {
		pos := strings.Index(text, t)
		if pos < 0 {
			pos = len(text) + 1
		}
		ps = append(ps, positioned{token: t, pos: pos})
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].pos < ps[j].pos })

	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.token)
	}
	return out
}

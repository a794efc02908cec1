package translate

import (
	"context"

	"github.com/thaisign/thsl-translate/internal/domain/sign"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
)

// Input is one translation request to the engine.
type Input struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
}

// Result is the engine's output: the ThSL-ordered resolved glosses plus the
// words that had no dictionary match. RuleID names the reordering rule that
// fired; LowConfidence is set when no rule matched and the engine fell back
// to original order.
type Result struct {
	Tokens        []sign.ResolvedToken `json:"tokens"`
	NotFound      []string             `json:"notFound"`
	RuleID        string               `json:"ruleId,omitempty"`
	LowConfidence bool                 `json:"lowConfidence"`

	// Order is the reordered tagged sequence before lexical resolution.
	// Kept for debugging surfaces (CLI, logs).
	Order []TaggedToken `json:"-"`
}

// Engine composes the assembler, tagger, matcher, reorderer and resolver
// into one deterministic pipeline. It holds no per-request state: snapshots
// are passed in explicitly, so concurrent requests are safely parallel and
// re-running with the same token set and snapshot always yields the same
// output.
type Engine struct {
	lexicons  *LexiconStore
	matcher   *Matcher
	assembler *Assembler
	log       logging.Logger
}

// NewEngine wires an Engine. Nil arguments select the defaults: built-in
// lexicon, DefaultRules, whitespace segmentation, nop logging.
func NewEngine(lexicons *LexiconStore, rules []Rule, segmenter Segmenter, log logging.Logger) *Engine {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if lexicons == nil {
		lexicons = NewLexiconStore(nil, log)
	}
	return &Engine{
		lexicons:  lexicons,
		matcher:   NewMatcher(rules),
		assembler: NewAssembler(segmenter, log),
		log:       log.Named("engine"),
	}
}

// Translate runs the full pipeline for one request. snapshot may be nil
// (table unavailable); tagging then degrades to the default role and every
// word reports as not found, rather than aborting. Malformed input (empty
// text and keywords) yields an empty Result. No condition here is fatal.
func (e *Engine) Translate(ctx context.Context, in Input, snapshot *sign.Snapshot) (*Result, error) {
	tokens := e.assembler.Assemble(ctx, in.Text, in.Keywords, snapshot)
	if len(tokens) == 0 {
		return &Result{Tokens: []sign.ResolvedToken{}, NotFound: []string{}}, nil
	}

	tagger := NewTagger(e.lexicons.Current())
	tagged := tagger.Tag(tokens, snapshot)

	rule, matched := e.matcher.Match(FilterUnknown(tagged))
	ordered := Reorder(tagged, rule)

	resolved, notFound := ResolveTokens(ordered, snapshot)
	if notFound == nil {
		notFound = []string{}
	}

	res := &Result{
		Tokens:        resolved,
		NotFound:      notFound,
		LowConfidence: !matched,
		Order:         ordered,
	}
	if matched {
		res.RuleID = rule.ID
	}

	e.log.Debug("translation completed",
		logging.Int("tokens", len(tokens)),
		logging.Int("resolved", len(resolved)),
		logging.Int("not_found", len(notFound)),
		logging.String("rule_id", res.RuleID),
		logging.Bool("low_confidence", res.LowConfidence),
	)
	return res, nil
}

package translate

// Reorder produces the final token order for a tagged sequence.
//
// With a matched rule it walks the rule's output slots left to right. A
// collect-all slot consumes every remaining unused token of its role, in
// original relative order; a plain slot consumes the first remaining unused
// token whose role is in the slot's role set (alternative groups emit
// whichever alternative is present and skip the rest). A token is consumed
// at most once. After the slots are exhausted, unconsumed tokens are
// appended in original order, so the output is always a permutation of the
// input: nothing is invented, nothing is dropped.
//
// With rule == nil the input comes back unchanged.
func Reorder(tagged []TaggedToken, rule *Rule) []TaggedToken {
	if rule == nil {
		out := make([]TaggedToken, len(tagged))
		copy(out, tagged)
		return out
	}

	used := make([]bool, len(tagged))
	out := make([]TaggedToken, 0, len(tagged))

	for _, s := range rule.Output {
		if s.CollectAll {
			for i, t := range tagged {
				if !used[i] && slotAccepts(s, t.Role) {
					out = append(out, t)
					used[i] = true
				}
			}
			continue
		}
		for i, t := range tagged {
			if !used[i] && slotAccepts(s, t.Role) {
				out = append(out, t)
				used[i] = true
				break
			}
		}
	}

	for i, t := range tagged {
		if !used[i] {
			out = append(out, t)
		}
	}
	return out
}

func slotAccepts(s Slot, r Role) bool {
	for _, want := range s.Roles {
		if want == r {
			return true
		}
	}
	return false
}

package translate

// FilterUnknown returns the roles of tagged, in order, with Unknown removed.
// This is the sequence the matcher compares against rule inputs.
func FilterUnknown(tagged []TaggedToken) []Role {
	roles := make([]Role, 0, len(tagged))
	for _, t := range tagged {
		if t.Role == RoleUnknown {
			continue
		}
		roles = append(roles, t.Role)
	}
	return roles
}

// Matcher finds the rule whose input pattern exactly equals a tagged role
// sequence.
type Matcher struct {
	rules []Rule
}

// NewMatcher builds a Matcher over an ordered rule table. A nil table uses
// DefaultRules.
func NewMatcher(rules []Rule) *Matcher {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Matcher{rules: rules}
}

// Match scans the table in definition order and returns the first rule whose
// input sequence has identical length and role-by-position content. No
// partial, subsequence or wildcard matching. A miss is not an error; it
// signals the reorderer to keep the original order.
func (m *Matcher) Match(roles []Role) (*Rule, bool) {
	for i := range m.rules {
		if rolesEqual(m.rules[i].Input, roles) {
			return &m.rules[i], true
		}
	}
	return nil, false
}

func rolesEqual(a, b []Role) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

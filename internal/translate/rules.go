package translate

// Slot is one position in a rule's output sequence.
//
// Roles usually holds a single role. A slot with several roles is an
// alternative-role group: the roles are mutually exclusive in practice (age
// vs. year marking) and whichever one is present in the input is emitted;
// absent alternatives are skipped. CollectAll marks a slot that consumes
// every remaining token of its role, in original relative order, instead of
// just the first.
type Slot struct {
	Roles      []Role
	CollectAll bool
}

// slot builds a single-role Slot.
func slot(r Role) Slot { return Slot{Roles: []Role{r}} }

// collect builds a collect-all Slot.
func collect(r Role) Slot { return Slot{Roles: []Role{r}, CollectAll: true} }

// either builds an alternative-role group Slot.
func either(roles ...Role) Slot { return Slot{Roles: roles} }

// Rule maps an exact input role sequence to an output slot sequence.
// Matching is order-sensitive and length-exact: a rule matches iff the
// tagged sequence's roles equal Input element for element. Table order is
// the tie-break should two rules ever share an input pattern.
type Rule struct {
	ID     string
	Input  []Role
	Output []Slot
}

// DefaultRules is the ThSL reordering catalogue. The grammar is
// topic-comment: objects front, time and place markers lead, negators and
// question particles trail the verb phrase. Patterns not listed here fall
// back to original order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:     "svo-object-front",
			Input:  []Role{RoleSubject, RoleVerb, RoleObject},
			Output: []Slot{slot(RoleObject), slot(RoleSubject), slot(RoleVerb)},
		},
		{
			ID:     "svo-negated",
			Input:  []Role{RoleSubject, RoleNegator, RoleVerb, RoleObject},
			Output: []Slot{slot(RoleObject), slot(RoleSubject), slot(RoleVerb), slot(RoleNegator)},
		},
		{
			ID:     "sv-plain",
			Input:  []Role{RoleSubject, RoleVerb},
			Output: []Slot{slot(RoleSubject), slot(RoleVerb)},
		},
		{
			ID:     "sv-negated",
			Input:  []Role{RoleSubject, RoleNegator, RoleVerb},
			Output: []Slot{slot(RoleSubject), slot(RoleVerb), slot(RoleNegator)},
		},
		{
			ID:     "svoo-collect",
			Input:  []Role{RoleSubject, RoleVerb, RoleObject, RoleObject},
			Output: []Slot{collect(RoleObject), slot(RoleSubject), slot(RoleVerb)},
		},
		{
			ID:     "time-svo",
			Input:  []Role{RoleTime, RoleSubject, RoleVerb, RoleObject},
			Output: []Slot{slot(RoleTime), slot(RoleObject), slot(RoleSubject), slot(RoleVerb)},
		},
		{
			ID:     "svo-time-front",
			Input:  []Role{RoleSubject, RoleVerb, RoleObject, RoleTime},
			Output: []Slot{slot(RoleTime), slot(RoleObject), slot(RoleSubject), slot(RoleVerb)},
		},
		{
			ID:     "svo-place-front",
			Input:  []Role{RoleSubject, RoleVerb, RoleObject, RolePlace},
			Output: []Slot{slot(RolePlace), slot(RoleObject), slot(RoleSubject), slot(RoleVerb)},
		},
		{
			ID:     "sv-place-front",
			Input:  []Role{RoleSubject, RoleVerb, RolePlace},
			Output: []Slot{slot(RolePlace), slot(RoleSubject), slot(RoleVerb)},
		},
		{
			ID:     "time-sv",
			Input:  []Role{RoleTime, RoleSubject, RoleVerb},
			Output: []Slot{slot(RoleTime), slot(RoleSubject), slot(RoleVerb)},
		},
		{
			ID:     "sv-question",
			Input:  []Role{RoleSubject, RoleVerb, RoleQuestion},
			Output: []Slot{slot(RoleSubject), slot(RoleVerb), slot(RoleQuestion)},
		},
		{
			ID:     "svo-question",
			Input:  []Role{RoleSubject, RoleVerb, RoleObject, RoleQuestion},
			Output: []Slot{slot(RoleObject), slot(RoleSubject), slot(RoleVerb), slot(RoleQuestion)},
		},
		{
			// Copula drops to the tail via the leftover append; ThSL signs
			// the attribute directly after the topic.
			ID:     "pronoun-copula-adjective",
			Input:  []Role{RolePronoun, RoleCopula, RoleAdjective},
			Output: []Slot{slot(RolePronoun), slot(RoleAdjective)},
		},
		{
			ID:     "subject-adjective",
			Input:  []Role{RoleSubject, RoleAdjective},
			Output: []Slot{slot(RoleSubject), slot(RoleAdjective)},
		},
		{
			ID:     "pronoun-age-numeral",
			Input:  []Role{RolePronoun, RoleAge, RoleNumeral},
			Output: []Slot{slot(RolePronoun), either(RoleAge, RoleYear), slot(RoleNumeral)},
		},
		{
			ID:     "pronoun-year-numeral",
			Input:  []Role{RolePronoun, RoleYear, RoleNumeral},
			Output: []Slot{slot(RolePronoun), either(RoleAge, RoleYear), slot(RoleNumeral)},
		},
		{
			ID:     "object-numeral-currency",
			Input:  []Role{RoleObject, RoleNumeral, RoleCurrency},
			Output: []Slot{slot(RoleObject), slot(RoleNumeral), slot(RoleCurrency)},
		},
		{
			ID:     "pronoun-verb-object",
			Input:  []Role{RolePronoun, RoleVerb, RoleObject},
			Output: []Slot{slot(RoleObject), slot(RolePronoun), slot(RoleVerb)},
		},
		{
			ID:     "pronoun-negated-verb-object",
			Input:  []Role{RolePronoun, RoleNegator, RoleVerb, RoleObject},
			Output: []Slot{slot(RoleObject), slot(RolePronoun), slot(RoleVerb), slot(RoleNegator)},
		},
		{
			ID:     "pronoun-verb-object-question",
			Input:  []Role{RolePronoun, RoleVerb, RoleObject, RoleQuestion},
			Output: []Slot{slot(RoleObject), slot(RolePronoun), slot(RoleVerb), slot(RoleQuestion)},
		},
	}
}

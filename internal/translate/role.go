// Package translate implements the grammatical reordering and lexical
// resolution engine that turns a Thai-ordered token stream into a
// ThSL-ordered stream of resolved sign glosses. Everything here is a pure,
// deterministic, in-memory transformation; external data (category-role
// table, dictionary rows) is passed in as an explicit read-only snapshot.
package translate

// Role is a grammatical tag assigned to a token. Exactly one role per token
// per tagging pass.
type Role string

const (
	RoleSubject   Role = "SUBJECT"
	RoleVerb      Role = "VERB"
	RoleObject    Role = "OBJECT"
	RoleNegator   Role = "NEGATOR"
	RolePlace     Role = "PLACE"
	RoleTime      Role = "TIME"
	RoleAdjective Role = "ADJECTIVE"
	RoleClause    Role = "CLAUSE"
	RoleQuestion  Role = "QUESTION"
	RolePronoun   Role = "PRONOUN"
	RoleCopula    Role = "COPULA"
	RoleNumeral   Role = "NUMERAL"
	RoleCurrency  Role = "CURRENCY"
	RoleAge       Role = "AGE"
	RoleYear      Role = "YEAR"
	RoleUnknown   Role = "UNKNOWN"
)

// DefaultRole is assigned when no tagging rule fires. It is deliberately
// Object-like so common Subject-Verb-Object shapes still match.
const DefaultRole = RoleObject

var allRoles = map[Role]struct{}{
	RoleSubject: {}, RoleVerb: {}, RoleObject: {}, RoleNegator: {},
	RolePlace: {}, RoleTime: {}, RoleAdjective: {}, RoleClause: {},
	RoleQuestion: {}, RolePronoun: {}, RoleCopula: {}, RoleNumeral: {},
	RoleCurrency: {}, RoleAge: {}, RoleYear: {}, RoleUnknown: {},
}

// ParseRole converts a role name from an external table into a Role.
// Unrecognised names map to RoleUnknown.
func ParseRole(s string) Role {
	r := Role(s)
	if _, ok := allRoles[r]; ok {
		return r
	}
	return RoleUnknown
}

// Valid reports whether r is a member of the closed role enumeration.
func (r Role) Valid() bool {
	_, ok := allRoles[r]
	return ok
}

func (r Role) String() string { return string(r) }

// salientRoles are the roles retained during sentence-wide token enrichment.
// Tokens whose best dictionary category maps outside this set are treated as
// function words or segmenter noise and dropped by the assembler.
var salientRoles = map[Role]struct{}{
	RoleSubject: {}, RoleVerb: {}, RoleObject: {}, RoleNegator: {},
	RolePlace: {}, RoleTime: {}, RoleAdjective: {}, RoleQuestion: {},
	RolePronoun: {}, RoleNumeral: {}, RoleCurrency: {}, RoleAge: {},
	RoleYear: {},
}

// Salient reports whether r survives enrichment filtering.
func (r Role) Salient() bool {
	_, ok := salientRoles[r]
	return ok
}

// TaggedToken pairs a normalized token with its assigned role.
type TaggedToken struct {
	Word string
	Role Role
}

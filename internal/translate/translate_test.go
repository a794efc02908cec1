package translate

import (
	"github.com/thaisign/thsl-translate/internal/domain/sign"
)

// newTestSnapshot builds the fixture snapshot shared by the engine tests: a
// small category-role table and a dictionary with homonyms, a compound word
// and its parts, and entries for every role the rule table exercises.
func newTestSnapshot() *sign.Snapshot {
	entry := func(word, category string) sign.DictionaryEntry {
		return sign.DictionaryEntry{Word: word, Category: category, AssetRef: word + ".pose"}
	}

	return &sign.Snapshot{
		Roles: []sign.CategoryRoleEntry{
			{Category: "pronoun", Role: "PRONOUN", Priority: 5},
			{Category: "person", Role: "SUBJECT", Priority: 10},
			{Category: "action", Role: "VERB", Priority: 10},
			{Category: "thing", Role: "OBJECT", Priority: 20},
			{Category: "brand", Role: "OBJECT", Priority: 1},
			{Category: "number", Role: "NUMERAL", Priority: 50},
			{Category: "negation", Role: "NEGATOR", Priority: 5},
			{Category: "place", Role: "PLACE", Priority: 15},
			{Category: "time", Role: "TIME", Priority: 15},
			{Category: "question", Role: "QUESTION", Priority: 5},
			{Category: "currency", Role: "CURRENCY", Priority: 10},
			{Category: "age", Role: "AGE", Priority: 10},
			{Category: "quality", Role: "ADJECTIVE", Priority: 10},
			{Category: "particle", Role: "UNKNOWN", Priority: 90},
		},
		Entries: map[string][]sign.DictionaryEntry{
			"ฉัน":          {entry("ฉัน", "pronoun")},
			"แม่":          {entry("แม่", "person")},
			"พ่อ":          {entry("พ่อ", "person")},
			"กิน":          {entry("กิน", "action")},
			"อ่าน":         {entry("อ่าน", "action")},
			"ข้าว":         {entry("ข้าว", "thing")},
			"หนังสือ":      {entry("หนังสือ", "thing")},
			"ไม่":          {entry("ไม่", "negation")},
			"วันนี้":       {entry("วันนี้", "time")},
			"โรงเรียน":     {entry("โรงเรียน", "place")},
			"ไหม":          {entry("ไหม", "question")},
			"บาท":          {entry("บาท", "currency")},
			"อายุ":         {entry("อายุ", "age")},
			"สวย":          {entry("สวย", "quality")},
			"โทรศัพท์":     {entry("โทรศัพท์", "thing")},
			"บ้าน":         {entry("บ้าน", "thing")},
			"โทรศัพท์บ้าน": {entry("โทรศัพท์บ้าน", "thing")},
			"นะ":           {entry("นะ", "particle")},
			// Homonym: the brand sense has the best table priority, but the
			// numeral override must win for pure digit tokens.
			"5": {
				entry("5", "brand"),
				entry("5", "number"),
			},
		},
	}
}

// words extracts the word sequence from tagged tokens.
func words(tagged []TaggedToken) []string {
	out := make([]string, 0, len(tagged))
	for _, t := range tagged {
		out = append(out, t.Word)
	}
	return out
}

// tag builds a TaggedToken inline.
func tag(word string, role Role) TaggedToken {
	return TaggedToken{Word: word, Role: role}
}

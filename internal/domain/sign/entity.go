// Package sign holds the domain entities for the sign-language dictionary:
// dictionary entries, the category-role table and the resolved tokens handed
// to rendering.
package sign

import (
	"context"
	"time"
)

// DictionaryEntry is one row of the sign dictionary. A word may have several
// entries differing only in category (homonyms); lexical resolution picks
// exactly one per token occurrence.
type DictionaryEntry struct {
	ID        int64     `json:"id"`
	Word      string    `json:"word"`
	Category  string    `json:"category"`
	AssetRef  string    `json:"asset_ref"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRoleEntry maps a dictionary category name to a grammatical role
// and a numeric priority. Lower priority wins during lexical resolution.
type CategoryRoleEntry struct {
	Category string `json:"category"`
	Role     string `json:"role"`
	Priority int    `json:"priority"`
}

// ResolvedToken is a token bound to a single chosen dictionary entry. It is
// the unit handed to the rendering component.
type ResolvedToken struct {
	Word     string `json:"word"`
	Category string `json:"category"`
	AssetRef string `json:"asset_ref"`
}

// Snapshot is a point-in-time view of the category-role table and the
// dictionary rows needed for one translation request. It is read-only for
// the duration of the request; requests never share mutable state.
type Snapshot struct {
	Roles   []CategoryRoleEntry
	Entries map[string][]DictionaryEntry // word -> homonym candidates
}

// Candidates returns the dictionary entries for word, or nil when the word
// is not in the snapshot.
func (s *Snapshot) Candidates(word string) []DictionaryEntry {
	if s == nil || s.Entries == nil {
		return nil
	}
	return s.Entries[word]
}

// RolePriority returns the role name and priority for a category. The second
// return value is false when the category is not in the table.
func (s *Snapshot) RolePriority(category string) (string, int, bool) {
	if s == nil {
		return "", 0, false
	}
	for _, e := range s.Roles {
		if e.Category == category {
			return e.Role, e.Priority, true
		}
	}
	return "", 0, false
}

// DictionaryRepository reads sign dictionary rows.
type DictionaryRepository interface {
	// GetByWord returns all entries sharing the exact word.
	GetByWord(ctx context.Context, word string) ([]DictionaryEntry, error)

	// GetByWords returns entries for a batch of words, keyed by word. Words
	// with no entry are absent from the map.
	GetByWords(ctx context.Context, words []string) (map[string][]DictionaryEntry, error)

	// List returns a page of entries ordered by word.
	List(ctx context.Context, limit, offset int) ([]DictionaryEntry, int64, error)
}

// CategoryRoleRepository reads the category-role table.
type CategoryRoleRepository interface {
	// ListAll returns every row of the table.
	ListAll(ctx context.Context) ([]CategoryRoleEntry, error)
}

// SnapshotLoader assembles a Snapshot for a batch of candidate words.
type SnapshotLoader interface {
	Load(ctx context.Context, words []string) (*Snapshot, error)
}

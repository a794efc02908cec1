package translate

import (
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/pkg/errors"
)

// Lexicon is the closed literal vocabulary used by the role tagger for
// tokens that have no dictionary entry: negators, time and place markers,
// pronouns, common verbs, question particles and similar. It is supplied
// externally as a YAML file rather than embedded in code, so it can be
// edited and tested in isolation.
type Lexicon struct {
	// Words maps a role name to the literal tokens that carry that role.
	Words map[string][]string `yaml:"roles"`

	byWord map[string]Role
}

// lexiconFile is the on-disk YAML shape.
type lexiconFile struct {
	Roles map[string][]string `yaml:"roles"`
}

// NewLexicon builds a Lexicon from role-name → word-list data, normalizing
// every word. It returns an error for unknown role names or for a word
// listed under two roles, since tagging must be deterministic.
func NewLexicon(words map[string][]string) (*Lexicon, error) {
	lex := &Lexicon{
		Words:  make(map[string][]string, len(words)),
		byWord: make(map[string]Role),
	}

	// Deterministic iteration so duplicate errors are stable.
	names := make([]string, 0, len(words))
	for name := range words {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		role := ParseRole(name)
		if role == RoleUnknown {
			return nil, errors.Newf(errors.ErrCodeLexiconInvalid, "unknown role %q in lexicon", name)
		}
		for _, w := range words[name] {
			n := Normalize(w)
			if n == "" {
				continue
			}
			if prev, dup := lex.byWord[n]; dup && prev != role {
				return nil, errors.Newf(errors.ErrCodeLexiconInvalid,
					"word %q listed under both %s and %s", n, prev, role)
			}
			lex.byWord[n] = role
			lex.Words[name] = append(lex.Words[name], n)
		}
	}
	return lex, nil
}

// LoadLexicon reads and builds a Lexicon from a YAML file.
func LoadLexicon(path string) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCodeLexiconLoadFailed, "read lexicon file %q", path)
	}
	var f lexiconFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCodeLexiconInvalid, "parse lexicon file %q", path)
	}
	return NewLexicon(f.Roles)
}

// Lookup returns the role for a normalized word, if the lexicon lists it.
func (l *Lexicon) Lookup(word string) (Role, bool) {
	if l == nil {
		return RoleUnknown, false
	}
	r, ok := l.byWord[word]
	return r, ok
}

// Len returns the number of distinct words in the lexicon.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.byWord)
}

// DefaultLexicon returns the built-in Thai vocabulary used when no lexicon
// file is configured. The file format mirrors this structure.
func DefaultLexicon() *Lexicon {
	lex, err := NewLexicon(map[string][]string{
		string(RoleNegator):  {"ไม่", "ไม่ได้", "ไม่ใช่", "อย่า", "ห้าม"},
		string(RoleTime):     {"วันนี้", "พรุ่งนี้", "เมื่อวาน", "ตอนนี้", "เช้า", "เย็น", "กลางคืน", "เดือนหน้า", "ปีหน้า"},
		string(RolePlace):    {"ที่นี่", "ที่นั่น", "ที่โน่น", "ข้างนอก", "ข้างใน"},
		string(RolePronoun):  {"ฉัน", "ผม", "คุณ", "เขา", "เธอ", "เรา", "มัน", "พวกเขา"},
		string(RoleVerb):     {"กิน", "ไป", "มา", "ชอบ", "รัก", "เห็น", "ทำ", "นอน", "วิ่ง", "อ่าน", "เขียน"},
		string(RoleQuestion): {"ไหม", "อะไร", "ที่ไหน", "ใคร", "ทำไม", "เมื่อไหร่", "อย่างไร"},
		string(RoleCopula):   {"คือ", "เป็น"},
		string(RoleAge):      {"อายุ"},
		string(RoleYear):     {"ปี", "พ.ศ."},
		string(RoleCurrency): {"บาท"},
	})
	if err != nil {
		// The built-in table is static; a build error here is a programming
		// mistake caught by tests.
		panic(err)
	}
	return lex
}

// LexiconStore holds the active Lexicon and supports atomic replacement, so
// a file watcher can hot-reload it while translations are in flight.
type LexiconStore struct {
	mu  sync.RWMutex
	lex *Lexicon
	log logging.Logger
}

// NewLexiconStore wraps an initial Lexicon. A nil initial value falls back
// to DefaultLexicon.
func NewLexiconStore(initial *Lexicon, log logging.Logger) *LexiconStore {
	if initial == nil {
		initial = DefaultLexicon()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &LexiconStore{lex: initial, log: log.Named("lexicon")}
}

// Current returns the active Lexicon.
func (s *LexiconStore) Current() *Lexicon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lex
}

// Replace swaps in a new Lexicon.
func (s *LexiconStore) Replace(lex *Lexicon) {
	if lex == nil {
		return
	}
	s.mu.Lock()
	s.lex = lex
	s.mu.Unlock()
	s.log.Info("lexicon replaced", logging.Int("words", lex.Len()))
}

// Reload loads path and, when it parses and validates, swaps it in. A bad
// file leaves the active Lexicon untouched.
func (s *LexiconStore) Reload(path string) error {
	lex, err := LoadLexicon(path)
	if err != nil {
		s.log.Warn("lexicon reload rejected", logging.String("path", path), logging.Err(err))
		return err
	}
	s.Replace(lex)
	return nil
}

// ValidateLexiconFile checks an on-disk lexicon file without activating it,
// returning the number of words it defines. Used by the CLI.
func ValidateLexiconFile(path string) (int, error) {
	lex, err := LoadLexicon(path)
	if err != nil {
		return 0, err
	}
	return lex.Len(), nil
}

package translate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/pkg/errors"
)

func TestDefaultLexicon(t *testing.T) {
	lex := DefaultLexicon()
	require.NotNil(t, lex)
	assert.Greater(t, lex.Len(), 0)

	role, ok := lex.Lookup("ไม่")
	require.True(t, ok)
	assert.Equal(t, RoleNegator, role)

	role, ok = lex.Lookup("วันนี้")
	require.True(t, ok)
	assert.Equal(t, RoleTime, role)

	_, ok = lex.Lookup("ไม่มีคำนี้")
	assert.False(t, ok)
}

func TestNewLexiconRejectsUnknownRole(t *testing.T) {
	_, err := NewLexicon(map[string][]string{"PREPOSITION": {"กับ"}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLexiconInvalid))
}

func TestNewLexiconRejectsDuplicateWord(t *testing.T) {
	_, err := NewLexicon(map[string][]string{
		string(RoleTime):  {"ปี"},
		string(RoleYear):  {"ปี"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLexiconInvalid))
}

func TestNewLexiconNormalizesWords(t *testing.T) {
	lex, err := NewLexicon(map[string][]string{
		string(RoleNegator): {" ไม่​ ", ""},
	})
	require.NoError(t, err)

	role, ok := lex.Lookup("ไม่")
	require.True(t, ok)
	assert.Equal(t, RoleNegator, role)
	assert.Equal(t, 1, lex.Len())
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
roles:
  NEGATOR: ["ไม่", "อย่า"]
  QUESTION: ["ไหม"]
`), 0o644))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)
	assert.Equal(t, 3, lex.Len())

	role, ok := lex.Lookup("อย่า")
	require.True(t, ok)
	assert.Equal(t, RoleNegator, role)
}

func TestLoadLexiconMissingFile(t *testing.T) {
	_, err := LoadLexicon("/nonexistent/lexicon.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLexiconLoadFailed))
}

func TestLoadLexiconBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles: [broken"), 0o644))

	_, err := LoadLexicon(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLexiconInvalid))
}

func TestLexiconStoreReplaceAndReload(t *testing.T) {
	store := NewLexiconStore(nil, logging.NewNopLogger())
	require.NotNil(t, store.Current())

	custom, err := NewLexicon(map[string][]string{string(RoleQuestion): {"หรือ"}})
	require.NoError(t, err)
	store.Replace(custom)
	assert.Equal(t, custom, store.Current())

	// A bad reload leaves the active lexicon untouched.
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("roles: {NOPE: [x]}"), 0o644))
	require.Error(t, store.Reload(bad))
	assert.Equal(t, custom, store.Current())

	// A good reload swaps in the new lexicon.
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("roles: {NEGATOR: [\"ห้าม\"]}"), 0o644))
	require.NoError(t, store.Reload(good))
	role, ok := store.Current().Lookup("ห้าม")
	require.True(t, ok)
	assert.Equal(t, RoleNegator, role)
}

func TestValidateLexiconFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles: {TIME: [\"พรุ่งนี้\", \"เมื่อวาน\"]}"), 0o644))

	n, err := ValidateLexiconFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

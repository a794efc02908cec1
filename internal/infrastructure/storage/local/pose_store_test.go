package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

func newTestStore(t *testing.T) (dir string, store *poseStore) {
	t.Helper()
	dir = t.TempDir()
	s, err := NewPoseStore(dir, logging.NewNopLogger())
	require.NoError(t, err)
	return dir, s.(*poseStore)
}

func TestPoseStore_OpenAndStat(t *testing.T) {
	dir, store := newTestStore(t)
	payload := []byte("pose-binary-payload")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "กิน.pose"), payload, 0o644))

	ctx := context.Background()

	stat, err := store.Stat(ctx, "กิน.pose")
	require.NoError(t, err)
	assert.Equal(t, "กิน.pose", stat.Name)
	assert.Equal(t, int64(len(payload)), stat.Size)
	assert.False(t, stat.ModTime.IsZero())

	r, openStat, err := store.Open(ctx, "กิน.pose")
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, stat.Size, openStat.Size)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestPoseStore_NotFound(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Stat(ctx, "missing.pose")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePoseNotFound))

	_, _, err = store.Open(ctx, "missing.pose")
	assert.True(t, apperrors.IsNotFound(err))

	ok, err := store.Exists(ctx, "missing.pose")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPoseStore_Exists(t *testing.T) {
	dir, store := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ข้าว.pose"), []byte("x"), 0o644))

	ok, err := store.Exists(context.Background(), "ข้าว.pose")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPoseStore_RejectsTraversal(t *testing.T) {
	dir, store := newTestStore(t)

	// A real file outside the pose directory must stay unreachable.
	outside := filepath.Join(filepath.Dir(dir), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

	for _, name := range []string{"../secret.txt", "/etc/passwd", "a/../../secret.txt", ""} {
		_, err := store.Stat(context.Background(), name)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePoseNameInvalid), "name=%q", name)
	}
}

func TestPoseStore_DirectoryIsNotAPose(t *testing.T) {
	dir, store := newTestStore(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "verbs"), 0o755))

	_, err := store.Stat(context.Background(), "verbs")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePoseNotFound))
}

func TestPoseStore_Subdirectory(t *testing.T) {
	dir, store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "verbs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "verbs", "กิน.pose"), []byte("x"), 0o644))

	stat, err := store.Stat(context.Background(), "verbs/กิน.pose")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stat.Size)
}

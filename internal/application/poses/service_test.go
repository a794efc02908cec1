package poses

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaisign/thsl-translate/internal/domain/pose"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

const frameBytes = 528

type memStore struct {
	files     map[string]int64 // name -> size
	openCalls int
	statCalls int
}

func (m *memStore) Open(_ context.Context, name string) (io.ReadCloser, pose.Stat, error) {
	m.openCalls++
	size, ok := m.files[name]
	if !ok {
		return nil, pose.Stat{}, apperrors.New(apperrors.ErrCodePoseNotFound, "pose file not found")
	}
	return io.NopCloser(bytes.NewReader(make([]byte, int(size)))), m.statOf(name, size), nil
}

func (m *memStore) Stat(_ context.Context, name string) (pose.Stat, error) {
	m.statCalls++
	size, ok := m.files[name]
	if !ok {
		return pose.Stat{}, apperrors.New(apperrors.ErrCodePoseNotFound, "pose file not found")
	}
	return m.statOf(name, size), nil
}

func (m *memStore) Exists(_ context.Context, name string) (bool, error) {
	_, ok := m.files[name]
	return ok, nil
}

func (m *memStore) statOf(name string, size int64) pose.Stat {
	return pose.Stat{Name: name, Size: size, ModTime: time.Unix(1700000000, 0)}
}

// countingCache wraps the in-memory cache pattern used across the
// application tests, tracking loader invocations through GetOrSet.
type countingCache struct {
	data  map[string]pose.Meta
	loads int
}

func newCountingCache() *countingCache {
	return &countingCache{data: map[string]pose.Meta{}}
}

func (c *countingCache) Get(_ context.Context, key string, dest interface{}) error {
	meta, ok := c.data[key]
	if !ok {
		return apperrors.New(apperrors.ErrCodeNotFound, "cache miss")
	}
	*dest.(*pose.Meta) = meta
	return nil
}

func (c *countingCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.data[key] = value.(pose.Meta)
	return nil
}

func (c *countingCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}
	c.loads++
	val, err := loader(ctx)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, val, ttl); err != nil {
		return err
	}
	return c.Get(ctx, key, dest)
}

func (c *countingCache) Delete(_ context.Context, _ ...string) error                 { return nil }
func (c *countingCache) Exists(_ context.Context, _ string) (bool, error)            { return false, nil }
func (c *countingCache) MGet(_ context.Context, _ []string) (map[string][]byte, error) {
	return nil, nil
}
func (c *countingCache) DeleteByPrefix(_ context.Context, _ string) (int64, error) { return 0, nil }
func (c *countingCache) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }
func (c *countingCache) TTL(_ context.Context, _ string) (time.Duration, error)    { return 0, nil }
func (c *countingCache) Ping(_ context.Context) error                              { return nil }

func TestOpen_PrimaryStoreWins(t *testing.T) {
	primary := &memStore{files: map[string]int64{"กิน.pose": 14652 + 20*frameBytes}}
	fallback := &memStore{files: map[string]int64{"กิน.pose": 2048}}
	svc := NewService([]pose.Store{primary, fallback}, nil, 0, nil, nil)

	rc, stat, err := svc.Open(context.Background(), "กิน.pose")
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, int64(14652+20*frameBytes), stat.Size)
	assert.Equal(t, 1, primary.openCalls)
	assert.Equal(t, 0, fallback.openCalls)
}

func TestOpen_FallsBackToSecondStore(t *testing.T) {
	primary := &memStore{files: map[string]int64{}}
	fallback := &memStore{files: map[string]int64{"กิน.pose": 14652 + 20*frameBytes}}
	svc := NewService([]pose.Store{primary, fallback}, nil, 0, nil, nil)

	rc, stat, err := svc.Open(context.Background(), "กิน.pose")
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, "กิน.pose", stat.Name)
	assert.Equal(t, 1, primary.openCalls)
	assert.Equal(t, 1, fallback.openCalls)
}

func TestOpen_NotFoundAnywhere(t *testing.T) {
	svc := NewService([]pose.Store{&memStore{files: map[string]int64{}}}, nil, 0, nil, nil)

	_, _, err := svc.Open(context.Background(), "หาย.pose")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestOpen_RejectsTraversal(t *testing.T) {
	svc := NewService([]pose.Store{&memStore{files: map[string]int64{}}}, nil, 0, nil, nil)

	_, _, err := svc.Open(context.Background(), "../etc/passwd")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePoseNameInvalid))
}

func TestGetMeta_ScansAndCaches(t *testing.T) {
	store := &memStore{files: map[string]int64{"กิน.pose": 14652 + 20*frameBytes}}
	cache := newCountingCache()
	svc := NewService([]pose.Store{store}, cache, time.Hour, nil, nil)

	meta, err := svc.GetMeta(context.Background(), "กิน.pose")
	require.NoError(t, err)
	assert.Equal(t, int64(14652), meta.Offset)
	assert.Equal(t, int64(20), meta.Frames)
	assert.Equal(t, pose.DefaultLandmarks, meta.Landmarks)
	assert.Equal(t, 1, cache.loads)

	// Second call is served from the cache without rescanning.
	meta2, err := svc.GetMeta(context.Background(), "กิน.pose")
	require.NoError(t, err)
	assert.Equal(t, meta.Offset, meta2.Offset)
	assert.Equal(t, 1, cache.loads)
}

func TestGetMeta_FileTooSmall(t *testing.T) {
	store := &memStore{files: map[string]int64{"เล็ก.pose": 512}}
	svc := NewService([]pose.Store{store}, nil, 0, nil, nil)

	_, err := svc.GetMeta(context.Background(), "เล็ก.pose")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePoseMetaScanFailed))
}

func TestGetMeta_NotFound(t *testing.T) {
	svc := NewService([]pose.Store{&memStore{files: map[string]int64{}}}, nil, 0, nil, nil)

	_, err := svc.GetMeta(context.Background(), "หาย.pose")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestExists_ChecksAllStores(t *testing.T) {
	primary := &memStore{files: map[string]int64{}}
	fallback := &memStore{files: map[string]int64{"กิน.pose": 2048}}
	svc := NewService([]pose.Store{primary, fallback}, nil, 0, nil, nil)

	ok, err := svc.Exists(context.Background(), "กิน.pose")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), "หาย.pose")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWarm_SkipsMissingFiles(t *testing.T) {
	store := &memStore{files: map[string]int64{
		"กิน.pose": 14652 + 20*frameBytes,
		"แมว.pose": 14652 + 15*frameBytes,
	}}
	cache := newCountingCache()
	svc := NewService([]pose.Store{store}, cache, time.Hour, nil, nil)

	warmed := svc.Warm(context.Background(), []string{"กิน.pose", "หาย.pose", "แมว.pose", ""})
	assert.Equal(t, 2, warmed)
	assert.Equal(t, 2, cache.loads)
}

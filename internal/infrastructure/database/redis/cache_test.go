package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/thaisign/thsl-translate/internal/config"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

type CacheTestSuite struct {
	suite.Suite
	client *Client
	mock   redismock.ClientMock
	cache  Cache
}

func (s *CacheTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	s.client = NewClientWithRedis(db, config.RedisConfig{}, logging.NewNopLogger())
	// Zero default TTL keeps Set expectations deterministic; the TTL
	// jitter only applies to non-zero expirations.
	s.cache = NewCache(s.client, logging.NewNopLogger(), WithPrefix("test:"), WithDefaultTTL(0))
}

func (s *CacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

type cachedEntry struct {
	Word     string `json:"word"`
	Category string `json:"category"`
}

func (s *CacheTestSuite) TestGet_Hit() {
	want := cachedEntry{Word: "กิน", Category: "action"}
	data, _ := json.Marshal(want)
	s.mock.ExpectGet("test:word:กิน").SetVal(string(data))

	var got cachedEntry
	err := s.cache.Get(context.Background(), "word:กิน", &got)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), want, got)
}

func (s *CacheTestSuite) TestGet_Miss() {
	s.mock.ExpectGet("test:word:หมา").RedisNil()

	var got cachedEntry
	err := s.cache.Get(context.Background(), "word:หมา", &got)
	assert.ErrorIs(s.T(), err, ErrCacheMiss)
}

func (s *CacheTestSuite) TestGet_NullSentinelIsMiss() {
	s.mock.ExpectGet("test:word:หมา").SetVal(nullSentinel)

	var got cachedEntry
	err := s.cache.Get(context.Background(), "word:หมา", &got)
	assert.ErrorIs(s.T(), err, ErrCacheMiss)
}

func (s *CacheTestSuite) TestSet() {
	val := cachedEntry{Word: "ข้าว", Category: "thing"}
	data, _ := json.Marshal(val)
	s.mock.ExpectSet("test:word:ข้าว", data, 0).SetVal("OK")

	err := s.cache.Set(context.Background(), "word:ข้าว", val, 0)
	assert.NoError(s.T(), err)
}

func (s *CacheTestSuite) TestDelete() {
	s.mock.ExpectDel("test:word:a", "test:word:b").SetVal(2)
	assert.NoError(s.T(), s.cache.Delete(context.Background(), "word:a", "word:b"))

	// Empty key list short-circuits without a round trip.
	assert.NoError(s.T(), s.cache.Delete(context.Background()))
}

func (s *CacheTestSuite) TestExists() {
	s.mock.ExpectExists("test:word:กิน").SetVal(1)
	ok, err := s.cache.Exists(context.Background(), "word:กิน")
	require.NoError(s.T(), err)
	assert.True(s.T(), ok)
}

func (s *CacheTestSuite) TestMGet_SkipsMissingAndNull() {
	a, _ := json.Marshal(cachedEntry{Word: "กิน"})
	s.mock.ExpectMGet("test:w:a", "test:w:b", "test:w:c").SetVal([]interface{}{string(a), nil, nullSentinel})

	got, err := s.cache.MGet(context.Background(), []string{"w:a", "w:b", "w:c"})
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	assert.JSONEq(s.T(), string(a), string(got["w:a"]))
}

func (s *CacheTestSuite) TestGetOrSet_MissLoadsAndPopulates() {
	want := cachedEntry{Word: "แม่", Category: "person"}
	data, _ := json.Marshal(want)

	s.mock.ExpectGet("test:word:แม่").RedisNil()
	s.mock.ExpectSet("test:word:แม่", data, 0).SetVal("OK")

	loads := 0
	var got cachedEntry
	err := s.cache.GetOrSet(context.Background(), "word:แม่", &got, 0, func(ctx context.Context) (interface{}, error) {
		loads++
		return want, nil
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, loads)
	assert.Equal(s.T(), want, got)
}

func (s *CacheTestSuite) TestGetOrSet_HitSkipsLoader() {
	want := cachedEntry{Word: "แม่", Category: "person"}
	data, _ := json.Marshal(want)
	s.mock.ExpectGet("test:word:แม่").SetVal(string(data))

	var got cachedEntry
	err := s.cache.GetOrSet(context.Background(), "word:แม่", &got, 0, func(ctx context.Context) (interface{}, error) {
		s.T().Fatal("loader must not run on cache hit")
		return nil, nil
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), want, got)
}

func (s *CacheTestSuite) TestGetOrSet_NilValueCachesNullMarker() {
	s.mock.ExpectGet("test:word:หมา").RedisNil()
	s.mock.ExpectSet("test:word:หมา", nullSentinel, 30*time.Second).SetVal("OK")

	var got cachedEntry
	err := s.cache.GetOrSet(context.Background(), "word:หมา", &got, 0, func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	assert.ErrorIs(s.T(), err, ErrCacheMiss)
}

func (s *CacheTestSuite) TestGetOrSet_LoaderError() {
	s.mock.ExpectGet("test:word:x").RedisNil()

	loadErr := apperrors.New(apperrors.ErrCodeDatabaseError, "db down")
	var got cachedEntry
	err := s.cache.GetOrSet(context.Background(), "word:x", &got, 0, func(ctx context.Context) (interface{}, error) {
		return nil, loadErr
	})
	assert.ErrorIs(s.T(), err, loadErr)
}

func (s *CacheTestSuite) TestDeleteByPrefix() {
	s.mock.ExpectScan(0, "test:snapshot:*", 100).SetVal([]string{"test:snapshot:a", "test:snapshot:b"}, 0)
	s.mock.ExpectDel("test:snapshot:a", "test:snapshot:b").SetVal(2)

	n, err := s.cache.DeleteByPrefix(context.Background(), "snapshot:")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), n)
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func TestJitterTTL_Bounds(t *testing.T) {
	c := &redisCache{}
	assert.Equal(t, time.Duration(0), c.jitterTTL(0))
	for i := 0; i < 100; i++ {
		got := c.jitterTTL(10 * time.Minute)
		assert.GreaterOrEqual(t, got, 9*time.Minute)
		assert.LessOrEqual(t, got, 11*time.Minute)
	}
}

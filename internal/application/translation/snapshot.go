package translation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/thaisign/thsl-translate/internal/domain/sign"
	"github.com/thaisign/thsl-translate/internal/infrastructure/database/redis"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

const (
	rolesCacheKey  = "snapshot:roles"
	dictKeyPrefix  = "dict:"
	defaultSnapTTL = 10 * time.Minute
)

// snapshotLoader builds per-request snapshots from the dictionary and
// category-role repositories, with a Redis read-through cache in front of
// both. The cache is optional: a nil Cache degrades to direct repository
// reads.
type snapshotLoader struct {
	dict   sign.DictionaryRepository
	roles  sign.CategoryRoleRepository
	cache  redis.Cache
	ttl    time.Duration
	logger logging.Logger
}

// NewSnapshotLoader wires a cached sign.SnapshotLoader. ttl <= 0 selects the
// default cache TTL.
func NewSnapshotLoader(dict sign.DictionaryRepository, roles sign.CategoryRoleRepository, cache redis.Cache, ttl time.Duration, logger logging.Logger) sign.SnapshotLoader {
	if ttl <= 0 {
		ttl = defaultSnapTTL
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &snapshotLoader{
		dict:   dict,
		roles:  roles,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("snapshot"),
	}
}

func (l *snapshotLoader) Load(ctx context.Context, words []string) (*sign.Snapshot, error) {
	roles, err := l.loadRoles(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeRoleTableUnavailable, "failed to load category-role table")
	}

	entries, err := l.loadEntries(ctx, uniqueWords(words))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDictionaryUnavailable, "failed to load dictionary entries")
	}

	return &sign.Snapshot{Roles: roles, Entries: entries}, nil
}

func (l *snapshotLoader) loadRoles(ctx context.Context) ([]sign.CategoryRoleEntry, error) {
	if l.cache == nil {
		return l.roles.ListAll(ctx)
	}

	var roles []sign.CategoryRoleEntry
	err := l.cache.GetOrSet(ctx, rolesCacheKey, &roles, l.ttl, func(ctx context.Context) (interface{}, error) {
		return l.roles.ListAll(ctx)
	})
	if err != nil {
		if err == redis.ErrCacheMiss {
			// Empty role table cached as a null marker.
			return []sign.CategoryRoleEntry{}, nil
		}
		return nil, err
	}
	return roles, nil
}

func (l *snapshotLoader) loadEntries(ctx context.Context, words []string) (map[string][]sign.DictionaryEntry, error) {
	if len(words) == 0 {
		return map[string][]sign.DictionaryEntry{}, nil
	}
	if l.cache == nil {
		return l.dict.GetByWords(ctx, words)
	}

	keys := make([]string, len(words))
	for i, w := range words {
		keys[i] = dictKeyPrefix + w
	}

	cached, err := l.cache.MGet(ctx, keys)
	if err != nil {
		l.logger.Warn("dictionary cache read failed, falling back to database", logging.Err(err))
		return l.dict.GetByWords(ctx, words)
	}

	entries := make(map[string][]sign.DictionaryEntry, len(words))
	missing := make([]string, 0, len(words))
	for i, w := range words {
		raw, ok := cached[keys[i]]
		if !ok {
			missing = append(missing, w)
			continue
		}
		var rows []sign.DictionaryEntry
		if err := json.Unmarshal(raw, &rows); err != nil {
			l.logger.Warn("corrupt dictionary cache entry", logging.String("word", w), logging.Err(err))
			missing = append(missing, w)
			continue
		}
		if len(rows) > 0 {
			entries[w] = rows
		}
	}

	if len(missing) > 0 {
		fetched, err := l.dict.GetByWords(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, w := range missing {
			rows := fetched[w]
			if rows == nil {
				// Negative-cache misses as an empty slice so repeat lookups
				// for out-of-dictionary words skip the database.
				rows = []sign.DictionaryEntry{}
			}
			if err := l.cache.Set(ctx, dictKeyPrefix+w, rows, l.ttl); err != nil {
				l.logger.Warn("failed to cache dictionary entry", logging.String("word", w), logging.Err(err))
			}
			if len(rows) > 0 {
				entries[w] = rows
			}
		}
	}
	return entries, nil
}

func uniqueWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

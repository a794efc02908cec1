// Package poses provides the application-level service for pose assets: it
// fronts the object store with a local-disk fallback and caches scanned
// frame metadata in Redis keyed by file identity.
package poses

import (
	"context"
	"io"
	"time"

	"github.com/thaisign/thsl-translate/internal/domain/pose"
	"github.com/thaisign/thsl-translate/internal/infrastructure/database/redis"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

const (
	metaKeyPrefix  = "posemeta:"
	defaultMetaTTL = time.Hour
)

// Service defines pose asset operations.
type Service interface {
	// Open streams a pose file from the first store that has it.
	Open(ctx context.Context, name string) (io.ReadCloser, pose.Stat, error)

	// GetMeta returns the frame metadata for a pose file, scanning at most
	// once per file identity.
	GetMeta(ctx context.Context, name string) (*pose.Meta, error)

	// Exists reports whether any store has the pose file.
	Exists(ctx context.Context, name string) (bool, error)

	// Warm pre-computes and caches metadata for a batch of pose files.
	// Missing files are skipped; the count of warmed entries is returned.
	Warm(ctx context.Context, names []string) int
}

type serviceImpl struct {
	stores    []pose.Store // probed in order
	cache     redis.Cache
	ttl       time.Duration
	landmarks int
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
}

// NewService creates the pose service. stores are probed in order until one
// has the file; typically the object store first, then the local directory.
// A nil cache disables metadata caching.
func NewService(stores []pose.Store, cache redis.Cache, ttl time.Duration, metrics *prometheus.AppMetrics, logger logging.Logger) Service {
	if ttl <= 0 {
		ttl = defaultMetaTTL
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		stores:    stores,
		cache:     cache,
		ttl:       ttl,
		landmarks: pose.DefaultLandmarks,
		metrics:   metrics,
		logger:    logger.Named("poses"),
	}
}

func (s *serviceImpl) Open(ctx context.Context, name string) (io.ReadCloser, pose.Stat, error) {
	name, err := pose.ValidateName(name)
	if err != nil {
		return nil, pose.Stat{}, err
	}

	var lastErr error
	for i, store := range s.stores {
		rc, stat, err := store.Open(ctx, name)
		if err == nil {
			s.recordRequest(i, "ok")
			return rc, stat, nil
		}
		if !apperrors.IsNotFound(err) {
			s.logger.Warn("pose store open failed",
				logging.String("name", name), logging.Int("store", i), logging.Err(err))
		}
		lastErr = err
	}
	s.recordRequest(-1, "not_found")
	if lastErr == nil {
		lastErr = apperrors.New(apperrors.ErrCodePoseNotFound, "pose file not found").WithDetail("name=%q", name)
	}
	return nil, pose.Stat{}, lastErr
}

func (s *serviceImpl) GetMeta(ctx context.Context, name string) (*pose.Meta, error) {
	name, err := pose.ValidateName(name)
	if err != nil {
		return nil, err
	}

	stat, err := s.stat(ctx, name)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		meta, err := s.scan(name, stat)
		if err != nil {
			return nil, err
		}
		return &meta, nil
	}

	key := metaKeyPrefix + pose.CacheKey(stat)
	var meta pose.Meta
	err = s.cache.GetOrSet(ctx, key, &meta, s.ttl, func(_ context.Context) (interface{}, error) {
		m, scanErr := s.scan(name, stat)
		if scanErr != nil {
			return nil, scanErr
		}
		return m, nil
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodePoseMetaScanFailed) {
			return nil, err
		}
		// Cache trouble is not a reason to fail the request.
		s.logger.Warn("pose meta cache failed, scanning directly",
			logging.String("name", name), logging.Err(err))
		m, scanErr := s.scan(name, stat)
		if scanErr != nil {
			return nil, scanErr
		}
		return &m, nil
	}
	return &meta, nil
}

func (s *serviceImpl) Exists(ctx context.Context, name string) (bool, error) {
	name, err := pose.ValidateName(name)
	if err != nil {
		return false, err
	}
	for _, store := range s.stores {
		ok, err := store.Exists(ctx, name)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *serviceImpl) Warm(ctx context.Context, names []string) int {
	warmed := 0
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, err := s.GetMeta(ctx, name); err != nil {
			if !apperrors.IsNotFound(err) {
				s.logger.Warn("pose meta warm failed", logging.String("name", name), logging.Err(err))
			}
			continue
		}
		warmed++
	}
	return warmed
}

func (s *serviceImpl) stat(ctx context.Context, name string) (pose.Stat, error) {
	var lastErr error
	for _, store := range s.stores {
		stat, err := store.Stat(ctx, name)
		if err == nil {
			return stat, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = apperrors.New(apperrors.ErrCodePoseNotFound, "pose file not found").WithDetail("name=%q", name)
	}
	return pose.Stat{}, lastErr
}

func (s *serviceImpl) scan(name string, stat pose.Stat) (pose.Meta, error) {
	meta, err := pose.ScanMeta(name, stat.Size, s.landmarks)
	if s.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.PoseMetaScansTotal.WithLabelValues(status).Inc()
	}
	return meta, err
}

func (s *serviceImpl) recordRequest(storeIdx int, status string) {
	if s.metrics == nil {
		return
	}
	source := "none"
	switch storeIdx {
	case 0:
		source = "object_store"
	case 1:
		source = "local"
	}
	s.metrics.PoseRequestsTotal.WithLabelValues(source, status).Inc()
}

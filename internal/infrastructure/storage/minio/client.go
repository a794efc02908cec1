package minio

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/thaisign/thsl-translate/internal/config"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

// MinIOAPI abstracts the minio-go client for testing.
type MinIOAPI interface {
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
}

// Client wraps the minio SDK with the pose bucket baked in.
type Client struct {
	api    MinIOAPI
	cfg    config.MinIOConfig
	logger logging.Logger
}

func NewClient(cfg config.MinIOConfig, log logging.Logger) (*Client, error) {
	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to create minio client")
	}

	client := &Client{api: api, cfg: cfg, logger: log}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := client.api.ListBuckets(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to connect to minio")
	}
	if err := client.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	log.Info("MinIO client connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
		logging.Bool("ssl", cfg.UseSSL))
	return client, nil
}

// NewClientWithAPI wraps an existing API. Used by tests.
func NewClientWithAPI(api MinIOAPI, cfg config.MinIOConfig, log logging.Logger) *Client {
	return &Client{api: api, cfg: cfg, logger: log}
}

func (c *Client) API() MinIOAPI {
	return c.api
}

func (c *Client) Bucket() string {
	return c.cfg.Bucket
}

func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.cfg.Bucket)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to check pose bucket")
	}
	if !exists {
		if err := c.api.MakeBucket(ctx, c.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to create pose bucket").
				WithDetail("bucket=%s", c.cfg.Bucket)
		}
		c.logger.Info("Created pose bucket", logging.String("bucket", c.cfg.Bucket))
	}
	return nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.api.ListBuckets(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "minio unreachable")
	}
	exists, err := c.api.BucketExists(ctx, c.cfg.Bucket)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to check pose bucket")
	}
	if !exists {
		return apperrors.New(apperrors.ErrCodePoseStoreUnavailable, "pose bucket missing").
			WithDetail("bucket=%s", c.cfg.Bucket)
	}
	return nil
}

// PresignedGetURL returns a time-limited download URL for a pose
// object.
func (c *Client) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if expiry == 0 {
		expiry = c.cfg.PresignExpiry
	}
	u, err := c.api.PresignedGetObject(ctx, c.cfg.Bucket, objectName, expiry, nil)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to presign pose url")
	}
	return u.String(), nil
}

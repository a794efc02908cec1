package minio

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/thaisign/thsl-translate/internal/domain/pose"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

// poseStore serves .pose binaries from the pose bucket.
type poseStore struct {
	client *Client
	logger logging.Logger
}

func NewPoseStore(client *Client, log logging.Logger) pose.Store {
	return &poseStore{client: client, logger: log}
}

func (s *poseStore) Open(ctx context.Context, name string) (io.ReadCloser, pose.Stat, error) {
	stat, err := s.Stat(ctx, name)
	if err != nil {
		return nil, pose.Stat{}, err
	}

	obj, err := s.client.API().GetObject(ctx, s.client.Bucket(), name, minio.GetObjectOptions{})
	if err != nil {
		return nil, pose.Stat{}, apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to open pose object").
			WithDetail("name=%s", name)
	}
	return obj, stat, nil
}

func (s *poseStore) Stat(ctx context.Context, name string) (pose.Stat, error) {
	info, err := s.client.API().StatObject(ctx, s.client.Bucket(), name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return pose.Stat{}, apperrors.New(apperrors.ErrCodePoseNotFound, "pose object not found").
				WithDetail("name=%s", name)
		}
		return pose.Stat{}, apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to stat pose object").
			WithDetail("name=%s", name)
	}
	return pose.Stat{Name: name, Size: info.Size, ModTime: info.LastModified}, nil
}

func (s *poseStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.Stat(ctx, name)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodePoseNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

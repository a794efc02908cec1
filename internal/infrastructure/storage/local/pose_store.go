// Package local serves .pose binaries from a directory on disk. It is
// the fallback behind the MinIO store for single-machine deployments.
package local

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thaisign/thsl-translate/internal/domain/pose"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

type poseStore struct {
	dir    string
	logger logging.Logger
}

func NewPoseStore(dir string, log logging.Logger) (pose.Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to resolve pose directory")
	}
	return &poseStore{dir: abs, logger: log}, nil
}

// resolve joins name onto the pose directory and rejects anything that
// escapes it, even after symlink-free cleaning.
func (s *poseStore) resolve(name string) (string, error) {
	name, err := pose.ValidateName(name)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(s.dir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", apperrors.New(apperrors.ErrCodePoseNameInvalid, "pose name escapes pose directory").
			WithDetail("name=%q", name)
	}
	return full, nil
}

func (s *poseStore) Open(ctx context.Context, name string) (io.ReadCloser, pose.Stat, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, pose.Stat{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pose.Stat{}, notFound(name)
		}
		return nil, pose.Stat{}, apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to open pose file").
			WithDetail("name=%s", name)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, pose.Stat{}, apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to stat pose file").
			WithDetail("name=%s", name)
	}
	return f, statOf(name, info), nil
}

func (s *poseStore) Stat(ctx context.Context, name string) (pose.Stat, error) {
	path, err := s.resolve(name)
	if err != nil {
		return pose.Stat{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pose.Stat{}, notFound(name)
		}
		return pose.Stat{}, apperrors.Wrap(err, apperrors.ErrCodePoseStoreUnavailable, "failed to stat pose file").
			WithDetail("name=%s", name)
	}
	if info.IsDir() {
		return pose.Stat{}, notFound(name)
	}
	return statOf(name, info), nil
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

func notFound(name string) error {
	return apperrors.New(apperrors.ErrCodePoseNotFound, "pose file not found").
		WithDetail("name=%s", name)
}

func statOf(name string, info fs.FileInfo) pose.Stat {
	return pose.Stat{Name: name, Size: info.Size(), ModTime: info.ModTime()}
}

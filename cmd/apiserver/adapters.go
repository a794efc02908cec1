package main

import (
	"context"
	"io"

	"github.com/thaisign/thsl-translate/internal/domain/pose"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

// chainedStore probes a list of pose stores in order. The translation
// service only needs a single Store to answer availability lookups; the
// pose service holds the same list itself.
type chainedStore []pose.Store

func chainStore(stores []pose.Store) pose.Store {
	return chainedStore(stores)
}

func (c chainedStore) Open(ctx context.Context, name string) (io.ReadCloser, pose.Stat, error) {
	var lastErr error
	for _, s := range c {
		rc, stat, err := s.Open(ctx, name)
		if err == nil {
			return rc, stat, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = apperrors.New(apperrors.ErrCodePoseNotFound, "pose not found")
	}
	return nil, pose.Stat{}, lastErr
}

func (c chainedStore) Stat(ctx context.Context, name string) (pose.Stat, error) {
	var lastErr error
	for _, s := range c {
		stat, err := s.Stat(ctx, name)
		if err == nil {
			return stat, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = apperrors.New(apperrors.ErrCodePoseNotFound, "pose not found")
	}
	return pose.Stat{}, lastErr
}

func (c chainedStore) Exists(ctx context.Context, name string) (bool, error) {
	for _, s := range c {
		ok, err := s.Exists(ctx, name)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

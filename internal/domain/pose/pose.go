package pose

import (
	"context"
	"io"
	"strings"
	"time"

	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

// Stat describes a stored pose file. Size and ModTime key the meta
// cache so a replaced file never serves stale frame offsets.
type Stat struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Meta locates the float32 frame payload inside a .pose binary.
type Meta struct {
	Name       string `json:"name"`
	Offset     int64  `json:"offset"`
	Frames     int64  `json:"frames"`
	Landmarks  int    `json:"landmarks"`
	Pad        int    `json:"pad"`
	Size       int64  `json:"size"`
	FrameBytes int64  `json:"frame_bytes"`
}

// Store reads pose binaries from a backing location.
type Store interface {
	Open(ctx context.Context, name string) (io.ReadCloser, Stat, error)
	Stat(ctx context.Context, name string) (Stat, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// ValidateName rejects empty names and anything that could escape the
// pose directory or bucket prefix.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.New(apperrors.ErrCodePoseNameInvalid, "pose name cannot be empty")
	}
	if strings.Contains(name, "..") ||
		strings.HasPrefix(name, "/") ||
		strings.HasPrefix(name, "\\") ||
		strings.ContainsAny(name, "\x00") {
		return "", apperrors.New(apperrors.ErrCodePoseNameInvalid, "pose name failed security check").
			WithDetail("name=%q", name)
	}
	return name, nil
}

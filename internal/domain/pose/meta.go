package pose

import (
	"fmt"

	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

const (
	// DefaultLandmarks is the MediaPipe full-body landmark count the
	// capture pipeline records per frame.
	DefaultLandmarks = 33

	valuesPerLandmark = 4 // x, y, z, confidence
	bytesPerValue     = 4 // float32

	minFileSize   = 1024
	maxHeaderScan = 200_000
	minFrames     = 10

	// preferredOffset is the header size produced by the usual capture
	// tooling; among valid offsets the nearest one wins.
	preferredOffset = 14652
)

// ScanMeta derives the frame payload offset of a .pose binary from its
// size alone: the payload is a whole number of fixed-size float32
// frames, so a valid offset o with pad p satisfies
// (size - o - p) % frameBytes == 0. Pads 0-3 are tried in order and the
// first pad with any valid offset is kept; within it the offset closest
// to the common header size wins.
func ScanMeta(name string, size int64, landmarks int) (Meta, error) {
	if landmarks <= 0 {
		landmarks = DefaultLandmarks
	}
	frameBytes := int64(landmarks) * valuesPerLandmark * bytesPerValue

	if size < minFileSize {
		return Meta{}, apperrors.New(apperrors.ErrCodePoseMetaScanFailed, "pose file too small").
			WithDetail("name=%s size=%d", name, size)
	}

	scanEnd := size
	if scanEnd > maxHeaderScan {
		scanEnd = maxHeaderScan
	}

	for pad := int64(0); pad <= 3; pad++ {
		bestOffset := int64(-1)
		bestFrames := int64(0)
		bestScore := int64(-1)

		for off := int64(0); off < scanEnd; off++ {
			remain := size - off - pad
			if remain <= 0 {
				break
			}
			if remain%frameBytes != 0 {
				continue
			}
			frames := remain / frameBytes
			if frames < minFrames {
				continue
			}
			score := off - preferredOffset
			if score < 0 {
				score = -score
			}
			if bestScore < 0 || score < bestScore {
				bestScore = score
				bestOffset = off
				bestFrames = frames
			}
		}

		if bestOffset >= 0 {
			return Meta{
				Name:       name,
				Offset:     bestOffset,
				Frames:     bestFrames,
				Landmarks:  landmarks,
				Pad:        int(pad),
				Size:       size,
				FrameBytes: frameBytes,
			}, nil
		}
	}

	return Meta{}, apperrors.New(apperrors.ErrCodePoseMetaScanFailed, "no valid float32 frame offset found").
		WithDetail("name=%s size=%d frame_bytes=%d", name, size, frameBytes)
}

// CacheKey builds the meta cache key from the file identity.
func CacheKey(stat Stat) string {
	return fmt.Sprintf("%s:%d:%d", stat.Name, stat.Size, stat.ModTime.Unix())
}

package pose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

// 33 landmarks x 4 values x 4 bytes
const frameBytes = 528

func TestScanMeta_PrefersCommonHeaderSize(t *testing.T) {
	// 14652-byte header followed by 20 whole frames. Other offsets in
	// the same residue class are valid too; the closest to the common
	// header size must win.
	size := int64(preferredOffset + 20*frameBytes)

	meta, err := ScanMeta("กิน.pose", size, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(preferredOffset), meta.Offset)
	assert.Equal(t, int64(20), meta.Frames)
	assert.Equal(t, DefaultLandmarks, meta.Landmarks)
	assert.Equal(t, 0, meta.Pad)
	assert.Equal(t, size, meta.Size)
	assert.Equal(t, int64(frameBytes), meta.FrameBytes)
	assert.Equal(t, "กิน.pose", meta.Name)
}

func TestScanMeta_ShortHeader(t *testing.T) {
	// Too small to reach the preferred offset: candidates are 396, 924
	// and 1452; 1452 is nearest to the preferred header size and still
	// leaves the minimum ten frames.
	size := int64(396 + 12*frameBytes)

	meta, err := ScanMeta("สั้น.pose", size, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1452), meta.Offset)
	assert.Equal(t, int64(10), meta.Frames)
}

func TestScanMeta_FileTooSmall(t *testing.T) {
	_, err := ScanMeta("tiny.pose", 512, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePoseMetaScanFailed))
}

func TestScanMeta_NoValidOffset(t *testing.T) {
	// Above the minimum file size but too small to hold ten frames at
	// any offset and pad.
	_, err := ScanMeta("noisy.pose", 2000, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePoseMetaScanFailed))
}

func TestScanMeta_CustomLandmarks(t *testing.T) {
	// 21 hand landmarks: frame is 21*4*4 = 336 bytes.
	size := int64(1024 + 15*336)

	meta, err := ScanMeta("hand.pose", size, 21)
	require.NoError(t, err)
	assert.Equal(t, int64(336), meta.FrameBytes)
	assert.Equal(t, 21, meta.Landmarks)
	assert.Equal(t, meta.Size, meta.Offset+int64(meta.Pad)+meta.Frames*meta.FrameBytes)
}

func TestScanMeta_Consistency(t *testing.T) {
	// The decomposition must always account for every byte.
	for _, size := range []int64{5280, 14652 + 528, 100_000, 1_000_000} {
		meta, err := ScanMeta("f.pose", size, 0)
		require.NoError(t, err, "size=%d", size)
		assert.Equal(t, size, meta.Offset+int64(meta.Pad)+meta.Frames*meta.FrameBytes, "size=%d", size)
		assert.GreaterOrEqual(t, meta.Frames, int64(10))
		assert.Less(t, meta.Offset, int64(maxHeaderScan))
	}
}

func TestCacheKey(t *testing.T) {
	stat := Stat{Name: "กิน.pose", Size: 25212, ModTime: time.Unix(1700000000, 0)}
	assert.Equal(t, "กิน.pose:25212:1700000000", CacheKey(stat))
}

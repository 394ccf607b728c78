package normalize

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// ErrInvalidVideoID reports that an object name does not encode a numeric
// video identity. A record without identity cannot be joined against the
// metadata tables, so the item is excluded from the batch entirely rather
// than padded with an unavailable value.
var ErrInvalidVideoID = errors.New("invalid video id")

// duplicateCopyPrefix is what Drive-style tooling prepends when a video is
// re-uploaded as a duplicate copy.
const duplicateCopyPrefix = "Copy of "

// ResolveVideoID derives the numeric video identity from an object name,
// e.g. "TIKTOK_samples/2024-06-01/7254113592954326305.mp4" -> 7254113592954326305.
// A "Copy of " prefix on the file name is tolerated.
func ResolveVideoID(objectName string) (int64, error) {
	base := path.Base(objectName)
	stem := strings.TrimSuffix(base, path.Ext(base))
	stem = strings.TrimPrefix(stem, duplicateCopyPrefix)
	stem = strings.TrimSpace(stem)

	id, err := strconv.ParseInt(stem, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ResolveVideoID: %q: %w", objectName, ErrInvalidVideoID)
	}
	return id, nil
}

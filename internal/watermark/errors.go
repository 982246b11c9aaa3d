package watermark

import "errors"

// Per-file failure categories. Each is wrapped with file context and
// recorded in the batch summary; none of them aborts sibling tasks.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecode            = errors.New("image decode failed")
	ErrWrite             = errors.New("image write failed")
)

package soundbank

import "errors"

// ErrUnsupportedFormat is returned by Load for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("soundbank: unsupported audio format")

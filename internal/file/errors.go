package file

import "errors"

// ErrFileNotFound signals that no metadata object exists for the id.
var ErrFileNotFound = errors.New("file not found")

package fonts

import "errors"

// ErrNotDirectory is returned by Open when the path is not a directory.
var ErrNotDirectory = errors.New("fonts: not a directory")

package engine

import "errors"

var ErrEngine = errors.New("engine invocation failed")

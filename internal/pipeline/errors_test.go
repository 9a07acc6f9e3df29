package pipeline

import "errors"

var errBoom = errors.New("boom")

package generation

import "errors"

var (
	ErrEmptyQuery         = errors.New("empty query provided")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNoOutput           = errors.New("backend returned no output")
	ErrEmptyCode          = errors.New("code is empty")
)

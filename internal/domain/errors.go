package domain

import "errors"

// ErrEmptyResponse is returned when a remote endpoint answers with an empty body
var ErrEmptyResponse = errors.New("empty response from remote endpoint")

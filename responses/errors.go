package responses

import "errors"

// Sentinel errors for upstream HTTP statuses worth branching on.
var (
	HTTPErrorNotFound     = errors.New("not found")
	HTTPErrorUnauthorized = errors.New("unauthorized")
)

package utils

import "errors"

// Common application errors used across services.
var (
	ErrNoOrganization   = errors.New("NO_ORGANIZATION")
	ErrNoSession        = errors.New("NO_SESSION")
	ErrUpstreamRejected = errors.New("UPSTREAM_REJECTED")
)

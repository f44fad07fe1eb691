package knowledge

import "errors"

var (
	// ErrIncompleteDomain means a domain lacks scoring metadata or items.
	ErrIncompleteDomain = errors.New("domain has no knowledge items or metadata")

	// ErrDuplicateTopic means two items in one domain share a key.
	ErrDuplicateTopic = errors.New("duplicate topic within domain")

	// ErrUnknownDomain means the data names a domain outside the closed set.
	ErrUnknownDomain = errors.New("unknown domain")
)

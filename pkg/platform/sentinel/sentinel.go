package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and clients return these
// (optionally wrapped) so services and handlers can translate them without
// depending on concrete store types.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity or cache key does not exist
// - ErrConflict: write collided with an existing entity
// - ErrUnavailable: backing service or store temporarily unreachable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)

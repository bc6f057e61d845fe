package models

import (
	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/domain"
)

// Actor is the authenticated identity performing a request. There is no user
// registry; identities are opaque address-like tokens vouched for by the
// session layer, and the only distinguished one is the insurer.
type Actor struct {
	Identity api.Identity
}

// NewActor canonicalizes the identity so later comparisons are exact
func NewActor(id api.Identity) Actor {
	return Actor{Identity: id.Canonical()}
}

// IsInsurer reports whether this actor is the configured insurer authority
func (a Actor) IsInsurer() bool {
	return a.Identity != "" && a.Identity == domain.InsurerIdentity()
}

// Is reports whether this actor is the given identity, case-insensitively
func (a Actor) Is(other api.Identity) bool {
	return a.Identity != "" && a.Identity == other.Canonical()
}

func (a Actor) IsZero() bool {
	return a.Identity == ""
}

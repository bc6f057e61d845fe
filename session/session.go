// Package session tracks the external identity and network context of one
// presentation-layer session and keeps its ledger binding reconciled with the
// wallet collaborator. Each UI context owns its own Reconciler; instances
// share nothing in memory.
package session

import (
	"context"
	"errors"

	"github.com/openinsure/custody-api/api"
)

// Status is the session state visible to presentation layers.
type Status string

const (
	StatusDisconnected         = Status("Disconnected")
	StatusPendingAuthorization = Status("PendingAuthorization")
	StatusConnected            = Status("Connected")
	StatusErrored              = Status("Errored")
)

// NetworkID names the network the wallet is currently attached to.
type NetworkID string

// EndpointRef locates a deployed ledger endpoint on a network.
type EndpointRef string

// Snapshot is an immutable view of the session. Identity, Network and
// Endpoint are only meaningful when Status is Connected; Err only when
// Status is Errored.
type Snapshot struct {
	Status   Status
	Identity api.Identity
	Network  NetworkID
	Endpoint EndpointRef
	Err      error
}

// Wallet is the external authorization collaborator. All calls may suspend
// indefinitely; none are assumed cancellable beyond honoring ctx.
type Wallet interface {
	// AuthorizedIdentities returns the identities already authorized for
	// this session, without prompting the user.
	AuthorizedIdentities(ctx context.Context) ([]api.Identity, error)

	// HasPendingAuthorization reports whether an authorization request is
	// already outstanding in the wallet's own UI.
	HasPendingAuthorization(ctx context.Context) (bool, error)

	// RequestAuthorization prompts the user to authorize, returning the
	// granted identities. A duplicate request fails with an error matching
	// IsAlreadyPending; a refusal fails with any other error.
	RequestAuthorization(ctx context.Context) ([]api.Identity, error)

	// CurrentNetwork returns the network the wallet is attached to.
	CurrentNetwork(ctx context.Context) (NetworkID, error)
}

// EndpointDirectory resolves the ledger endpoint deployed on a network.
type EndpointDirectory interface {
	ResolveEndpoint(network NetworkID) (EndpointRef, bool)
}

// StaticDirectory is an EndpointDirectory backed by a fixed map.
type StaticDirectory map[NetworkID]EndpointRef

func (d StaticDirectory) ResolveEndpoint(network NetworkID) (EndpointRef, bool) {
	endpoint, ok := d[network]
	return endpoint, ok
}

// IsAlreadyPending reports whether err is the wallet's duplicate-request
// signal. It is recovered locally, never surfaced to the user.
func IsAlreadyPending(err error) bool {
	var appErr *api.AppError
	return errors.As(err, &appErr) && appErr.Key == api.ErrorSessionAlreadyPending
}

// ErrAlreadyPending builds the duplicate-request signal for Wallet
// implementations.
func ErrAlreadyPending(err error) error {
	return api.NewAppError(err, api.ErrorSessionAlreadyPending, api.CategoryUser)
}

package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/openinsure/custody-api/api"
)

// Reconciler drives the session state machine. Transitions are applied under
// one mutex; the suspension points are exactly the Wallet calls, and a
// generation check immediately before every commit discards results of probes
// that were overtaken by teardown, a retry, or a network change.
type Reconciler struct {
	wallet    Wallet
	directory EndpointDirectory
	onChange  func(Snapshot)

	mu         sync.Mutex
	snapshot   Snapshot
	live       bool
	generation int
}

// Config carries the collaborators for a Reconciler. OnChange, when set,
// receives a copy of every committed snapshot. It runs with the reconciler's
// lock held and must not call back into the Reconciler.
type Config struct {
	Wallet    Wallet
	Directory EndpointDirectory
	OnChange  func(Snapshot)
}

func NewReconciler(config Config) *Reconciler {
	return &Reconciler{
		wallet:    config.Wallet,
		directory: config.Directory,
		onChange:  config.OnChange,
		snapshot:  Snapshot{Status: StatusDisconnected},
		live:      true,
	}
}

// Snapshot returns a copy of the current session state.
func (r *Reconciler) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}

// Start probes the wallet for an existing authorization and binds the ledger
// endpoint. It blocks for the duration of the probe sequence; callers wanting
// asynchrony run it in their own goroutine.
func (r *Reconciler) Start(ctx context.Context) {
	r.probe(ctx, r.restart())
}

// Retry restarts the machine from Disconnected. It is the only exit from
// PendingAuthorization and the manual recovery from Errored; it is never
// triggered automatically.
func (r *Reconciler) Retry(ctx context.Context) {
	r.probe(ctx, r.restart())
}

// HandleIdentitiesChanged applies a wallet identity-list notification. An
// empty list invalidates the session outright: a cleared account must not
// keep the previous identity's view. A different non-empty list re-adopts
// the first identity on the existing binding. Outside Connected there is no
// binding to adopt onto, so the notification is dropped; the identity is
// picked up by the probe that eventually establishes the binding.
func (r *Reconciler) HandleIdentitiesChanged(identities []api.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.live {
		return
	}

	if len(identities) == 0 {
		r.commitLocked(Snapshot{Status: StatusDisconnected})
		return
	}

	if r.snapshot.Status != StatusConnected {
		return
	}

	identity := identities[0].Canonical()
	if identity == r.snapshot.Identity {
		return
	}

	next := r.snapshot
	next.Identity = identity
	r.commitLocked(next)
}

// HandleNetworkChanged applies a wallet network notification. A network
// switch is a hard discontinuity, so the machine restarts from Disconnected
// rather than attempting incremental reconciliation.
func (r *Reconciler) HandleNetworkChanged(ctx context.Context) {
	r.probe(ctx, r.restart())
}

// Close tears the session down. In-flight probes may still resolve but their
// results are discarded; no transition is applied after Close returns.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live = false
	r.generation++
}

// restart invalidates in-flight probes, commits Disconnected, and returns
// the generation token the next probe must present at commit time.
func (r *Reconciler) restart() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	if r.live {
		r.commitLocked(Snapshot{Status: StatusDisconnected})
	}
	return r.generation
}

func (r *Reconciler) probe(ctx context.Context, gen int) {
	identities, err := r.wallet.AuthorizedIdentities(ctx)
	if err != nil {
		r.commit(gen, erroredSnapshot(err, api.ErrorSessionWalletUnavailable))
		return
	}

	if len(identities) > 0 {
		r.bind(ctx, gen, identities[0])
		return
	}

	pending, err := r.wallet.HasPendingAuthorization(ctx)
	if err != nil {
		r.commit(gen, erroredSnapshot(err, api.ErrorSessionWalletUnavailable))
		return
	}
	if pending {
		// the wallet's own UI holds the outstanding request; do not issue
		// a duplicate prompt
		r.commit(gen, Snapshot{Status: StatusPendingAuthorization})
		return
	}

	identities, err = r.wallet.RequestAuthorization(ctx)
	if err != nil {
		if IsAlreadyPending(err) {
			r.commit(gen, Snapshot{Status: StatusPendingAuthorization})
			return
		}
		r.commit(gen, erroredSnapshot(err, api.ErrorSessionAuthorizationDenied))
		return
	}
	if len(identities) == 0 {
		err := fmt.Errorf("authorization request granted no identities")
		r.commit(gen, erroredSnapshot(err, api.ErrorSessionAuthorizationDenied))
		return
	}

	r.bind(ctx, gen, identities[0])
}

func (r *Reconciler) bind(ctx context.Context, gen int, identity api.Identity) {
	network, err := r.wallet.CurrentNetwork(ctx)
	if err != nil {
		r.commit(gen, erroredSnapshot(err, api.ErrorSessionWalletUnavailable))
		return
	}

	endpoint, ok := r.directory.ResolveEndpoint(network)
	if !ok {
		err := fmt.Errorf("no ledger endpoint deployed on network %s", network)
		r.commit(gen, erroredSnapshot(err, api.ErrorSessionNoDeployment))
		return
	}

	r.commit(gen, Snapshot{
		Status:   StatusConnected,
		Identity: identity.Canonical(),
		Network:  network,
		Endpoint: endpoint,
	})
}

// commit applies a snapshot unless the session was torn down or restarted
// while the probe that produced it was in flight.
func (r *Reconciler) commit(gen int, next Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.live || gen != r.generation {
		return
	}
	r.commitLocked(next)
}

func (r *Reconciler) commitLocked(next Snapshot) {
	r.snapshot = next
	if r.onChange != nil {
		r.onChange(next)
	}
}

func erroredSnapshot(err error, key api.ErrorKey) Snapshot {
	return Snapshot{
		Status: StatusErrored,
		Err:    api.NewAppError(err, key, api.CategoryInternal),
	}
}

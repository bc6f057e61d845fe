package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/openinsure/custody-api/domain"
	"github.com/openinsure/custody-api/log"
)

// The claim listeners write the audit trail of the claim lifecycle. The
// financial record itself is the ledger; these are for operators following
// along in the logs.

func claimCreated(e events.Event) {
	logClaimEvent(e, domain.EventApiClaimCreated)
}

func claimApproved(e events.Event) {
	logClaimEvent(e, domain.EventApiClaimApproved)
}

func claimRejected(e events.Event) {
	logClaimEvent(e, domain.EventApiClaimRejected)
}

func claimPaid(e events.Event) {
	logClaimEvent(e, domain.EventApiClaimPaid)
}

func logClaimEvent(e events.Event, kind string) {
	if e.Kind != kind {
		return
	}

	defer panicRecover(e.Kind)

	id, err := getID(e.Payload)
	if err != nil {
		log.Errorf("%s listener: %s", e.Kind, err)
		return
	}

	log.WithFields(map[string]any{
		"event":   e.Kind,
		"claimID": id,
	}).Info(e.Message)
}

package listeners

import (
	"fmt"
	"runtime/debug"

	"github.com/gobuffalo/events"

	"github.com/openinsure/custody-api/domain"
	"github.com/openinsure/custody-api/log"
)

type apiListener struct {
	name     string
	listener func(events.Event)
}

//
// Register new listener functions here.  Remember, though, that these groupings just
// describe what we want.  They don't make it happen this way. The listeners
// themselves still need to verify the event kind
//
var apiListeners = map[string][]apiListener{
	domain.EventApiPolicyCreated: {
		{
			name:     "policy-created-audit",
			listener: policyCreated,
		},
	},
	domain.EventApiClaimCreated: {
		{
			name:     "claim-created-audit",
			listener: claimCreated,
		},
	},
	domain.EventApiClaimApproved: {
		{
			name:     "claim-approved-audit",
			listener: claimApproved,
		},
	},
	domain.EventApiClaimRejected: {
		{
			name:     "claim-rejected-audit",
			listener: claimRejected,
		},
	},
	domain.EventApiClaimPaid: {
		{
			name:     "claim-paid-audit",
			listener: claimPaid,
		},
	},
	domain.EventApiCustodyFunded: {
		{
			name:     "custody-funded-audit",
			listener: custodyFunded,
		},
	},
}

// RegisterListeners registers all the listeners to be used by the app
func RegisterListeners() {
	for _, listeners := range apiListeners {
		for _, l := range listeners {
			if _, err := events.NamedListen(l.name, l.listener); err != nil {
				log.Errorf("failed registering listener %s, %s", l.name, err)
			}
		}
	}
}

func getID(p events.Payload) (int, error) {
	i, ok := p[domain.EventPayloadID]
	if !ok {
		return 0, fmt.Errorf("id not in event payload")
	}

	id, ok := i.(int)
	if !ok {
		return 0, fmt.Errorf("id not a valid type: %T", i)
	}
	return id, nil
}

func panicRecover(name string) {
	if err := recover(); err != nil {
		log.Errorf("panic occurred in %s: %s\n%s", name, err, debug.Stack())
	}
}

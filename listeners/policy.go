package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/openinsure/custody-api/domain"
	"github.com/openinsure/custody-api/log"
)

func policyCreated(e events.Event) {
	if e.Kind != domain.EventApiPolicyCreated {
		return
	}

	defer panicRecover(e.Kind)

	id, err := getID(e.Payload)
	if err != nil {
		log.Errorf("%s listener: %s", e.Kind, err)
		return
	}

	log.WithFields(map[string]any{
		"event":    e.Kind,
		"policyID": id,
	}).Info(e.Message)
}

func custodyFunded(e events.Event) {
	if e.Kind != domain.EventApiCustodyFunded {
		return
	}

	defer panicRecover(e.Kind)

	log.WithFields(map[string]any{"event": e.Kind}).Info(e.Message)
}

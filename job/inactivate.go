package job

import (
	"time"

	"github.com/gobuffalo/buffalo/worker"
	"github.com/gobuffalo/pop/v6"

	"github.com/openinsure/custody-api/log"
	"github.com/openinsure/custody-api/models"
)

// inactivatePoliciesHandler is the Worker handler for flipping the active
// flag off on policies whose end date has passed. Reads never rely on the
// flag alone, so a late run only delays the stored flag, not correctness.
func inactivatePoliciesHandler(_ worker.Args) error {
	defer resubmitInactivateJob()

	return models.DB.Transaction(func(tx *pop.Connection) error {
		count, err := models.InactivateExpired(tx)
		if err != nil {
			return err
		}
		if count > 0 {
			log.Infof("inactivated %d expired policies", count)
		}
		return nil
	})
}

func resubmitInactivateJob() {
	// Run twice a day, in case it errors out
	delay := time.Hour * 12

	if err := SubmitDelayed(InactivatePolicies, delay, map[string]any{}); err != nil {
		log.Errorf("error resubmitting inactivatePoliciesHandler: %s", err)
	}
}

package grifts

import (
	"fmt"

	"github.com/gobuffalo/grift/grift"
	"github.com/gobuffalo/pop/v6"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/domain"
	"github.com/openinsure/custody-api/models"
)

var _ = grift.Namespace("db", func() {
	grift.Desc("seed", "Seeds a database")
	_ = grift.Add("seed", func(c *grift.Context) error {
		countPolicies := models.Policies{}
		count, err := models.DB.Count(countPolicies)
		if err != nil {
			return err
		}

		if count > 0 {
			fmt.Printf("\nINFO: It appears that the grifts have already been run, "+
				"since there are already %v policies.\n", count)
			return nil
		}

		return models.DB.Transaction(func(tx *pop.Connection) error {
			insurer := models.NewActor(domain.InsurerIdentity())

			holders := []api.Identity{
				"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
				"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
				"0xcccccccccccccccccccccccccccccccccccccccc",
			}

			for i, holder := range holders {
				policy, err := models.CreatePolicy(tx, insurer, api.PolicyCreateInput{
					PolicyHolder:   holder,
					Premium:        api.Currency((i + 1) * 100 * api.CurrencyFactor),
					CoverageAmount: api.Currency((i + 1) * 1000 * api.CurrencyFactor),
					DurationInDays: 365,
				})
				if err != nil {
					return err
				}

				if _, err := policy.AddClaim(tx, models.NewActor(holder), api.ClaimCreateInput{
					Description: fmt.Sprintf("seed claim for policy %d", policy.Number),
					Amount:      api.Currency(500 * api.CurrencyFactor),
				}); err != nil {
					return err
				}
			}

			if _, err := models.FundCustody(tx, insurer, api.Currency(10_000*api.CurrencyFactor)); err != nil {
				return err
			}

			fmt.Printf("seeded %d policies with one pending claim each\n", len(holders))
			return nil
		})
	})
})

package models

import (
	"fmt"
	"math/rand"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/pop/v6"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/domain"
)

type FixturesConfig struct {
	NumberOfPolicies int
	ClaimsPerPolicy  int
}

// Fixtures hold slices of model objects created for test fixtures
type Fixtures struct {
	Policies
	Claims
}

// TestBuffaloContext is a buffalo context used in tests
type TestBuffaloContext struct {
	buffalo.DefaultContext
	params map[any]any
}

// Value returns the value associated with the given key in the test context
func (b *TestBuffaloContext) Value(key any) any {
	return b.params[key]
}

// Set sets the value to be associated with the given key in the test context
func (b *TestBuffaloContext) Set(key string, val any) {
	b.params[key] = val
}

// CreateTestContext sets the domain.ContextKeyCurrentActor to the actor param in the TestBuffaloContext
func CreateTestContext(actor Actor) buffalo.Context {
	ctx := &TestBuffaloContext{
		params: map[any]any{},
	}
	ctx.Set(domain.ContextKeyCurrentActor, actor)
	return ctx
}

// RandomIdentity returns a syntactically valid, canonical identity reference
func RandomIdentity() api.Identity {
	const hex = "0123456789abcdef"
	b := make([]byte, 40)
	for i := range b {
		b[i] = hex[rand.Intn(len(hex))] // #nosec G404
	}
	return api.Identity("0x" + string(b))
}

// SetTestInsurer overrides the configured insurer identity for the current
// test and returns it as an Actor.
func SetTestInsurer() Actor {
	id := RandomIdentity()
	domain.Env.InsurerIdentity = string(id)
	return NewActor(id)
}

// InsurerActor returns an actor for the configured insurer identity
func InsurerActor() Actor {
	return NewActor(domain.InsurerIdentity())
}

// CreatePolicyFixtures generates policy records, each with its own random
// holder, plus pending claims per the config.
func CreatePolicyFixtures(tx *pop.Connection, config FixturesConfig) Fixtures {
	insurer := InsurerActor()

	policies := make(Policies, config.NumberOfPolicies)
	var claims Claims
	for i := range policies {
		policy, err := CreatePolicy(tx, insurer, api.PolicyCreateInput{
			PolicyHolder:   RandomIdentity(),
			Premium:        api.Currency(100 * api.CurrencyFactor),
			CoverageAmount: api.Currency(10000 * api.CurrencyFactor),
			DurationInDays: 365,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to create policy fixture, %s", err))
		}

		for j := 0; j < config.ClaimsPerPolicy; j++ {
			claim, err := policy.AddClaim(tx, NewActor(policy.PolicyHolder), api.ClaimCreateInput{
				Description: fmt.Sprintf("claim fixture %d on policy %d", j, policy.Number),
				Amount:      api.Currency(500 * api.CurrencyFactor),
			})
			if err != nil {
				panic(fmt.Sprintf("failed to create claim fixture, %s", err))
			}
			claims = append(claims, claim)
		}

		if err := policy.LoadClaims(tx); err != nil {
			panic(fmt.Sprintf("failed to load claim fixtures, %s", err))
		}
		policies[i] = policy
	}

	return Fixtures{
		Policies: policies,
		Claims:   claims,
	}
}

// UpdateClaimStatus forces a claim into the given status, bypassing the state
// machine, for tests that need a claim mid-lifecycle.
func UpdateClaimStatus(tx *pop.Connection, claim Claim, status api.ClaimStatus) Claim {
	claim.Status = status
	if err := update(tx, &claim); err != nil {
		panic(fmt.Sprintf("failed to update claim fixture status, %s", err))
	}
	return claim
}

// FundCustodyFixture puts the custody balance at exactly the given amount
func FundCustodyFixture(tx *pop.Connection, amount api.Currency) CustodyAccount {
	var account CustodyAccount
	if err := account.FindForUpdate(tx); err != nil {
		panic(fmt.Sprintf("failed to load custody account fixture, %s", err))
	}
	account.Balance = amount
	if err := update(tx, &account); err != nil {
		panic(fmt.Sprintf("failed to set custody balance fixture, %s", err))
	}
	return account
}

// MustCreate saves a record, checking validation rules, and panics on failure
func MustCreate(tx *pop.Connection, f any) {
	// Use `create` instead of `tx.Create` to check validation rules
	err := create(tx, f)
	if err != nil {
		panic(fmt.Sprintf("error creating %T fixture, %s", f, err))
	}
}

// DestroyAll wipes ledger state and resets the id counters and custody
// balance so each test starts from an empty ledger.
func DestroyAll() {
	var entries LedgerEntries
	destroyTable(&entries)

	var claims Claims
	destroyTable(&claims)

	var policies Policies
	destroyTable(&policies)

	if err := DB.RawQuery("UPDATE counters SET value = 0").Exec(); err != nil {
		panic(err.Error())
	}
	if err := DB.RawQuery("UPDATE custody_accounts SET balance = 0").Exec(); err != nil {
		panic(err.Error())
	}
}

func destroyTable(i any) {
	if err := DB.All(i); err != nil {
		panic(err.Error())
	}
	if err := DB.Destroy(i); err != nil {
		panic(err.Error())
	}
}

package models

import (
	"testing"

	"github.com/openinsure/custody-api/api"
)

func (ms *ModelSuite) TestClaim_Transitions() {
	tests := []struct {
		name    string
		from    api.ClaimStatus
		to      api.ClaimStatus
		wantErr bool
	}{
		{name: "pending to approved", from: api.ClaimStatusPending, to: api.ClaimStatusApproved},
		{name: "pending to rejected", from: api.ClaimStatusPending, to: api.ClaimStatusRejected},
		{name: "approved to paid", from: api.ClaimStatusApproved, to: api.ClaimStatusPaid},
		{name: "pending to paid", from: api.ClaimStatusPending, to: api.ClaimStatusPaid, wantErr: true},
		{name: "approved to rejected", from: api.ClaimStatusApproved, to: api.ClaimStatusRejected, wantErr: true},
		{name: "rejected is terminal", from: api.ClaimStatusRejected, to: api.ClaimStatusApproved, wantErr: true},
		{name: "paid is terminal", from: api.ClaimStatusPaid, to: api.ClaimStatusApproved, wantErr: true},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			ok, err := isClaimTransitionValid(tt.from, tt.to)
			ms.NoError(err)
			ms.Equal(!tt.wantErr, ok)
		})
	}
}

func (ms *ModelSuite) TestClaim_FindByNumber() {
	fixtures := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1, ClaimsPerPolicy: 1})

	var claim Claim
	ms.NoError(claim.FindByNumber(ms.DB, fixtures.Claims[0].Number))
	ms.Equal(fixtures.Claims[0].ID, claim.ID)

	var missing Claim
	err := missing.FindByNumber(ms.DB, 999)
	ms.Error(err)
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimNotFound, Category: api.CategoryNotFound}, err)
}

func (ms *ModelSuite) TestClaim_Review() {
	fixtures := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1, ClaimsPerPolicy: 2})
	holder := fixtures.Policies[0].PolicyHolder

	tests := []struct {
		name       string
		actor      Actor
		claim      Claim
		approve    bool
		wantStatus api.ClaimStatus
		wantErrKey api.ErrorKey
		wantErrCat api.ErrorCategory
	}{
		{
			name:       "holder may not review",
			actor:      NewActor(holder),
			claim:      fixtures.Claims[0],
			approve:    true,
			wantErrKey: api.ErrorNotAuthorized,
			wantErrCat: api.CategoryUnauthorized,
		},
		{
			name:       "insurer approves",
			actor:      InsurerActor(),
			claim:      fixtures.Claims[0],
			approve:    true,
			wantStatus: api.ClaimStatusApproved,
		},
		{
			name:       "insurer rejects",
			actor:      InsurerActor(),
			claim:      fixtures.Claims[1],
			approve:    false,
			wantStatus: api.ClaimStatusRejected,
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			claim := tt.claim
			err := claim.Review(ms.DB, tt.actor, tt.approve)
			if tt.wantErrKey != "" {
				ms.Error(err)
				ms.EqualAppError(api.AppError{Key: tt.wantErrKey, Category: tt.wantErrCat}, err)
				return
			}
			ms.NoError(err)
			ms.Equal(tt.wantStatus, claim.Status)

			var fresh Claim
			ms.NoError(fresh.FindByNumber(ms.DB, claim.Number))
			ms.Equal(tt.wantStatus, fresh.Status)
		})
	}
}

func (ms *ModelSuite) TestClaim_Review_AlreadyDecided() {
	fixtures := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1, ClaimsPerPolicy: 1})
	claim := UpdateClaimStatus(ms.DB, fixtures.Claims[0], api.ClaimStatusApproved)

	err := claim.Review(ms.DB, InsurerActor(), false)
	ms.Error(err)
	ms.EqualAppError(api.AppError{Key: api.ErrorClaimInvalidStateTransition, Category: api.CategoryUser}, err)

	var fresh Claim
	ms.NoError(fresh.FindByNumber(ms.DB, claim.Number))
	ms.Equal(api.ClaimStatusApproved, fresh.Status, "a failed review must not change the status")
}

func (ms *ModelSuite) TestClaim_Pay() {
	fixtures := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1, ClaimsPerPolicy: 1})
	claim := UpdateClaimStatus(ms.DB, fixtures.Claims[0], api.ClaimStatusApproved)
	FundCustodyFixture(ms.DB, claim.Amount)

	err := claim.Pay(ms.DB, InsurerActor(), 0)
	ms.NoError(err)
	ms.Equal(api.ClaimStatusPaid, claim.Status)

	var account CustodyAccount
	ms.NoError(account.Find(ms.DB))
	ms.Equal(api.Currency(0), account.Balance, "paying with an exact balance must leave zero")

	var entries LedgerEntries
	ms.NoError(entries.AllByDate(ms.DB))
	ms.Len(entries, 1)
	ms.Equal(api.LedgerEntryTypePayout, entries[0].Type)
	ms.Equal(claim.Amount, entries[0].Amount)
	ms.Equal(claim.Number, entries[0].ClaimNumber.Int)
}

func (ms *ModelSuite) TestClaim_Pay_InsufficientFunds() {
	fixtures := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1, ClaimsPerPolicy: 1})
	claim := UpdateClaimStatus(ms.DB, fixtures.Claims[0], api.ClaimStatusApproved)
	FundCustodyFixture(ms.DB, claim.Amount-1)

	err := claim.Pay(ms.DB, InsurerActor(), 0)
	ms.Error(err)
	ms.EqualAppError(api.AppError{Key: api.ErrorCustodyInsufficientFunds, Category: api.CategoryUser}, err)

	// nothing may have changed: not the status, not the balance, no ledger entry
	var fresh Claim
	ms.NoError(fresh.FindByNumber(ms.DB, claim.Number))
	ms.Equal(api.ClaimStatusApproved, fresh.Status)

	var account CustodyAccount
	ms.NoError(account.Find(ms.DB))
	ms.Equal(claim.Amount-1, account.Balance)

	var entries LedgerEntries
	ms.NoError(entries.AllByDate(ms.DB))
	ms.Len(entries, 0)
}

func (ms *ModelSuite) TestClaim_Pay_SuppliedFunds() {
	fixtures := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1, ClaimsPerPolicy: 1})
	claim := UpdateClaimStatus(ms.DB, fixtures.Claims[0], api.ClaimStatusApproved)

	// an empty account plus funds supplied with the payment itself
	err := claim.Pay(ms.DB, InsurerActor(), claim.Amount)
	ms.NoError(err)
	ms.Equal(api.ClaimStatusPaid, claim.Status)

	var account CustodyAccount
	ms.NoError(account.Find(ms.DB))
	ms.Equal(api.Currency(0), account.Balance)

	// both the funding credit and the payout carry the claim linkage
	var entries LedgerEntries
	ms.NoError(entries.AllByDate(ms.DB))
	ms.Len(entries, 2)
	ms.Equal(api.LedgerEntryTypeFund, entries[0].Type)
	ms.Equal(claim.Number, entries[0].ClaimNumber.Int)
	ms.Equal(api.LedgerEntryTypePayout, entries[1].Type)
	ms.Equal(claim.Number, entries[1].ClaimNumber.Int)
}

func (ms *ModelSuite) TestClaim_Pay_Guards() {
	fixtures := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1, ClaimsPerPolicy: 3})
	FundCustodyFixture(ms.DB, 1_000_000*api.CurrencyFactor)

	rejected := UpdateClaimStatus(ms.DB, fixtures.Claims[1], api.ClaimStatusRejected)
	approved := UpdateClaimStatus(ms.DB, fixtures.Claims[2], api.ClaimStatusApproved)

	tests := []struct {
		name          string
		actor         Actor
		claim         Claim
		suppliedFunds api.Currency
		wantErrKey    api.ErrorKey
		wantErrCat    api.ErrorCategory
	}{
		{
			name:       "holder may not pay",
			actor:      NewActor(fixtures.Policies[0].PolicyHolder),
			claim:      approved,
			wantErrKey: api.ErrorNotAuthorized,
			wantErrCat: api.CategoryUnauthorized,
		},
		{
			name:       "pending claim",
			actor:      InsurerActor(),
			claim:      fixtures.Claims[0],
			wantErrKey: api.ErrorClaimInvalidStateTransition,
			wantErrCat: api.CategoryUser,
		},
		{
			name:       "rejected claim",
			actor:      InsurerActor(),
			claim:      rejected,
			wantErrKey: api.ErrorClaimInvalidStateTransition,
			wantErrCat: api.CategoryUser,
		},
		{
			name:          "negative supplied funds",
			actor:         InsurerActor(),
			claim:         approved,
			suppliedFunds: -1,
			wantErrKey:    api.ErrorCustodyInvalidAmount,
			wantErrCat:    api.CategoryUser,
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			claim := tt.claim
			err := claim.Pay(ms.DB, tt.actor, tt.suppliedFunds)
			ms.Error(err)
			ms.EqualAppError(api.AppError{Key: tt.wantErrKey, Category: tt.wantErrCat}, err)

			var fresh Claim
			ms.NoError(fresh.FindByNumber(ms.DB, claim.Number))
			ms.Equal(tt.claim.Status, fresh.Status)
		})
	}
}

func (ms *ModelSuite) TestClaimsForPolicies() {
	fixtures := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 2, ClaimsPerPolicy: 2})

	claims, err := ClaimsForPolicies(ms.DB, []int{fixtures.Policies[1].Number, fixtures.Policies[0].Number})
	ms.NoError(err)
	ms.Len(claims, 4)

	// grouped by the given policy order, ascending claim number within each
	ms.Equal(fixtures.Policies[1].Number, claims[0].PolicyNumber)
	ms.Equal(fixtures.Policies[1].Number, claims[1].PolicyNumber)
	ms.Equal(fixtures.Policies[0].Number, claims[2].PolicyNumber)
	ms.Equal(fixtures.Policies[0].Number, claims[3].PolicyNumber)
	ms.Less(claims[0].Number, claims[1].Number)
	ms.Less(claims[2].Number, claims[3].Number)
}

func (ms *ModelSuite) TestClaim_Lifecycle() {
	insurer := InsurerActor()
	holder := RandomIdentity()

	policy, err := CreatePolicy(ms.DB, insurer, api.PolicyCreateInput{
		PolicyHolder:   holder,
		Premium:        100 * api.CurrencyFactor,
		CoverageAmount: 1000 * api.CurrencyFactor,
		DurationInDays: 365,
	})
	ms.NoError(err)
	ms.Equal(1, policy.Number)

	claim, err := policy.AddClaim(ms.DB, NewActor(holder), api.ClaimCreateInput{
		Description: "water damage",
		Amount:      500 * api.CurrencyFactor,
	})
	ms.NoError(err)
	ms.Equal(1, claim.Number)
	ms.Equal(api.ClaimStatusPending, claim.Status)

	_, err = FundCustody(ms.DB, insurer, 500*api.CurrencyFactor)
	ms.NoError(err)

	ms.NoError(claim.Review(ms.DB, insurer, true))
	ms.Equal(api.ClaimStatusApproved, claim.Status)

	ms.NoError(claim.Pay(ms.DB, insurer, 0))
	ms.Equal(api.ClaimStatusPaid, claim.Status)

	var account CustodyAccount
	ms.NoError(account.Find(ms.DB))
	ms.Equal(api.Currency(0), account.Balance)
}

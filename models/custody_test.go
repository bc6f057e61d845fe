package models

import (
	"testing"

	"github.com/openinsure/custody-api/api"
)

func (ms *ModelSuite) TestFundCustody() {
	tests := []struct {
		name       string
		actor      Actor
		amount     api.Currency
		wantErrKey api.ErrorKey
		wantErrCat api.ErrorCategory
	}{
		{
			name:       "not the insurer",
			actor:      NewActor(RandomIdentity()),
			amount:     100,
			wantErrKey: api.ErrorNotAuthorized,
			wantErrCat: api.CategoryUnauthorized,
		},
		{
			name:       "zero amount",
			actor:      InsurerActor(),
			amount:     0,
			wantErrKey: api.ErrorCustodyInvalidAmount,
			wantErrCat: api.CategoryUser,
		},
		{
			name:       "negative amount",
			actor:      InsurerActor(),
			amount:     -100,
			wantErrKey: api.ErrorCustodyInvalidAmount,
			wantErrCat: api.CategoryUser,
		},
		{
			name:   "good amount",
			actor:  InsurerActor(),
			amount: 250 * api.CurrencyFactor,
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			account, err := FundCustody(ms.DB, tt.actor, tt.amount)
			if tt.wantErrKey != "" {
				ms.Error(err)
				ms.EqualAppError(api.AppError{Key: tt.wantErrKey, Category: tt.wantErrCat}, err)

				var fresh CustodyAccount
				ms.NoError(fresh.Find(ms.DB))
				ms.Equal(api.Currency(0), fresh.Balance)
				return
			}
			ms.NoError(err)
			ms.Equal(tt.amount, account.Balance)

			var entries LedgerEntries
			ms.NoError(entries.AllByDate(ms.DB))
			ms.Len(entries, 1)
			ms.Equal(api.LedgerEntryTypeFund, entries[0].Type)
			ms.Equal(tt.amount, entries[0].Amount)
			ms.False(entries[0].ClaimNumber.Valid, "a funding entry is not tied to a claim")
		})
	}
}

func (ms *ModelSuite) TestFundCustody_Accumulates() {
	insurer := InsurerActor()

	_, err := FundCustody(ms.DB, insurer, 100)
	ms.NoError(err)
	account, err := FundCustody(ms.DB, insurer, 150)
	ms.NoError(err)
	ms.Equal(api.Currency(250), account.Balance)

	var entries LedgerEntries
	ms.NoError(entries.AllByDate(ms.DB))
	ms.Len(entries, 2)
}

func (ms *ModelSuite) TestCustodyAccount_Debit() {
	FundCustodyFixture(ms.DB, 100)

	var account CustodyAccount
	ms.NoError(account.FindForUpdate(ms.DB))

	err := account.Debit(ms.DB, 101, nil)
	ms.Error(err)
	ms.EqualAppError(api.AppError{Key: api.ErrorCustodyInsufficientFunds, Category: api.CategoryUser}, err)
	ms.Equal(api.Currency(100), account.Balance)

	ms.NoError(account.Debit(ms.DB, 100, nil))
	ms.Equal(api.Currency(0), account.Balance)

	// a zero debit is allowed and still journaled
	ms.NoError(account.Debit(ms.DB, 0, nil))

	var entries LedgerEntries
	ms.NoError(entries.AllByDate(ms.DB))
	ms.Len(entries, 2)
}

func (ms *ModelSuite) TestLedgerEntries_AllByDate() {
	fixtures := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1, ClaimsPerPolicy: 1})
	claim := UpdateClaimStatus(ms.DB, fixtures.Claims[0], api.ClaimStatusApproved)

	insurer := InsurerActor()
	_, err := FundCustody(ms.DB, insurer, claim.Amount)
	ms.NoError(err)
	ms.NoError(claim.Pay(ms.DB, insurer, 0))

	var entries LedgerEntries
	ms.NoError(entries.AllByDate(ms.DB))
	ms.Len(entries, 2)
	ms.Equal(api.LedgerEntryTypeFund, entries[0].Type)
	ms.Equal(api.LedgerEntryTypePayout, entries[1].Type)
	ms.Equal(claim.Number, entries[1].ClaimNumber.Int)

	converted := entries.ConvertToAPI()
	ms.Len(converted, 2)
	ms.Nil(converted[0].ClaimID)
	ms.NotNil(converted[1].ClaimID)
	ms.Equal(claim.Number, *converted[1].ClaimID)
}

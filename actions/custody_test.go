package actions

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/models"
)

func (as *ActionSuite) Test_CustodyView() {
	models.FundCustodyFixture(as.DB, 250*api.CurrencyFactor)

	res := as.authRequest("/custody", models.NewActor(models.RandomIdentity())).Get()
	as.Equal(http.StatusUnauthorized, res.Code)
	as.Contains(res.Body.String(), "ErrorNotAuthorized")

	res = as.authRequest("/custody", models.InsurerActor()).Get()
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var balance api.CustodyBalance
	as.NoError(json.Unmarshal(res.Body.Bytes(), &balance))
	as.Equal(api.Currency(250*api.CurrencyFactor), balance.Balance)
}

func (as *ActionSuite) Test_CustodyFund() {
	input := api.CustodyFundInput{Amount: 100 * api.CurrencyFactor}

	res := as.authRequest("/custody/fund", models.NewActor(models.RandomIdentity())).Post(input)
	as.Equal(http.StatusUnauthorized, res.Code)
	as.Contains(res.Body.String(), "ErrorNotAuthorized")

	res = as.authRequest("/custody/fund", models.InsurerActor()).Post(input)
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var balance api.CustodyBalance
	as.NoError(json.Unmarshal(res.Body.Bytes(), &balance))
	as.Equal(input.Amount, balance.Balance)

	res = as.authRequest("/custody/fund", models.InsurerActor()).Post(api.CustodyFundInput{Amount: 0})
	as.Equal(http.StatusBadRequest, res.Code)
	as.Contains(res.Body.String(), "ErrorCustodyInvalidAmount")
}

func (as *ActionSuite) Test_CustodyLedger() {
	fixtures := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{NumberOfPolicies: 1, ClaimsPerPolicy: 1})
	claim := models.UpdateClaimStatus(as.DB, fixtures.Claims[0], api.ClaimStatusApproved)

	insurer := models.InsurerActor()
	res := as.authRequest("/custody/fund", insurer).Post(api.CustodyFundInput{Amount: claim.Amount})
	as.Equal(http.StatusOK, res.Code)

	res = as.authRequest(fmt.Sprintf("/claims/%d/pay", claim.Number), insurer).Post(api.ClaimPayInput{})
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	res = as.authRequest("/custody/ledger", insurer).Get()
	as.Equal(http.StatusOK, res.Code, "body: %s", res.Body.String())

	var entries api.LedgerEntries
	as.NoError(json.Unmarshal(res.Body.Bytes(), &entries))
	as.Len(entries, 2)
	as.Equal(api.LedgerEntryTypeFund, entries[0].Type)
	as.Equal(api.LedgerEntryTypePayout, entries[1].Type)
	as.NotNil(entries[1].ClaimID)
	as.Equal(claim.Number, *entries[1].ClaimID)
}

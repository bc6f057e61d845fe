package actions

import (
	"fmt"

	"github.com/gobuffalo/buffalo"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/models"
)

// swagger:operation GET /custody Custody CustodyView
//
// CustodyView
//
// view the custody balance, insurer only
//
// ---
// responses:
//   '200':
//     description: the custody balance
//     schema:
//       "$ref": "#/definitions/CustodyBalance"
func custodyView(c buffalo.Context) error {
	tx := models.Tx(c)

	if err := requireInsurer(c); err != nil {
		return reportError(c, err)
	}

	var account models.CustodyAccount
	if err := account.Find(tx); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, account.ConvertToAPI())
}

// swagger:operation GET /custody/ledger Custody CustodyLedger
//
// CustodyLedger
//
// list all custody ledger entries, oldest first, insurer only
//
// ---
// responses:
//   '200':
//     description: a list of LedgerEntries
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/LedgerEntry"
func custodyLedger(c buffalo.Context) error {
	tx := models.Tx(c)

	if err := requireInsurer(c); err != nil {
		return reportError(c, err)
	}

	var entries models.LedgerEntries
	if err := entries.AllByDate(tx); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, entries.ConvertToAPI())
}

// swagger:operation POST /custody/fund Custody CustodyFund
//
// CustodyFund
//
// add funds to the custody balance, insurer only
//
// ---
// parameters:
// - name: fund input
//   in: body
//   description: custody fund input object
//   required: true
//   schema:
//     "$ref": "#/definitions/CustodyFundInput"
// responses:
//   '200':
//     description: the custody balance after funding
//     schema:
//       "$ref": "#/definitions/CustodyBalance"
func custodyFund(c buffalo.Context) error {
	tx := models.Tx(c)
	actor := models.CurrentActor(c)

	var input api.CustodyFundInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	account, err := models.FundCustody(tx, actor, input.Amount)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, account.ConvertToAPI())
}

func requireInsurer(c buffalo.Context) error {
	actor := models.CurrentActor(c)
	if !actor.IsInsurer() {
		err := fmt.Errorf("actor %s may not view custody state", actor.Identity)
		return api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized)
	}
	return nil
}

package actions

import (
	"fmt"
	"strconv"

	"github.com/gobuffalo/buffalo"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/models"
)

// swagger:operation GET /claims Claims ClaimsList
//
// ClaimsList
//
// list the claims on the caller's policies, or all claims for the insurer
//
// ---
// responses:
//   '200':
//     description: a list of Claims
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/Claim"
func claimsList(c buffalo.Context) error {
	tx := models.Tx(c)
	actor := models.CurrentActor(c)

	var policies models.Policies
	if err := policies.AllVisible(tx, actor); err != nil {
		return reportError(c, err)
	}

	numbers := make([]int, len(policies))
	for i, p := range policies {
		numbers[i] = p.Number
	}

	claims, err := models.ClaimsForPolicies(tx, numbers)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, claims.ConvertToAPI())
}

// swagger:operation GET /claims/{id} Claims ClaimsView
//
// ClaimsView
//
// view a specific claim
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// responses:
//   '200':
//     description: a Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func claimsView(c buffalo.Context) error {
	claim, err := getReferencedClaim(c)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, claim.ConvertToAPI())
}

// swagger:operation POST /claims/{id}/review Claims ClaimsReview
//
// ClaimsReview
//
// approve or reject a pending claim, insurer only
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// - name: review input
//   in: body
//   description: claim review input object
//   required: true
//   schema:
//     "$ref": "#/definitions/ClaimReviewInput"
// responses:
//   '200':
//     description: the reviewed Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func claimsReview(c buffalo.Context) error {
	tx := models.Tx(c)
	actor := models.CurrentActor(c)

	claim, err := getReferencedClaim(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ClaimReviewInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := claim.Review(tx, actor, input.Approve); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, claim.ConvertToAPI())
}

// swagger:operation POST /claims/{id}/pay Claims ClaimsPay
//
// ClaimsPay
//
// pay an approved claim from the custody balance, insurer only
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: claim ID
// - name: pay input
//   in: body
//   description: claim pay input object
//   required: true
//   schema:
//     "$ref": "#/definitions/ClaimPayInput"
// responses:
//   '200':
//     description: the paid Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func claimsPay(c buffalo.Context) error {
	tx := models.Tx(c)
	actor := models.CurrentActor(c)

	claim, err := getReferencedClaim(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ClaimPayInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := claim.Pay(tx, actor, input.SuppliedFunds); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, claim.ConvertToAPI())
}

// getReferencedClaim loads the claim named by the path, hiding claims the
// caller may not see behind the same not-found error a bad id gets.
func getReferencedClaim(c buffalo.Context) (models.Claim, error) {
	tx := models.Tx(c)
	actor := models.CurrentActor(c)

	var claim models.Claim

	number, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		err = fmt.Errorf("invalid claim id %q", c.Param("id"))
		return claim, api.NewAppError(err, api.ErrorMustBeAValidID, api.CategoryUser)
	}

	if err := claim.FindByNumber(tx, number); err != nil {
		return claim, err
	}

	var policy models.Policy
	if err := policy.FindByNumber(tx, claim.PolicyNumber); err != nil {
		return claim, err
	}

	if !actor.IsInsurer() && !actor.Is(policy.PolicyHolder) {
		err := fmt.Errorf("actor %s may not view claim %d", actor.Identity, claim.Number)
		return claim, api.NewAppError(err, api.ErrorClaimNotFound, api.CategoryNotFound)
	}

	newExtra(c, "claimID", claim.Number)
	return claim, nil
}

package actions

import (
	"fmt"
	"strconv"

	"github.com/gobuffalo/buffalo"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/models"
)

// swagger:operation GET /policies Policies PoliciesList
//
// PoliciesList
//
// list the policies held by the caller, or all policies for the insurer
//
// ---
// responses:
//   '200':
//     description: a list of Policies
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/Policy"
func policiesList(c buffalo.Context) error {
	tx := models.Tx(c)
	actor := models.CurrentActor(c)

	var policies models.Policies
	if err := policies.AllVisible(tx, actor); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, policies.ConvertToAPI())
}

// swagger:operation POST /policies Policies PoliciesCreate
//
// PoliciesCreate
//
// issue a new policy, insurer only
//
// ---
// parameters:
// - name: policy input
//   in: body
//   description: policy create input object
//   required: true
//   schema:
//     "$ref": "#/definitions/PolicyCreateInput"
// responses:
//   '200':
//     description: the new Policy
//     schema:
//       "$ref": "#/definitions/Policy"
func policiesCreate(c buffalo.Context) error {
	tx := models.Tx(c)
	actor := models.CurrentActor(c)

	var input api.PolicyCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	policy, err := models.CreatePolicy(tx, actor, input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, policy.ConvertToAPI())
}

// swagger:operation GET /policies/{id} Policies PoliciesView
//
// PoliciesView
//
// view a specific policy
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// responses:
//   '200':
//     description: a Policy
//     schema:
//       "$ref": "#/definitions/Policy"
func policiesView(c buffalo.Context) error {
	policy, err := getReferencedPolicy(c)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, policy.ConvertToAPI())
}

// swagger:operation GET /policies/{id}/claims Claims PoliciesClaimsList
//
// PoliciesClaimsList
//
// list the claims submitted against a policy, oldest first
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// responses:
//   '200':
//     description: a list of Claims
//     schema:
//       type: array
//       items:
//         "$ref": "#/definitions/Claim"
func policiesClaimsList(c buffalo.Context) error {
	tx := models.Tx(c)

	policy, err := getReferencedPolicy(c)
	if err != nil {
		return reportError(c, err)
	}

	if err := policy.LoadClaims(tx); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, policy.Claims.ConvertToAPI())
}

// swagger:operation POST /policies/{id}/claims Claims PoliciesClaimsCreate
//
// PoliciesClaimsCreate
//
// submit a new claim against a policy, policyholder only
//
// ---
// parameters:
// - name: id
//   in: path
//   required: true
//   description: policy ID
// - name: claim input
//   in: body
//   description: claim create input object
//   required: true
//   schema:
//     "$ref": "#/definitions/ClaimCreateInput"
// responses:
//   '200':
//     description: the new Claim
//     schema:
//       "$ref": "#/definitions/Claim"
func policiesClaimsCreate(c buffalo.Context) error {
	tx := models.Tx(c)
	actor := models.CurrentActor(c)

	policy, err := getReferencedPolicy(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ClaimCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	claim, err := policy.AddClaim(tx, actor, input)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, claim.ConvertToAPI())
}

// getReferencedPolicy loads the policy named by the path, hiding policies the
// caller may not see behind the same not-found error a bad id gets.
func getReferencedPolicy(c buffalo.Context) (models.Policy, error) {
	tx := models.Tx(c)
	actor := models.CurrentActor(c)

	var policy models.Policy

	number, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		err = fmt.Errorf("invalid policy id %q", c.Param("id"))
		return policy, api.NewAppError(err, api.ErrorMustBeAValidID, api.CategoryUser)
	}

	if err := policy.FindByNumber(tx, number); err != nil {
		return policy, err
	}

	if !actor.IsInsurer() && !actor.Is(policy.PolicyHolder) {
		err := fmt.Errorf("actor %s may not view policy %d", actor.Identity, policy.Number)
		return policy, api.NewAppError(err, api.ErrorPolicyNotFound, api.CategoryNotFound)
	}

	newExtra(c, "policyID", policy.Number)
	return policy, nil
}

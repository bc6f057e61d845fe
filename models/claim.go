package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/domain"
)

type Claims []Claim

// Claim is a request for payment against a policy. Number is the public,
// sequential claim id, shared across all policies. DateSubmitted is set at
// creation and never changes.
type Claim struct {
	ID            uuid.UUID       `db:"id"`
	Number        int             `db:"number"`
	PolicyID      uuid.UUID       `db:"policy_id"`
	PolicyNumber  int             `db:"policy_number"`
	Description   string          `db:"description" validate:"required"`
	Amount        api.Currency    `db:"amount" validate:"min=0"`
	Status        api.ClaimStatus `db:"status" validate:"claimStatus"`
	DateSubmitted time.Time       `db:"date_submitted"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`

	Policy Policy `belongs_to:"policies" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (c *Claim) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

// claimStatusTransitions defines the claim state machine. Rejected and Paid
// are terminal.
func claimStatusTransitions() map[api.ClaimStatus][]api.ClaimStatus {
	return map[api.ClaimStatus][]api.ClaimStatus{
		api.ClaimStatusPending: {
			api.ClaimStatusApproved,
			api.ClaimStatusRejected,
		},
		api.ClaimStatusApproved: {
			api.ClaimStatusPaid,
		},
		api.ClaimStatusRejected: {},
		api.ClaimStatusPaid:     {},
	}
}

func isClaimTransitionValid(status1, status2 api.ClaimStatus) (bool, error) {
	targets, ok := claimStatusTransitions()[status1]
	if !ok {
		return false, errors.New("unexpected initial status - " + string(status1))
	}

	for _, target := range targets {
		if status2 == target {
			return true, nil
		}
	}

	return false, nil
}

func (c *Claim) GetID() uuid.UUID {
	return c.ID
}

// FindByNumber loads the claim with the given public id
func (c *Claim) FindByNumber(tx *pop.Connection, number int) error {
	err := tx.Where("number = ?", number).First(c)
	if err != nil {
		if domain.IsOtherThanNoRows(err) {
			return appErrorFromDB(err, api.ErrorQueryFailure)
		}
		return api.NewAppError(
			fmt.Errorf("claim %d not found: %w", number, err),
			api.ErrorClaimNotFound, api.CategoryNotFound)
	}
	return nil
}

// setStatus moves the claim to a new status after checking the state machine.
// No mutation is applied when the transition is invalid.
func (c *Claim) setStatus(tx *pop.Connection, newStatus api.ClaimStatus) error {
	validTrans, err := isClaimTransitionValid(c.Status, newStatus)
	if err != nil {
		panic(err)
	}
	if !validTrans {
		err := fmt.Errorf("invalid claim status transition from %s to %s", c.Status, newStatus)
		return api.NewAppError(err, api.ErrorClaimInvalidStateTransition, api.CategoryUser)
	}

	c.Status = newStatus
	return update(tx, c)
}

// Review approves or rejects a pending claim. Only the insurer may review. No
// funds move here; approval only authorizes a later payment.
func (c *Claim) Review(tx *pop.Connection, actor Actor, approve bool) error {
	if !actor.IsInsurer() {
		err := fmt.Errorf("actor %s may not review claims", actor.Identity)
		return api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized)
	}

	newStatus := api.ClaimStatusRejected
	eventKind := domain.EventApiClaimRejected
	if approve {
		newStatus = api.ClaimStatusApproved
		eventKind = domain.EventApiClaimApproved
	}

	if err := c.setStatus(tx, newStatus); err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    eventKind,
		Message: fmt.Sprintf("Claim %d %s", c.Number, c.Status.Label()),
		Payload: events.Payload{domain.EventPayloadID: c.Number},
	})

	return nil
}

// Pay releases funds for an approved claim from the custody balance. Funds
// supplied with the call are credited first. The debit, the ledger entries,
// and the status change all ride the caller's transaction, so a failure at
// any point leaves no partial result.
func (c *Claim) Pay(tx *pop.Connection, actor Actor, suppliedFunds api.Currency) error {
	if !actor.IsInsurer() {
		err := fmt.Errorf("actor %s may not pay claims", actor.Identity)
		return api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized)
	}

	if suppliedFunds < 0 {
		err := fmt.Errorf("supplied funds must not be negative, got %s", suppliedFunds)
		return api.NewAppError(err, api.ErrorCustodyInvalidAmount, api.CategoryUser)
	}

	if c.Status != api.ClaimStatusApproved {
		err := fmt.Errorf("invalid claim status transition from %s to %s",
			c.Status, api.ClaimStatusPaid)
		return api.NewAppError(err, api.ErrorClaimInvalidStateTransition, api.CategoryUser)
	}

	var account CustodyAccount
	if err := account.FindForUpdate(tx); err != nil {
		return err
	}

	if suppliedFunds > 0 {
		// journal the credit against this claim so the ledger shows where
		// the funds arrived from
		if err := account.Credit(tx, suppliedFunds, c); err != nil {
			return err
		}
	}

	if err := account.Debit(tx, c.Amount, c); err != nil {
		return err
	}

	if err := c.setStatus(tx, api.ClaimStatusPaid); err != nil {
		return err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimPaid,
		Message: fmt.Sprintf("Claim %d paid %s to policy %d holder", c.Number, c.Amount, c.PolicyNumber),
		Payload: events.Payload{domain.EventPayloadID: c.Number},
	})

	return nil
}

// ClaimsForPolicies returns the claims of each listed policy, preserving the
// policy-list order, with each policy's claims in ascending claim-number
// order.
func ClaimsForPolicies(tx *pop.Connection, policyNumbers []int) (Claims, error) {
	var all Claims
	for _, number := range policyNumbers {
		var claims Claims
		err := tx.Where("policy_number = ?", number).Order("number asc").All(&claims)
		if err != nil {
			return nil, appErrorFromDB(err, api.ErrorQueryFailure)
		}
		all = append(all, claims...)
	}
	return all, nil
}

func (c *Claim) ConvertToAPI() api.Claim {
	return api.Claim{
		ID:            c.Number,
		PolicyID:      c.PolicyNumber,
		Description:   c.Description,
		Amount:        c.Amount,
		Status:        c.Status,
		StatusLabel:   c.Status.Label(),
		DateSubmitted: c.DateSubmitted,
	}
}

func (cs *Claims) ConvertToAPI() api.Claims {
	claims := make(api.Claims, len(*cs))
	for i, c := range *cs {
		claims[i] = c.ConvertToAPI()
	}
	return claims
}

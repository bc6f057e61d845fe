package models

import (
	"fmt"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/domain"
)

type Policies []Policy

// Policy is issued by the insurer to a policyholder. The insurer records the
// premium owed; collection happens out of band. Number is the public,
// sequential policy id, allocated gap-free at creation.
type Policy struct {
	ID             uuid.UUID    `db:"id"`
	Number         int          `db:"number"`
	PolicyHolder   api.Identity `db:"policy_holder" validate:"identity"`
	Premium        api.Currency `db:"premium" validate:"min=0"`
	CoverageAmount api.Currency `db:"coverage_amount" validate:"min=0"`
	StartDate      time.Time    `db:"start_date"`
	EndDate        time.Time    `db:"end_date"`
	Active         bool         `db:"active"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`

	Claims Claims `has_many:"claims" validate:"-"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (p *Policy) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(p), nil
}

// CreatePolicy issues a new policy. Only the insurer may call this; it is the
// only entry point that creates policies.
func CreatePolicy(tx *pop.Connection, actor Actor, input api.PolicyCreateInput) (Policy, error) {
	var policy Policy

	if !actor.IsInsurer() {
		err := fmt.Errorf("actor %s may not create policies", actor.Identity)
		return policy, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized)
	}

	holder := input.PolicyHolder.Canonical()
	if !holder.IsValid() {
		err := fmt.Errorf("invalid policy holder identity %q", input.PolicyHolder)
		return policy, api.NewAppError(err, api.ErrorPolicyInvalidHolder, api.CategoryUser)
	}

	if input.DurationInDays <= 0 {
		err := fmt.Errorf("policy duration must be positive, got %d", input.DurationInDays)
		return policy, api.NewAppError(err, api.ErrorPolicyInvalidDuration, api.CategoryUser)
	}

	if input.Premium < 0 {
		err := fmt.Errorf("policy premium must not be negative, got %s", input.Premium)
		return policy, api.NewAppError(err, api.ErrorPolicyNegativePremium, api.CategoryUser)
	}

	if input.CoverageAmount < 0 {
		err := fmt.Errorf("policy coverage must not be negative, got %s", input.CoverageAmount)
		return policy, api.NewAppError(err, api.ErrorPolicyNegativeCoverage, api.CategoryUser)
	}

	number, err := nextID(tx, CounterPolicies)
	if err != nil {
		return policy, err
	}

	now := time.Now().UTC()
	policy = Policy{
		Number:         number,
		PolicyHolder:   holder,
		Premium:        input.Premium,
		CoverageAmount: input.CoverageAmount,
		StartDate:      now,
		EndDate:        now.Add(time.Duration(input.DurationInDays) * domain.DurationDay),
		Active:         true,
	}

	if err := create(tx, &policy); err != nil {
		return policy, err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiPolicyCreated,
		Message: fmt.Sprintf("Policy %d created", policy.Number),
		Payload: events.Payload{domain.EventPayloadID: policy.Number},
	})

	return policy, nil
}

func (p *Policy) GetID() uuid.UUID {
	return p.ID
}

// FindByNumber loads the policy with the given public id
func (p *Policy) FindByNumber(tx *pop.Connection, number int) error {
	err := tx.Where("number = ?", number).First(p)
	if err != nil {
		if domain.IsOtherThanNoRows(err) {
			return appErrorFromDB(err, api.ErrorQueryFailure)
		}
		return api.NewAppError(
			fmt.Errorf("policy %d not found: %w", number, err),
			api.ErrorPolicyNotFound, api.CategoryNotFound)
	}
	return nil
}

// IsActive reports whether the policy is in force at the given time. The
// stored flag is an optimization maintained by the expiry job; the end date is
// authoritative.
func (p *Policy) IsActive(t time.Time) bool {
	return p.Active && t.Before(p.EndDate)
}

// AddClaim submits a claim against this policy. Only the policyholder may
// submit, matched case-insensitively. The claim amount is deliberately not
// checked against remaining coverage here; that check happens at payment.
func (p *Policy) AddClaim(tx *pop.Connection, actor Actor, input api.ClaimCreateInput) (Claim, error) {
	var claim Claim

	if !actor.Is(p.PolicyHolder) {
		err := fmt.Errorf("actor %s is not the holder of policy %d", actor.Identity, p.Number)
		return claim, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized)
	}

	if input.Description == "" {
		err := fmt.Errorf("claim on policy %d has no description", p.Number)
		return claim, api.NewAppError(err, api.ErrorClaimEmptyDescription, api.CategoryUser)
	}

	if input.Amount < 0 {
		err := fmt.Errorf("claim amount must not be negative, got %s", input.Amount)
		return claim, api.NewAppError(err, api.ErrorClaimNegativeAmount, api.CategoryUser)
	}

	number, err := nextID(tx, CounterClaims)
	if err != nil {
		return claim, err
	}

	claim = Claim{
		Number:        number,
		PolicyID:      p.ID,
		PolicyNumber:  p.Number,
		Description:   input.Description,
		Amount:        input.Amount,
		Status:        api.ClaimStatusPending,
		DateSubmitted: time.Now().UTC(),
	}

	if err := create(tx, &claim); err != nil {
		return claim, err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimCreated,
		Message: fmt.Sprintf("Claim %d submitted on policy %d", claim.Number, p.Number),
		Payload: events.Payload{domain.EventPayloadID: claim.Number},
	})

	return claim, nil
}

// LoadClaims hydrates p.Claims in ascending claim-number order
func (p *Policy) LoadClaims(tx *pop.Connection) error {
	err := tx.Where("policy_id = ?", p.ID).Order("number asc").All(&p.Claims)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// AllVisible loads the policies the actor may see: all of them for the
// insurer, otherwise only policies held by the actor.
func (ps *Policies) AllVisible(tx *pop.Connection, actor Actor) error {
	q := tx.Order("number asc")
	if !actor.IsInsurer() {
		q = q.Where("policy_holder = ?", actor.Identity)
	}
	err := q.All(ps)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// InactivateExpired clears the active flag on policies past their end date.
// Returns the number of policies inactivated.
func InactivateExpired(tx *pop.Connection) (int, error) {
	count, err := tx.RawQuery(
		"UPDATE policies SET active = false, updated_at = now() WHERE active AND end_date <= now()").
		ExecWithCount()
	if err != nil {
		return 0, appErrorFromDB(err, api.ErrorUpdateFailure)
	}
	return count, nil
}

func (p *Policy) ConvertToAPI() api.Policy {
	return api.Policy{
		ID:             p.Number,
		PolicyHolder:   p.PolicyHolder,
		Premium:        p.Premium,
		CoverageAmount: p.CoverageAmount,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Active:         p.IsActive(time.Now().UTC()),
	}
}

func (ps *Policies) ConvertToAPI() api.Policies {
	policies := make(api.Policies, len(*ps))
	for i, p := range *ps {
		policies[i] = p.ConvertToAPI()
	}
	return policies
}

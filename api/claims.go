package api

import (
	"fmt"
	"time"
)

type ClaimStatus string

const (
	ClaimStatusPending  = ClaimStatus("Pending")
	ClaimStatusApproved = ClaimStatus("Approved")
	ClaimStatusRejected = ClaimStatus("Rejected")
	ClaimStatusPaid     = ClaimStatus("Paid")
)

// Label returns the display text for a claim status. The mapping is total over
// the defined statuses; any other value is a defect and panics rather than
// silently defaulting.
func (s ClaimStatus) Label() string {
	switch s {
	case ClaimStatusPending:
		return "Pending"
	case ClaimStatusApproved:
		return "Approved"
	case ClaimStatusRejected:
		return "Rejected"
	case ClaimStatusPaid:
		return "Paid"
	}
	panic(fmt.Sprintf("unrecognized claim status %q", string(s)))
}

type Claims []Claim

type Claim struct {
	ID            int         `json:"id"`
	PolicyID      int         `json:"policy_id"`
	Description   string      `json:"description"`
	Amount        Currency    `json:"amount"`
	Status        ClaimStatus `json:"status"`
	StatusLabel   string      `json:"status_label"`
	DateSubmitted time.Time   `json:"date_submitted"`
}

type ClaimCreateInput struct {
	Description string   `json:"description"`
	Amount      Currency `json:"amount"`
}

type ClaimReviewInput struct {
	Approve bool `json:"approve"`
}

type ClaimPayInput struct {
	// SuppliedFunds is an optional amount credited to the custody balance
	// atomically with the payment, mirroring value sent along with the call
	SuppliedFunds Currency `json:"supplied_funds"`
}

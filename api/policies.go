package api

import "time"

type Policies []Policy

type Policy struct {
	ID             int       `json:"id"`
	PolicyHolder   Identity  `json:"policy_holder"`
	Premium        Currency  `json:"premium"`
	CoverageAmount Currency  `json:"coverage_amount"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Active         bool      `json:"active"`
}

type PolicyCreateInput struct {
	PolicyHolder   Identity `json:"policy_holder"`
	Premium        Currency `json:"premium"`
	CoverageAmount Currency `json:"coverage_amount"`
	DurationInDays int      `json:"duration_in_days"`
}

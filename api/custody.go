package api

import (
	"time"

	"github.com/gofrs/uuid"
)

type LedgerEntryType string

const (
	LedgerEntryTypeFund   = LedgerEntryType("Fund")
	LedgerEntryTypePayout = LedgerEntryType("Payout")
)

type CustodyBalance struct {
	Balance Currency `json:"balance"`
}

type CustodyFundInput struct {
	Amount Currency `json:"amount"`
}

type LedgerEntries []LedgerEntry

type LedgerEntry struct {
	ID      uuid.UUID       `json:"id"`
	Type    LedgerEntryType `json:"type"`
	Amount  Currency        `json:"amount"`
	ClaimID *int            `json:"claim_id,omitempty"`
	Date    time.Time       `json:"date"`
}

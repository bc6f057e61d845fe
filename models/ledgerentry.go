package models

import (
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/openinsure/custody-api/api"
)

type LedgerEntries []LedgerEntry

// LedgerEntry is an immutable journal row for a custody balance movement.
// Claim linkage is denormalized to the public claim number so the journal
// remains readable on its own.
type LedgerEntry struct {
	ID            uuid.UUID           `db:"id"`
	Type          api.LedgerEntryType `db:"type" validate:"ledgerEntryType"`
	Amount        api.Currency        `db:"amount" validate:"min=0"`
	ClaimID       nulls.UUID          `db:"claim_id"`
	ClaimNumber   nulls.Int           `db:"claim_number"`
	DateSubmitted time.Time           `db:"date_submitted"`
	CreatedAt     time.Time           `db:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (le *LedgerEntry) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(le), nil
}

// NewLedgerEntry builds a journal row for a balance movement. claim may be
// nil for movements not tied to a claim, such as external funding.
func NewLedgerEntry(entryType api.LedgerEntryType, amount api.Currency, claim *Claim) LedgerEntry {
	entry := LedgerEntry{
		Type:          entryType,
		Amount:        amount,
		DateSubmitted: time.Now().UTC(),
	}
	if claim != nil {
		entry.ClaimID = nulls.NewUUID(claim.ID)
		entry.ClaimNumber = nulls.NewInt(claim.Number)
	}
	return entry
}

func (le *LedgerEntry) Create(tx *pop.Connection) error {
	return create(tx, le)
}

// AllByDate loads all entries in submission order, oldest first
func (le *LedgerEntries) AllByDate(tx *pop.Connection) error {
	err := tx.Order("date_submitted asc, created_at asc").All(le)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

func (le *LedgerEntry) ConvertToAPI() api.LedgerEntry {
	out := api.LedgerEntry{
		ID:     le.ID,
		Type:   le.Type,
		Amount: le.Amount,
		Date:   le.DateSubmitted,
	}
	if le.ClaimNumber.Valid {
		n := le.ClaimNumber.Int
		out.ClaimID = &n
	}
	return out
}

func (le *LedgerEntries) ConvertToAPI() api.LedgerEntries {
	entries := make(api.LedgerEntries, len(*le))
	for i, e := range *le {
		entries[i] = e.ConvertToAPI()
	}
	return entries
}

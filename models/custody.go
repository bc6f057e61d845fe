package models

import (
	"fmt"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/pop/v6"

	"github.com/openinsure/custody-api/api"
	"github.com/openinsure/custody-api/domain"
)

// custodyAccountID is the single custody account row. The ledger holds one
// pool of funds; per-policy accounting lives in the ledger entries.
const custodyAccountID = 1

// CustodyAccount holds the funds available to satisfy approved claim
// payments. The balance never goes negative: every debit is guarded while the
// row is locked.
type CustodyAccount struct {
	ID        int          `db:"id"`
	Balance   api.Currency `db:"balance"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

// Find loads the custody account without locking, for read-only views
func (a *CustodyAccount) Find(tx *pop.Connection) error {
	err := tx.Find(a, custodyAccountID)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// FindForUpdate loads the custody account and locks its row for the rest of
// the transaction, serializing concurrent balance movements.
func (a *CustodyAccount) FindForUpdate(tx *pop.Connection) error {
	err := tx.RawQuery(
		"SELECT id, balance, created_at, updated_at FROM custody_accounts WHERE id = ? FOR UPDATE",
		custodyAccountID).First(a)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// Credit adds funds to the balance and journals the movement. Caller must
// hold the row lock via FindForUpdate.
func (a *CustodyAccount) Credit(tx *pop.Connection, amount api.Currency, claim *Claim) error {
	if amount <= 0 {
		err := fmt.Errorf("credit amount must be positive, got %s", amount)
		return api.NewAppError(err, api.ErrorCustodyInvalidAmount, api.CategoryUser)
	}

	a.Balance += amount
	if err := update(tx, a); err != nil {
		return err
	}

	entry := NewLedgerEntry(api.LedgerEntryTypeFund, amount, claim)
	return entry.Create(tx)
}

// Debit removes funds from the balance and journals the movement, failing
// without mutation when the balance cannot cover the amount. Caller must hold
// the row lock via FindForUpdate.
func (a *CustodyAccount) Debit(tx *pop.Connection, amount api.Currency, claim *Claim) error {
	if amount < 0 {
		err := fmt.Errorf("debit amount must not be negative, got %s", amount)
		return api.NewAppError(err, api.ErrorCustodyInvalidAmount, api.CategoryUser)
	}

	if a.Balance < amount {
		err := fmt.Errorf("custody balance %s cannot cover %s", a.Balance, amount)
		return api.NewAppError(err, api.ErrorCustodyInsufficientFunds, api.CategoryUser)
	}

	a.Balance -= amount
	if err := update(tx, a); err != nil {
		return err
	}

	entry := NewLedgerEntry(api.LedgerEntryTypePayout, amount, claim)
	return entry.Create(tx)
}

// FundCustody credits the custody balance from an external funding source.
// Only the insurer may fund.
func FundCustody(tx *pop.Connection, actor Actor, amount api.Currency) (CustodyAccount, error) {
	var account CustodyAccount

	if !actor.IsInsurer() {
		err := fmt.Errorf("actor %s may not fund the custody balance", actor.Identity)
		return account, api.NewAppError(err, api.ErrorNotAuthorized, api.CategoryUnauthorized)
	}

	if err := account.FindForUpdate(tx); err != nil {
		return account, err
	}

	if err := account.Credit(tx, amount, nil); err != nil {
		return account, err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiCustodyFunded,
		Message: fmt.Sprintf("Custody balance funded with %s", amount),
	})

	return account, nil
}

func (a *CustodyAccount) ConvertToAPI() api.CustodyBalance {
	return api.CustodyBalance{Balance: a.Balance}
}

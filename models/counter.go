package models

import (
	"fmt"

	"github.com/gobuffalo/pop/v6"

	"github.com/openinsure/custody-api/api"
)

const (
	CounterPolicies = "policies"
	CounterClaims   = "claims"
)

// Counter is a named, gap-free sequence. Record ids come from here rather than
// a serial column: the increment happens inside the caller's transaction, so a
// rolled-back create releases its id back and the sequence stays 1..N with no
// holes. Concurrent allocations serialize on the row lock taken by UPDATE.
type Counter struct {
	Name  string `db:"name"`
	Value int    `db:"value"`
}

// nextID increments the named counter and returns the new value
func nextID(tx *pop.Connection, name string) (int, error) {
	var c Counter
	err := tx.RawQuery(
		"UPDATE counters SET value = value + 1, updated_at = now() WHERE name = ? RETURNING name, value",
		name).First(&c)
	if err != nil {
		return 0, api.NewAppError(
			fmt.Errorf("error incrementing %s counter: %w", name, err),
			api.ErrorQueryFailure, api.CategoryInternal)
	}
	return c.Value, nil
}

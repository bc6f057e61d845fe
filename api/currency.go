package api

import "fmt"

// CurrencyFactor is the number of minor units in one major unit
const CurrencyFactor = 100

// Currency is an exact fixed-point amount in minor units. Amounts cross every
// boundary in this form and are converted to decimal text only for display.
type Currency int64

// String formats the amount as a decimal in major units, e.g. 1234 => "12.34"
func (c Currency) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/CurrencyFactor, c%CurrencyFactor)
}

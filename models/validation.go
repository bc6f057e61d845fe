package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/validate/v3"

	"github.com/openinsure/custody-api/api"
)

// Model validation tool
var mValidate *validator.Validate

var fieldValidators = map[string]func(validator.FieldLevel) bool{
	"claimStatus":     validateClaimStatus,
	"identity":        validateIdentity,
	"ledgerEntryType": validateLedgerEntryType,
}

var ValidClaimStatus = map[api.ClaimStatus]struct{}{
	api.ClaimStatusPending:  {},
	api.ClaimStatusApproved: {},
	api.ClaimStatusRejected: {},
	api.ClaimStatusPaid:     {},
}

var ValidLedgerEntryTypes = map[api.LedgerEntryType]struct{}{
	api.LedgerEntryTypeFund:   {},
	api.LedgerEntryTypePayout: {},
}

func validateModel(m any) *validate.Errors {
	vErrs := validate.NewErrors()

	if err := mValidate.Struct(m); err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			vErrs.Add(err.StructNamespace(), err.Error())
		}
	}
	return vErrs
}

// flattenPopErrors - pop validation errors are complex structures, this flattens them to a simple string
func flattenPopErrors(popErrs *validate.Errors) string {
	var msgs []string
	for key, val := range popErrs.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", key, strings.Join(val, ", ")))
	}
	return strings.Join(msgs, " |")
}

func validateClaimStatus(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ClaimStatus); ok {
		_, valid := ValidClaimStatus[value]
		return valid
	}
	return false
}

func validateIdentity(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.Identity); ok {
		return value.IsValid()
	}
	return false
}

func validateLedgerEntryType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.LedgerEntryType); ok {
		_, valid := ValidLedgerEntryTypes[value]
		return valid
	}
	return false
}

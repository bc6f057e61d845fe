package api

import (
	"regexp"
	"strings"
)

// identityPattern is the address-like form of an identity reference
var identityPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

// Identity is an opaque address-like reference to an external identity. It is
// not required to be pre-registered; comparison is case-insensitive, so all
// identities are canonicalized before storage or matching.
type Identity string

// Canonical returns the normalized form used for comparison and as a storage key
func (i Identity) Canonical() Identity {
	return Identity(strings.ToLower(strings.TrimSpace(string(i))))
}

// IsValid reports whether the canonical form is syntactically an identity reference
func (i Identity) IsValid() bool {
	return identityPattern.MatchString(string(i.Canonical()))
}

func (i Identity) String() string {
	return string(i)
}

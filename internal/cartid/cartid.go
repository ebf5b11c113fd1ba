// Package cartid parses the composite ids the storefront cart assigns to
// line items. The cart encodes identity as "::"-separated segments so that
// the same catalog book can appear in multiple independent bundles:
//
//	<baseId>                              plain catalog id
//	<baseId>::book::<uuid>                one book bundle
//	<baseId>::book::<uuid>::gift::<gid>   the gift line attached to that bundle
//
// All BaseId derivation in the service goes through this package so the
// normalizer and the grouping engine can never disagree on it.
package cartid

import "strings"

// Roles a composite id segment can carry.
const (
	RoleBook = "book"
	RoleGift = "gift"
)

// Parsed is the structured form of a composite cart id.
type Parsed struct {
	BaseID     string
	Role       string // innermost role suffix, "" when the id has none
	InstanceID string // instance segment paired with Role
}

// Parse splits a composite cart id into its base identity and role suffix.
// Ids without a "::" separator parse to just a BaseID. For nested ids the
// innermost role wins, so a gift id reports RoleGift.
func Parse(id string) Parsed {
	parts := strings.Split(id, "::")
	p := Parsed{BaseID: parts[0]}

	for i := 1; i+1 < len(parts); i += 2 {
		p.Role = parts[i]
		p.InstanceID = parts[i+1]
	}

	return p
}

// BaseID returns the catalog-identity portion of a composite cart id.
func BaseID(id string) string {
	before, _, _ := strings.Cut(id, "::")
	return before
}

// NumericBase reports whether the base id is purely numeric. Catalog book
// ids are numeric; accessory and gift catalog ids are not.
func (p Parsed) NumericBase() bool {
	if p.BaseID == "" {
		return false
	}
	for _, r := range p.BaseID {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

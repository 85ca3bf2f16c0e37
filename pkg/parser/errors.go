package parser

import "fmt"

// UnitNotFoundError is returned by a Loader when a `uses`-clause name does
// not resolve to a file on the configured search path. UsesClause switches
// on this type (via errors.As) to decide whether the miss is a silent-ish
// warning (a documented unit, spec.md §7.1/§7.2) or a hard error.
type UnitNotFoundError struct {
	Name string
}

func (e *UnitNotFoundError) Error() string {
	return fmt.Sprintf("unit %q not found on search path", e.Name)
}

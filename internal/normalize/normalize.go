// Package normalize canonicalises player names for lookups.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Trim returns the display form of a name: NFC, surrounding space removed
// and inner whitespace collapsed.
func Trim(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

// Name returns the lookup key of a name. Names that differ only in case or
// spacing share a key.
func Name(name string) string {
	return cases.Fold().String(Trim(name))
}

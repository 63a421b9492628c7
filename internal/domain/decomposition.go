package domain

import (
	"fmt"
	"slices"
)

// Decomposition is one resolved KRADFILE line: a kanji and the radicals it
// is built from, in declaration order. Duplicated radicals are kept.
type Decomposition struct {
	Kanji    string
	Radicals []string
}

// Validate checks the invariants every stored decomposition must satisfy.
func (d Decomposition) Validate() error {
	var errs []FieldError
	if d.Kanji == "" {
		errs = append(errs, FieldError{Field: "kanji", Message: "required"})
	}
	if len(d.Radicals) == 0 {
		errs = append(errs, FieldError{Field: "radicals", Message: "at least one required"})
	}
	for i, r := range d.Radicals {
		if r == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("radicals[%d]", i), Message: "empty"})
		}
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// HasRadical reports whether r is one of the decomposition's radicals.
func (d Decomposition) HasRadical(r string) bool {
	return slices.Contains(d.Radicals, r)
}

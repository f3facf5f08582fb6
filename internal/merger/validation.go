// internal/merger/validation.go
package merger

import (
	"fmt"

	"github.com/andrecollier/website-builder-sub004/internal/models"
)

// ValidationResult accumulates every problem found instead of stopping at
// the first, so callers can report the full list.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors,omitempty"`
}

// ValidateReferenceExists reports whether id resolves to a reference.
func ValidateReferenceExists(refs []*models.Reference, id string) bool {
	return models.FindReference(refs, id) != nil
}

// ValidateReferencesReady checks that every reference is ready with tokens
// attached. Failing references are named individually.
func ValidateReferencesReady(refs []*models.Reference) ValidationResult {
	var errs []string
	for _, ref := range refs {
		if ref == nil {
			errs = append(errs, "nil reference in list")
			continue
		}
		if ref.Status != models.StatusReady {
			errs = append(errs, fmt.Sprintf("%s: status is %s", ref.ID, ref.Status))
		}
		if ref.Tokens == nil {
			errs = append(errs, fmt.Sprintf("%s: no tokens", ref.ID))
		}
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateStrategy checks a merge strategy for structural problems: an
// empty or unresolvable base, and overrides with missing or unresolvable
// reference ids or empty paths.
func ValidateStrategy(strategy models.MergeStrategy, refs []*models.Reference) ValidationResult {
	var errs []string

	if strategy.Base == "" {
		errs = append(errs, "strategy base is empty")
	} else if !ValidateReferenceExists(refs, strategy.Base) {
		errs = append(errs, fmt.Sprintf("base reference %q does not resolve", strategy.Base))
	}

	for i, o := range strategy.Overrides {
		if o.ReferenceID == "" {
			errs = append(errs, fmt.Sprintf("override %d: referenceId is empty", i))
		} else if !ValidateReferenceExists(refs, o.ReferenceID) {
			errs = append(errs, fmt.Sprintf("override %d: reference %q does not resolve", i, o.ReferenceID))
		}
		if o.Path == "" {
			errs = append(errs, fmt.Sprintf("override %d: path is empty", i))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

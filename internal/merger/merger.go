// internal/merger/merger.go

// Package merger combines N design-token sets into one using a declarative
// base + path-override strategy. Structural problems surface as errors;
// recoverable per-override failures are reported in the result so callers
// can show partial outcomes.
package merger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andrecollier/website-builder-sub004/internal/models"
	"github.com/andrecollier/website-builder-sub004/internal/tokentree"
)

var (
	ErrStrategyInvalid   = errors.New("MERGE_STRATEGY_INVALID")
	ErrBaseTokensMissing = errors.New("BASE_TOKENS_MISSING")
	ErrReferenceNotReady = errors.New("REFERENCE_NOT_READY")
	ErrOverrideFailed    = errors.New("OVERRIDE_FAILED")
)

// Options controls merge behavior. In strict mode any non-ready reference
// or failed override aborts the merge; otherwise failures accumulate as
// warnings and the merge continues with whatever is resolvable.
type Options struct {
	Strict    bool
	Timestamp time.Time
}

// Input bundles the references and strategy for one merge call.
type Input struct {
	References []*models.Reference  `json:"references"`
	Strategy   models.MergeStrategy `json:"strategy"`
}

// Result carries the merged design system plus the audit trail of which
// override paths applied and which failed.
type Result struct {
	DesignSystem     *models.DesignSystem `json:"designSystem"`
	AppliedOverrides []string             `json:"appliedOverrides"`
	FailedOverrides  []string             `json:"failedOverrides"`
	Warnings         []string             `json:"warnings"`
}

// ApplyOverride resolves the replacement value — either the override's
// explicit value, or the value at the override's path inside its source
// reference's tokens — and writes it into tree. The tree is not mutated
// on failure.
func ApplyOverride(tree map[string]interface{}, o models.TokenOverride, refs []*models.Reference) error {
	source := models.FindReference(refs, o.ReferenceID)
	if source == nil {
		return fmt.Errorf("override source reference %q not found", o.ReferenceID)
	}

	segments := tokentree.ParsePath(o.Path)
	if len(segments) == 0 {
		return fmt.Errorf("override path %q is empty", o.Path)
	}

	value := o.Value
	if value == nil {
		if source.Tokens == nil {
			return fmt.Errorf("reference %q has no tokens to read %q from", o.ReferenceID, o.Path)
		}
		sourceTree, err := source.Tokens.ToTree()
		if err != nil {
			return fmt.Errorf("reference %q tokens unreadable: %w", o.ReferenceID, err)
		}
		resolved, ok := tokentree.Get(sourceTree, segments)
		if !ok {
			return fmt.Errorf("path %q is not defined in reference %q", o.Path, o.ReferenceID)
		}
		value = resolved
	}

	tokentree.Set(tree, segments, tokentree.Clone(value))
	return nil
}

// MergeTokens produces one design system from the strategy's base reference
// plus its overrides, applied in array order against a fresh clone.
func MergeTokens(input Input, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	if v := ValidateStrategy(input.Strategy, input.References); !v.IsValid {
		return nil, fmt.Errorf("%w: %s", ErrStrategyInvalid, strings.Join(v.Errors, "; "))
	}

	base := models.FindReference(input.References, input.Strategy.Base)
	if base.Tokens == nil {
		return nil, fmt.Errorf("%w: base reference %q has no tokens", ErrBaseTokensMissing, base.ID)
	}

	result := &Result{
		AppliedOverrides: []string{},
		FailedOverrides:  []string{},
		Warnings:         []string{},
	}

	// Readiness covers the base and every override source.
	if v := ValidateReferencesReady(referencedBy(input)); !v.IsValid {
		if opts.Strict {
			return nil, fmt.Errorf("%w: %s", ErrReferenceNotReady, strings.Join(v.Errors, "; "))
		}
		for _, e := range v.Errors {
			result.Warnings = append(result.Warnings, "reference not ready: "+e)
		}
	}

	tree, err := base.Tokens.ToTree()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBaseTokensMissing, err)
	}

	contributors := []string{}
	seen := map[string]bool{}
	for _, o := range input.Strategy.Overrides {
		if err := ApplyOverride(tree, o, input.References); err != nil {
			if opts.Strict {
				return nil, fmt.Errorf("%w: %v", ErrOverrideFailed, err)
			}
			result.FailedOverrides = append(result.FailedOverrides, o.Path)
			result.Warnings = append(result.Warnings, fmt.Sprintf("override %q skipped: %v", o.Path, err))
			continue
		}
		result.AppliedOverrides = append(result.AppliedOverrides, o.Path)
		if o.ReferenceID != base.ID && !seen[o.ReferenceID] {
			seen[o.ReferenceID] = true
			contributors = append(contributors, o.ReferenceID)
		}
	}

	ts := opts.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	tokentree.Set(tree, []string{"meta", "sourceUrl"}, provenanceURL(base.ID, contributors))
	tokentree.Set(tree, []string{"meta", "extractedAt"}, ts.UTC().Format(time.RFC3339Nano))

	merged, err := models.DesignSystemFromTree(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: merged tree invalid: %v", ErrOverrideFailed, err)
	}
	result.DesignSystem = merged

	return result, nil
}

// MergeTokensFromMap converts an id-keyed reference map into a slice and
// delegates to MergeTokens. Map iteration order is normalized by id so the
// call is deterministic.
func MergeTokensFromMap(refs map[string]*models.Reference, strategy models.MergeStrategy, opts *Options) (*Result, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no references supplied", ErrStrategyInvalid)
	}

	list := make([]*models.Reference, 0, len(refs))
	for _, r := range refs {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	return MergeTokens(Input{References: list, Strategy: strategy}, opts)
}

// referencedBy returns the base plus every override source, de-duplicated,
// in first-reference order.
func referencedBy(input Input) []*models.Reference {
	var out []*models.Reference
	seen := map[string]bool{}

	add := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		if ref := models.FindReference(input.References, id); ref != nil {
			out = append(out, ref)
		}
	}

	add(input.Strategy.Base)
	for _, o := range input.Strategy.Overrides {
		add(o.ReferenceID)
	}
	return out
}

// provenanceURL builds a human-readable origin for a merged design system,
// e.g. merged://site-a+site-b,site-c.
func provenanceURL(baseID string, contributors []string) string {
	if len(contributors) == 0 {
		return "merged://" + baseID
	}
	return "merged://" + baseID + "+" + strings.Join(contributors, ",")
}

// internal/harmony/sections.go
package harmony

import (
	"sort"
	"strconv"

	"github.com/andrecollier/website-builder-sub004/internal/models"
)

// canonicalSectionOrder fixes the reporting order of page sections.
// Section types outside this list are appended alphabetically.
var canonicalSectionOrder = []string{
	"header", "hero", "features", "content", "testimonials",
	"pricing", "gallery", "cta", "faq", "footer",
}

var canonicalSectionRank = func() map[string]int {
	ranks := make(map[string]int, len(canonicalSectionOrder))
	for i, s := range canonicalSectionOrder {
		ranks[s] = i
	}
	return ranks
}()

// orderSections sorts section-type keys canonically, unknown types last in
// alphabetical order. Deterministic for any input map.
func orderSections(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Slice(out, func(i, j int) bool {
		ri, iKnown := canonicalSectionRank[out[i]]
		rj, jKnown := canonicalSectionRank[out[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// SectionsAnalyzed lists the section types present in a mapping, in
// canonical order. Nil or empty mappings yield an empty slice.
func SectionsAnalyzed(mapping models.SectionMapping) []string {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	return orderSections(keys)
}

// resolveMappingValue turns one section-mapping value into a reference:
// first as a direct reference id, then, if it parses as an in-range
// integer, as an index into the list. Nil when unresolvable.
func resolveMappingValue(value string, all []*models.Reference) *models.Reference {
	if value == "" {
		return nil
	}
	if ref := models.FindReference(all, value); ref != nil {
		return ref
	}
	if idx, err := strconv.Atoi(value); err == nil && idx >= 0 && idx < len(all) {
		return all[idx]
	}
	return nil
}

// UsedReferences resolves every assigned section to its reference,
// silently skipping unassigned or unresolvable entries, and de-duplicates
// by reference id. Result order follows the canonical section order.
func UsedReferences(mapping models.SectionMapping, all []*models.Reference) []*models.Reference {
	used := []*models.Reference{}
	seen := map[string]bool{}
	for _, section := range SectionsAnalyzed(mapping) {
		ref := resolveMappingValue(mapping[section], all)
		if ref == nil || seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		used = append(used, ref)
	}
	return used
}

// assignedSections inverts a mapping into referenceID -> ordered sections.
func assignedSections(mapping models.SectionMapping, all []*models.Reference) map[string][]string {
	out := map[string][]string{}
	for _, section := range SectionsAnalyzed(mapping) {
		ref := resolveMappingValue(mapping[section], all)
		if ref == nil {
			continue
		}
		out[ref.ID] = append(out[ref.ID], section)
	}
	return out
}

// affectedSections merges the sections assigned to two references, in
// canonical order.
func affectedSections(assigned map[string][]string, a, b string) []string {
	sections := append([]string{}, assigned[a]...)
	sections = append(sections, assigned[b]...)
	if len(sections) == 0 {
		return nil
	}
	return orderSections(sections)
}

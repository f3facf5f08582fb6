// internal/merger/strategy.go
package merger

import "github.com/andrecollier/website-builder-sub004/internal/models"

// CategorySources names, per top-level token category, the reference that
// should supply it. Empty fields are left to the base.
type CategorySources struct {
	Colors     string `json:"colors,omitempty"`
	Typography string `json:"typography,omitempty"`
	Spacing    string `json:"spacing,omitempty"`
	Effects    string `json:"effects,omitempty"`
}

// NewSimpleStrategy builds a strategy with one whole-category override per
// supplied source. Values are left unset so they resolve from the named
// reference's tokens at merge time.
func NewSimpleStrategy(base string, sources CategorySources) models.MergeStrategy {
	strategy := models.MergeStrategy{Base: base, Overrides: []models.TokenOverride{}}

	categories := []struct {
		path string
		ref  string
	}{
		{"colors", sources.Colors},
		{"typography", sources.Typography},
		{"spacing", sources.Spacing},
		{"effects", sources.Effects},
	}

	for _, c := range categories {
		if c.ref == "" {
			continue
		}
		strategy.Overrides = append(strategy.Overrides, models.TokenOverride{
			ReferenceID: c.ref,
			Path:        c.path,
		})
	}

	return strategy
}

// internal/harmony/harmony.go

// Package harmony scores how visually compatible N reference design
// systems are, across color, typography and spacing, and explains why
// they clash. The checker never errors: any input yields a renderable
// result.
package harmony

import (
	"math"

	"github.com/andrecollier/website-builder-sub004/internal/models"
)

// Checker is a stateless harmony engine bound to one config. Safe for
// concurrent use.
type Checker struct {
	cfg Config
}

func New(cfg Config) *Checker {
	return &Checker{cfg: cfg}
}

func NewDefault() *Checker {
	return New(DefaultConfig)
}

// Config returns the checker's effective configuration.
func (c *Checker) Config() Config {
	return c.cfg
}

// CanCalculate reports whether a harmony score is meaningful: at least two
// references, all ready with tokens, each carrying color data.
func CanCalculate(refs []*models.Reference) bool {
	if len(refs) < 2 {
		return false
	}
	for _, r := range refs {
		if !r.IsReady() || !hasColors(r.Tokens.Colors) {
			return false
		}
	}
	return true
}

func hasColors(c models.Colors) bool {
	return len(c.Primary) > 0 || len(c.Secondary) > 0 || len(c.Neutral) > 0 || len(c.Palettes) > 0
}

// Calculate produces the full compatibility report for the given
// references, optionally attributing issues to page sections through the
// mapping. Non-ready references are skipped rather than failing the
// analysis. It never mutates its inputs and never panics.
func (c *Checker) Calculate(refs []*models.Reference, mapping models.SectionMapping, opts *CheckOptions) *models.HarmonyResult {
	usable := usableReferences(refs)

	result := &models.HarmonyResult{
		Issues:             []models.HarmonyIssue{},
		Suggestions:        []string{},
		ReferencesAnalyzed: referenceIDs(usable),
		SectionsAnalyzed:   SectionsAnalyzed(mapping),
	}

	switch len(usable) {
	case 0:
		result.Issues = append(result.Issues, models.HarmonyIssue{
			Type:        models.IssueInsufficientInput,
			Severity:    models.SeverityHigh,
			Description: "no ready references to analyze",
		})
		return result
	case 1:
		result.Issues = append(result.Issues, models.HarmonyIssue{
			Type:        models.IssueInsufficientInput,
			Severity:    models.SeverityMedium,
			Description: "at least two ready references are required for a comparison",
		})
		return result
	}

	assigned := assignedSections(mapping, usable)

	colorScore, colorIssues := c.scoreColors(usable, assigned)
	typographyScore, typographyIssues := c.scoreTypography(usable, assigned)
	spacingScore, spacingIssues := c.scoreSpacing(usable, assigned)

	result.Issues = append(result.Issues, colorIssues...)
	result.Issues = append(result.Issues, typographyIssues...)
	result.Issues = append(result.Issues, spacingIssues...)

	w := c.weights(opts)
	overall := roundScore(math.Round(
		float64(colorScore)*w.Color +
			float64(typographyScore)*w.Typography +
			float64(spacingScore)*w.Spacing))

	result.Breakdown = models.HarmonyBreakdown{
		Color:      colorScore,
		Typography: typographyScore,
		Spacing:    spacingScore,
		Overall:    overall,
	}
	result.Score = overall
	result.Suggestions = c.suggestions(result.Breakdown, opts)

	return result
}

// Score is shorthand for Calculate(...).Score.
func (c *Checker) Score(refs []*models.Reference, mapping models.SectionMapping, opts *CheckOptions) int {
	return c.Calculate(refs, mapping, opts).Score
}

// MeetsThreshold reports whether the overall score reaches threshold.
func (c *Checker) MeetsThreshold(refs []*models.Reference, threshold int, mapping models.SectionMapping, opts *CheckOptions) bool {
	return c.Score(refs, mapping, opts) >= threshold
}

func (c *Checker) suggestions(b models.HarmonyBreakdown, opts *CheckOptions) []string {
	var colorT, typographyT, spacingT *float64
	if opts != nil {
		colorT, typographyT, spacingT = opts.ColorThreshold, opts.TypographyThreshold, opts.SpacingThreshold
	}

	out := []string{}
	if float64(b.Color) < c.dimensionThreshold(colorT) {
		out = append(out, "Adjust the primary palettes toward a shared hue range, or pick sources with closer brand colors")
	}
	if float64(b.Typography) < c.dimensionThreshold(typographyT) {
		out = append(out, "Unify heading and body font families, or bring the type scales closer together")
	}
	if float64(b.Spacing) < c.dimensionThreshold(spacingT) {
		out = append(out, "Align spacing base units and scales so sections keep a consistent rhythm")
	}

	switch {
	case b.Overall < c.cfg.Thresholds.Low:
		out = append(out, "These sources are unlikely to combine well; consider a different combination of references")
	case b.Overall >= c.cfg.Thresholds.High:
		out = append(out, "These sources work well together")
	}
	return out
}

// usableReferences keeps only references the scorers can read: ready
// with tokens attached.
func usableReferences(refs []*models.Reference) []*models.Reference {
	out := make([]*models.Reference, 0, len(refs))
	for _, r := range refs {
		if r.IsReady() {
			out = append(out, r)
		}
	}
	return out
}

func referenceIDs(refs []*models.Reference) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		if r != nil {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

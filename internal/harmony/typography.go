// internal/harmony/typography.go
package harmony

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrecollier/website-builder-sub004/internal/models"
)

func fontsEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// scaleDeviation is the mean relative deviation between two type scales
// over their shared keys. The second return is false when the scales share
// no keys (no signal).
func scaleDeviation(a, b map[string]float64) (float64, bool) {
	var sum float64
	n := 0
	for _, key := range models.ScaleKeys {
		va, okA := a[key]
		vb, okB := b[key]
		if !okA || !okB || (va == 0 && vb == 0) {
			continue
		}
		sum += relativeDeviation(va, vb)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func relativeDeviation(a, b float64) float64 {
	m := math.Max(math.Abs(a), math.Abs(b))
	if m == 0 {
		return 0
	}
	return math.Abs(a-b) / m
}

// scoreTypography rates font-family agreement and type-scale closeness
// across every unordered pair of references.
func (c *Checker) scoreTypography(refs []*models.Reference, assigned map[string][]string) (int, []models.HarmonyIssue) {
	var issues []models.HarmonyIssue
	var total float64
	pairs := 0

	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			a, b := refs[i], refs[j]
			pairs++

			fa, fb := a.Tokens.Typography.Fonts, b.Tokens.Typography.Fonts
			headingMatch := fontsEqual(fa.Heading, fb.Heading)
			bodyMatch := fontsEqual(fa.Body, fb.Body)

			familyScore := 0.0
			if headingMatch {
				familyScore += 50
			}
			if bodyMatch {
				familyScore += 50
			}

			scaleScore := neutralScore
			dev, hasScale := scaleDeviation(a.Tokens.Typography.Scale, b.Tokens.Typography.Scale)
			if hasScale {
				scaleScore = math.Max(0, (1-dev/(2*c.cfg.ScaleTolerance))*100)
			}

			total += 0.5*familyScore + 0.5*scaleScore

			if !headingMatch || !bodyMatch {
				severity := models.SeverityMedium
				if !headingMatch && !bodyMatch {
					severity = models.SeverityHigh
				}
				issues = append(issues, models.HarmonyIssue{
					Type:     models.IssueTypographyMismatch,
					Severity: severity,
					Description: fmt.Sprintf("font families of %s and %s differ (heading: %q vs %q, body: %q vs %q)",
						refName(a), refName(b), fa.Heading, fb.Heading, fa.Body, fb.Body),
					AffectedSections: affectedSections(assigned, a.ID, b.ID),
				})
			}

			if hasScale && dev > c.cfg.ScaleTolerance {
				issues = append(issues, models.HarmonyIssue{
					Type:     models.IssueTypographyMismatch,
					Severity: deviationSeverity(dev, c.cfg.ScaleTolerance),
					Description: fmt.Sprintf("type scales of %s and %s deviate by %.0f%% on average",
						refName(a), refName(b), dev*100),
					AffectedSections: affectedSections(assigned, a.ID, b.ID),
				})
			}
		}
	}

	if pairs == 0 {
		return 0, issues
	}
	return roundScore(total / float64(pairs)), issues
}

func deviationSeverity(dev, tolerance float64) models.IssueSeverity {
	ratio := dev / tolerance
	switch {
	case ratio < 1.3:
		return models.SeverityLow
	case ratio < 1.7:
		return models.SeverityMedium
	default:
		return models.SeverityHigh
	}
}

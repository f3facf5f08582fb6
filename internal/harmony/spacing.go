// internal/harmony/spacing.go
package harmony

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/andrecollier/website-builder-sub004/internal/models"
)

// parseCSSNumber extracts the leading numeric value from a CSS length
// string such as "1200px" or "4rem 2rem".
func parseCSSNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		ch := s[end]
		if (ch >= '0' && ch <= '9') || ch == '.' || (end == 0 && (ch == '-' || ch == '+')) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// cssDeviation compares two CSS length strings numerically when possible,
// by string equality otherwise. Second return is false on no signal.
func cssDeviation(a, b string) (float64, bool) {
	if a == "" && b == "" {
		return 0, false
	}
	va, okA := parseCSSNumber(a)
	vb, okB := parseCSSNumber(b)
	if okA && okB {
		return relativeDeviation(va, vb), true
	}
	if strings.TrimSpace(a) == strings.TrimSpace(b) {
		return 0, true
	}
	return 0, false
}

// scaleArrayDeviation is the mean per-index relative deviation of two
// spacing scales. False when either side is empty (no signal).
func scaleArrayDeviation(a, b []float64) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += relativeDeviation(a[i], b[i])
	}
	return sum / float64(n), true
}

// spacingDeviation aggregates the proportional deviation of two spacing
// token sets over every component with signal.
func spacingDeviation(a, b models.Spacing) (float64, bool) {
	var sum float64
	n := 0

	if a.BaseUnit > 0 && b.BaseUnit > 0 {
		sum += relativeDeviation(a.BaseUnit, b.BaseUnit)
		n++
	}
	if dev, ok := scaleArrayDeviation(a.Scale, b.Scale); ok {
		sum += dev
		n++
	}
	if dev, ok := cssDeviation(a.ContainerMaxWidth, b.ContainerMaxWidth); ok {
		sum += dev
		n++
	}
	if dev, ok := cssDeviation(a.SectionPadding.Mobile, b.SectionPadding.Mobile); ok {
		sum += dev
		n++
	}
	if dev, ok := cssDeviation(a.SectionPadding.Desktop, b.SectionPadding.Desktop); ok {
		sum += dev
		n++
	}

	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// scoreSpacing rates the proportional consistency of spacing systems
// across every unordered pair of references. Pairs with nothing to compare
// score neutral rather than failing.
func (c *Checker) scoreSpacing(refs []*models.Reference, assigned map[string][]string) (int, []models.HarmonyIssue) {
	var issues []models.HarmonyIssue
	var total float64
	pairs := 0

	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			a, b := refs[i], refs[j]
			pairs++

			dev, ok := spacingDeviation(a.Tokens.Spacing, b.Tokens.Spacing)
			if !ok {
				total += neutralScore
				continue
			}

			total += math.Max(0, (1-dev/(2*c.cfg.SpacingTolerance))*100)

			if dev > c.cfg.SpacingTolerance {
				issues = append(issues, models.HarmonyIssue{
					Type:     models.IssueSpacingInconsistent,
					Severity: deviationSeverity(dev, c.cfg.SpacingTolerance),
					Description: fmt.Sprintf("spacing systems of %s and %s deviate by %.0f%% on average",
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

// internal/harmony/color.go
package harmony

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/andrecollier/website-builder-sub004/internal/models"
)

// Relative weight of hue versus lightness in the perceptual distance, and
// the distance at which a pair score bottoms out.
const (
	hueWeight       = 0.7
	lightnessWeight = 0.3
	maxColorDist    = 0.8
)

// colorDistance measures how far apart two colors sit in hue/lightness
// space, normalized to [0,1].
func colorDistance(a, b colorful.Color) float64 {
	ha, _, la := a.Hsl()
	hb, _, lb := b.Hsl()

	hueDiff := math.Abs(ha - hb)
	if hueDiff > 180 {
		hueDiff = 360 - hueDiff
	}

	return hueWeight*(hueDiff/180) + lightnessWeight*math.Abs(la-lb)
}

// parsePalette keeps only the hex values colorful understands.
func parsePalette(hexes []string) []colorful.Color {
	out := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// paletteDistance is the mean pairwise distance across two primary
// palettes. The second return is false when either side has no parseable
// colors (no signal).
func paletteDistance(a, b []string) (float64, bool) {
	pa, pb := parsePalette(a), parsePalette(b)
	if len(pa) == 0 || len(pb) == 0 {
		return 0, false
	}

	var sum float64
	for _, ca := range pa {
		for _, cb := range pb {
			sum += colorDistance(ca, cb)
		}
	}
	return sum / float64(len(pa)*len(pb)), true
}

func distanceToScore(d float64) float64 {
	s := (1 - d/maxColorDist) * 100
	if s < 0 {
		return 0
	}
	return s
}

func (c *Checker) clashSeverity(distance float64) models.IssueSeverity {
	ratio := distance / c.cfg.ClashDistance
	switch {
	case ratio < 1.3:
		return models.SeverityLow
	case ratio < 1.7:
		return models.SeverityMedium
	default:
		return models.SeverityHigh
	}
}

// scoreColors rates the perceptual compatibility of the references'
// primary palettes across every unordered pair.
func (c *Checker) scoreColors(refs []*models.Reference, assigned map[string][]string) (int, []models.HarmonyIssue) {
	var issues []models.HarmonyIssue
	var total float64
	pairs := 0

	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			a, b := refs[i], refs[j]
			pairs++

			dist, ok := paletteDistance(a.Tokens.Colors.Primary, b.Tokens.Colors.Primary)
			if !ok {
				total += neutralScore
				continue
			}
			total += distanceToScore(dist)

			if dist > c.cfg.ClashDistance {
				issues = append(issues, models.HarmonyIssue{
					Type:     models.IssueColorClash,
					Severity: c.clashSeverity(dist),
					Description: fmt.Sprintf("primary palettes of %s and %s clash (distance %.2f)",
						refName(a), refName(b), dist),
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

func refName(r *models.Reference) string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

func roundScore(s float64) int {
	v := int(math.Round(s))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

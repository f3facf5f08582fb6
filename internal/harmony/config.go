// internal/harmony/config.go
package harmony

import "github.com/andrecollier/website-builder-sub004/internal/common/config"

// Weights distributes the overall score across the three dimensions.
// Defaults sum to 1.
type Weights struct {
	Color      float64 `json:"color"`
	Typography float64 `json:"typography"`
	Spacing    float64 `json:"spacing"`
}

// Thresholds are overall-score cutoffs: at or above High the sources are
// called a good combination, below Low a poor one.
type Thresholds struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Config holds every tunable of the harmony checker.
type Config struct {
	DefaultWeights   Weights    `json:"defaultWeights"`
	Thresholds       Thresholds `json:"thresholds"`
	ClashDistance    float64    `json:"clashDistance"`    // hue/lightness distance beyond which a color pair clashes
	ScaleTolerance   float64    `json:"scaleTolerance"`   // relative deviation tolerated between type scales
	SpacingTolerance float64    `json:"spacingTolerance"` // relative deviation tolerated between spacing values
}

// DefaultConfig is used whenever no service configuration overrides it.
var DefaultConfig = Config{
	DefaultWeights: Weights{
		Color:      0.4,
		Typography: 0.35,
		Spacing:    0.25,
	},
	Thresholds: Thresholds{
		High:   80,
		Medium: 60,
		Low:    40,
	},
	ClashDistance:    0.35,
	ScaleTolerance:   0.25,
	SpacingTolerance: 0.3,
}

// neutralScore is used when a dimension has nothing to compare on — a
// non-committal "no signal" rather than a failure.
const neutralScore = 70.0

// ConfigFromSettings maps the service-level harmony settings onto an
// engine config.
func ConfigFromSettings(cfg config.HarmonyConfig) Config {
	return Config{
		DefaultWeights: Weights{
			Color:      cfg.ColorWeight,
			Typography: cfg.TypographyWeight,
			Spacing:    cfg.SpacingWeight,
		},
		Thresholds: Thresholds{
			High:   cfg.ThresholdHigh,
			Medium: cfg.ThresholdMedium,
			Low:    cfg.ThresholdLow,
		},
		ClashDistance:    cfg.ClashDistance,
		ScaleTolerance:   cfg.ScaleTolerance,
		SpacingTolerance: cfg.SpacingTolerance,
	}
}

// CheckOptions are per-call overrides. Nil fields fall back to the
// checker's config; a zero weight is therefore expressible.
type CheckOptions struct {
	ColorWeight      *float64 `json:"colorWeight,omitempty"`
	TypographyWeight *float64 `json:"typographyWeight,omitempty"`
	SpacingWeight    *float64 `json:"spacingWeight,omitempty"`

	// Per-dimension score thresholds (0-100) below which the dimension is
	// called out in suggestions. Default is the Medium threshold.
	ColorThreshold      *float64 `json:"colorThreshold,omitempty"`
	TypographyThreshold *float64 `json:"typographyThreshold,omitempty"`
	SpacingThreshold    *float64 `json:"spacingThreshold,omitempty"`
}

func (c *Checker) weights(opts *CheckOptions) Weights {
	w := c.cfg.DefaultWeights
	if opts == nil {
		return w
	}
	if opts.ColorWeight != nil {
		w.Color = *opts.ColorWeight
	}
	if opts.TypographyWeight != nil {
		w.Typography = *opts.TypographyWeight
	}
	if opts.SpacingWeight != nil {
		w.Spacing = *opts.SpacingWeight
	}
	return w
}

func (c *Checker) dimensionThreshold(override *float64) float64 {
	if override != nil {
		return *override
	}
	return float64(c.cfg.Thresholds.Medium)
}

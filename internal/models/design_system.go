// internal/models/design_system.go
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DesignMeta records where a design system came from and when.
type DesignMeta struct {
	SourceURL   string    `json:"sourceUrl"`
	ExtractedAt time.Time `json:"extractedAt"`
	Version     string    `json:"version"`
}

// SemanticColors are the state colors every extracted site resolves to.
type SemanticColors struct {
	Success string `json:"success"`
	Error   string `json:"error"`
	Warning string `json:"warning"`
	Info    string `json:"info"`
}

// Colors holds the extracted color tokens. Hex strings throughout.
type Colors struct {
	Primary   []string            `json:"primary"`
	Secondary []string            `json:"secondary"`
	Neutral   []string            `json:"neutral"`
	Semantic  SemanticColors      `json:"semantic"`
	Palettes  map[string][]string `json:"palettes,omitempty"`
}

// Fonts holds the three font-family slots.
type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Mono    string `json:"mono"`
}

// Typography holds font families, the type scale (px values keyed by
// display, h1..h6, body, small, xs), weights and line heights.
type Typography struct {
	Fonts       Fonts              `json:"fonts"`
	Scale       map[string]float64 `json:"scale"`
	Weights     []int              `json:"weights"`
	LineHeights map[string]float64 `json:"lineHeights"`
}

// ScaleKeys is the canonical ordering of type-scale entries.
var ScaleKeys = []string{"display", "h1", "h2", "h3", "h4", "h5", "h6", "body", "small", "xs"}

// SectionPadding holds responsive section padding values as CSS strings.
type SectionPadding struct {
	Mobile  string `json:"mobile"`
	Desktop string `json:"desktop"`
}

// Spacing holds the spacing tokens of one site.
type Spacing struct {
	BaseUnit          float64        `json:"baseUnit"`
	Scale             []float64      `json:"scale"`
	ContainerMaxWidth string         `json:"containerMaxWidth"`
	SectionPadding    SectionPadding `json:"sectionPadding"`
}

// Effects holds shadows, radii and transition tokens as CSS strings.
type Effects struct {
	Shadows     map[string]string `json:"shadows"`
	Radii       map[string]string `json:"radii"`
	Transitions map[string]string `json:"transitions"`
}

// DesignSystem is the full set of visual tokens extracted from one website.
type DesignSystem struct {
	Meta       DesignMeta `json:"meta"`
	Colors     Colors     `json:"colors"`
	Typography Typography `json:"typography"`
	Spacing    Spacing    `json:"spacing"`
	Effects    Effects    `json:"effects"`
}

// ToTree converts the typed design system into a generic JSON-shaped tree
// suitable for path addressing. The tree is freshly allocated on every call.
func (d *DesignSystem) ToTree() (map[string]interface{}, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode design system: %w", err)
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode design system tree: %w", err)
	}
	return tree, nil
}

// DesignSystemFromTree is the single validating cast back from the untyped
// token tree to the typed model.
func DesignSystemFromTree(tree map[string]interface{}) (*DesignSystem, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode token tree: %w", err)
	}
	var ds DesignSystem
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("token tree does not form a valid design system: %w", err)
	}
	return &ds, nil
}

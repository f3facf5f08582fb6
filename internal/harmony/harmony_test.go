// internal/harmony/harmony_test.go
package harmony

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrecollier/website-builder-sub004/internal/models"
)

func testDesignSystem(primary []string, headingFont, bodyFont string) *models.DesignSystem {
	return &models.DesignSystem{
		Meta: models.DesignMeta{
			SourceURL:   "https://example.com",
			ExtractedAt: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
			Version:     "1.0",
		},
		Colors: models.Colors{
			Primary:   primary,
			Secondary: []string{"#1f2937"},
			Neutral:   []string{"#f9fafb", "#e5e7eb"},
			Semantic:  models.SemanticColors{Success: "#22c55e", Error: "#ef4444", Warning: "#f59e0b", Info: "#3b82f6"},
		},
		Typography: models.Typography{
			Fonts:       models.Fonts{Heading: headingFont, Body: bodyFont, Mono: "Menlo"},
			Scale:       map[string]float64{"display": 56, "h1": 40, "h2": 32, "h3": 26, "body": 16, "small": 14, "xs": 12},
			Weights:     []int{400, 600, 700},
			LineHeights: map[string]float64{"body": 1.5},
		},
		Spacing: models.Spacing{
			BaseUnit:          8,
			Scale:             []float64{4, 8, 16, 24, 32},
			ContainerMaxWidth: "1200px",
			SectionPadding:    models.SectionPadding{Mobile: "2rem 1rem", Desktop: "5rem 2rem"},
		},
		Effects: models.Effects{
			Shadows: map[string]string{"sm": "0 1px 2px rgba(0,0,0,.05)"},
			Radii:   map[string]string{"md": "8px"},
		},
	}
}

func readyRef(id string, ds *models.DesignSystem) *models.Reference {
	return &models.Reference{
		ID:     id,
		URL:    "https://" + id + ".example.com",
		Tokens: ds,
		Status: models.StatusReady,
	}
}

func TestCanCalculate(t *testing.T) {
	ready := readyRef("a", testDesignSystem([]string{"#3366ff"}, "Inter", "Inter"))
	readyToo := readyRef("b", testDesignSystem([]string{"#4477ee"}, "Inter", "Inter"))

	tests := []struct {
		name     string
		refs     []*models.Reference
		expected bool
	}{
		{name: "two ready references", refs: []*models.Reference{ready, readyToo}, expected: true},
		{name: "single reference", refs: []*models.Reference{ready}, expected: false},
		{name: "no references", refs: nil, expected: false},
		{
			name:     "one still processing",
			refs:     []*models.Reference{ready, {ID: "c", Status: models.StatusProcessing}},
			expected: false,
		},
		{
			name:     "ready without tokens",
			refs:     []*models.Reference{ready, {ID: "c", Status: models.StatusReady}},
			expected: false,
		},
		{
			name: "ready without color data",
			refs: []*models.Reference{
				ready,
				readyRef("c", &models.DesignSystem{Typography: models.Typography{Fonts: models.Fonts{Body: "Inter"}}}),
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanCalculate(tt.refs))
		})
	}
}

func TestCalculate_GuardClauses(t *testing.T) {
	checker := NewDefault()

	t.Run("zero references", func(t *testing.T) {
		result := checker.Calculate(nil, nil, nil)
		assert.Equal(t, 0, result.Score)
		require.Len(t, result.Issues, 1)
		assert.Equal(t, models.IssueInsufficientInput, result.Issues[0].Type)
		assert.Equal(t, models.SeverityHigh, result.Issues[0].Severity)
		assert.Empty(t, result.SectionsAnalyzed)
	})

	t.Run("single reference", func(t *testing.T) {
		ref := readyRef("a", testDesignSystem([]string{"#3366ff"}, "Inter", "Inter"))
		result := checker.Calculate([]*models.Reference{ref}, nil, nil)
		assert.Equal(t, 0, result.Score)
		assert.Equal(t, 0, result.Breakdown.Color)
		assert.Equal(t, []string{"a"}, result.ReferencesAnalyzed)
		require.NotEmpty(t, result.Issues)
		assert.Equal(t, models.IssueInsufficientInput, result.Issues[0].Type)
	})
}

func TestCalculate_SkipsNonReadyReferences(t *testing.T) {
	ready := readyRef("a", testDesignSystem([]string{"#3366ff"}, "Inter", "Inter"))

	t.Run("one ready one pending scores zero with issue", func(t *testing.T) {
		pending := &models.Reference{ID: "b", URL: "https://b.example.com", Status: models.StatusPending}

		result := NewDefault().Calculate([]*models.Reference{ready, pending}, nil, nil)

		assert.Equal(t, 0, result.Score)
		assert.Equal(t, []string{"a"}, result.ReferencesAnalyzed)
		require.NotEmpty(t, result.Issues)
		assert.Equal(t, models.IssueInsufficientInput, result.Issues[0].Type)
	})

	t.Run("ready without tokens is skipped", func(t *testing.T) {
		tokenless := &models.Reference{ID: "b", Status: models.StatusReady}

		result := NewDefault().Calculate([]*models.Reference{ready, tokenless}, nil, nil)

		assert.Equal(t, 0, result.Score)
		assert.Equal(t, []string{"a"}, result.ReferencesAnalyzed)
	})

	t.Run("non-ready third reference does not disturb a valid pair", func(t *testing.T) {
		readyToo := readyRef("b", testDesignSystem([]string{"#3366ff"}, "Inter", "Inter"))
		processing := &models.Reference{ID: "c", Status: models.StatusProcessing}

		result := NewDefault().Calculate([]*models.Reference{ready, readyToo, processing}, nil, nil)

		assert.Equal(t, []string{"a", "b"}, result.ReferencesAnalyzed)
		assert.GreaterOrEqual(t, result.Score, 85)
	})
}

func TestCalculate_IdenticalSystemsScoreHigh(t *testing.T) {
	a := readyRef("a", testDesignSystem([]string{"#3366ff"}, "Inter", "Inter"))
	b := readyRef("b", testDesignSystem([]string{"#3366ff"}, "Inter", "Inter"))

	result := NewDefault().Calculate([]*models.Reference{a, b}, nil, nil)

	assert.GreaterOrEqual(t, result.Breakdown.Typography, 85)
	assert.GreaterOrEqual(t, result.Breakdown.Spacing, 85)
	assert.GreaterOrEqual(t, result.Breakdown.Color, 85)
	assert.Equal(t, result.Score, result.Breakdown.Overall)
	assert.Contains(t, result.Suggestions, "These sources work well together")
}

func TestCalculate_ClashingHues(t *testing.T) {
	red := readyRef("red", testDesignSystem([]string{"#ff0000"}, "Inter", "Inter"))
	green := readyRef("green", testDesignSystem([]string{"#00ff00"}, "Inter", "Inter"))

	result := NewDefault().Calculate([]*models.Reference{red, green}, nil, nil)

	assert.Less(t, result.Breakdown.Color, 50)
	clashFound := false
	for _, issue := range result.Issues {
		if issue.Type == models.IssueColorClash {
			clashFound = true
		}
	}
	assert.True(t, clashFound, "expected a color_clash issue, got %v", result.Issues)
}

func TestCalculate_TypographyMismatch(t *testing.T) {
	a := readyRef("a", testDesignSystem([]string{"#3366ff"}, "Playfair Display", "Georgia"))
	b := readyRef("b", testDesignSystem([]string{"#3366ff"}, "Inter", "Inter"))

	result := NewDefault().Calculate([]*models.Reference{a, b}, nil, nil)

	mismatch := false
	for _, issue := range result.Issues {
		if issue.Type == models.IssueTypographyMismatch {
			mismatch = true
			assert.Contains(t, issue.Description, "a")
			assert.Contains(t, issue.Description, "b")
			assert.Equal(t, models.SeverityHigh, issue.Severity)
		}
	}
	assert.True(t, mismatch)
	assert.Less(t, result.Breakdown.Typography, 85)
}

func TestCalculate_WeightedOverall(t *testing.T) {
	a := readyRef("a", testDesignSystem([]string{"#ff0000"}, "Playfair Display", "Georgia"))
	b := readyRef("b", testDesignSystem([]string{"#00ff00"}, "Inter", "Inter"))
	checker := NewDefault()

	t.Run("default weights", func(t *testing.T) {
		result := checker.Calculate([]*models.Reference{a, b}, nil, nil)
		w := checker.Config().DefaultWeights
		expected := int(math.Round(
			float64(result.Breakdown.Color)*w.Color +
				float64(result.Breakdown.Typography)*w.Typography +
				float64(result.Breakdown.Spacing)*w.Spacing))
		assert.Equal(t, expected, result.Breakdown.Overall)
		assert.Equal(t, result.Score, result.Breakdown.Overall)
	})

	t.Run("custom weights", func(t *testing.T) {
		cw, tw, sw := 1.0, 0.0, 0.0
		result := checker.Calculate([]*models.Reference{a, b}, nil, &CheckOptions{
			ColorWeight:      &cw,
			TypographyWeight: &tw,
			SpacingWeight:    &sw,
		})
		assert.Equal(t, result.Breakdown.Color, result.Breakdown.Overall)
		assert.Equal(t, result.Score, result.Breakdown.Overall)
	})
}

func TestScore_MatchesCalculate(t *testing.T) {
	a := readyRef("a", testDesignSystem([]string{"#ff0000"}, "Inter", "Inter"))
	b := readyRef("b", testDesignSystem([]string{"#2244cc"}, "Lora", "Lora"))
	refs := []*models.Reference{a, b}
	checker := NewDefault()

	score := checker.Score(refs, nil, nil)
	assert.Equal(t, checker.Calculate(refs, nil, nil).Score, score)
	assert.True(t, checker.MeetsThreshold(refs, score, nil, nil))
	assert.False(t, checker.MeetsThreshold(refs, score+1, nil, nil))
}

func TestCalculate_SectionAttribution(t *testing.T) {
	red := readyRef("red", testDesignSystem([]string{"#ff0000"}, "Inter", "Inter"))
	green := readyRef("green", testDesignSystem([]string{"#00ff00"}, "Inter", "Inter"))
	mapping := models.SectionMapping{
		"hero":   "red",
		"footer": "green",
		"header": "red",
	}

	result := NewDefault().Calculate([]*models.Reference{red, green}, mapping, nil)

	assert.Equal(t, []string{"header", "hero", "footer"}, result.SectionsAnalyzed)

	for _, issue := range result.Issues {
		if issue.Type == models.IssueColorClash {
			assert.Equal(t, []string{"header", "hero", "footer"}, issue.AffectedSections)
		}
	}
}

func TestCalculate_EmptySpacingIsNeutral(t *testing.T) {
	a := readyRef("a", testDesignSystem([]string{"#3366ff"}, "Inter", "Inter"))
	b := readyRef("b", testDesignSystem([]string{"#3366ff"}, "Inter", "Inter"))
	a.Tokens.Spacing = models.Spacing{}
	b.Tokens.Spacing = models.Spacing{}

	result := NewDefault().Calculate([]*models.Reference{a, b}, nil, nil)

	assert.Greater(t, result.Breakdown.Spacing, 0)
	for _, issue := range result.Issues {
		assert.NotEqual(t, models.IssueSpacingInconsistent, issue.Type)
	}
}

func TestConfig_DefaultsAreCoherent(t *testing.T) {
	w := DefaultConfig.DefaultWeights
	assert.InDelta(t, 1.0, w.Color+w.Typography+w.Spacing, 1e-9)

	th := DefaultConfig.Thresholds
	assert.Greater(t, th.High, th.Medium)
	assert.Greater(t, th.Medium, th.Low)
}

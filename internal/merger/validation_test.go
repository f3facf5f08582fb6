// internal/merger/validation_test.go
package merger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrecollier/website-builder-sub004/internal/models"
)

func TestValidateReferenceExists(t *testing.T) {
	refs := []*models.Reference{{ID: "ref-a"}, {ID: "ref-b"}}

	assert.True(t, ValidateReferenceExists(refs, "ref-a"))
	assert.False(t, ValidateReferenceExists(refs, "ref-c"))
	assert.False(t, ValidateReferenceExists(nil, "ref-a"))
}

func TestValidateReferencesReady(t *testing.T) {
	ready := readyRef("ref-1", testDesignSystem("https://one.example.com", []string{"#333"}, "Inter"))

	tests := []struct {
		name           string
		refs           []*models.Reference
		expectValid    bool
		expectedErrors []string
	}{
		{
			name:        "all ready",
			refs:        []*models.Reference{ready},
			expectValid: true,
		},
		{
			name: "processing reference named",
			refs: []*models.Reference{
				ready,
				{ID: "ref-3", Status: models.StatusProcessing},
			},
			expectValid:    false,
			expectedErrors: []string{"ref-3: status is processing", "ref-3: no tokens"},
		},
		{
			name: "ready but missing tokens",
			refs: []*models.Reference{
				{ID: "ref-4", Status: models.StatusReady},
			},
			expectValid:    false,
			expectedErrors: []string{"ref-4: no tokens"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateReferencesReady(tt.refs)
			assert.Equal(t, tt.expectValid, result.IsValid)
			for _, e := range tt.expectedErrors {
				assert.Contains(t, result.Errors, e)
			}
		})
	}
}

func TestValidateStrategy(t *testing.T) {
	refs := []*models.Reference{{ID: "ref-a"}, {ID: "ref-b"}}

	tests := []struct {
		name        string
		strategy    models.MergeStrategy
		expectValid bool
		errContains string
	}{
		{
			name:        "valid strategy",
			strategy:    models.MergeStrategy{Base: "ref-a", Overrides: []models.TokenOverride{{ReferenceID: "ref-b", Path: "colors"}}},
			expectValid: true,
		},
		{
			name:        "no overrides is valid",
			strategy:    models.MergeStrategy{Base: "ref-a"},
			expectValid: true,
		},
		{
			name:        "empty base",
			strategy:    models.MergeStrategy{},
			expectValid: false,
			errContains: "base is empty",
		},
		{
			name:        "unresolvable base",
			strategy:    models.MergeStrategy{Base: "ghost"},
			expectValid: false,
			errContains: `"ghost" does not resolve`,
		},
		{
			name:        "override missing referenceId",
			strategy:    models.MergeStrategy{Base: "ref-a", Overrides: []models.TokenOverride{{Path: "colors"}}},
			expectValid: false,
			errContains: "referenceId is empty",
		},
		{
			name:        "override missing path",
			strategy:    models.MergeStrategy{Base: "ref-a", Overrides: []models.TokenOverride{{ReferenceID: "ref-b"}}},
			expectValid: false,
			errContains: "path is empty",
		},
		{
			name:        "override unresolvable referenceId",
			strategy:    models.MergeStrategy{Base: "ref-a", Overrides: []models.TokenOverride{{ReferenceID: "ghost", Path: "colors"}}},
			expectValid: false,
			errContains: `"ghost" does not resolve`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateStrategy(tt.strategy, refs)
			assert.Equal(t, tt.expectValid, result.IsValid)
			if tt.errContains != "" {
				assert.NotEmpty(t, result.Errors)
				found := false
				for _, e := range result.Errors {
					if strings.Contains(e, tt.errContains) {
						found = true
					}
				}
				assert.True(t, found, "expected an error containing %q, got %v", tt.errContains, result.Errors)
			}
		})
	}

	t.Run("all problems reported at once", func(t *testing.T) {
		result := ValidateStrategy(models.MergeStrategy{
			Base:      "",
			Overrides: []models.TokenOverride{{ReferenceID: "", Path: ""}},
		}, refs)
		assert.False(t, result.IsValid)
		assert.Len(t, result.Errors, 3)
	})
}

// internal/models/harmony.go
package models

// IssueType classifies a flagged incompatibility between references.
type IssueType string

const (
	IssueColorClash          IssueType = "color_clash"
	IssueTypographyMismatch  IssueType = "typography_mismatch"
	IssueSpacingInconsistent IssueType = "spacing_inconsistency"
	IssueInsufficientInput   IssueType = "insufficient_input"
)

// IssueSeverity grades how badly a threshold was exceeded.
type IssueSeverity string

const (
	SeverityLow    IssueSeverity = "low"
	SeverityMedium IssueSeverity = "medium"
	SeverityHigh   IssueSeverity = "high"
)

// HarmonyIssue describes one detected clash and, when the section mapping
// makes it attributable, the page sections it affects.
type HarmonyIssue struct {
	Type             IssueType     `json:"type"`
	Severity         IssueSeverity `json:"severity"`
	Description      string        `json:"description"`
	AffectedSections []string      `json:"affectedSections,omitempty"`
}

// HarmonyBreakdown holds the per-dimension scores, each in [0,100].
// Overall always equals the weighted rounded combination of the others.
type HarmonyBreakdown struct {
	Color      int `json:"color"`
	Typography int `json:"typography"`
	Spacing    int `json:"spacing"`
	Overall    int `json:"overall"`
}

// HarmonyResult is the full output of a compatibility analysis.
// Score always equals Breakdown.Overall.
type HarmonyResult struct {
	Score              int              `json:"score"`
	Breakdown          HarmonyBreakdown `json:"breakdown"`
	Issues             []HarmonyIssue   `json:"issues"`
	Suggestions        []string         `json:"suggestions"`
	ReferencesAnalyzed []string         `json:"referencesAnalyzed"`
	SectionsAnalyzed   []string         `json:"sectionsAnalyzed"`
}

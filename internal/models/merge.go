// internal/models/merge.go
package models

// TokenOverride is one "set value at path" command. ReferenceID names the
// source of the replacement value; when Value is nil the value is read from
// that reference's tokens at Path.
type TokenOverride struct {
	ReferenceID string      `json:"referenceId"`
	Path        string      `json:"path"`
	Value       interface{} `json:"value,omitempty"`
}

// MergeStrategy is a declarative recipe for building one combined design
// system: clone Base, then apply Overrides in order.
type MergeStrategy struct {
	Base      string          `json:"base"`
	Overrides []TokenOverride `json:"overrides"`
}

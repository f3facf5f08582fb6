// internal/models/reference.go
package models

// ReferenceStatus tracks the extraction lifecycle of a reference website.
type ReferenceStatus string

const (
	StatusPending    ReferenceStatus = "pending"
	StatusProcessing ReferenceStatus = "processing"
	StatusReady      ReferenceStatus = "ready"
	StatusError      ReferenceStatus = "error"
)

// Reference is one user-added source website in Template Mode. Tokens is
// non-nil exactly when Status is ready. Neither engine ever mutates a
// Reference or its tokens.
type Reference struct {
	ID       string          `json:"id"`
	URL      string          `json:"url"`
	Name     string          `json:"name,omitempty"`
	Tokens   *DesignSystem   `json:"tokens,omitempty"`
	Sections []string        `json:"sections,omitempty"`
	Status   ReferenceStatus `json:"status"`
}

// IsReady reports whether the reference can feed the engines.
func (r *Reference) IsReady() bool {
	return r != nil && r.Status == StatusReady && r.Tokens != nil
}

// SectionMapping assigns logical page sections (header, hero, ...) to a
// source, expressed either as a Reference.ID or as a stringified index into
// the reference list. An empty value means unassigned.
type SectionMapping map[string]string

// FindReference resolves an id against a reference slice, nil if absent.
func FindReference(refs []*Reference, id string) *Reference {
	for _, r := range refs {
		if r != nil && r.ID == id {
			return r
		}
	}
	return nil
}

// pkg/registry/schema.go
package registry

// SectionRegistry is the catalog of page section types the mixer knows
// how to attribute tokens to.
type SectionRegistry struct {
	Version     string        `json:"version"`
	LastUpdated string        `json:"lastUpdated"`
	Sections    []SectionType `json:"sections"`
}

// SectionType describes one logical page section. Order fixes the
// position of the section in reports and generated layouts.
type SectionType struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Optional    bool   `json:"optional"`
}

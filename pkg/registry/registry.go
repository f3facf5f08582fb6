// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"os"
	"sort"
)

func LoadRegistry(path string) (*SectionRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg SectionRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Has reports whether the registry knows the section type.
func (r *SectionRegistry) Has(id string) bool {
	for _, s := range r.Sections {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Ordered returns the section types sorted by their layout order.
func (r *SectionRegistry) Ordered() []SectionType {
	out := append([]SectionType(nil), r.Sections...)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

package manifest

import (
	"encoding/json"
	"os"
	"sort"
)

// Section names overlaid by Merge.
const (
	SectionDependencies    = "dependencies"
	SectionDevDependencies = "devDependencies"
)

// Sections lists the dependency sections Merge combines, in report order.
var Sections = []string{SectionDependencies, SectionDevDependencies}

// FileName is the manifest file name in both the tool root and the user project.
const FileName = "package.json"

// Manifest is a parsed package.json. Top-level values are kept raw so keys
// the tool does not interpret survive a merge untouched.
type Manifest struct {
	Fields map[string]json.RawMessage

	raw  []byte
	mode os.FileMode
}

// Raw returns the bytes the manifest was parsed from, or nil for a manifest
// produced by Merge.
func (m *Manifest) Raw() []byte { return m.raw }

// Mode returns the file mode captured when the manifest was loaded.
func (m *Manifest) Mode() os.FileMode { return m.mode }

// Dependencies returns the dependencies mapping (empty if absent).
func (m *Manifest) Dependencies() map[string]string {
	return m.Section(SectionDependencies)
}

// DevDependencies returns the devDependencies mapping (empty if absent).
func (m *Manifest) DevDependencies() map[string]string {
	return m.Section(SectionDevDependencies)
}

// Section decodes a top-level string→string mapping. Parse has already
// validated the shape, so a decode failure yields an empty map.
func (m *Manifest) Section(name string) map[string]string {
	out := map[string]string{}
	if m == nil {
		return out
	}
	raw, ok := m.Fields[name]
	if !ok {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}

// Keys returns the top-level keys in sorted order.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Override records a dependency whose tool specifier was replaced by the
// user project's.
type Override struct {
	Section string
	Name    string
	Tool    string
	User    string
	// Checked is false when either specifier is not plain semver
	// (tags, URLs, workspace: protocols); Compatible is then meaningless.
	Checked    bool
	Compatible bool
}

// MergeReport summarizes what the user manifest changed.
type MergeReport struct {
	Added     []string // "section/name" entries only the user declares
	Overrides []Override
}

// Incompatible returns the checked overrides whose user specifier falls
// outside the tool's declared range.
func (r *MergeReport) Incompatible() []Override {
	var out []Override
	for _, o := range r.Overrides {
		if o.Checked && !o.Compatible {
			out = append(out, o)
		}
	}
	return out
}

// Merge returns a new manifest equal to tool with its dependency sections
// replaced by the union of tool's and user's. On a key present in both the
// user's specifier wins. A nil user leaves the sections as they are.
func Merge(tool, user *Manifest) (*Manifest, *MergeReport) {
	merged := &Manifest{
		Fields: make(map[string]json.RawMessage, len(tool.Fields)),
		mode:   tool.mode,
	}
	for k, v := range tool.Fields {
		merged.Fields[k] = v
	}

	report := &MergeReport{}
	if user == nil {
		return merged, report
	}

	for _, section := range Sections {
		if _, inUser := user.Fields[section]; !inUser {
			continue
		}

		base := tool.Section(section)
		overlay := user.Section(section)
		for _, name := range sortedKeys(overlay) {
			spec := overlay[name]
			prev, ok := base[name]
			switch {
			case !ok:
				report.Added = append(report.Added, section+"/"+name)
			case prev != spec:
				report.Overrides = append(report.Overrides, checkOverride(section, name, prev, spec))
			}
			base[name] = spec
		}

		merged.Fields[section] = marshalSection(base)
	}

	return merged, report
}

func checkOverride(section, name, toolSpec, userSpec string) Override {
	o := Override{Section: section, Name: name, Tool: toolSpec, User: userSpec}

	constraint, err := semver.NewConstraint(toolSpec)
	if err != nil {
		return o
	}
	floor, err := lowestVersion(userSpec)
	if err != nil {
		return o
	}

	o.Checked = true
	o.Compatible = constraint.Check(floor)
	return o
}

// lowestVersion extracts the smallest version a specifier admits: the
// first alternative's leading version with range operators stripped.
func lowestVersion(spec string) (*semver.Version, error) {
	first := strings.TrimSpace(strings.SplitN(spec, "||", 2)[0])
	if fields := strings.Fields(first); len(fields) > 0 {
		first = fields[0]
	}
	// An upper bound says nothing about the floor.
	if strings.HasPrefix(first, "<") {
		return nil, fmt.Errorf("%q has no lower bound", spec)
	}
	first = strings.TrimLeft(first, "^~>=v")
	return semver.NewVersion(first)
}

// marshalSection encodes a dependency section without HTML escaping, so
// range specifiers such as ">=1.0.0 <2" stay readable.
func marshalSection(section map[string]string) json.RawMessage {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// A map[string]string always encodes.
	_ = enc.Encode(section)
	return bytes.TrimRight(buf.Bytes(), "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

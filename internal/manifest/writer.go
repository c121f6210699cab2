package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sviny-labs/sviny/internal/platform"
)

// Marshal renders the manifest with two-space indentation and a trailing
// newline. Keys are sorted at every level; HTML characters are left
// unescaped and numbers keep their original text.
func (m *Manifest) Marshal() ([]byte, error) {
	fields := make(map[string]any, len(m.Fields))
	for k, raw := range m.Fields {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("marshaling manifest field %q: %w", k, err)
		}
		fields[k] = v
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fields); err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Write serializes the manifest to path, keeping the captured file mode.
func (m *Manifest) Write(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return writeFile(path, data, m.mode)
}

// Restore writes back the exact bytes the manifest was loaded from.
func (m *Manifest) Restore(path string) error {
	if m.raw == nil {
		return fmt.Errorf("restoring manifest %s: no original bytes captured", path)
	}
	return RestoreBytes(path, m.raw, m.mode)
}

// RestoreBytes writes a previously captured manifest back to path. It is
// also used when recovering from a session journal.
func RestoreBytes(path string, raw []byte, mode os.FileMode) error {
	return writeFile(path, raw, mode)
}

func writeFile(path string, data []byte, mode os.FileMode) error {
	if mode == 0 {
		mode = 0644
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	// WriteFile only applies mode on create.
	if err := platform.Chmod(path, mode); err != nil {
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	return nil
}

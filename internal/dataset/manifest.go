package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Manifest is a TOML dataset carrying nodes and connections inline, as an
// alternative to the two-file form:
//
//	nodes = ["A", "B", "C"]
//
//	[[connections]]
//	a = "A"
//	b = "B"
type Manifest struct {
	Nodes       []string             `toml:"nodes"`
	Connections []ManifestConnection `toml:"connections"`
}

// ManifestConnection is one labeled edge of a manifest.
type ManifestConnection struct {
	A string `toml:"a"`
	B string `toml:"b"`
}

// LoadManifest reads and parses a TOML dataset manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// SaveManifest writes a manifest to path, creating parent directories as
// needed. Useful for snapshotting an ad-hoc dataset into a reusable file.
func SaveManifest(path string, m *Manifest) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Pairs returns the manifest connections as label pairs for the named client.
func (m *Manifest) Pairs() []LabelPair {
	pairs := make([]LabelPair, 0, len(m.Connections))
	for _, c := range m.Connections {
		pairs = append(pairs, LabelPair{A: c.A, B: c.B})
	}
	return pairs
}

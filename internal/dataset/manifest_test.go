package dataset

import (
	"path/filepath"
	"testing"

	"github.com/papapumpkin/conflux/internal/disjoint"
)

const sampleManifest = `
nodes = ["A", "B", "C", "D"]

[[connections]]
a = "A"
b = "B"

[[connections]]
a = "C"
b = "D"
`

func TestLoadManifest(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "dataset.toml", sampleManifest)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Nodes) != 4 {
		t.Errorf("Nodes = %v, want 4 entries", m.Nodes)
	}
	if len(m.Connections) != 2 {
		t.Fatalf("Connections = %v, want 2 entries", m.Connections)
	}
	if m.Connections[0].A != "A" || m.Connections[0].B != "B" {
		t.Errorf("Connections[0] = %+v, want a=A b=B", m.Connections[0])
	}
}

func TestLoadManifestErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadManifest(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("LoadManifest on missing file: err = nil, want error")
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "bad.toml", "nodes = [unterminated\n")
		if _, err := LoadManifest(path); err == nil {
			t.Error("LoadManifest on invalid TOML: err = nil, want error")
		}
	})
}

func TestSaveManifestRoundTrip(t *testing.T) {
	t.Parallel()
	m := &Manifest{
		Nodes: []string{"A", "B"},
		Connections: []ManifestConnection{
			{A: "A", B: "B"},
		},
	}
	path := filepath.Join(t.TempDir(), "nested", "dataset.toml")
	if err := SaveManifest(path, m); err != nil {
		t.Fatalf("SaveManifest: %v", err)
	}

	back, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(back.Nodes) != 2 || len(back.Connections) != 1 {
		t.Errorf("round trip = %+v, want 2 nodes and 1 connection", back)
	}
}

func TestManifestPairsFeedNamedClient(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "dataset.toml", sampleManifest)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	c := disjoint.NewNamed()
	for _, label := range m.Nodes {
		c.AddNode(label)
	}
	for _, pair := range m.Pairs() {
		if err := c.ConnectNodes(pair.A, pair.B); err != nil {
			t.Fatalf("ConnectNodes(%s, %s): %v", pair.A, pair.B, err)
		}
	}
	// {A,B} and {C,D}.
	if got := c.DisjointSetCount(); got != 2 {
		t.Errorf("DisjointSetCount() = %d, want 2", got)
	}
}

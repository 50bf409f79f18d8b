package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/papapumpkin/conflux/internal/disjoint"
)

// writeFile drops content into a temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadNodes(t *testing.T) {
	t.Parallel()

	t.Run("basic list", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "nodes.txt", "A\nB\nC\n")
		got, err := LoadNodes(path)
		if err != nil {
			t.Fatalf("LoadNodes: %v", err)
		}
		want := []string{"A", "B", "C"}
		if len(got) != len(want) {
			t.Fatalf("LoadNodes = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("node[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("skips blanks and comments", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "nodes.txt", "# fleet roster\n\nA\n\n  B  \n# trailing\n")
		got, err := LoadNodes(path)
		if err != nil {
			t.Fatalf("LoadNodes: %v", err)
		}
		if len(got) != 2 || got[0] != "A" || got[1] != "B" {
			t.Errorf("LoadNodes = %v, want [A B]", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadNodes(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
			t.Error("LoadNodes on missing file: err = nil, want error")
		}
	})
}

func TestLoadIndexPairs(t *testing.T) {
	t.Parallel()

	t.Run("comma pairs", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "conns.txt", "0,1\n2, 3\n\n# done\n")
		got, err := LoadIndexPairs(path, ",")
		if err != nil {
			t.Fatalf("LoadIndexPairs: %v", err)
		}
		want := []disjoint.Connection{{A: 0, B: 1}, {A: 2, B: 3}}
		if len(got) != len(want) {
			t.Fatalf("LoadIndexPairs = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("pair[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("custom delimiter", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "conns.txt", "4|5\n")
		got, err := LoadIndexPairs(path, "|")
		if err != nil {
			t.Fatalf("LoadIndexPairs: %v", err)
		}
		if len(got) != 1 || got[0] != (disjoint.Connection{A: 4, B: 5}) {
			t.Errorf("LoadIndexPairs = %v, want [{4 5}]", got)
		}
	})

	t.Run("empty delimiter falls back to comma", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "conns.txt", "1,2\n")
		got, err := LoadIndexPairs(path, "")
		if err != nil {
			t.Fatalf("LoadIndexPairs: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("LoadIndexPairs = %v, want one pair", got)
		}
	})

	t.Run("non-numeric field", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "conns.txt", "0,1\nA,B\n")
		if _, err := LoadIndexPairs(path, ","); !errors.Is(err, ErrMalformedLine) {
			t.Errorf("LoadIndexPairs err = %v, want ErrMalformedLine", err)
		}
	})

	t.Run("wrong field count", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "conns.txt", "0,1,2\n")
		if _, err := LoadIndexPairs(path, ","); !errors.Is(err, ErrMalformedLine) {
			t.Errorf("LoadIndexPairs err = %v, want ErrMalformedLine", err)
		}
	})
}

func TestLoadLabelPairs(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "conns.txt", "E,D\nD, I\n# note\n")
	got, err := LoadLabelPairs(path, ",")
	if err != nil {
		t.Fatalf("LoadLabelPairs: %v", err)
	}
	want := []LabelPair{{A: "E", B: "D"}, {A: "D", B: "I"}}
	if len(got) != len(want) {
		t.Fatalf("LoadLabelPairs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	empty := writeFile(t, "bad.txt", "E,\n")
	if _, err := LoadLabelPairs(empty, ","); !errors.Is(err, ErrMalformedLine) {
		t.Errorf("LoadLabelPairs empty-field err = %v, want ErrMalformedLine", err)
	}
}

func TestLoaderFeedsClients(t *testing.T) {
	t.Parallel()
	// End-to-end through the file formats: the README topology loaded from
	// disk lands on two disjoint sets, same as the in-memory tests.
	nodes := writeFile(t, "nodes.txt", "A\nB\nC\nD\nE\nF\nG\nH\nI\nJ\n")
	conns := writeFile(t, "conns.txt",
		"4,3\n3,8\n6,5\n9,4\n2,1\n8,9\n5,0\n7,2\n6,1\n1,0\n6,7\n")

	labels, err := LoadNodes(nodes)
	if err != nil {
		t.Fatalf("LoadNodes: %v", err)
	}
	pairs, err := LoadIndexPairs(conns, ",")
	if err != nil {
		t.Fatalf("LoadIndexPairs: %v", err)
	}

	c := disjoint.NewBulk()
	c.AddNodesBulk(labels)
	if err := c.ConnectNodesBulk(pairs); err != nil {
		t.Fatalf("ConnectNodesBulk: %v", err)
	}
	if got := c.DisjointSetCount(); got != 2 {
		t.Errorf("DisjointSetCount() = %d, want 2", got)
	}
}

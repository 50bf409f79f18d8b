// Package dataset loads node and connection inputs for the conflux CLI:
// newline-delimited label lists, delimiter-split pair files (by label or by
// index), and TOML manifests carrying both inline. It also provides a file
// watcher for re-counting on input changes.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/papapumpkin/conflux/internal/disjoint"
)

// DefaultDelimiter separates the two fields of a connection line.
const DefaultDelimiter = ","

// ErrMalformedLine is returned when a connection line does not split into
// exactly two non-empty fields, or an index field is not a number.
var ErrMalformedLine = errors.New("malformed line")

// LabelPair is a single connection between two labeled nodes.
type LabelPair struct {
	A string
	B string
}

// LoadNodes reads a newline-delimited list of node labels. Blank lines and
// lines starting with '#' are skipped; surrounding whitespace is trimmed.
func LoadNodes(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening node file: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		labels = append(labels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading node file: %w", err)
	}
	return labels, nil
}

// LoadIndexPairs reads a connection file whose lines are delimiter-separated
// index pairs ("3,7"). Blank lines and '#' comments are skipped. An empty
// delimiter falls back to DefaultDelimiter.
func LoadIndexPairs(path, delimiter string) ([]disjoint.Connection, error) {
	var conns []disjoint.Connection
	err := loadPairs(path, delimiter, func(lineNo int, a, b string) error {
		ia, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("%w: line %d: index %q is not a number", ErrMalformedLine, lineNo, a)
		}
		ib, err := strconv.Atoi(b)
		if err != nil {
			return fmt.Errorf("%w: line %d: index %q is not a number", ErrMalformedLine, lineNo, b)
		}
		conns = append(conns, disjoint.Connection{A: ia, B: ib})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conns, nil
}

// LoadLabelPairs reads a connection file whose lines are delimiter-separated
// label pairs ("E,D"). Blank lines and '#' comments are skipped.
func LoadLabelPairs(path, delimiter string) ([]LabelPair, error) {
	var pairs []LabelPair
	err := loadPairs(path, delimiter, func(_ int, a, b string) error {
		pairs = append(pairs, LabelPair{A: a, B: b})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// loadPairs handles the shared line scanning; emit receives the two trimmed
// fields of each data line along with its 1-based line number.
func loadPairs(path, delimiter string, emit func(lineNo int, a, b string) error) error {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening connection file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, delimiter)
		if len(fields) != 2 {
			return fmt.Errorf("%w: line %d: want 2 fields separated by %q, got %d",
				ErrMalformedLine, lineNo, delimiter, len(fields))
		}
		a := strings.TrimSpace(fields[0])
		b := strings.TrimSpace(fields[1])
		if a == "" || b == "" {
			return fmt.Errorf("%w: line %d: empty field", ErrMalformedLine, lineNo)
		}
		if err := emit(lineNo, a, b); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading connection file: %w", err)
	}
	return nil
}

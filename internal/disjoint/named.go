package disjoint

// Named is the label-driven client: nodes are referred to by arbitrary
// labels, resolved through a Registry before touching the Forest. Suited to
// incremental ingestion where nodes and connections arrive interleaved.
type Named struct {
	forest *Forest
	names  *Registry
}

// NewNamed creates an empty named client.
func NewNamed() *Named {
	f := NewForest(0)
	return &Named{
		forest: f,
		names:  NewRegistry(f),
	}
}

// AddNode registers label as a node. Adding a label twice is a no-op; the
// node keeps its original identity.
func (c *Named) AddNode(label string) {
	c.names.Register(label)
}

// ConnectNodes merges the sets containing the two labeled nodes. Both labels
// must have been added first; referencing an unknown label returns
// ErrUnknownLabel rather than implicitly creating the node.
func (c *Named) ConnectNodes(labelA, labelB string) error {
	a, err := c.names.Lookup(labelA)
	if err != nil {
		return err
	}
	b, err := c.names.Lookup(labelB)
	if err != nil {
		return err
	}
	_, err = c.forest.Union(a, b)
	return err
}

// Exists reports whether label has been added as a node.
func (c *Named) Exists(label string) bool {
	_, err := c.names.Lookup(label)
	return err == nil
}

// Connected reports whether the two labeled nodes are in the same set,
// directly or transitively.
func (c *Named) Connected(labelA, labelB string) (bool, error) {
	a, err := c.names.Lookup(labelA)
	if err != nil {
		return false, err
	}
	b, err := c.names.Lookup(labelB)
	if err != nil {
		return false, err
	}
	return c.forest.Connected(a, b)
}

// NodeCount returns the number of distinct nodes added.
func (c *Named) NodeCount() int {
	return c.forest.Len()
}

// DisjointSetCount returns the current number of disjoint sets.
func (c *Named) DisjointSetCount() int {
	return c.forest.SetCount()
}

package disjoint

// Connection is a single index-pair edge for bulk ingestion.
type Connection struct {
	A int
	B int
}

// Bulk is the high-volume client: the full node list is supplied up front,
// assigning indices by position, and connections arrive as index pairs that
// skip the per-call label lookup entirely.
type Bulk struct {
	forest *Forest
	names  *Registry
}

// NewBulk creates an empty bulk client.
func NewBulk() *Bulk {
	f := NewForest(0)
	return &Bulk{
		forest: f,
		names:  NewRegistry(f),
	}
}

// AddNodesBulk registers every label in order: the i-th label of the first
// batch gets index i. Labels are registered idempotently, so a duplicate
// inside the batch creates no new element and shifts the positional index of
// every label after it.
func (c *Bulk) AddNodesBulk(labels []string) {
	for _, label := range labels {
		c.names.Register(label)
	}
}

// ConnectNodesBulk applies the connections in input order. The final set
// count does not depend on the order. Returns ErrIndexOutOfRange on the
// first connection referencing an index beyond the added node count; earlier
// connections stay applied.
func (c *Bulk) ConnectNodesBulk(connections []Connection) error {
	for _, conn := range connections {
		if _, err := c.forest.Union(conn.A, conn.B); err != nil {
			return err
		}
	}
	return nil
}

// Label returns the label that was bulk-added at index.
func (c *Bulk) Label(index int) (string, error) {
	return c.names.Label(index)
}

// NodeCount returns the number of distinct nodes added.
func (c *Bulk) NodeCount() int {
	return c.forest.Len()
}

// DisjointSetCount returns the current number of disjoint sets.
func (c *Bulk) DisjointSetCount() int {
	return c.forest.SetCount()
}

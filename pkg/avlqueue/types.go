// Package avlqueue implements a hybrid AVL tree / per-key FIFO queue: a
// sorted index over insertion-ordered groups of values that share a key,
// backed by arena-indexed node storage instead of pointers so the whole
// structure can be persisted as a dense, slot-recycled table.
package avlqueue

// TreeNodeID and ListNodeID are 1-indexed slot ids into the tree-node and
// list-node arenas. The zero value of each is the null sentinel: no tree
// node or list node is ever allocated at id 0.
type TreeNodeID uint16

// ListNodeID is the 1-indexed slot id of a list node.
type ListNodeID uint16

const (
	// NullTreeNodeID is the sentinel meaning "no tree node."
	NullTreeNodeID TreeNodeID = 0
	// NullListNodeID is the sentinel meaning "no list node."
	NullListNodeID ListNodeID = 0

	// MaxNodeID is the largest id a 14-bit slot field can hold, and so the
	// largest number of tree nodes or list nodes a queue can allocate at
	// once (ids run 1..MaxNodeID; 0 is the null sentinel).
	MaxNodeID = 1<<14 - 1

	// MaxInsertionKey is the largest insertion key a caller may insert
	// (the low 32 bits of the access key).
	MaxInsertionKey = 1<<32 - 1

	// MaxCriticalHeight is the tallest an AVL (sub)tree may legally grow
	// given a 5-bit packed height field.
	MaxCriticalHeight = 1<<5 - 1

	// MaxTreeHeight is the worst-case height of a fully packed tree (the
	// phi-bound for MaxNodeID nodes). InsertCheckEviction rejects any
	// critical_height argument above this, since no tree this package can
	// build ever legitimately needs a taller threshold.
	MaxTreeHeight = 18
)

// SortOrder controls whether GetHeadKey reports the minimum or the maximum
// insertion key, i.e. whether the tree is read as an ascending or a
// descending priority queue.
type SortOrder bool

const (
	// Ascending orders the queue head at the minimum insertion key. It is
	// the SortOrder zero value, so a zero-value Config is an ascending
	// queue.
	Ascending SortOrder = false
	// Descending orders the queue head at the maximum insertion key.
	Descending SortOrder = true
)

// Ref is a tagged reference to either a tree node or a list node, used by
// a list node's "last" and "next" fields: the head and tail of a per-key
// list point at their owning tree node, while interior entries point at
// their list neighbors.
type Ref struct {
	// IsTreeNode reports whether ID names a tree node (true) or a list
	// node (false).
	IsTreeNode bool
	ID         uint16
}

// treeRef builds a Ref pointing at a tree node.
func treeRef(id TreeNodeID) Ref { return Ref{IsTreeNode: true, ID: uint16(id)} }

// listRef builds a Ref pointing at a list node.
func listRef(id ListNodeID) Ref { return Ref{IsTreeNode: false, ID: uint16(id)} }

// isNull reports whether a Ref carries the null id, regardless of its tag:
// id 0 is never a valid tree node or list node.
func (r Ref) isNull() bool { return r.ID == 0 }

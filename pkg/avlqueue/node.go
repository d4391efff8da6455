package avlqueue

// TreeNode is one AVL tree node: it owns an insertion key and the head and
// tail of the FIFO list of values inserted under that key. Balance factors
// are stored as the heights of each child subtree rather than as a signed
// delta, matching the packed external layout (§4.1) bit for bit.
//
// When a node is inactive (freed back to the arena) only inactiveNext is
// meaningful; every other field is zeroed.
type TreeNode struct {
	Key uint32

	LeftHeight  uint8
	RightHeight uint8

	Parent TreeNodeID
	Left   TreeNodeID
	Right  TreeNodeID

	ListHead ListNodeID
	ListTail ListNodeID

	inactiveNext TreeNodeID
}

// height returns the node's own height counted in nodes: one more than the
// taller child subtree, so 1 for a leaf with no children.
func (n *TreeNode) height() uint8 {
	if n.LeftHeight > n.RightHeight {
		return n.LeftHeight + 1
	}
	return n.RightHeight + 1
}

// balanceFactor is right height minus left height; AVL requires it stay in
// [-1, 1] at every node.
func (n *TreeNode) balanceFactor() int {
	return int(n.RightHeight) - int(n.LeftHeight)
}

// ListNode is one FIFO entry: a slot holding a value (tracked separately in
// a ValueStore, to keep this package's arena free of the generic type
// parameter) with "last" and "next" references that chain it to its
// neighbors, or to the owning TreeNode at the ends of the list.
//
// When a node is inactive, Next carries the next-in-inactive-stack id as a
// plain list ref and Last is meaningless; there is no dedicated free-list
// field, matching the packed external layout, which has room for only two
// 16-bit fields per list node.
type ListNode struct {
	Last Ref
	Next Ref
}

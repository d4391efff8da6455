package avlqueue

// rootRecord is the queue's single piece of O(1) state: the tree root, the
// two free-list stack tops, the sort order, and cached head/tail
// coordinates so GetHeadKey/GetTailKey never have to walk the tree.
type rootRecord struct {
	order SortOrder

	root TreeNodeID

	inactiveTreeTop TreeNodeID
	inactiveListTop ListNodeID

	// headListID/headKey and tailListID/tailKey are the coordinates of
	// the current head and tail entries. They are the zero value when
	// the queue is empty.
	headListID ListNodeID
	headKey    uint32

	tailListID ListNodeID
	tailKey    uint32
}

func (r *rootRecord) isEmpty() bool { return r.root == NullTreeNodeID }

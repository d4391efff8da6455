package avlqueue

// pushListNode appends value to the FIFO list owned by the tree node
// treeID, allocating a fresh list node for it and returning its id.
func (q *AVLQueue[T]) pushListNode(treeID TreeNodeID, value T) (ListNodeID, error) {
	newID, err := q.allocateListNode()
	if err != nil {
		return NullListNodeID, err
	}

	tn := q.trees.Borrow(treeID)
	ln := q.lists.Borrow(newID)

	if tn.ListHead == NullListNodeID {
		tn.ListHead = newID
		tn.ListTail = newID
		ln.Last = treeRef(treeID)
		ln.Next = treeRef(treeID)
	} else {
		oldTail := tn.ListTail
		q.lists.Borrow(oldTail).Next = listRef(newID)
		ln.Last = listRef(oldTail)
		ln.Next = treeRef(treeID)
		tn.ListTail = newID
	}

	q.values.Add(newID, value)
	return newID, nil
}

// unlinkListNode splices id out of its list, patching whichever of its
// neighbors (list nodes or the owning tree node's head/tail) bracket it.
// It does not free id's slot or touch its value; callers that are
// removing the entry entirely must also call freeListNode.
func (q *AVLQueue[T]) unlinkListNode(id ListNodeID) {
	ln := *q.lists.Borrow(id)

	if ln.Last.IsTreeNode {
		tn := q.trees.Borrow(TreeNodeID(ln.Last.ID))
		if ln.Next.IsTreeNode {
			tn.ListHead = NullListNodeID
		} else {
			tn.ListHead = ListNodeID(ln.Next.ID)
		}
	} else {
		q.lists.Borrow(ListNodeID(ln.Last.ID)).Next = ln.Next
	}

	if ln.Next.IsTreeNode {
		tn := q.trees.Borrow(TreeNodeID(ln.Next.ID))
		if ln.Last.IsTreeNode {
			tn.ListTail = NullListNodeID
		} else {
			tn.ListTail = ListNodeID(ln.Last.ID)
		}
	} else {
		q.lists.Borrow(ListNodeID(ln.Next.ID)).Last = ln.Last
	}
}

// isListEmpty reports whether treeID's list has no entries.
func (q *AVLQueue[T]) isListEmpty(treeID TreeNodeID) bool {
	return q.trees.Borrow(treeID).ListHead == NullListNodeID
}

// isLocalTail reports whether listID is the last entry in its own list
// (its Next ref points back at its owning tree node).
func (q *AVLQueue[T]) isLocalTail(listID ListNodeID) bool {
	return q.lists.Borrow(listID).Next.IsTreeNode
}

// isLocalHead reports whether listID is the first entry in its own list.
func (q *AVLQueue[T]) isLocalHead(listID ListNodeID) bool {
	return q.lists.Borrow(listID).Last.IsTreeNode
}

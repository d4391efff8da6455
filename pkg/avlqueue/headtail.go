package avlqueue

// updateBoundsOnInsert adjusts the cached head/tail coordinates after a
// value was appended to treeID's list at listID. The head of a key group
// never moves on insert (a new entry joins the back of its group, and the
// queue head is always the oldest entry of the extreme-key group); the
// tail does move whenever the new key ties or extends the extreme, since
// it becomes the new last entry of that group.
func (q *AVLQueue[T]) updateBoundsOnInsert(key uint32, listID ListNodeID) {
	if q.root.headListID == NullListNodeID {
		q.root.headListID, q.root.headKey = listID, key
		q.root.tailListID, q.root.tailKey = listID, key
		return
	}

	if q.root.order == Ascending {
		if key < q.root.headKey {
			q.root.headListID, q.root.headKey = listID, key
		}
		if key >= q.root.tailKey {
			q.root.tailListID, q.root.tailKey = listID, key
		}
	} else {
		if key > q.root.headKey {
			q.root.headListID, q.root.headKey = listID, key
		}
		if key <= q.root.tailKey {
			q.root.tailListID, q.root.tailKey = listID, key
		}
	}
}

// repairHeadAfterRemoval recomputes the cached head once the entry at
// headListID, belonging to tree node treeID, has just been unlinked. If
// treeID's list still has entries the head stays in the same key group,
// now starting at the group's new first entry. If the list went empty,
// treeID is deleted from the tree and the head moves to the next key
// group in the head direction (successor for ascending, predecessor for
// descending).
func (q *AVLQueue[T]) repairHeadAfterRemoval(treeID TreeNodeID) {
	if !q.isListEmpty(treeID) {
		tn := q.trees.Borrow(treeID)
		q.root.headListID = tn.ListHead
		return
	}

	var next TreeNodeID
	if q.root.order == Ascending {
		next = q.inorderSuccessor(treeID)
	} else {
		next = q.inorderPredecessor(treeID)
	}
	q.removeTreeNode(treeID)

	if next == NullTreeNodeID {
		q.root.headListID, q.root.headKey = NullListNodeID, 0
		q.root.tailListID, q.root.tailKey = NullListNodeID, 0
		return
	}
	nn := q.trees.Borrow(next)
	q.root.headListID, q.root.headKey = nn.ListHead, nn.Key
}

// repairTailAfterRemoval is repairHeadAfterRemoval's mirror for the tail.
func (q *AVLQueue[T]) repairTailAfterRemoval(treeID TreeNodeID) {
	if !q.isListEmpty(treeID) {
		tn := q.trees.Borrow(treeID)
		q.root.tailListID = tn.ListTail
		return
	}

	var next TreeNodeID
	if q.root.order == Ascending {
		next = q.inorderPredecessor(treeID)
	} else {
		next = q.inorderSuccessor(treeID)
	}
	q.removeTreeNode(treeID)

	if next == NullTreeNodeID {
		q.root.headListID, q.root.headKey = NullListNodeID, 0
		q.root.tailListID, q.root.tailKey = NullListNodeID, 0
		return
	}
	nn := q.trees.Borrow(next)
	q.root.tailListID, q.root.tailKey = nn.ListTail, nn.Key
}

// repairBothBoundsAfterRemoval handles the case where the removed entry
// was both the cached head and the cached tail. That can only happen when
// the tree holds exactly one distinct key (otherwise the head and tail
// groups would be different tree nodes with different lists), so once
// that key's list goes empty, the whole queue goes empty with it.
func (q *AVLQueue[T]) repairBothBoundsAfterRemoval(treeID TreeNodeID) {
	if !q.isListEmpty(treeID) {
		tn := q.trees.Borrow(treeID)
		q.root.headListID = tn.ListHead
		q.root.tailListID = tn.ListTail
		return
	}
	q.removeTreeNode(treeID)
	q.root.headListID, q.root.headKey = NullListNodeID, 0
	q.root.tailListID, q.root.tailKey = NullListNodeID, 0
}

// repairBoundsAfterInteriorRemoval is used when the removed entry was
// neither the cached head nor tail: if its list just went empty its tree
// node must still be deleted, but head/tail coordinates are untouched.
func (q *AVLQueue[T]) repairBoundsAfterInteriorRemoval(treeID TreeNodeID) {
	if q.isListEmpty(treeID) {
		q.removeTreeNode(treeID)
	}
}

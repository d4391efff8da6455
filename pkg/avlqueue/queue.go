package avlqueue

// AVLQueue is a sorted index over insertion-ordered groups of values that
// share a key: an AVL tree keyed on a 32-bit insertion key, where each
// tree node owns a FIFO list of every value inserted under that key. The
// queue's head is the oldest entry of the minimum (or, in Descending
// order, maximum) key group and its tail is the newest entry of the
// maximum (or minimum) key group, each trackable in O(1).
//
// Nodes live in arenas (TreeNodeStore, ListNodeStore, ValueStore) indexed
// by small recycled ids rather than pointers, so an AVLQueue can be backed
// by plain slices or by a file-backed store for persistence.
type AVLQueue[T any] struct {
	root   rootRecord
	trees  TreeNodeStore
	lists  ListNodeStore
	values ValueStore[T]
}

// New creates an empty AVLQueue per cfg.
func New[T any](cfg Config[T]) (*AVLQueue[T], error) {
	q := &AVLQueue[T]{
		root:   rootRecord{order: cfg.Order},
		trees:  cfg.TreeNodeStore,
		lists:  cfg.ListNodeStore,
		values: cfg.ValueStore,
	}
	if q.trees == nil {
		q.trees = newMemTreeStore()
	}
	if q.lists == nil {
		q.lists = newMemListStore()
	}
	if q.values == nil {
		q.values = newMemValueStore[T]()
	}

	if err := q.preallocateTreeNodes(cfg.PreallocateTreeNodes); err != nil {
		return nil, err
	}
	if err := q.preallocateListNodes(cfg.PreallocateListNodes); err != nil {
		return nil, err
	}
	return q, nil
}

// IsAscending reports the queue's sort order.
func (q *AVLQueue[T]) IsAscending() bool { return q.root.order == Ascending }

// IsEmpty reports whether the queue holds no entries.
func (q *AVLQueue[T]) IsEmpty() bool { return q.root.headListID == NullListNodeID }

// GetHeight returns the AVL height of the whole tree, or 0 if empty.
func (q *AVLQueue[T]) GetHeight() int {
	if q.root.isEmpty() {
		return 0
	}
	return int(q.trees.Borrow(q.root.root).height())
}

// GetHeadKey returns the queue's current head key and whether the queue
// is non-empty.
func (q *AVLQueue[T]) GetHeadKey() (uint32, bool) {
	if q.IsEmpty() {
		return 0, false
	}
	return q.root.headKey, true
}

// GetTailKey returns the queue's current tail key and whether the queue
// is non-empty.
func (q *AVLQueue[T]) GetTailKey() (uint32, bool) {
	if q.IsEmpty() {
		return 0, false
	}
	return q.root.tailKey, true
}

// HasKey reports whether any entry is currently filed under key.
func (q *AVLQueue[T]) HasKey(key uint32) bool {
	return q.findKey(key) != NullTreeNodeID
}

// ContainsActiveListNodeID reports whether listID currently names a live
// entry (as opposed to a free, recycled, or never-allocated slot).
func (q *AVLQueue[T]) ContainsActiveListNodeID(listID ListNodeID) bool {
	if listID == NullListNodeID || int(listID) > q.lists.Len() {
		return false
	}
	return q.values.IsSome(listID)
}

// IsLocalTail reports whether listID is the last entry of its own key's
// FIFO list.
func (q *AVLQueue[T]) IsLocalTail(listID ListNodeID) bool { return q.isLocalTail(listID) }

// IsLocalHead reports whether listID is the first entry of its own key's
// FIFO list.
func (q *AVLQueue[T]) IsLocalHead(listID ListNodeID) bool { return q.isLocalHead(listID) }

// NextListNodeID returns the list node that follows listID within its own
// key's FIFO list, and false if listID is already that list's local tail.
func (q *AVLQueue[T]) NextListNodeID(listID ListNodeID) (ListNodeID, bool) {
	next := q.lists.Borrow(listID).Next
	if next.IsTreeNode {
		return NullListNodeID, false
	}
	return ListNodeID(next.ID), true
}

// WouldUpdateHead reports whether inserting key right now would change
// the queue's head key.
func (q *AVLQueue[T]) WouldUpdateHead(key uint32) bool {
	if q.IsEmpty() {
		return true
	}
	if q.root.order == Ascending {
		return key < q.root.headKey
	}
	return key > q.root.headKey
}

// WouldUpdateTail reports whether inserting key right now would change
// the queue's tail key (including becoming the new last entry of the
// current tail's own group).
func (q *AVLQueue[T]) WouldUpdateTail(key uint32) bool {
	if q.IsEmpty() {
		return true
	}
	if q.root.order == Ascending {
		return key >= q.root.tailKey
	}
	return key <= q.root.tailKey
}

// Insert files value under key, appending it to that key's FIFO list
// (creating the key's tree node if needed), and returns an access key
// that Remove and Borrow accept to reach it again.
func (q *AVLQueue[T]) Insert(key uint64, value T) (uint64, error) {
	if key > MaxInsertionKey {
		return 0, ErrInsertionKeyTooLarge
	}
	k := uint32(key)

	treeID, isNew, err := q.findOrInsertKey(k)
	if err != nil {
		return 0, err
	}

	listID, err := q.pushListNode(treeID, value)
	if err != nil {
		if isNew {
			q.removeTreeNode(treeID)
		}
		return 0, err
	}

	q.updateBoundsOnInsert(k, listID)
	return encodeAccessKey(treeID, listID, q.root.order, k), nil
}

// EvictionOutcome reports what InsertCheckEviction did with the queue's
// former tail: Evicted is false when the insert went through without
// needing to make room.
type EvictionOutcome[T any] struct {
	EvictedAccessKey uint64
	EvictedValue     T
	Evicted          bool
}

// tailAccessKey builds the access key naming the queue's current tail,
// before that entry is removed out from under it.
func (q *AVLQueue[T]) tailAccessKey() uint64 {
	treeID := q.findKey(q.root.tailKey)
	return encodeAccessKey(treeID, q.root.tailListID, q.root.order, q.root.tailKey)
}

// InsertCheckEviction inserts (key, value), evicting the current tail
// first if doing so is needed to stay within critical_height or within
// the list-node arena's capacity. It fails with ErrInvalidHeight if
// criticalHeight exceeds MaxTreeHeight, and with ErrEvictNewTail if
// eviction is needed but key would itself become the new tail (evicting
// the old tail would be pointless, since key would just become it).
func (q *AVLQueue[T]) InsertCheckEviction(criticalHeight uint8, key uint64, value T) (uint64, EvictionOutcome[T], error) {
	var outcome EvictionOutcome[T]
	if criticalHeight > MaxTreeHeight {
		return 0, outcome, ErrInvalidHeight
	}
	if key > MaxInsertionKey {
		return 0, outcome, ErrInsertionKeyTooLarge
	}

	if q.IsEmpty() {
		newAccessKey, err := q.Insert(key, value)
		return newAccessKey, outcome, err
	}

	root := q.trees.Borrow(q.root.root)
	rootHeight := int(root.LeftHeight)
	if int(root.RightHeight) > rootHeight {
		rootHeight = int(root.RightHeight)
	}
	tooTall := rootHeight > int(criticalHeight)
	listsFull := q.lists.Len() >= MaxNodeID && q.root.inactiveListTop == NullListNodeID

	if !tooTall && !listsFull {
		newAccessKey, err := q.Insert(key, value)
		return newAccessKey, outcome, err
	}

	if q.WouldUpdateTail(uint32(key)) {
		return 0, outcome, ErrEvictNewTail
	}

	evictedAccessKey := q.tailAccessKey()
	evictedValue, err := q.PopTail()
	if err != nil {
		return 0, outcome, err
	}

	newAccessKey, err := q.Insert(key, value)
	if err != nil {
		return 0, outcome, err
	}

	outcome = EvictionOutcome[T]{EvictedAccessKey: evictedAccessKey, EvictedValue: evictedValue, Evicted: true}
	return newAccessKey, outcome, nil
}

// InsertEvictTail unconditionally evicts the current tail and inserts
// (key, value), for a caller enforcing a maximum queue size who already
// knows eviction is necessary. It fails with ErrEvictEmpty if the queue
// is empty, and with ErrEvictNewTail if key would itself become the new
// tail (evicting the old tail would be pointless, since key would just
// become it).
func (q *AVLQueue[T]) InsertEvictTail(key uint64, value T) (newAccessKey uint64, evictedAccessKey uint64, evictedValue T, err error) {
	if key > MaxInsertionKey {
		return 0, 0, evictedValue, ErrInsertionKeyTooLarge
	}
	if q.IsEmpty() {
		return 0, 0, evictedValue, ErrEvictEmpty
	}
	if q.WouldUpdateTail(uint32(key)) {
		return 0, 0, evictedValue, ErrEvictNewTail
	}

	evictedAccessKey = q.tailAccessKey()
	evictedValue, err = q.PopTail()
	if err != nil {
		return 0, 0, evictedValue, err
	}

	newAccessKey, err = q.Insert(key, value)
	if err != nil {
		return 0, 0, evictedValue, err
	}
	return newAccessKey, evictedAccessKey, evictedValue, nil
}

// Remove deletes the entry named by accessKey and returns its value. The
// access key's list node id is verified to name a currently active entry,
// and its insertion key is used to find that entry's tree node; no other
// field of accessKey is checked (see accesskey.go).
func (q *AVLQueue[T]) Remove(accessKey uint64) (T, error) {
	listID := DecodeListNodeID(accessKey)
	var zero T
	if !q.ContainsActiveListNodeID(listID) {
		return zero, ErrInactiveListNode
	}

	treeID := q.findKey(DecodeInsertionKey(accessKey))

	isHead := listID == q.root.headListID
	isTail := listID == q.root.tailListID

	q.unlinkListNode(listID)
	value := q.freeListNode(listID)

	switch {
	case isHead && isTail:
		q.repairBothBoundsAfterRemoval(treeID)
	case isHead:
		q.repairHeadAfterRemoval(treeID)
	case isTail:
		q.repairTailAfterRemoval(treeID)
	default:
		q.repairBoundsAfterInteriorRemoval(treeID)
	}

	return value, nil
}

// PopHead removes and returns the queue's current head value. It fails
// with ErrEvictEmpty if the queue is empty.
func (q *AVLQueue[T]) PopHead() (T, error) {
	var zero T
	if q.IsEmpty() {
		return zero, ErrEvictEmpty
	}
	listID := q.root.headListID
	treeID := q.findKey(q.root.headKey)

	isTail := listID == q.root.tailListID
	q.unlinkListNode(listID)
	value := q.freeListNode(listID)

	if isTail {
		q.repairBothBoundsAfterRemoval(treeID)
	} else {
		q.repairHeadAfterRemoval(treeID)
	}
	return value, nil
}

// PopTail removes and returns the queue's current tail value. It fails
// with ErrEvictEmpty if the queue is empty.
func (q *AVLQueue[T]) PopTail() (T, error) {
	var zero T
	if q.IsEmpty() {
		return zero, ErrEvictEmpty
	}
	listID := q.root.tailListID
	treeID := q.findKey(q.root.tailKey)

	isHead := listID == q.root.headListID
	q.unlinkListNode(listID)
	value := q.freeListNode(listID)

	if isHead {
		q.repairBothBoundsAfterRemoval(treeID)
	} else {
		q.repairTailAfterRemoval(treeID)
	}
	return value, nil
}

// Borrow returns a pointer to the value named by accessKey's list node
// id, for in-place reads or mutation, and reports whether that id names
// an active entry.
func (q *AVLQueue[T]) Borrow(accessKey uint64) (*T, bool) {
	listID := DecodeListNodeID(accessKey)
	if !q.ContainsActiveListNodeID(listID) {
		return nil, false
	}
	return q.values.Borrow(listID), true
}

// BorrowHead returns a pointer to the queue's current head value.
func (q *AVLQueue[T]) BorrowHead() (*T, bool) {
	if q.IsEmpty() {
		return nil, false
	}
	return q.values.Borrow(q.root.headListID), true
}

// BorrowTail returns a pointer to the queue's current tail value.
func (q *AVLQueue[T]) BorrowTail() (*T, bool) {
	if q.IsEmpty() {
		return nil, false
	}
	return q.values.Borrow(q.root.tailListID), true
}

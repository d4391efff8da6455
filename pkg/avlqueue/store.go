package avlqueue

// TreeNodeStore is the arena collaborator for tree nodes. Add installs a
// node at id, which must be either one past the current Len (a fresh
// slot) or an id previously handed back (a recycled slot); Borrow returns
// a pointer into storage for in-place reads and writes.
type TreeNodeStore interface {
	Add(id TreeNodeID, n TreeNode)
	Borrow(id TreeNodeID) *TreeNode
	Len() int
}

// ListNodeStore is the arena collaborator for list nodes, with the same
// slot discipline as TreeNodeStore.
type ListNodeStore interface {
	Add(id ListNodeID, n ListNode)
	Borrow(id ListNodeID) *ListNode
	Len() int
}

// ValueStore is the arena collaborator for the values carried by list
// nodes, kept separate from ListNodeStore so the node arena itself stays
// free of the queue's generic type parameter. Borrow exposes a pointer to
// the value currently held at id (the option-container's "borrow" and
// "borrow mut" operations collapse to the same pointer in Go); Take
// extracts the value and leaves the slot empty, the way removing a list
// node also reclaims its value.
type ValueStore[T any] interface {
	Add(id ListNodeID, v T)
	Borrow(id ListNodeID) *T
	Take(id ListNodeID) T
	IsSome(id ListNodeID) bool
	Len() int
}

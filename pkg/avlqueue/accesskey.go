package avlqueue

// Access keys pack the coordinates of one queue entry into a single
// uint64, the way a caller would store a compact handle instead of a
// (tree node, list node, key) triple. Layout, low bit to high bit:
//
//	bits 0-31:  insertion key (32 bits)
//	bit  32:    sort order flag (1 = ascending, 0 = descending)
//	bits 33-46: list node id (14 bits)
//	bits 47-60: tree node id (14 bits)
//	bits 61-63: reserved, always 0
//
// Of these, only the list node id is ever checked by a lookup: it names
// the slot a value actually lives in, so a stale or forged id there is
// caught as soon as the slot is found inactive. The insertion key, sort
// flag, and tree node id are never verified; Remove reads the insertion
// key to find the entry's key group, and the other two are carried along
// for the caller's convenience. Passing a key whose informational fields don't match its list node id
// is undefined behavior, same as passing a key for an entry that was
// already removed.
const (
	accessKeyInsertionKeyBits = 32
	accessKeySortFlagBit      = 32
	accessKeyListNodeIDShift  = 33
	accessKeyTreeNodeIDShift  = 47
	accessKeyFieldMask14      = 1<<14 - 1
)

// encodeAccessKey packs an entry's coordinates into its external handle.
func encodeAccessKey(treeID TreeNodeID, listID ListNodeID, order SortOrder, key uint32) uint64 {
	var sortBit uint64
	if order == Ascending {
		sortBit = 1
	}
	return uint64(key) |
		(sortBit << accessKeySortFlagBit) |
		(uint64(listID&accessKeyFieldMask14) << accessKeyListNodeIDShift) |
		(uint64(treeID&accessKeyFieldMask14) << accessKeyTreeNodeIDShift)
}

// DecodeListNodeID extracts the (verified) list node id from an access
// key.
func DecodeListNodeID(accessKey uint64) ListNodeID {
	return ListNodeID((accessKey >> accessKeyListNodeIDShift) & accessKeyFieldMask14)
}

// DecodeTreeNodeID extracts the informational tree node id from an access
// key. Not verified or used on lookup; see the note at the top of
// accesskey.go.
func DecodeTreeNodeID(accessKey uint64) TreeNodeID {
	return TreeNodeID((accessKey >> accessKeyTreeNodeIDShift) & accessKeyFieldMask14)
}

// DecodeSortOrder extracts the informational sort order flag from an
// access key.
func DecodeSortOrder(accessKey uint64) SortOrder {
	return SortOrder((accessKey>>accessKeySortFlagBit)&1 == 0)
}

// DecodeInsertionKey extracts the informational insertion key from an
// access key.
func DecodeInsertionKey(accessKey uint64) uint32 {
	return uint32(accessKey)
}

package avlqueue

// Packed record sizes for the external, persisted layouts. These are the
// byte widths OpenFileQueue (persist.go) hands to
// internal/filestore.RecordFile for the file-backed stores.
const (
	TreeNodeRecordSize = 16 // one 128-bit word
	ListNodeRecordSize = 4  // two 16-bit fields
	RootRecordSize     = 17 // one 128-bit word plus one byte
)

// Tree node field positions within its 128-bit word.
const (
	tnKeyOffset, tnKeyWidth                 = 94, 32
	tnLeftHeightOffset, tnLeftHeightWidth   = 89, 5
	tnRightHeightOffset, tnRightHeightWidth = 84, 5
	tnParentOffset, tnParentWidth           = 70, 14
	tnLeftOffset, tnLeftWidth               = 56, 14
	tnRightOffset, tnRightWidth             = 42, 14
	tnListHeadOffset, tnListHeadWidth       = 28, 14
	tnListTailOffset, tnListTailWidth       = 14, 14
	tnInactiveNextOffset, tnInactiveWidth   = 0, 14
)

// EncodeTreeNode packs n into its external 16-byte record.
func EncodeTreeNode(n TreeNode) []byte {
	var hi, lo uint64
	setField(&hi, &lo, tnKeyOffset, tnKeyWidth, uint64(n.Key))
	setField(&hi, &lo, tnLeftHeightOffset, tnLeftHeightWidth, uint64(n.LeftHeight))
	setField(&hi, &lo, tnRightHeightOffset, tnRightHeightWidth, uint64(n.RightHeight))
	setField(&hi, &lo, tnParentOffset, tnParentWidth, uint64(n.Parent))
	setField(&hi, &lo, tnLeftOffset, tnLeftWidth, uint64(n.Left))
	setField(&hi, &lo, tnRightOffset, tnRightWidth, uint64(n.Right))
	setField(&hi, &lo, tnListHeadOffset, tnListHeadWidth, uint64(n.ListHead))
	setField(&hi, &lo, tnListTailOffset, tnListTailWidth, uint64(n.ListTail))
	setField(&hi, &lo, tnInactiveNextOffset, tnInactiveWidth, uint64(n.inactiveNext))

	buf := make([]byte, TreeNodeRecordSize)
	wordToBytes(hi, lo, buf)
	return buf
}

// DecodeTreeNode unpacks a 16-byte external record into a TreeNode.
func DecodeTreeNode(buf []byte) TreeNode {
	hi, lo := wordFromBytes(buf)
	return TreeNode{
		Key:          uint32(getField(hi, lo, tnKeyOffset, tnKeyWidth)),
		LeftHeight:   uint8(getField(hi, lo, tnLeftHeightOffset, tnLeftHeightWidth)),
		RightHeight:  uint8(getField(hi, lo, tnRightHeightOffset, tnRightHeightWidth)),
		Parent:       TreeNodeID(getField(hi, lo, tnParentOffset, tnParentWidth)),
		Left:         TreeNodeID(getField(hi, lo, tnLeftOffset, tnLeftWidth)),
		Right:        TreeNodeID(getField(hi, lo, tnRightOffset, tnRightWidth)),
		ListHead:     ListNodeID(getField(hi, lo, tnListHeadOffset, tnListHeadWidth)),
		ListTail:     ListNodeID(getField(hi, lo, tnListTailOffset, tnListTailWidth)),
		inactiveNext: TreeNodeID(getField(hi, lo, tnInactiveNextOffset, tnInactiveWidth)),
	}
}

// refTagBit marks, within a packed 16-bit list-node field, whether the
// referenced id is a tree node (1) or a list node (0).
const refTagBit = 1 << 14

func encodeRefField(r Ref) uint16 {
	v := r.ID & (1<<14 - 1)
	if r.IsTreeNode {
		v |= refTagBit
	}
	return v
}

func decodeRefField(v uint16) Ref {
	return Ref{IsTreeNode: v&refTagBit != 0, ID: v & (1<<14 - 1)}
}

// EncodeListNode packs n into its external 4-byte record: two 16-bit
// tagged reference fields, "last" then "next".
func EncodeListNode(n ListNode) []byte {
	buf := make([]byte, ListNodeRecordSize)
	last := encodeRefField(n.Last)
	next := encodeRefField(n.Next)
	buf[0], buf[1] = byte(last), byte(last>>8)
	buf[2], buf[3] = byte(next), byte(next>>8)
	return buf
}

// DecodeListNode unpacks a 4-byte external record into a ListNode.
func DecodeListNode(buf []byte) ListNode {
	last := uint16(buf[0]) | uint16(buf[1])<<8
	next := uint16(buf[2]) | uint16(buf[3])<<8
	return ListNode{Last: decodeRefField(last), Next: decodeRefField(next)}
}

// Root record field positions within its 128-bit word; the root tree node
// id itself straddles the word and a trailing byte (rrRootIDLowByteIndex).
const (
	rrSortOrderOffset, rrSortOrderWidth       = 126, 1
	rrInactiveTreeOffset, rrInactiveTreeWidth = 112, 14
	rrInactiveListOffset, rrInactiveListWidth = 98, 14
	rrHeadListOffset, rrHeadListWidth         = 84, 14
	rrHeadKeyOffset, rrHeadKeyWidth           = 52, 32
	rrTailListOffset, rrTailListWidth         = 38, 14
	rrTailKeyOffset, rrTailKeyWidth           = 6, 32
	rrRootIDHighOffset, rrRootIDHighWidth     = 0, 6
	rrRootIDLowByteIndex                      = 16
)

// EncodeRoot packs r and the separately-tracked root tree node id into the
// external 17-byte record.
func EncodeRoot(r rootRecord, rootID TreeNodeID) []byte {
	var hi, lo uint64
	var sortBit uint64
	if r.order == Descending {
		sortBit = 1
	}
	setField(&hi, &lo, rrSortOrderOffset, rrSortOrderWidth, sortBit)
	setField(&hi, &lo, rrInactiveTreeOffset, rrInactiveTreeWidth, uint64(r.inactiveTreeTop))
	setField(&hi, &lo, rrInactiveListOffset, rrInactiveListWidth, uint64(r.inactiveListTop))
	setField(&hi, &lo, rrHeadListOffset, rrHeadListWidth, uint64(r.headListID))
	setField(&hi, &lo, rrHeadKeyOffset, rrHeadKeyWidth, uint64(r.headKey))
	setField(&hi, &lo, rrTailListOffset, rrTailListWidth, uint64(r.tailListID))
	setField(&hi, &lo, rrTailKeyOffset, rrTailKeyWidth, uint64(r.tailKey))
	setField(&hi, &lo, rrRootIDHighOffset, rrRootIDHighWidth, uint64(rootID)>>8)

	buf := make([]byte, RootRecordSize)
	wordToBytes(hi, lo, buf[:16])
	buf[rrRootIDLowByteIndex] = byte(rootID)
	return buf
}

// DecodeRoot unpacks a 17-byte external record into a rootRecord and the
// root tree node id.
func DecodeRoot(buf []byte) (rootRecord, TreeNodeID) {
	hi, lo := wordFromBytes(buf[:16])
	order := Ascending
	if getField(hi, lo, rrSortOrderOffset, rrSortOrderWidth) == 1 {
		order = Descending
	}
	r := rootRecord{
		order:           order,
		inactiveTreeTop: TreeNodeID(getField(hi, lo, rrInactiveTreeOffset, rrInactiveTreeWidth)),
		inactiveListTop: ListNodeID(getField(hi, lo, rrInactiveListOffset, rrInactiveListWidth)),
		headListID:      ListNodeID(getField(hi, lo, rrHeadListOffset, rrHeadListWidth)),
		headKey:         uint32(getField(hi, lo, rrHeadKeyOffset, rrHeadKeyWidth)),
		tailListID:      ListNodeID(getField(hi, lo, rrTailListOffset, rrTailListWidth)),
		tailKey:         uint32(getField(hi, lo, rrTailKeyOffset, rrTailKeyWidth)),
	}
	rootIDHigh := getField(hi, lo, rrRootIDHighOffset, rrRootIDHighWidth)
	rootID := TreeNodeID(rootIDHigh<<8 | uint64(buf[rrRootIDLowByteIndex]))
	return r, rootID
}

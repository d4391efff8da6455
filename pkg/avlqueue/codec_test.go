package avlqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreeNodeCodecRoundTrip(t *testing.T) {
	n := TreeNode{
		Key:          123456789,
		LeftHeight:   17,
		RightHeight:  3,
		Parent:       9001,
		Left:         1,
		Right:        16383,
		ListHead:     42,
		ListTail:     43,
		inactiveNext: 7,
	}
	got := DecodeTreeNode(EncodeTreeNode(n))
	assert.Equal(t, n, got)
}

func TestTreeNodeCodecZeroValue(t *testing.T) {
	got := DecodeTreeNode(EncodeTreeNode(TreeNode{}))
	assert.Equal(t, TreeNode{}, got)
}

func TestListNodeCodecRoundTrip(t *testing.T) {
	cases := []ListNode{
		{Last: treeRef(5), Next: listRef(9)},
		{Last: listRef(9), Next: treeRef(5)},
		{Last: listRef(1), Next: listRef(16383)},
		{},
	}
	for _, n := range cases {
		got := DecodeListNode(EncodeListNode(n))
		assert.Equal(t, n, got)
	}
}

func TestRootRecordCodecRoundTrip(t *testing.T) {
	r := rootRecord{
		order:           Descending,
		inactiveTreeTop: 11,
		inactiveListTop: 22,
		headListID:      33,
		headKey:         1000,
		tailListID:      44,
		tailKey:         2000,
	}
	buf := EncodeRoot(r, 16383)
	gotR, gotRootID := DecodeRoot(buf)
	assert.Equal(t, r, gotR)
	assert.Equal(t, TreeNodeID(16383), gotRootID)
}

func TestRootRecordCodecAscendingAndSmallRootID(t *testing.T) {
	r := rootRecord{order: Ascending}
	buf := EncodeRoot(r, 1)
	gotR, gotRootID := DecodeRoot(buf)
	assert.Equal(t, Ascending, gotR.order)
	assert.Equal(t, TreeNodeID(1), gotRootID)
}

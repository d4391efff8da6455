package avlqueue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T, order SortOrder) *AVLQueue[string] {
	t.Helper()
	q, err := New(Config[string]{Order: order})
	require.NoError(t, err)
	return q
}

func TestEmptyQueue(t *testing.T) {
	q := newTestQueue(t, Ascending)
	assert.True(t, q.IsEmpty())
	_, ok := q.GetHeadKey()
	assert.False(t, ok)
	_, ok = q.GetTailKey()
	assert.False(t, ok)
	assert.Equal(t, 0, q.GetHeight())

	_, err := q.PopHead()
	assert.ErrorIs(t, err, ErrEvictEmpty)
	_, err = q.PopTail()
	assert.ErrorIs(t, err, ErrEvictEmpty)
}

func TestInsertSingle(t *testing.T) {
	q := newTestQueue(t, Ascending)
	ak, err := q.Insert(42, "hello")
	require.NoError(t, err)

	head, ok := q.GetHeadKey()
	require.True(t, ok)
	assert.Equal(t, uint32(42), head)
	tail, ok := q.GetTailKey()
	require.True(t, ok)
	assert.Equal(t, uint32(42), tail)

	v, ok := q.Borrow(ak)
	require.True(t, ok)
	assert.Equal(t, "hello", *v)
}

func TestAscendingHeadIsMinimum(t *testing.T) {
	q := newTestQueue(t, Ascending)
	keys := []uint64{50, 10, 90, 30, 70}
	for _, k := range keys {
		_, err := q.Insert(k, "v")
		require.NoError(t, err)
	}
	head, _ := q.GetHeadKey()
	assert.Equal(t, uint32(10), head)
	tail, _ := q.GetTailKey()
	assert.Equal(t, uint32(90), tail)
}

func TestDescendingHeadIsMaximum(t *testing.T) {
	q := newTestQueue(t, Descending)
	keys := []uint64{50, 10, 90, 30, 70}
	for _, k := range keys {
		_, err := q.Insert(k, "v")
		require.NoError(t, err)
	}
	head, _ := q.GetHeadKey()
	assert.Equal(t, uint32(90), head)
	tail, _ := q.GetTailKey()
	assert.Equal(t, uint32(10), tail)
}

func TestFIFOWithinKey(t *testing.T) {
	q := newTestQueue(t, Ascending)
	_, err := q.Insert(5, "first")
	require.NoError(t, err)
	_, err = q.Insert(5, "second")
	require.NoError(t, err)
	_, err = q.Insert(5, "third")
	require.NoError(t, err)

	v, err := q.PopHead()
	require.NoError(t, err)
	assert.Equal(t, "first", v)
	v, err = q.PopHead()
	require.NoError(t, err)
	assert.Equal(t, "second", v)
	v, err = q.PopHead()
	require.NoError(t, err)
	assert.Equal(t, "third", v)
	assert.True(t, q.IsEmpty())
}

func TestPopHeadAdvancesToNextGroup(t *testing.T) {
	q := newTestQueue(t, Ascending)
	_, err := q.Insert(1, "a")
	require.NoError(t, err)
	_, err = q.Insert(2, "b")
	require.NoError(t, err)
	_, err = q.Insert(3, "c")
	require.NoError(t, err)

	v, err := q.PopHead()
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	head, _ := q.GetHeadKey()
	assert.Equal(t, uint32(2), head)

	v, err = q.PopHead()
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	head, _ = q.GetHeadKey()
	assert.Equal(t, uint32(3), head)

	v, err = q.PopTail()
	require.NoError(t, err)
	assert.Equal(t, "c", v)
	assert.True(t, q.IsEmpty())
}

func TestRemoveByAccessKeyMidQueue(t *testing.T) {
	q := newTestQueue(t, Ascending)
	_, err := q.Insert(1, "a")
	require.NoError(t, err)
	akB, err := q.Insert(2, "b")
	require.NoError(t, err)
	_, err = q.Insert(3, "c")
	require.NoError(t, err)

	v, err := q.Remove(akB)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	assert.False(t, q.HasKey(2))
	head, _ := q.GetHeadKey()
	tail, _ := q.GetTailKey()
	assert.Equal(t, uint32(1), head)
	assert.Equal(t, uint32(3), tail)
}

func TestRemoveInvalidatesAccessKey(t *testing.T) {
	q := newTestQueue(t, Ascending)
	ak, err := q.Insert(1, "a")
	require.NoError(t, err)
	_, err = q.Remove(ak)
	require.NoError(t, err)

	_, err = q.Remove(ak)
	assert.ErrorIs(t, err, ErrInactiveListNode)
}

func TestWouldUpdateHeadTail(t *testing.T) {
	q := newTestQueue(t, Ascending)
	assert.True(t, q.WouldUpdateHead(5))
	assert.True(t, q.WouldUpdateTail(5))

	_, err := q.Insert(5, "v")
	require.NoError(t, err)

	assert.False(t, q.WouldUpdateHead(10))
	assert.True(t, q.WouldUpdateTail(10))
	assert.True(t, q.WouldUpdateHead(1))
	assert.False(t, q.WouldUpdateTail(1))
	// A tie extends the tail's own group (appending becomes the new local
	// tail) but never the head's.
	assert.False(t, q.WouldUpdateHead(5))
	assert.True(t, q.WouldUpdateTail(5))
}

func TestInsertCheckEvictionAndEvictTail(t *testing.T) {
	q := newTestQueue(t, Ascending)
	_, err := q.Insert(10, "a")
	require.NoError(t, err)
	_, err = q.Insert(20, "b")
	require.NoError(t, err)

	// Well under capacity and critical height, so this is an ordinary insert.
	newKey, outcome, err := q.InsertCheckEviction(18, 15, "c")
	require.NoError(t, err)
	assert.False(t, outcome.Evicted)
	v, ok := q.Borrow(newKey)
	require.True(t, ok)
	assert.Equal(t, "c", *v)

	// InsertEvictTail unconditionally evicts the current tail (20, "b").
	newKey, evictedKey, evictedValue, err := q.InsertEvictTail(5, "d")
	require.NoError(t, err)
	assert.Equal(t, "b", evictedValue)
	assert.NotZero(t, newKey)
	assert.NotZero(t, evictedKey)

	// Entries are now 5, 10, 15; inserting 30 would itself become the new tail.
	_, _, _, err = q.InsertEvictTail(30, "e")
	assert.ErrorIs(t, err, ErrEvictNewTail)

	// critical_height above MaxTreeHeight fails regardless of queue state.
	_, _, err = q.InsertCheckEviction(MaxTreeHeight+1, 1, "f")
	assert.ErrorIs(t, err, ErrInvalidHeight)
}

// TestInsertCheckEvictionScenario5 mirrors the specification's eviction
// scenario: fill the queue to its list-node capacity with ascending keys,
// then call InsertCheckEviction with a key that would become the new
// head, not the tail — it must evict the current (maximum-key) tail and
// insert the new entry in its place.
func TestInsertCheckEvictionScenario5(t *testing.T) {
	q := newTestQueue(t, Ascending)
	for i := 1; i <= MaxNodeID; i++ {
		_, err := q.Insert(uint64(i), "v")
		require.NoError(t, err)
	}
	require.Equal(t, MaxNodeID, q.lists.Len())

	tailKey, ok := q.GetTailKey()
	require.True(t, ok)
	require.Equal(t, uint32(MaxNodeID), tailKey)

	newAccessKey, outcome, err := q.InsertCheckEviction(MaxTreeHeight, 0, "z")
	require.NoError(t, err)
	assert.True(t, outcome.Evicted)
	assert.Equal(t, "v", outcome.EvictedValue)

	newTailKey, ok := q.GetTailKey()
	require.True(t, ok)
	assert.Equal(t, uint32(MaxNodeID-1), newTailKey)

	v, ok := q.Borrow(newAccessKey)
	require.True(t, ok)
	assert.Equal(t, "z", *v)
}

func TestInsertionKeyTooLarge(t *testing.T) {
	q := newTestQueue(t, Ascending)
	_, err := q.Insert(MaxInsertionKey+1, "v")
	assert.ErrorIs(t, err, ErrInsertionKeyTooLarge)
}

func TestBorrowMutatesInPlace(t *testing.T) {
	q, err := New(Config[int]{})
	require.NoError(t, err)
	ak, err := q.Insert(1, 100)
	require.NoError(t, err)

	v, ok := q.Borrow(ak)
	require.True(t, ok)
	*v = 200

	head, ok := q.BorrowHead()
	require.True(t, ok)
	assert.Equal(t, 200, *head)
}

func TestRandomizedAgainstReferenceModel(t *testing.T) {
	q := newTestQueue(t, Ascending)
	rng := rand.New(rand.NewSource(1))

	type entry struct {
		key   uint32
		value string
		ak    uint64
		alive bool
	}
	var entries []entry

	for i := 0; i < 500; i++ {
		op := rng.Intn(3)
		switch {
		case op == 0 || len(entries) == 0:
			key := uint32(rng.Intn(50))
			ak, err := q.Insert(uint64(key), "v")
			require.NoError(t, err)
			entries = append(entries, entry{key: key, ak: ak, alive: true})

		case op == 1:
			// remove a random alive entry by access key
			var alive []int
			for j, e := range entries {
				if e.alive {
					alive = append(alive, j)
				}
			}
			if len(alive) == 0 {
				continue
			}
			idx := alive[rng.Intn(len(alive))]
			_, err := q.Remove(entries[idx].ak)
			require.NoError(t, err)
			entries[idx].alive = false

		default:
			_, err := q.PopHead()
			if err == ErrEvictEmpty {
				continue
			}
			require.NoError(t, err)
			// The popped value corresponds to the FIFO-oldest alive entry
			// at the current minimum key; which one doesn't matter for
			// the head-key invariant checked below, so just retire one
			// alive entry at that key.
			minKey, minIdx := uint32(0), -1
			for j, e := range entries {
				if e.alive && (minIdx == -1 || e.key < minKey) {
					minKey, minIdx = e.key, j
				}
			}
			require.NotEqual(t, -1, minIdx)
			entries[minIdx].alive = false
		}

		minAlive := uint32(0)
		found := false
		for _, e := range entries {
			if e.alive && (!found || e.key < minAlive) {
				minAlive = e.key
				found = true
			}
		}
		head, ok := q.GetHeadKey()
		assert.Equal(t, found, ok)
		if found {
			assert.Equal(t, minAlive, head)
		}
	}
}

package avlqueue

import (
	"fmt"

	"avlqueue/internal/filestore"
)

// This file adapts the package's node codecs (codec.go) to
// internal/filestore.RecordFile, producing TreeNodeStore, ListNodeStore,
// and ValueStore[T] implementations that persist a queue to a
// memory-mapped file instead of keeping it only in process memory.
//
// Borrow needs to hand back a live pointer for in-place mutation, but a
// RecordFile only deals in encode/decode round trips, so each file-backed
// store keeps an in-memory mirror (the same slice-backed store the
// default collaborators use) for Borrow and writes to the RecordFile only
// on an explicit Flush (Close also flushes), the way a page cache defers
// writes to its backing file until told to sync.

// FileTreeNodeStore is a TreeNodeStore persisted to a RecordFile.
type FileTreeNodeStore struct {
	mem *memTreeStore
	rf  *filestore.RecordFile
}

// NewFileTreeNodeStore wraps rf, hydrating an in-memory mirror from
// whatever records rf already holds (so reopening a file picks up where
// it left off).
func NewFileTreeNodeStore(rf *filestore.RecordFile) (*FileTreeNodeStore, error) {
	mem := newMemTreeStore()
	count := rf.Count()
	for id := uint32(1); id <= count; id++ {
		payload, err := rf.Read(id)
		if err != nil {
			return nil, err
		}
		mem.Add(TreeNodeID(id), DecodeTreeNode(payload))
	}
	return &FileTreeNodeStore{mem: mem, rf: rf}, nil
}

func (s *FileTreeNodeStore) Add(id TreeNodeID, n TreeNode) { s.mem.Add(id, n) }
func (s *FileTreeNodeStore) Borrow(id TreeNodeID) *TreeNode { return s.mem.Borrow(id) }
func (s *FileTreeNodeStore) Len() int                       { return s.mem.Len() }

// Flush persists every allocated tree node record to the backing file.
func (s *FileTreeNodeStore) Flush() error {
	for id := 1; id <= s.mem.Len(); id++ {
		n := *s.mem.Borrow(TreeNodeID(id))
		if err := s.rf.Write(uint32(id), EncodeTreeNode(n)); err != nil {
			return err
		}
	}
	return s.rf.Sync()
}

// Close flushes and releases the backing file.
func (s *FileTreeNodeStore) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return s.rf.Close()
}

// FileListNodeStore is a ListNodeStore persisted to a RecordFile.
type FileListNodeStore struct {
	mem *memListStore
	rf  *filestore.RecordFile
}

// NewFileListNodeStore wraps rf, hydrating from existing records.
func NewFileListNodeStore(rf *filestore.RecordFile) (*FileListNodeStore, error) {
	mem := newMemListStore()
	count := rf.Count()
	for id := uint32(1); id <= count; id++ {
		payload, err := rf.Read(id)
		if err != nil {
			return nil, err
		}
		mem.Add(ListNodeID(id), DecodeListNode(payload))
	}
	return &FileListNodeStore{mem: mem, rf: rf}, nil
}

func (s *FileListNodeStore) Add(id ListNodeID, n ListNode) { s.mem.Add(id, n) }
func (s *FileListNodeStore) Borrow(id ListNodeID) *ListNode { return s.mem.Borrow(id) }
func (s *FileListNodeStore) Len() int                       { return s.mem.Len() }

// Flush persists every allocated list node record to the backing file.
func (s *FileListNodeStore) Flush() error {
	for id := 1; id <= s.mem.Len(); id++ {
		n := *s.mem.Borrow(ListNodeID(id))
		if err := s.rf.Write(uint32(id), EncodeListNode(n)); err != nil {
			return err
		}
	}
	return s.rf.Sync()
}

// Close flushes and releases the backing file.
func (s *FileListNodeStore) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return s.rf.Close()
}

// FileValueStore is a ValueStore[T] persisted to a RecordFile. Since
// RecordFile only knows fixed-size byte records, each record reserves a
// 2-byte length prefix followed by up to maxPayload bytes; a length of 0
// means the slot holds no value. T must marshal to no more than
// maxPayload bytes and never legitimately to zero bytes.
type FileValueStore[T any] struct {
	mem        *memValueStore[T]
	rf         *filestore.RecordFile
	maxPayload int
	marshal    func(T) ([]byte, error)
	unmarshal  func([]byte) (T, error)
}

// NewFileValueStore wraps rf (whose record size must be maxPayload+2),
// hydrating from existing records via unmarshal.
func NewFileValueStore[T any](rf *filestore.RecordFile, maxPayload int, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) (*FileValueStore[T], error) {
	mem := newMemValueStore[T]()
	count := rf.Count()
	for id := uint32(1); id <= count; id++ {
		record, err := rf.Read(id)
		if err != nil {
			return nil, err
		}
		length := int(record[0])<<8 | int(record[1])
		if length == 0 {
			var zero T
			mem.Add(ListNodeID(id), zero)
			mem.Take(ListNodeID(id))
			continue
		}
		v, err := unmarshal(record[2 : 2+length])
		if err != nil {
			return nil, err
		}
		mem.Add(ListNodeID(id), v)
	}
	return &FileValueStore[T]{mem: mem, rf: rf, maxPayload: maxPayload, marshal: marshal, unmarshal: unmarshal}, nil
}

func (s *FileValueStore[T]) Add(id ListNodeID, v T)    { s.mem.Add(id, v) }
func (s *FileValueStore[T]) Borrow(id ListNodeID) *T   { return s.mem.Borrow(id) }
func (s *FileValueStore[T]) Take(id ListNodeID) T      { return s.mem.Take(id) }
func (s *FileValueStore[T]) IsSome(id ListNodeID) bool { return s.mem.IsSome(id) }
func (s *FileValueStore[T]) Len() int                  { return s.mem.Len() }

// Flush persists every allocated value record to the backing file.
func (s *FileValueStore[T]) Flush() error {
	record := make([]byte, s.maxPayload+2)
	for id := 1; id <= s.mem.Len(); id++ {
		lid := ListNodeID(id)
		for i := range record {
			record[i] = 0
		}
		if s.mem.IsSome(lid) {
			payload, err := s.marshal(*s.mem.Borrow(lid))
			if err != nil {
				return err
			}
			if len(payload) > s.maxPayload {
				return fmt.Errorf("avlqueue: value at list node %d is %d bytes, exceeds max payload %d", id, len(payload), s.maxPayload)
			}
			record[0] = byte(len(payload) >> 8)
			record[1] = byte(len(payload))
			copy(record[2:], payload)
		}
		if err := s.rf.Write(uint32(id), record); err != nil {
			return err
		}
	}
	return s.rf.Sync()
}

// Close flushes and releases the backing file.
func (s *FileValueStore[T]) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return s.rf.Close()
}

package avlqueue

import (
	"path/filepath"

	"avlqueue/internal/filestore"
)

// FileQueue bundles an AVLQueue with the four RecordFiles (tree nodes,
// list nodes, values, and the root record) that back it on disk, so
// Save/Close can flush and release all of them together.
type FileQueue[T any] struct {
	*AVLQueue[T]

	trees  *FileTreeNodeStore
	lists  *FileListNodeStore
	values *FileValueStore[T]
	rootRF *filestore.RecordFile
}

// OpenFileQueue opens or creates a file-backed queue rooted at dir,
// reusing whatever state is already there. maxValuePayload bounds the
// marshaled size of any one value; marshal/unmarshal round-trip T to and
// from bytes, the way encoding.BinaryMarshaler/BinaryUnmarshaler would.
func OpenFileQueue[T any](dir string, order SortOrder, maxValuePayload int, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) (*FileQueue[T], error) {
	treeRF, err := filestore.CreateFile("treenode", TreeNodeRecordSize, filepath.Join(dir, "tree.dat"))
	if err != nil {
		return nil, err
	}
	listRF, err := filestore.CreateFile("listnode", ListNodeRecordSize, filepath.Join(dir, "list.dat"))
	if err != nil {
		return nil, err
	}
	valueRF, err := filestore.CreateFile("value", maxValuePayload+2, filepath.Join(dir, "value.dat"))
	if err != nil {
		return nil, err
	}
	rootRF, err := filestore.CreateFile("root", RootRecordSize, filepath.Join(dir, "root.dat"))
	if err != nil {
		return nil, err
	}

	treeStore, err := NewFileTreeNodeStore(treeRF)
	if err != nil {
		return nil, err
	}
	listStore, err := NewFileListNodeStore(listRF)
	if err != nil {
		return nil, err
	}
	valueStore, err := NewFileValueStore(valueRF, maxValuePayload, marshal, unmarshal)
	if err != nil {
		return nil, err
	}

	root := rootRecord{order: order}
	if rootRF.Count() > 0 {
		payload, err := rootRF.Read(1)
		if err != nil {
			return nil, err
		}
		var rootID TreeNodeID
		root, rootID = DecodeRoot(payload)
		root.root = rootID
	}

	q := &AVLQueue[T]{
		root:   root,
		trees:  treeStore,
		lists:  listStore,
		values: valueStore,
	}
	return &FileQueue[T]{AVLQueue: q, trees: treeStore, lists: listStore, values: valueStore, rootRF: rootRF}, nil
}

// Save flushes the queue's current state, including its root record, to
// all four backing files.
func (fq *FileQueue[T]) Save() error {
	if err := fq.trees.Flush(); err != nil {
		return err
	}
	if err := fq.lists.Flush(); err != nil {
		return err
	}
	if err := fq.values.Flush(); err != nil {
		return err
	}
	if err := fq.rootRF.Write(1, EncodeRoot(fq.AVLQueue.root, fq.AVLQueue.root.root)); err != nil {
		return err
	}
	return fq.rootRF.Sync()
}

// Close saves and releases all four backing files.
func (fq *FileQueue[T]) Close() error {
	if err := fq.Save(); err != nil {
		return err
	}
	if err := fq.trees.rf.Close(); err != nil {
		return err
	}
	if err := fq.lists.rf.Close(); err != nil {
		return err
	}
	if err := fq.values.rf.Close(); err != nil {
		return err
	}
	return fq.rootRF.Close()
}

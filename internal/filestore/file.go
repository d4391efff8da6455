// internal/filestore/file.go
package filestore

import "fmt"

// recordFileMagic and recordFileVersion identify the fixed-record file
// format at offset 0, the way the teacher's database header identifies a
// TurDB file. header layout: 4 bytes magic, 2 bytes recordSize, 4 bytes
// record count, 2 bytes version, all big-endian.
const (
	recordFileMagic   = "AVLQ"
	recordFileVersion = uint16(1)
	headerSize        = 12
)

// RecordFile stores a dense, 1-indexed array of fixed-size records behind a
// Storage backend, growing the backend geometrically as new ids are
// written. It is the building block the file-backed SlotTable
// implementations in package avlqueue use to persist tree nodes, list
// nodes, and values.
type RecordFile struct {
	storage    Storage
	recordSize int // caller payload size; the stored record adds ChecksumSize
	slotKind   string
	count      uint32 // highest id written so far
}

func slotOffset(id uint32, recordSize int) int64 {
	return headerSize + int64(id-1)*int64(recordSize+ChecksumSize)
}

// CreateMemory returns a RecordFile backed by in-memory storage, for tests
// and for callers that want the fixed-record-file discipline without a real
// file on disk.
func CreateMemory(slotKind string, recordSize int) (*RecordFile, error) {
	ms, err := NewMemoryStorage(int64(headerSize))
	if err != nil {
		return nil, err
	}
	return newRecordFile(slotKind, recordSize, ms)
}

// CreateFile opens (or creates) path as a fixed-record file for slotKind
// records of recordSize bytes each.
func CreateFile(slotKind string, recordSize int, path string) (*RecordFile, error) {
	fs, err := NewFileStorage(path, int64(headerSize))
	if err != nil {
		return nil, err
	}
	return newRecordFile(slotKind, recordSize, fs)
}

func newRecordFile(slotKind string, recordSize int, storage Storage) (*RecordFile, error) {
	rf := &RecordFile{storage: storage, recordSize: recordSize, slotKind: slotKind}

	header := storage.Slice(0, headerSize)
	if header == nil {
		return nil, fmt.Errorf("filestore: %s: storage too small for header", slotKind)
	}
	if string(header[0:4]) == recordFileMagic {
		version := uint16(header[10])<<8 | uint16(header[11])
		if version != recordFileVersion {
			return nil, fmt.Errorf("filestore: %s: unsupported file version %d, want %d", slotKind, version, recordFileVersion)
		}
		stored := int(header[4])<<8 | int(header[5])
		if stored != recordSize {
			return nil, fmt.Errorf("filestore: %s: record size mismatch: file has %d, want %d", slotKind, stored, recordSize)
		}
		count := uint32(header[6])<<24 | uint32(header[7])<<16 | uint32(header[8])<<8 | uint32(header[9])
		rf.count = count
		return rf, nil
	}

	copy(header[0:4], recordFileMagic)
	header[4] = byte(recordSize >> 8)
	header[5] = byte(recordSize)
	header[10] = byte(recordFileVersion >> 8)
	header[11] = byte(recordFileVersion)
	rf.writeCount(0)
	return rf, nil
}

func (rf *RecordFile) writeCount(count uint32) {
	header := rf.storage.Slice(0, headerSize)
	header[6] = byte(count >> 24)
	header[7] = byte(count >> 16)
	header[8] = byte(count >> 8)
	header[9] = byte(count)
	rf.count = count
}

// Count returns the number of record slots ever written (the high-water
// mark of ids passed to Write), which is what the slot table reports as its
// length.
func (rf *RecordFile) Count() uint32 {
	return rf.count
}

func (rf *RecordFile) stride() int {
	return rf.recordSize + ChecksumSize
}

func (rf *RecordFile) ensureCapacity(id uint32) error {
	needed := slotOffset(id, rf.recordSize) + int64(rf.stride())
	if needed <= rf.storage.Size() {
		return nil
	}
	newSize := rf.storage.Size() * 2
	if newSize < needed {
		newSize = needed
	}
	return rf.storage.Grow(newSize)
}

// Write stores payload (which must be exactly recordSize bytes) at id,
// growing the backing storage if needed, and stamps a checksum over it.
func (rf *RecordFile) Write(id uint32, payload []byte) error {
	if len(payload) != rf.recordSize {
		return fmt.Errorf("filestore: %s: payload is %d bytes, want %d", rf.slotKind, len(payload), rf.recordSize)
	}
	if err := rf.ensureCapacity(id); err != nil {
		return err
	}
	record := rf.storage.Slice(int(slotOffset(id, rf.recordSize)), rf.stride())
	copy(record, payload)
	writeRecordChecksum(record)
	if id > rf.count {
		rf.writeCount(id)
	}
	return nil
}

// Read returns a copy of the recordSize-byte payload stored at id. A
// never-written id reads back as all zeros. Returns *StorageCorruptionError
// if the stored checksum doesn't match.
func (rf *RecordFile) Read(id uint32) ([]byte, error) {
	offset := slotOffset(id, rf.recordSize)
	if offset+int64(rf.stride()) > rf.storage.Size() {
		return make([]byte, rf.recordSize), nil
	}
	record := rf.storage.Slice(int(offset), rf.stride())
	if err := verifyRecordChecksum(rf.slotKind, id, record); err != nil {
		return nil, err
	}
	payload := make([]byte, rf.recordSize)
	copy(payload, record[:rf.recordSize])
	return payload, nil
}

// Sync flushes the backing storage.
func (rf *RecordFile) Sync() error { return rf.storage.Sync() }

// Close releases the backing storage.
func (rf *RecordFile) Close() error { return rf.storage.Close() }

// internal/filestore/corruption.go
package filestore

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// ChecksumSize is the number of trailing bytes each stored record reserves for
// its CRC32 checksum.
const ChecksumSize = 4

// StorageCorruptionError reports a checksum mismatch on a record read back
// from a file-backed slot table.
type StorageCorruptionError struct {
	SlotKind    string
	ID          uint32
	ExpectedCRC uint32
	ActualCRC   uint32
}

// Error implements the error interface.
func (e *StorageCorruptionError) Error() string {
	return fmt.Sprintf("filestore: %s slot %d corruption: expected CRC %08x, got %08x",
		e.SlotKind, e.ID, e.ExpectedCRC, e.ActualCRC)
}

// recordChecksum computes the CRC32 of a record's payload (excluding the
// trailing ChecksumSize bytes reserved for the checksum itself).
func recordChecksum(record []byte) uint32 {
	if len(record) <= ChecksumSize {
		return 0
	}
	return crc32.ChecksumIEEE(record[:len(record)-ChecksumSize])
}

// writeRecordChecksum stamps the checksum of record's payload into its
// trailing ChecksumSize bytes.
func writeRecordChecksum(record []byte) {
	if len(record) <= ChecksumSize {
		return
	}
	binary.LittleEndian.PutUint32(record[len(record)-ChecksumSize:], recordChecksum(record))
}

// verifyRecordChecksum compares the stored trailing checksum against the
// payload. An all-zero record (never written) is treated as valid so that
// growing a file's backing storage doesn't manufacture corruption errors.
func verifyRecordChecksum(slotKind string, id uint32, record []byte) error {
	if len(record) <= ChecksumSize {
		return nil
	}
	expected := binary.LittleEndian.Uint32(record[len(record)-ChecksumSize:])
	actual := recordChecksum(record)
	if expected == actual {
		return nil
	}
	if expected == 0 && isZero(record) {
		return nil
	}
	return &StorageCorruptionError{SlotKind: slotKind, ID: id, ExpectedCRC: expected, ActualCRC: actual}
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

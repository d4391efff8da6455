package filestore

import "testing"

func TestChecksumRoundTrip(t *testing.T) {
	record := make([]byte, 12)
	copy(record, "hello world!")
	writeRecordChecksum(record)
	if err := verifyRecordChecksum("test", 1, record); err != nil {
		t.Fatal(err)
	}
}

func TestChecksumDetectsCorruption(t *testing.T) {
	record := make([]byte, 12)
	copy(record, "hello world!")
	writeRecordChecksum(record)
	record[0] ^= 0xFF

	err := verifyRecordChecksum("test", 7, record)
	if err == nil {
		t.Fatal("expected corruption error")
	}
	corruptErr, ok := err.(*StorageCorruptionError)
	if !ok {
		t.Fatalf("expected *StorageCorruptionError, got %T", err)
	}
	if corruptErr.ID != 7 || corruptErr.SlotKind != "test" {
		t.Fatalf("unexpected error fields: %+v", corruptErr)
	}
}

func TestChecksumAllowsNeverWrittenRecord(t *testing.T) {
	record := make([]byte, 12)
	if err := verifyRecordChecksum("test", 1, record); err != nil {
		t.Fatal(err)
	}
}

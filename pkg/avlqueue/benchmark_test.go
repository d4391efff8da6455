package avlqueue

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// BenchmarkInsert_AVLQueue benchmarks Insert throughput for AVLQueue.
func BenchmarkInsert_AVLQueue(b *testing.B) {
	q, err := New[string](Config[string]{Order: Ascending})
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := q.Insert(uint64(i%int(MaxInsertionKey)), fmt.Sprintf("value%d", i)); err != nil {
			b.Fatalf("Insert failed at iteration %d: %v", i, err)
		}
	}
}

// BenchmarkInsert_SQLite benchmarks an equivalent insert-ordered queue
// pattern expressed as a SQL table against an in-process SQLite database.
func BenchmarkInsert_SQLite(b *testing.B) {
	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		b.Fatalf("Failed to open SQLite: %v", err)
	}
	defer db.Close()

	_, err = db.Exec("CREATE TABLE q (key INTEGER, seq INTEGER, val TEXT)")
	if err != nil {
		b.Fatalf("CREATE TABLE failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := db.Exec("INSERT INTO q VALUES (?, ?, ?)", i%int(MaxInsertionKey), i, fmt.Sprintf("value%d", i))
		if err != nil {
			b.Fatalf("INSERT failed at iteration %d: %v", i, err)
		}
	}
}

// BenchmarkPopHead_AVLQueue benchmarks repeated head-removal on a queue
// pre-populated with b.N entries, so every PopHead is real work rather
// than operating on an already-empty queue.
func BenchmarkPopHead_AVLQueue(b *testing.B) {
	q, err := New[string](Config[string]{Order: Ascending})
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	for i := 0; i < b.N; i++ {
		if _, err := q.Insert(uint64(i%int(MaxInsertionKey)), fmt.Sprintf("value%d", i)); err != nil {
			b.Fatalf("Insert failed at iteration %d: %v", i, err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := q.PopHead(); err != nil {
			b.Fatalf("PopHead failed at iteration %d: %v", i, err)
		}
	}
}

// BenchmarkPopHead_SQLite benchmarks the SQL equivalent of PopHead: select
// the row with the lowest (key, seq) pair, then delete it by rowid.
func BenchmarkPopHead_SQLite(b *testing.B) {
	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		b.Fatalf("Failed to open SQLite: %v", err)
	}
	defer db.Close()

	_, err = db.Exec("CREATE TABLE q (key INTEGER, seq INTEGER, val TEXT)")
	if err != nil {
		b.Fatalf("CREATE TABLE failed: %v", err)
	}
	_, err = db.Exec("CREATE INDEX q_order ON q (key, seq)")
	if err != nil {
		b.Fatalf("CREATE INDEX failed: %v", err)
	}

	for i := 0; i < b.N; i++ {
		_, err := db.Exec("INSERT INTO q VALUES (?, ?, ?)", i%int(MaxInsertionKey), i, fmt.Sprintf("value%d", i))
		if err != nil {
			b.Fatalf("INSERT failed at iteration %d: %v", i, err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		row := db.QueryRow("SELECT rowid FROM q ORDER BY key, seq LIMIT 1")
		var rowid int64
		if err := row.Scan(&rowid); err != nil {
			b.Fatalf("SELECT failed at iteration %d: %v", i, err)
		}
		if _, err := db.Exec("DELETE FROM q WHERE rowid = ?", rowid); err != nil {
			b.Fatalf("DELETE failed at iteration %d: %v", i, err)
		}
	}
}

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"avlqueue/pkg/avlqueue"
)

var benchIterations int

func init() {
	benchCmd.Flags().IntVar(&benchIterations, "n", 10000, "number of insert/pop-head operations to run per side")
}

// benchCmd puts a number on the design motivation that a purpose-built
// structure beats a general-purpose store for an insert-ordered,
// key-grouped queue workload: it runs the same number of inserts followed
// by the same number of head-pops against an in-memory AVLQueue and
// against an equivalent SQL table in an in-process SQLite database.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare AVLQueue throughput against an equivalent SQLite table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		n := benchIterations

		queueInsert, queuePop, err := benchAVLQueue(n)
		if err != nil {
			return fmt.Errorf("avlqueue benchmark: %w", err)
		}

		sqlInsert, sqlPop, err := benchSQLite(n)
		if err != nil {
			return fmt.Errorf("sqlite benchmark: %w", err)
		}

		fmt.Fprintf(out, "n=%d\n", n)
		fmt.Fprintf(out, "insert:   avlqueue=%-12s sqlite=%-12s\n", queueInsert, sqlInsert)
		fmt.Fprintf(out, "pop-head: avlqueue=%-12s sqlite=%-12s\n", queuePop, sqlPop)
		return nil
	},
}

func benchAVLQueue(n int) (insertElapsed, popElapsed time.Duration, err error) {
	q, err := avlqueue.New[string](avlqueue.Config[string]{Order: avlqueue.Ascending})
	if err != nil {
		return 0, 0, err
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		if _, err := q.Insert(uint64(i%int(avlqueue.MaxInsertionKey)), fmt.Sprintf("value%d", i)); err != nil {
			return 0, 0, err
		}
	}
	insertElapsed = time.Since(start)

	start = time.Now()
	for i := 0; i < n; i++ {
		if _, err := q.PopHead(); err != nil {
			return 0, 0, err
		}
	}
	popElapsed = time.Since(start)
	return insertElapsed, popElapsed, nil
}

func benchSQLite(n int) (insertElapsed, popElapsed time.Duration, err error) {
	tmpDir, err := os.MkdirTemp("", "avlqueue-cli-bench-*")
	if err != nil {
		return 0, 0, err
	}
	defer os.RemoveAll(tmpDir)
	dbPath := filepath.Join(tmpDir, "bench.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return 0, 0, err
	}
	defer db.Close()

	if _, err = db.Exec("CREATE TABLE q (key INTEGER, seq INTEGER, val TEXT)"); err != nil {
		return 0, 0, err
	}
	if _, err = db.Exec("CREATE INDEX q_order ON q (key, seq)"); err != nil {
		return 0, 0, err
	}

	start := time.Now()
	for i := 0; i < n; i++ {
		if _, err = db.Exec("INSERT INTO q VALUES (?, ?, ?)", i%int(avlqueue.MaxInsertionKey), i, fmt.Sprintf("value%d", i)); err != nil {
			return 0, 0, err
		}
	}
	insertElapsed = time.Since(start)

	start = time.Now()
	for i := 0; i < n; i++ {
		row := db.QueryRow("SELECT rowid FROM q ORDER BY key, seq LIMIT 1")
		var rowid int64
		if err = row.Scan(&rowid); err != nil {
			return 0, 0, err
		}
		if _, err = db.Exec("DELETE FROM q WHERE rowid = ?", rowid); err != nil {
			return 0, 0, err
		}
	}
	popElapsed = time.Since(start)
	return insertElapsed, popElapsed, nil
}

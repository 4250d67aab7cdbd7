package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS kv_entries (
		"key" TEXT PRIMARY KEY,
		"value" TEXT NOT NULL,
		"updated_at" DATETIME NOT NULL
);`

// sqlite 파일을 열고 kv_entries 테이블을 준비
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("OpenDB(): failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenDB(): failed to connect to database: %w", err)
	}

	// sqlite는 writer가 하나뿐
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createEntriesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenDB(): failed to create kv_entries table: %w", err)
	}
	return db, nil
}

package app

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hsdlab/hsd-annotator/models"
)

// ErrNoRecord is returned by Lookup when no annotation exists for a key.
var ErrNoRecord = errors.New("no annotation record")

// Store holds the annotation table and scan metadata in a sqlite database.
// Single writer; the web layer serializes access.
type Store struct {
	db *sql.DB
}

func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", dbPath, err)
	}
	db.Exec(`PRAGMA journal_mode = WAL`)
	db.Exec(`PRAGMA busy_timeout = 5000`)

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts or replaces the record for (folder, base name). The record
// gets a fresh sequence number either way, so a re-annotated sample moves to
// the end of the export order while untouched rows keep their place.
func (s *Store) Upsert(rec models.AnnotationRecord) error {
	_, err := s.db.Exec(`
        INSERT INTO annotations(folder, base_name, tag, mask_saved, notes, seq)
        VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM annotations))
        ON CONFLICT(folder, base_name) DO UPDATE SET
            tag=excluded.tag,
            mask_saved=excluded.mask_saved,
            notes=excluded.notes,
            seq=excluded.seq
    `, rec.Folder, rec.BaseName, rec.Tag, boolToInt(rec.MaskSaved), rec.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert annotation %s/%s: %w", rec.Folder, rec.BaseName, err)
	}
	return nil
}

// Lookup returns the current record for (folder, base name), or ErrNoRecord.
func (s *Store) Lookup(folder, base string) (*models.AnnotationRecord, error) {
	row := s.db.QueryRow(`
        SELECT folder, base_name, tag, mask_saved, notes, seq
        FROM annotations
        WHERE folder = ? AND base_name = ?
        LIMIT 1`, folder, base)

	rec, err := scanAnnotation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// All returns every record in write order, oldest first.
func (s *Store) All() ([]models.AnnotationRecord, error) {
	return s.queryRecords(`
        SELECT folder, base_name, tag, mask_saved, notes, seq
        FROM annotations
        ORDER BY seq ASC`)
}

// Tail returns the n most recently written records, newest first.
func (s *Store) Tail(n int) ([]models.AnnotationRecord, error) {
	return s.queryRecords(`
        SELECT folder, base_name, tag, mask_saved, notes, seq
        FROM annotations
        ORDER BY seq DESC
        LIMIT ?`, n)
}

func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM annotations`).Scan(&count)
	return count, err
}

func (s *Store) queryRecords(query string, args ...any) ([]models.AnnotationRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AnnotationRecord
	for rows.Next() {
		rec, err := scanAnnotation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnnotation(row rowScanner) (*models.AnnotationRecord, error) {
	var rec models.AnnotationRecord
	var maskSaved int
	if err := row.Scan(&rec.Folder, &rec.BaseName, &rec.Tag, &maskSaved, &rec.Notes, &rec.Seq); err != nil {
		return nil, err
	}
	rec.MaskSaved = maskSaved != 0
	return &rec, nil
}

func (s *Store) setMetadata(key, value string) error {
	_, err := s.db.Exec(`
        INSERT INTO metadata(key, value)
        VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value
    `, key, value)
	return err
}

func (s *Store) getMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (s *Store) SetLastScan(t time.Time) error {
	return s.setMetadata("last_scan", t.Format(time.RFC3339))
}

// LastScan returns the time of the most recent successful dataset scan, or
// the zero time when none has been recorded.
func (s *Store) LastScan() (time.Time, error) {
	ts, err := s.getMetadata("last_scan")
	if err != nil || ts == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, ts)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

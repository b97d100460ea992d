package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/waybackrecon/internal/model"
)

// FileName is the database file name inside the database directory.
const FileName = "waybackrecon.db"

// timestampLayout is fixed width so that stored timestamps sort
// lexicographically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryDB stores one record per processed domain and command.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error
// wrapping os.ErrNotExist is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); err != nil {
			return nil, fmt.Errorf("database not available at %s: %w", dbPath, err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL,
		command TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		digest TEXT,
		summary_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_domain ON runs(domain);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is one stored domain result.
type RunRecord struct {
	// ID is the unique identifier of the record.
	ID int64

	// Domain is the processed domain.
	Domain string

	// Command is the command that produced the record.
	Command string

	// Timestamp is when the record was saved.
	Timestamp time.Time

	// Count is the count reported for the domain.
	Count int

	// Digest is the digest of the command's primary artifact.
	Digest string

	// Result is the full domain result.
	Result model.DomainResult
}

// SaveRun records result for command and returns the new record ID.
func (hdb *HistoryDB) SaveRun(ctx context.Context, command string, result model.DomainResult) (int64, error) {
	return hdb.saveRunAt(ctx, command, result, time.Now())
}

func (hdb *HistoryDB) saveRunAt(ctx context.Context, command string, result model.DomainResult, at time.Time) (int64, error) {
	summaryJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize result: %w", err)
	}

	query := `
	INSERT INTO runs (domain, command, timestamp, count, digest, summary_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := hdb.db.ExecContext(ctx, query,
		result.Domain,
		command,
		at.UTC().Format(timestampLayout),
		result.Count,
		result.Digest,
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return res.LastInsertId()
}

// ListDomains returns every domain with at least one record, sorted.
func (hdb *HistoryDB) ListDomains(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx, `SELECT DISTINCT domain FROM runs ORDER BY domain`)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, domain)
	}

	return domains, rows.Err()
}

// GetHistory returns the records of domain, newest first.
func (hdb *HistoryDB) GetHistory(ctx context.Context, domain string) ([]RunRecord, error) {
	query := `
	SELECT id, domain, command, timestamp, count, digest, summary_json
	FROM runs
	WHERE domain = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

// GetRunByID returns the record with id, or nil if there is none.
func (hdb *HistoryDB) GetRunByID(ctx context.Context, id int64) (*RunRecord, error) {
	query := `
	SELECT id, domain, command, timestamp, count, digest, summary_json
	FROM runs
	WHERE id = ?
	`

	record, err := scanRecord(hdb.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return record, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*RunRecord, error) {
	var record RunRecord
	var timestamp string
	var digest sql.NullString
	var summaryJSON string

	err := row.Scan(&record.ID, &record.Domain, &record.Command, &timestamp, &record.Count, &digest, &summaryJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	record.Timestamp = parseTimestamp(timestamp)
	record.Digest = digest.String
	if err := json.Unmarshal([]byte(summaryJSON), &record.Result); err != nil {
		// The columns are still usable without the stored JSON.
		record.Result = model.DomainResult{Domain: record.Domain, Count: record.Count, Digest: record.Digest}
	}

	return &record, nil
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

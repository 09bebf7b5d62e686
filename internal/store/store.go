// Package store keeps a local history of collected snapshots in SQLite.
// It is write-mostly: the inventory engine never reads it back.
package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// SnapshotRecord represents a stored snapshot row. The tier columns
// summarize the scored domains for listing without decoding the JSON.
type SnapshotRecord struct {
	ID           string    `json:"id"`
	Hostname     string    `json:"hostname"`
	CollectedAt  time.Time `json:"collected_at"`
	StoredAt     time.Time `json:"stored_at"`
	DurationMS   int64     `json:"duration_ms"`
	CPUTier      string    `json:"cpu_tier"`
	GPUTier      string    `json:"gpu_tier"`
	RAMTier      string    `json:"ram_tier"`
	DiskTier     string    `json:"disk_tier"`
	SnapshotJSON string    `json:"-"`
}

// ListFilter holds optional query parameters for listing snapshots.
type ListFilter struct {
	Hostname        string
	CollectedAfter  *time.Time
	CollectedBefore *time.Time
	PageSize        int
	Page            int
}

// Store provides CRUD operations for snapshot records.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens the SQLite database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrStorage, err).WithData("open database")
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, errors.New().Wrap(errors.ErrStorage, err).WithData("run migrations")
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a snapshot record and returns its stored_at time.
func (s *Store) Insert(ctx context.Context, rec *SnapshotRecord) (time.Time, error) {
	storedAt := s.now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, hostname, collected_at, stored_at, duration_ms, cpu_tier, gpu_tier, ram_tier, disk_tier, snapshot_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Hostname,
		rec.CollectedAt.UTC().Format(timeLayout),
		storedAt.Format(timeLayout),
		rec.DurationMS,
		rec.CPUTier,
		rec.GPUTier,
		rec.RAMTier,
		rec.DiskTier,
		rec.SnapshotJSON,
	)
	if err != nil {
		return time.Time{}, errors.New().Wrap(errors.ErrStorage, err).WithData("insert snapshot")
	}

	return storedAt, nil
}

const selectColumns = `id, hostname, collected_at, stored_at, duration_ms, cpu_tier, gpu_tier, ram_tier, disk_tier`

// Get retrieves a snapshot record by ID.
func (s *Store) Get(ctx context.Context, id string) (*SnapshotRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+`, snapshot_json FROM snapshots WHERE id = ?`, id)

	return scanOne(row, id)
}

// GetLatestByHostname retrieves the most recent snapshot for a hostname.
func (s *Store) GetLatestByHostname(ctx context.Context, hostname string) (*SnapshotRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+`, snapshot_json FROM snapshots WHERE hostname = ? ORDER BY collected_at DESC LIMIT 1`, hostname)

	return scanOne(row, "host "+hostname)
}

// Delete removes a snapshot record by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return errors.New().Wrap(errors.ErrStorage, err).WithData("delete snapshot")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return errors.New().Wrap(errors.ErrStorage, err).WithData("rows affected")
	}
	if n == 0 {
		return errors.New().WithData(errors.ErrNotFound, "snapshot "+id)
	}

	return nil
}

// List returns snapshot summaries matching the given filter, newest
// first, without the JSON body.
func (s *Store) List(ctx context.Context, f ListFilter) ([]SnapshotRecord, int, error) {
	where, args := buildWhere(f)

	var total int
	countQuery := "SELECT COUNT(*) FROM snapshots" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.New().Wrap(errors.ErrStorage, err).WithData("count snapshots")
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + selectColumns + `, '' FROM snapshots` + where + ` ORDER BY collected_at DESC LIMIT ? OFFSET ?`
	args = append(args, pageSize, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.New().Wrap(errors.ErrStorage, err).WithData("list snapshots")
	}
	defer rows.Close()

	records := []SnapshotRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, errors.New().Wrap(errors.ErrStorage, err).WithData("scan snapshot")
		}
		records = append(records, *rec)
	}

	return records, total, rows.Err()
}

// Purge deletes snapshot records collected more than olderThan ago.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-olderThan).Format(timeLayout)
	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE collected_at < ?`, cutoff)
	if err != nil {
		return 0, errors.New().Wrap(errors.ErrStorage, err).WithData("purge snapshots")
	}
	return result.RowsAffected()
}

func buildWhere(f ListFilter) (string, []any) {
	var conditions []string
	var args []any

	if f.Hostname != "" {
		conditions = append(conditions, "hostname = ?")
		args = append(args, f.Hostname)
	}
	if f.CollectedAfter != nil {
		conditions = append(conditions, "collected_at >= ?")
		args = append(args, f.CollectedAfter.UTC().Format(timeLayout))
	}
	if f.CollectedBefore != nil {
		conditions = append(conditions, "collected_at <= ?")
		args = append(args, f.CollectedBefore.UTC().Format(timeLayout))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row scanner, what string) (*SnapshotRecord, error) {
	rec, err := scanRecord(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New().WithData(errors.ErrNotFound, "snapshot "+what)
	}
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrStorage, err).WithData("read snapshot")
	}
	return rec, nil
}

func scanRecord(row scanner) (*SnapshotRecord, error) {
	var rec SnapshotRecord
	var collectedAt, storedAt string
	err := row.Scan(&rec.ID, &rec.Hostname, &collectedAt, &storedAt, &rec.DurationMS,
		&rec.CPUTier, &rec.GPUTier, &rec.RAMTier, &rec.DiskTier, &rec.SnapshotJSON)
	if err != nil {
		return nil, err
	}

	rec.CollectedAt, _ = time.Parse(timeLayout, collectedAt)
	rec.StoredAt, _ = time.Parse(timeLayout, storedAt)

	return &rec, nil
}

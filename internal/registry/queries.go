package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Append records a deployed depot as a new row. MovedAt defaults to the
// current time when unset. Repeated appends for the same (filename, depot)
// key are expected; LatestByKey resolves them to the newest row.
func (s *Store) Append(ctx context.Context, row Row) (Row, error) {
	if strings.TrimSpace(row.Filename) == "" {
		return Row{}, errors.New("filename is required")
	}
	if row.Depot <= 0 {
		return Row{}, errors.New("depot is required")
	}

	movedAt := row.MovedAt
	if movedAt.IsZero() {
		movedAt = time.Now().UTC()
	} else {
		movedAt = movedAt.UTC()
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO deployments (filename, appid, depot, manifest_id, dest_path, moved_at, multi)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.Filename,
		row.AppID,
		row.Depot,
		row.ManifestID,
		row.DestPath,
		movedAt.Format(time.RFC3339Nano),
		boolToInt(row.Multi),
	)
	if err != nil {
		return Row{}, fmt.Errorf("insert deployment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Row{}, fmt.Errorf("last insert id: %w", err)
	}

	row.ID = id
	row.MovedAt = movedAt
	return row, nil
}

// CorrectManifest rewrites the stored manifest for every row of a
// (filename, depot) key. It returns the number of rows touched; zero means
// the key was never recorded and the caller should append instead.
func (s *Store) CorrectManifest(ctx context.Context, filename string, depot int64, manifestID string) (int64, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE deployments SET manifest_id = ? WHERE filename = ? AND depot = ?`,
		manifestID, filename, depot,
	)
	if err != nil {
		return 0, fmt.Errorf("update manifest: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

type deploymentKey struct {
	filename string
	depot    int64
}

// LatestByKey folds the append-only history down to the newest row per
// (filename, depot) key. Rows are scanned oldest first with ties broken by
// insertion order, so the last write wins. Results come back ordered by
// filename then depot.
func (s *Store) LatestByKey(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT `+rowColumns+` FROM deployments ORDER BY moved_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query deployments: %w", err)
	}
	defer rows.Close()

	latest := make(map[deploymentKey]Row)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		latest[deploymentKey{row.Filename, row.Depot}] = row
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]Row, 0, len(latest))
	for _, row := range latest {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Filename != out[j].Filename {
			return out[i].Filename < out[j].Filename
		}
		return out[i].Depot < out[j].Depot
	})
	return out, nil
}

// DistinctFiles lists files the registry knows about, most recently touched
// first. Reconciliation re-parses each file for its full depot set rather
// than trusting per-depot rows.
func (s *Store) DistinctFiles(ctx context.Context) ([]DeployedFile, error) {
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT filename, dest_path FROM deployments
         GROUP BY filename, dest_path ORDER BY MAX(moved_at) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query known files: %w", err)
	}
	defer rows.Close()

	var files []DeployedFile
	for rows.Next() {
		var file DeployedFile
		if err := rows.Scan(&file.Filename, &file.DestPath); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

// Stats returns aggregate counts for diagnostic output.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var (
		stats   Stats
		lastRaw sql.NullString
	)
	row := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT COUNT(*),
                COUNT(DISTINCT filename),
                (SELECT COUNT(*) FROM (SELECT DISTINCT filename, depot FROM deployments)),
                MAX(moved_at)
         FROM deployments`,
	)
	if err := row.Scan(&stats.Rows, &stats.Files, &stats.Keys, &lastRaw); err != nil {
		return Stats{}, fmt.Errorf("registry stats: %w", err)
	}
	if lastRaw.Valid {
		if last, err := parseTimeString(lastRaw.String); err == nil {
			stats.LastMovedAt = last
		}
	}
	return stats, nil
}

const rowColumns = "id, filename, appid, depot, manifest_id, dest_path, moved_at, multi"

func scanRow(scanner interface{ Scan(dest ...any) error }) (Row, error) {
	var (
		id         int64
		filename   string
		appID      int64
		depot      int64
		manifestID string
		destPath   string
		movedRaw   sql.NullString
		multi      sql.NullInt64
	)

	if err := scanner.Scan(&id, &filename, &appID, &depot, &manifestID, &destPath, &movedRaw, &multi); err != nil {
		return Row{}, err
	}

	row := Row{
		ID:         id,
		Filename:   filename,
		AppID:      appID,
		Depot:      depot,
		ManifestID: manifestID,
		DestPath:   destPath,
	}
	if multi.Valid {
		row.Multi = multi.Int64 != 0
	}
	if moved, err := parseTimeString(movedRaw.String); err == nil {
		row.MovedAt = moved
	}
	return row, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Build ledger states. A run starts as "running" and finishes as either
// "done" or "failed".
const (
	BuildRunning = "running"
	BuildDone    = "done"
	BuildFailed  = "failed"
)

// Build is one recorded pipeline run.
type Build struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   time.Time // zero if still running or the process died
	Version      string
	ArtifactPath string
	State        string
	FailedStage  string
}

// BeginBuild records the start of a pipeline run and returns its ledger ID.
func (s *Store) BeginBuild(startedAt time.Time) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO builds (started_at, state) VALUES (?, ?)`,
		startedAt.Format(time.RFC3339), BuildRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record build start: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get build id: %w", err)
	}
	return id, nil
}

// FinishBuild marks a run as done and records the derived version and the
// artifact path.
func (s *Store) FinishBuild(id int64, finishedAt time.Time, version, artifactPath string) error {
	_, err := s.db.Exec(
		`UPDATE builds SET finished_at = ?, version = ?, artifact_path = ?, state = ? WHERE id = ?`,
		finishedAt.Format(time.RFC3339), version, artifactPath, BuildDone, id,
	)
	if err != nil {
		return fmt.Errorf("failed to record build completion: %w", err)
	}
	return nil
}

// FailBuild marks a run as failed at the named stage.
func (s *Store) FailBuild(id int64, finishedAt time.Time, failedStage string) error {
	_, err := s.db.Exec(
		`UPDATE builds SET finished_at = ?, state = ?, failed_stage = ? WHERE id = ?`,
		finishedAt.Format(time.RFC3339), BuildFailed, failedStage, id,
	)
	if err != nil {
		return fmt.Errorf("failed to record build failure: %w", err)
	}
	return nil
}

// ListBuilds returns all recorded runs, most recent first.
func (s *Store) ListBuilds() ([]*Build, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, version, artifact_path, state, failed_stage
		FROM builds
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer rows.Close()

	var builds []*Build
	for rows.Next() {
		var (
			b           Build
			startedAt   string
			finishedAt  sql.NullString
			version     sql.NullString
			artifact    sql.NullString
			failedStage sql.NullString
		)
		if err := rows.Scan(&b.ID, &startedAt, &finishedAt, &version, &artifact, &b.State, &failedStage); err != nil {
			return nil, fmt.Errorf("failed to scan build row: %w", err)
		}

		b.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		if finishedAt.Valid && finishedAt.String != "" {
			b.FinishedAt, err = time.Parse(time.RFC3339, finishedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse finished_at: %w", err)
			}
		}
		b.Version = version.String
		b.ArtifactPath = artifact.String
		b.FailedStage = failedStage.String

		builds = append(builds, &b)
	}
	return builds, rows.Err()
}

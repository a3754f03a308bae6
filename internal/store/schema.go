package store

const schema = `
CREATE TABLE IF NOT EXISTS builds (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP,
    version TEXT,
    artifact_path TEXT,
    state TEXT NOT NULL,
    failed_stage TEXT
);

CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started_at);
`

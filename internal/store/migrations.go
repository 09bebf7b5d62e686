package store

const createTableSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    id              TEXT PRIMARY KEY,
    hostname        TEXT NOT NULL,
    collected_at    TEXT NOT NULL,
    stored_at       TEXT NOT NULL,
    duration_ms     INTEGER NOT NULL DEFAULT 0,
    cpu_tier        TEXT NOT NULL DEFAULT '',
    gpu_tier        TEXT NOT NULL DEFAULT '',
    ram_tier        TEXT NOT NULL DEFAULT '',
    disk_tier       TEXT NOT NULL DEFAULT '',
    snapshot_json   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_hostname ON snapshots(hostname);
CREATE INDEX IF NOT EXISTS idx_snapshots_collected_at ON snapshots(collected_at);
`

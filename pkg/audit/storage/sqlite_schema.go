package storage

// schemaSQL creates the audit bundle table and its query indexes. Bundle
// content is stored as a JSON document alongside the indexed filter columns
// so the record round-trips without loss.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS audit_bundles (
	id            TEXT PRIMARY KEY,
	run_id        TEXT NOT NULL,
	policy_id     TEXT NOT NULL,
	firm_name     TEXT NOT NULL,
	generated_by  TEXT NOT NULL,
	generated_at  TIMESTAMP NOT NULL,
	content_hash  TEXT NOT NULL,
	bundle_json   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_bundles_run_id ON audit_bundles(run_id);
CREATE INDEX IF NOT EXISTS idx_audit_bundles_policy_id ON audit_bundles(policy_id);
CREATE INDEX IF NOT EXISTS idx_audit_bundles_firm_name ON audit_bundles(firm_name);
CREATE INDEX IF NOT EXISTS idx_audit_bundles_generated_at ON audit_bundles(generated_at);
`

package database

import "database/sql"

// Schema is the full DDL. SQLite applies CREATE TABLE IF NOT EXISTS
// idempotently, so Migrate can run on every boot.
const Schema = `
CREATE TABLE IF NOT EXISTS organizations (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	document TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	logo TEXT,
	stripe_customer_id TEXT,
	active INTEGER NOT NULL DEFAULT 1,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS lawyers (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL REFERENCES organizations(id),
	name TEXT NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	phone TEXT,
	photo TEXT,
	oab TEXT NOT NULL,
	specialty TEXT,
	role TEXT NOT NULL DEFAULT 'lawyer',
	active INTEGER NOT NULL DEFAULT 1,
	avatar_color TEXT,
	reset_code TEXT,
	reset_expires INTEGER,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lawyers_org ON lawyers(organization_id);

CREATE TABLE IF NOT EXISTS board_columns (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL REFERENCES organizations(id),
	title TEXT NOT NULL,
	is_default INTEGER NOT NULL DEFAULT 0,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_columns_org ON board_columns(organization_id);

CREATE TABLE IF NOT EXISTS legal_cases (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL REFERENCES organizations(id),
	column_id TEXT NOT NULL REFERENCES board_columns(id),
	number TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	client TEXT NOT NULL,
	client_phone TEXT,
	priority TEXT NOT NULL DEFAULT 'medium',
	sort_order INTEGER NOT NULL DEFAULT 0,
	active INTEGER NOT NULL DEFAULT 1,
	assigned_to TEXT REFERENCES lawyers(id),
	created_by TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cases_org ON legal_cases(organization_id);
CREATE INDEX IF NOT EXISTS idx_cases_column ON legal_cases(column_id);

CREATE TABLE IF NOT EXISTS document_requests (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL REFERENCES legal_cases(id),
	name TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL DEFAULT 'pending',
	file_url TEXT,
	requested_at INTEGER NOT NULL,
	uploaded_at INTEGER,
	received_at INTEGER,
	rejected_at INTEGER,
	rejection_reason TEXT,
	rejection_note TEXT
);
CREATE INDEX IF NOT EXISTS idx_documents_case ON document_requests(case_id);

CREATE TABLE IF NOT EXISTS shareable_links (
	id TEXT PRIMARY KEY,
	token TEXT UNIQUE NOT NULL,
	case_id TEXT NOT NULL REFERENCES legal_cases(id),
	is_expired INTEGER NOT NULL DEFAULT 0,
	created_by TEXT NOT NULL REFERENCES lawyers(id),
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_links_case ON shareable_links(case_id);

CREATE TABLE IF NOT EXISTS link_documents (
	link_id TEXT NOT NULL REFERENCES shareable_links(id),
	document_id TEXT NOT NULL REFERENCES document_requests(id),
	PRIMARY KEY (link_id, document_id)
);

CREATE TABLE IF NOT EXISTS case_notifications (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL REFERENCES legal_cases(id),
	lawyer_id TEXT REFERENCES lawyers(id),
	type TEXT NOT NULL,
	message TEXT,
	date INTEGER NOT NULL,
	is_read INTEGER NOT NULL DEFAULT 0,
	read_at INTEGER,
	is_sent INTEGER NOT NULL DEFAULT 0,
	sent_at INTEGER,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_case ON case_notifications(case_id);
CREATE INDEX IF NOT EXISTS idx_notifications_lawyer ON case_notifications(lawyer_id);
CREATE INDEX IF NOT EXISTS idx_notifications_pending ON case_notifications(is_sent, date);

CREATE TABLE IF NOT EXISTS subscriptions (
	id TEXT PRIMARY KEY,
	organization_id TEXT NOT NULL REFERENCES organizations(id),
	stripe_subscription_id TEXT UNIQUE NOT NULL,
	stripe_price_id TEXT NOT NULL,
	plan TEXT NOT NULL,
	status TEXT NOT NULL,
	current_period_start INTEGER NOT NULL,
	current_period_end INTEGER NOT NULL,
	trial_end INTEGER,
	cancel_at_period_end INTEGER NOT NULL DEFAULT 0,
	canceled_at INTEGER,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_org ON subscriptions(organization_id);
`

func Migrate(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}

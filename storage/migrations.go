package storage

var pgMigration = []string{
	`CREATE TYPE plan_status AS ENUM ('new', 'has_catalog', 'has_schedule', 'has_notes', 'rendered', 'delivered', 'done')`,
	`CREATE TABLE plan (
id uuid PRIMARY KEY,
status plan_status NOT NULL,
topic VARCHAR(255) NOT NULL,
email VARCHAR(255) NOT NULL DEFAULT '',
document JSONB NOT NULL,
created_at TIMESTAMPTZ NOT NULL,
updated_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX plan_created_at_idx ON plan (created_at DESC)`,
}

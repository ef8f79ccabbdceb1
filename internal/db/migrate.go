package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// surveyTables are the three logically identical per-category response
// tables.
var surveyTables = []string{"general_survey", "mental_survey", "physical_survey"}

func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    full_name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    age INTEGER,
    gender TEXT NOT NULL DEFAULT 'Prefer not to answer',
    country TEXT,
    coins INTEGER NOT NULL DEFAULT 0 CHECK (coins >= 0),
    survey_count INTEGER NOT NULL DEFAULT 0 CHECK (survey_count >= 0),
    unsubscribed BOOLEAN NOT NULL DEFAULT false,
    is_admin BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS flowers (
    id SERIAL PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    cost INTEGER NOT NULL CHECK (cost > 0)
);

CREATE TABLE IF NOT EXISTS garden_flowers (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    flower_id INTEGER NOT NULL REFERENCES flowers(id),
    pos_x INTEGER NOT NULL DEFAULT 0,
    pos_y INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		return err
	}

	for _, table := range surveyTables {
		stmt := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    submission_id UUID NOT NULL,
    question TEXT NOT NULL,
    score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 10),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE(submission_id, question)
);
CREATE INDEX IF NOT EXISTS idx_%[1]s_user_created ON %[1]s (user_id, created_at);
`, table)
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			return err
		}
	}

	seed := `
INSERT INTO flowers (name, cost) VALUES
    ('daisy', 5),
    ('tulip', 10),
    ('sunflower', 15),
    ('rose', 20),
    ('orchid', 30)
ON CONFLICT (name) DO NOTHING;
`
	_, err := db.ExecContext(context.Background(), seed)
	return err
}

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT admins_email_key UNIQUE (email)
	)`,
	`CREATE SEQUENCE IF NOT EXISTS captain_uid_seq`,
	`CREATE SEQUENCE IF NOT EXISTS player_uid_seq`,
	`CREATE TABLE IF NOT EXISTS captains (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL,
		r_number      TEXT NOT NULL,
		unique_id     TEXT NOT NULL,
		department    TEXT NOT NULL,
		blood_group   TEXT NOT NULL DEFAULT '',
		phone         TEXT NOT NULL DEFAULT '',
		sport         TEXT NOT NULL DEFAULT '',
		gender        TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'pending',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT captains_email_key UNIQUE (email),
		CONSTRAINT captains_r_number_key UNIQUE (r_number),
		CONSTRAINT captains_unique_id_key UNIQUE (unique_id)
	)`,
	`CREATE TABLE IF NOT EXISTS department_players (
		id          SERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL DEFAULT '',
		r_number    TEXT NOT NULL,
		unique_id   TEXT NOT NULL,
		department  TEXT NOT NULL,
		blood_group TEXT NOT NULL DEFAULT '',
		phone       TEXT NOT NULL DEFAULT '',
		sport       TEXT NOT NULL,
		gender      TEXT NOT NULL,
		year        TEXT NOT NULL DEFAULT '',
		captain_id  INTEGER NOT NULL REFERENCES captains(id),
		status      TEXT NOT NULL DEFAULT 'pending',
		added_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT department_players_r_number_sport_key UNIQUE (r_number, sport)
	)`,
	`CREATE INDEX IF NOT EXISTS department_players_captain_id_idx ON department_players (captain_id)`,
	`CREATE INDEX IF NOT EXISTS department_players_unique_id_idx ON department_players (unique_id)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id           SERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		sport        TEXT NOT NULL,
		department   TEXT NOT NULL DEFAULT '',
		coach        TEXT NOT NULL DEFAULT '',
		captain_name TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		record       TEXT NOT NULL DEFAULT '',
		wins         TEXT NOT NULL DEFAULT '',
		standings    TEXT NOT NULL DEFAULT '',
		image_key    TEXT,
		image_url    TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT teams_name_sport_key UNIQUE (name, sport)
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL,
		r_number      TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		team_id       INTEGER REFERENCES teams(id) ON DELETE SET NULL,
		department    TEXT NOT NULL DEFAULT '',
		position      TEXT NOT NULL DEFAULT '',
		jersey_number INTEGER,
		status        TEXT NOT NULL DEFAULT 'pending',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT players_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id         SERIAL PRIMARY KEY,
		team_a     TEXT NOT NULL,
		team_b     TEXT NOT NULL,
		team_a_id  INTEGER REFERENCES teams(id) ON DELETE SET NULL,
		team_b_id  INTEGER REFERENCES teams(id) ON DELETE SET NULL,
		sport      TEXT NOT NULL,
		match_date TIMESTAMPTZ NOT NULL,
		venue      TEXT NOT NULL DEFAULT '',
		score_a    INTEGER NOT NULL DEFAULT 0,
		score_b    INTEGER NOT NULL DEFAULT 0,
		status     TEXT NOT NULL DEFAULT 'scheduled',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id           SERIAL PRIMARY KEY,
		serial_no    INTEGER NOT NULL,
		date         TEXT NOT NULL,
		time         TEXT NOT NULL DEFAULT '',
		activity     TEXT NOT NULL,
		sport        TEXT NOT NULL,
		gender       TEXT NOT NULL DEFAULT '',
		match_detail TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS rules (
		id            SERIAL PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL,
		sport         TEXT NOT NULL DEFAULT '',
		category      TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS announcements (
		id          SERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		priority    TEXT NOT NULL DEFAULT 'normal',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS gallery_items (
		id          SERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		image_url   TEXT NOT NULL,
		image_key   TEXT,
		category    TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}
	return nil
}

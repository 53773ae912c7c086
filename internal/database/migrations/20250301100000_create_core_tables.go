package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			err := exec(ctx, db,
				`CREATE TABLE IF NOT EXISTS users (
					id            BIGSERIAL PRIMARY KEY,
					email         TEXT NOT NULL,
					password_hash TEXT NOT NULL,
					role          TEXT NOT NULL DEFAULT 'Member',
					created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
					CONSTRAINT users_email_key UNIQUE (email),
					CONSTRAINT users_role_check CHECK (role IN ('Admin', 'Leader', 'Member'))
				)`,
				`CREATE TABLE IF NOT EXISTS clubs (
					id          BIGSERIAL PRIMARY KEY,
					name        TEXT NOT NULL,
					description TEXT NOT NULL,
					image       TEXT NOT NULL,
					admin_id    BIGINT REFERENCES users (id) ON DELETE SET NULL,
					leader_id   BIGINT REFERENCES users (id) ON DELETE SET NULL,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE IF NOT EXISTS club_members (
					id        BIGSERIAL PRIMARY KEY,
					club_id   BIGINT NOT NULL REFERENCES clubs (id) ON DELETE CASCADE,
					user_id   BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
					joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					CONSTRAINT club_members_club_id_user_id_key UNIQUE (club_id, user_id)
				)`,
			)
			if err != nil {
				return fmt.Errorf("failed to create core tables: %w", err)
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			err := exec(ctx, db,
				`DROP TABLE IF EXISTS club_members`,
				`DROP TABLE IF EXISTS clubs`,
				`DROP TABLE IF EXISTS users`,
			)
			if err != nil {
				return fmt.Errorf("failed to drop core tables: %w", err)
			}
			return nil
		},
	)
}

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
				`CREATE TABLE IF NOT EXISTS general_announcements (
					id         BIGSERIAL PRIMARY KEY,
					text       TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE IF NOT EXISTS club_announcements (
					id         BIGSERIAL PRIMARY KEY,
					club_id    BIGINT NOT NULL REFERENCES clubs (id) ON DELETE CASCADE,
					text       TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE IF NOT EXISTS events (
					id          BIGSERIAL PRIMARY KEY,
					title       TEXT NOT NULL,
					description TEXT NOT NULL,
					event_date  TEXT NOT NULL,
					club_id     BIGINT REFERENCES clubs (id) ON DELETE CASCADE,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
			)
			if err != nil {
				return fmt.Errorf("failed to create content tables: %w", err)
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			err := exec(ctx, db,
				`DROP TABLE IF EXISTS events`,
				`DROP TABLE IF EXISTS club_announcements`,
				`DROP TABLE IF EXISTS general_announcements`,
			)
			if err != nil {
				return fmt.Errorf("failed to drop content tables: %w", err)
			}
			return nil
		},
	)
}

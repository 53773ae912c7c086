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
				`CREATE INDEX IF NOT EXISTS club_members_user_id_idx ON club_members (user_id)`,
				`CREATE INDEX IF NOT EXISTS club_announcements_club_id_created_at_idx ON club_announcements (club_id, created_at DESC)`,
				`CREATE INDEX IF NOT EXISTS events_club_id_idx ON events (club_id)`,
				`CREATE INDEX IF NOT EXISTS events_event_date_idx ON events (event_date)`,
			)
			if err != nil {
				return fmt.Errorf("failed to create lookup indexes: %w", err)
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			err := exec(ctx, db,
				`DROP INDEX IF EXISTS events_event_date_idx`,
				`DROP INDEX IF EXISTS events_club_id_idx`,
				`DROP INDEX IF EXISTS club_announcements_club_id_created_at_idx`,
				`DROP INDEX IF EXISTS club_members_user_id_idx`,
			)
			if err != nil {
				return fmt.Errorf("failed to drop lookup indexes: %w", err)
			}
			return nil
		},
	)
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	"github.com/forgo/clubhub/api/internal/config"
	"github.com/forgo/clubhub/api/internal/database/migrations"
)

func main() {
	var db *bun.DB

	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the ClubHub database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			db = migrations.Open(cfg.Database.URL)
			return nil
		},
		After: func(c *cli.Context) error {
			if db != nil {
				return db.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return migrations.NewMigrator(db).Init(c.Context)
				},
			},
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Action: func(c *cli.Context) error {
					group, err := migrations.Up(c.Context, db)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Println("no new migrations to run")
						return nil
					}
					fmt.Printf("migrated to %s\n", group)
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "roll back the last migration group",
				Action: func(c *cli.Context) error {
					return withLock(c, db, func(m *migrate.Migrator) error {
						group, err := m.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Println("no groups to roll back")
							return nil
						}
						fmt.Printf("rolled back %s\n", group)
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					ms, err := migrations.NewMigrator(db).MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Printf("migrations: %s\n", ms)
					fmt.Printf("unapplied migrations: %s\n", ms.Unapplied())
					fmt.Printf("last migration group: %s\n", ms.LastGroup())
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func withLock(c *cli.Context, db *bun.DB, fn func(*migrate.Migrator) error) error {
	m := migrations.NewMigrator(db)
	if err := m.Lock(c.Context); err != nil {
		return err
	}
	defer func() { _ = m.Unlock(c.Context) }()
	return fn(m)
}

// Package config manages application configuration for the ClubHub API.
//
// Load starts from Default, overlays an optional YAML file and then applies
// environment variables, so the environment always wins:
//
//	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// Environment variables:
//
//	SERVER_PORT                - HTTP port (default: 8080)
//	SERVER_ENV                 - development, production or test
//	SERVER_READ_TIMEOUT        - e.g. 15s
//	SERVER_WRITE_TIMEOUT       - e.g. 15s
//	SERVER_SHUTDOWN_TIMEOUT    - graceful shutdown budget
//	CORS_ALLOWED_ORIGINS       - comma separated, "*" for any
//	DATABASE_URL               - Postgres connection string
//	DB_MAX_CONNS               - pool size
//	DB_CONNECT_TIMEOUT         - initial connect and ping budget
//	DB_AUTO_MIGRATE            - run migrations at startup
//	BCRYPT_COST                - password hashing cost
//	RATE_LIMIT_RPS             - per-IP requests per second, 0 disables
//	RATE_LIMIT_BURST           - per-IP burst
//	METRICS_ENABLED            - serve /metrics
//	CLUB_ANNOUNCEMENT_PREVIEW  - announcements attached to each club in listings
//	LOG_LEVEL                  - debug, info, warn or error
package config

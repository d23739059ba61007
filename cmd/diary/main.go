package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	_ "modernc.org/sqlite"

	"diary/internal/adapters/cli"
	"diary/internal/adapters/storage"
	auditStorePkg "diary/internal/adapters/storage/audit"
	eventStorePkg "diary/internal/adapters/storage/event"
	"diary/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "diary.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var store eventStorePkg.Store
	switch cfg.Storage.Backend {
	case config.BackendJSON:
		s, err := eventStorePkg.NewJSONStore(cfg.Storage.Path)
		if err != nil {
			// A corrupt backing file aborts startup rather than silently
			// starting empty and overwriting it on the first mutation.
			log.Fatalf("failed to open event store: %v", err)
		}
		store = s
	case config.BackendSQLite:
		dsn := cfg.Storage.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("database unreachable: %v", err)
		}
		if err := storage.InitDB(db); err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		store = eventStorePkg.NewSQLiteStore(storage.NewTimedDB(db))
	default:
		log.Fatalf("unknown storage backend %q", cfg.Storage.Backend)
	}

	var auditStore auditStorePkg.Store = auditStorePkg.NewNoopStore()
	if cfg.Audit.Enabled {
		auditStore = auditStorePkg.NewFileStore(cfg.Audit.Path)
	}

	log.Printf("Diary %s starting (backend=%s)", version, cfg.Storage.Backend)

	menu := cli.New(os.Stdin, os.Stdout, store, auditStore)
	if err := menu.Run(context.Background()); err != nil {
		log.Fatalf("diary session failed: %v", err)
	}
}

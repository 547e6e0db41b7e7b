package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "laxhq/internal/adapters/email"
	web "laxhq/internal/adapters/http"
	"laxhq/internal/adapters/http/perf"
	"laxhq/internal/adapters/storage"
	accountStore "laxhq/internal/adapters/storage/account"
	drillStore "laxhq/internal/adapters/storage/drill"
	planStore "laxhq/internal/adapters/storage/plan"
	snapshotStore "laxhq/internal/adapters/storage/snapshot"
	strategyStore "laxhq/internal/adapters/storage/strategy"
	teamStore "laxhq/internal/adapters/storage/team"
	templateStore "laxhq/internal/adapters/storage/template"
	"laxhq/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode, busy timeout and foreign keys for concurrent web access
	dbPath := envOrDefault("LAXHQ_DB", "laxhq.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	// Create store instances (using timed DB for query instrumentation)
	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  acctStore,
		TeamStore:     teamStore.NewSQLiteStore(timedDB),
		DrillStore:    drillStore.NewSQLiteStore(timedDB),
		StrategyStore: strategyStore.NewSQLiteStore(timedDB),
		PlanStore:     planStore.NewSQLiteStore(timedDB),
		TemplateStore: templateStore.NewSQLiteStore(timedDB),
		SnapshotStore: snapshotStore.NewSQLiteStore(timedDB),
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("LAXHQ_ADMIN_EMAIL", "admin@laxhq.app")
	adminPassword := envOrDefault("LAXHQ_ADMIN_PASSWORD", "Change me before kickoff")
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Seed the starter drill and strategy catalog plus the official template
	seedCatalogDeps := orchestrators.SeedCatalogDeps{
		DrillStore:    stores.DrillStore,
		StrategyStore: stores.StrategyStore,
		TemplateStore: stores.TemplateStore,
	}
	if err := orchestrators.ExecuteSeedCatalog(context.Background(), seedCatalogDeps); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("LAXHQ_RESEND_API_KEY")
	emailFrom := envOrDefault("LAXHQ_RESEND_FROM", "LaxHQ <noreply@laxhq.app>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if os.Getenv("LAXHQ_ENV") == "production" {
			log.Println("WARNING: LAXHQ_RESEND_API_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set LAXHQ_RESEND_API_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + perf endpoint)
	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("LAXHQ_ADDR", ":8080")
	log.Printf("LaxHQ %s starting on %s (env=%s)", version, addr, envOrDefault("LAXHQ_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

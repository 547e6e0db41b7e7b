package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"laxhq/internal/adapters/email"
	"laxhq/internal/adapters/http/middleware"
	"laxhq/internal/adapters/http/perf"
	accountStore "laxhq/internal/adapters/storage/account"
	drillStore "laxhq/internal/adapters/storage/drill"
	planStore "laxhq/internal/adapters/storage/plan"
	snapshotStore "laxhq/internal/adapters/storage/snapshot"
	strategyStore "laxhq/internal/adapters/storage/strategy"
	teamStore "laxhq/internal/adapters/storage/team"
	templateStore "laxhq/internal/adapters/storage/template"
	"laxhq/internal/application/catalog"
	"laxhq/internal/application/editor"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	TeamStore     teamStore.Store
	DrillStore    drillStore.Store
	StrategyStore strategyStore.Store
	PlanStore     planStore.Store
	TemplateStore templateStore.Store
	SnapshotStore snapshotStore.Store
}

// loadCSRFKey reads the CSRF secret from LAXHQ_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("LAXHQ_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("LAXHQ_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("LAXHQ_ENV") == "production" {
		log.Fatal("LAXHQ_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set LAXHQ_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global catalog cache (set by NewMux)
var catalogService *catalog.Service

// Global editor session manager (set by NewMux)
var editorManager *editor.Manager

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("LAXHQ_ENV") == "production"

	catalogService = catalog.NewService(s.DrillStore, s.StrategyStore)
	catalogService.Refresh(context.Background())
	editorManager = editor.NewManager(s.SnapshotStore, editor.DefaultQuietPeriod, editor.Deps{
		GenerateID: generateID,
		Now:        timeNow,
	})

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

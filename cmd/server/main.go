package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/dustin/go-humanize"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/nexiumfounders/subsplit/internal/auth"
	"github.com/nexiumfounders/subsplit/internal/config"
	"github.com/nexiumfounders/subsplit/internal/ledger"
	"github.com/nexiumfounders/subsplit/internal/metrics"
	"github.com/nexiumfounders/subsplit/internal/middleware"
	"github.com/nexiumfounders/subsplit/internal/service"
	"github.com/nexiumfounders/subsplit/internal/storage"
	"github.com/nexiumfounders/subsplit/internal/storage/memory"
	"github.com/nexiumfounders/subsplit/internal/storage/sqlite"
	"github.com/nexiumfounders/subsplit/pkg/api/apiconnect"
	"github.com/nexiumfounders/subsplit/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.SetupWith(os.Stderr, logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	book, err := config.LoadBook(cfg.BookPath)
	if err != nil {
		slog.Error("Failed to load book", "path", cfg.BookPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Book loaded",
		"path", cfg.BookPath,
		"participants", len(book.Participants),
		"charges", len(book.Charges),
		"currency", book.Currency,
	)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.StorageBackend, "database", cfg.DBPath)

	m := metrics.New()
	session := ledger.New(book, store,
		ledger.WithLogger(logger.With("component", "ledger")),
		ledger.WithMetrics(m),
		ledger.WithHistoryLimit(cfg.HistoryLimit),
	)
	session.Load(context.Background())
	logLastWrite(store)

	mux := http.NewServeMux()
	logInterceptor := middleware.LoggingInterceptor(m)

	ledgerOpts := connect.WithInterceptors(logInterceptor)
	if cfg.AuthEnabled() {
		jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
		authenticator := auth.NewPasswordAuthenticator(cfg.OperatorEmail, cfg.OperatorPasswordHash)

		authPath, authHandler := apiconnect.NewAuthServiceHandler(
			service.NewAuthService(authenticator, jwtManager, logger),
			connect.WithInterceptors(logInterceptor),
		)
		mux.Handle(authPath, authHandler)

		ledgerOpts = connect.WithInterceptors(logInterceptor,
			middleware.RequireAuth(jwtManager, apiconnect.LedgerServiceGetSummaryProcedure))
		slog.Info("Operator auth enabled", "email", cfg.OperatorEmail)
	} else {
		slog.Warn("Operator auth disabled, ledger commands are open", "hint", "set OPERATOR_PASSWORD_HASH")
	}

	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(service.NewLedgerService(session, logger), ledgerOpts)
	mux.Handle(ledgerPath, ledgerHandler)

	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return sqlite.New(cfg.DBPath)
	}
}

// logLastWrite reports when the settlements were last persisted, for stores
// that track it.
func logLastWrite(store storage.Store) {
	tracked, ok := store.(interface {
		UpdatedAt(ctx context.Context, key string) (time.Time, error)
	})
	if !ok {
		return
	}
	at, err := tracked.UpdatedAt(context.Background(), storage.KeySettlements)
	if err != nil {
		slog.Info("No settlements persisted yet")
		return
	}
	slog.Info("Settlements restored", "last_written", humanize.Time(at))
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-Id, Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

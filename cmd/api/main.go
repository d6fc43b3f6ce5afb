package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/accounts"
	"github.com/Sguobi-git/Orders-App/internal/checklist"
	"github.com/Sguobi-git/Orders-App/internal/config"
	"github.com/Sguobi-git/Orders-App/internal/dashboard"
	"github.com/Sguobi-git/Orders-App/internal/database"
	"github.com/Sguobi-git/Orders-App/internal/demo"
	"github.com/Sguobi-git/Orders-App/internal/feedback"
	"github.com/Sguobi-git/Orders-App/internal/handlers"
	"github.com/Sguobi-git/Orders-App/internal/inventory"
	"github.com/Sguobi-git/Orders-App/internal/orders"
	"github.com/Sguobi-git/Orders-App/internal/reconcile"
	"github.com/Sguobi-git/Orders-App/internal/session"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
	"github.com/Sguobi-git/Orders-App/internal/websocket"
	"github.com/redis/go-redis/v9"
	logger "github.com/sirupsen/logrus"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if lvl, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warnf("⚠️ Unknown LOG_LEVEL %q, keeping %s", cfg.LogLevel, logger.GetLevel())
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 2. Spreadsheet backend behind the shared cache
	client, err := sheets.Open(ctx, cfg.Sheets)
	if err != nil {
		logger.Fatalf("Failed to open spreadsheet backend: %v", err)
	}
	if mem, ok := client.(*sheets.MemoryClient); ok {
		if cfg.Sheets.OrdersSheetID == "" {
			cfg.Sheets.OrdersSheetID = demo.OrdersSheetID
		}
		if cfg.Sheets.ChecklistSheetID == "" {
			cfg.Sheets.ChecklistSheetID = demo.ChecklistSheetID
		}
		demo.Seed(mem, cfg.Sheets.OrdersSheetID, cfg.Sheets.ChecklistSheetID)
		logger.Info("🌱 Seeded in-memory spreadsheets with demo data")
	}
	cached := sheets.NewCachedClient(client, cfg.Sheets.CacheTTL)

	book := sheets.NewBook(cached, cfg.Sheets.OrdersSheetID)
	ordersSvc := orders.NewService(book, reconcile.NewSheetStore(book))
	inventorySvc := inventory.NewService(book)

	var checklistSvc *checklist.Service
	if cfg.Sheets.ChecklistSheetID != "" {
		checklistSvc = checklist.NewService(sheets.NewBook(cached, cfg.Sheets.ChecklistSheetID))
	} else {
		logger.Warn("⚠️ CHECKLIST_SHEET_ID not set, checklists are disabled")
	}

	// 3. Session store
	var sessions session.Store
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Fatalf("Failed to reach Redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
		logger.Infof("🔐 Sessions stored in Redis at %s", cfg.Redis.Addr)
	} else {
		sessions = session.NewMemoryStore()
		logger.Info("🔐 Sessions stored in memory")
	}

	// 4. Accounts
	accountStore, err := accounts.OpenFileStore(cfg.Accounts.UsersFile)
	if err != nil {
		logger.Fatalf("Failed to open user store: %v", err)
	}
	accountSvc := accounts.NewService(accountStore, sessions, cfg.CorporateDomain)
	if err := accountSvc.EnsureAdmin(); err != nil {
		logger.Fatalf("Failed to create the initial admin: %v", err)
	}

	// 5. Feedback log, in PostgreSQL when configured
	var db *database.DB
	var feedbackStore feedback.Store
	if cfg.Database.Enabled() {
		db, err = database.Connect(cfg.Database)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		dbStore, err := feedback.NewDBStore(db)
		if err != nil {
			logger.Fatalf("Failed to prepare feedback table: %v", err)
		}
		feedbackStore = dbStore
	} else {
		feedbackStore = feedback.NewFileStore(cfg.Feedback.File)
		logger.Infof("📝 Feedback stored in %s", cfg.Feedback.File)
	}

	// 6. Live update hub
	hub := websocket.NewHub()
	go hub.Run(ctx)

	router := handlers.NewRouter(handlers.Deps{
		Config:     cfg,
		Accounts:   accountSvc,
		Sessions:   sessions,
		Orders:     ordersSvc,
		Inventory:  inventorySvc,
		Dashboard:  dashboard.NewService(ordersSvc, inventorySvc),
		Checklists: checklistSvc,
		Feedback:   feedback.NewService(feedbackStore),
		Hub:        hub,
		Cache:      cached,
	})

	// 7. Start server with graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Infof("🚀 Orders dashboard starting on port %s (%d shows)", cfg.Port, len(cfg.Shows))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	logger.Warnf("⚠️ Received signal: %v. Shutting down gracefully...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}

	// Closes every websocket client
	stop()

	if db != nil {
		logger.Info("🛑 Closing database connection...")
		if err := db.Close(); err != nil {
			logger.Errorf("Database close error: %v", err)
		}
	}

	logger.Info("✅ Shutdown complete")
}

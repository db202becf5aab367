package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/surcoapps/mantgo/internal/ai"
	"github.com/surcoapps/mantgo/internal/config"
	"github.com/surcoapps/mantgo/internal/database"
	"github.com/surcoapps/mantgo/internal/evidence"
	"github.com/surcoapps/mantgo/internal/handlers"
	"github.com/surcoapps/mantgo/internal/report"
	"github.com/surcoapps/mantgo/internal/store"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		log.Fatalf("Failed to prepare storage directories: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	if err := st.EnsureSeedClasses(); err != nil {
		log.Printf("⚠️ Class seeding warning: %v\n", err)
	}

	// 4. Text generation client. Optional: without an API key the
	// drafting endpoints answer with a configuration error.
	var gen ai.Generator
	var gemini *ai.GeminiClient
	if cfg.Gemini.APIKey != "" {
		gemini, err = ai.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("⚠️ Gemini: client init failed, drafting disabled: %v", err)
		} else {
			log.Printf("✅ Gemini: client ready (model %s)", cfg.Gemini.Model)
			gen = gemini
		}
	} else {
		log.Println("⚠️ Gemini: GEMINI_API_KEY not set, drafting disabled")
	}

	drafter := ai.NewDrafter(gen, st)
	ev := evidence.NewManager(cfg.Storage.UploadDir, st)
	compiler := report.NewCompiler(
		st,
		&report.DocxEngine{},
		cfg.Storage.TemplatePath(),
		cfg.Storage.ReportsDir,
		cfg.Storage.UploadDir,
		cfg.PublicBaseURL,
	)

	// 5. Set up HTTP router
	router := handlers.NewRouter(cfg, st, drafter, compiler, ev)

	// 6. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if gemini != nil {
		gemini.Close()
	}

	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}

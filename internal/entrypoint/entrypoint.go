package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bibliotheque/internal/audit"
	"github.com/mrlokans/bibliotheque/internal/config"
	"github.com/mrlokans/bibliotheque/internal/database"
	"github.com/mrlokans/bibliotheque/internal/database/catalog"
	"github.com/mrlokans/bibliotheque/internal/database/loans"
	"github.com/mrlokans/bibliotheque/internal/database/users"
	http_controllers "github.com/mrlokans/bibliotheque/internal/http"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM with a bounded drain window.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bibliotheque v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, database.Options{
		UniqueLogins: cfg.Database.UniqueLogins,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	var auditor *audit.Auditor
	if cfg.Audit.Enabled {
		auditor = audit.NewAuditor(cfg.Audit.Dir)
		log.Printf("Auditing write requests to %s", cfg.Audit.Dir)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:   db,
		Catalog:    catalog.NewRepository(db.DB),
		Loans:      loans.NewRepository(db.DB),
		Users:      users.NewRepository(db.DB),
		Auditor:    auditor,
		BcryptCost: cfg.Auth.BcryptCost,
		Version:    version,
	})

	Serve(router, cfg)
}

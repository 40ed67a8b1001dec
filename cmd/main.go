package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comanda/internal/api"
	"comanda/internal/config"
	"comanda/internal/database"
	"comanda/internal/dialogue"
	"comanda/internal/faq"
	"comanda/internal/llm"
	"comanda/internal/menu"
	"comanda/internal/monitoring"
	"comanda/internal/orders"
	"comanda/internal/pending"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.Seed(db, cfg.Currency); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	provider, err := llm.NewOpenAI(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize completion provider: %v", err)
	}

	monitor := monitoring.NewMonitor()
	catalog := menu.NewCatalog(db)
	faqs := faq.NewMatcher(db)
	ledger := pending.NewLedger(db)
	queue := orders.NewQueue(db, cfg.SLAMinutes)
	orch := dialogue.NewOrchestrator(cfg, catalog, faqs, ledger, queue, provider, monitor)

	app := api.NewServer(cfg, catalog, orch, ledger, queue, monitor)

	go startMetricsServer(*metricsPort)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: app.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}

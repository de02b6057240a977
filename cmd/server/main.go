package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"gascrm-backend/internal/auth"
	"gascrm-backend/internal/backup"
	"gascrm-backend/internal/cache"
	"gascrm-backend/internal/config"
	"gascrm-backend/internal/database"
	"gascrm-backend/internal/db"
	"gascrm-backend/internal/handlers"
	"gascrm-backend/internal/health"
	h "gascrm-backend/internal/http"
	"gascrm-backend/internal/middleware"
	"gascrm-backend/internal/monitoring"
	"gascrm-backend/internal/repositories"
	"gascrm-backend/internal/services"
	"gascrm-backend/internal/store"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (responses served from database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, "migrations")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Start monitoring stats server in background
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	clientRepo := repositories.NewClientRepository(pool)
	activityRepo := repositories.NewActivityRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	auditLogRepo := repositories.NewAuditLogRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	exportRepo := repositories.NewExportRepository(pool)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize services
	userService := services.NewUserService(userRepo, clientRepo, jwtManager)
	clientService := services.NewClientService(clientRepo, activityRepo, userRepo)
	activityService := services.NewActivityService(pool, clientRepo, activityRepo, notificationRepo)
	dashboardService := services.NewDashboardService(clientRepo, activityRepo, userRepo)
	exportService := services.NewExportService(clientService, exportRepo)
	reportService := services.NewReportService(clientService, activityService)

	// Initialize snapshot store and optional R2 upload
	fileStore, err := store.NewFileStore(cfg.Storage.SnapshotDir)
	if err != nil {
		log.Fatalf("Failed to initialize snapshot store: %v", err)
	}
	var r2Client *backup.R2Client
	if cfg.R2Enabled() {
		r2Client, err = backup.NewR2Client(context.Background(), cfg)
		if err != nil {
			log.Printf("[Backup] R2 unavailable: %v (snapshots stay local)", err)
		} else {
			log.Println("[Backup] R2 upload enabled")
		}
	} else {
		log.Println("[Backup] R2 not configured, snapshots stay local")
	}
	snapshotService := backup.NewSnapshotService(fileStore, r2Client,
		clientRepo, activityRepo, notificationRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, loginLogRepo)
	userHandler := handlers.NewUserHandler(userService, auditLogRepo)
	clientHandler := handlers.NewClientHandler(clientService, userRepo, auditLogRepo)
	activityHandler := handlers.NewActivityHandler(activityService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, userRepo)
	exportHandler := handlers.NewExportHandler(exportService, userRepo)
	reportHandler := handlers.NewReportHandler(reportService, userRepo)
	logsHandler := handlers.NewLogsHandler(auditLogRepo, loginLogRepo)
	backupHandler := handlers.NewBackupHandler(snapshotService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Create router
	router := h.NewRouter(authHandler, userHandler, clientHandler, activityHandler,
		notificationHandler, dashboardHandler, exportHandler, reportHandler,
		logsHandler, backupHandler, healthHandler, authMiddleware)

	// Wrap with panic recovery and CORS; request metrics sit on the router
	handler := middleware.PanicRecovery(corsMiddleware(router))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

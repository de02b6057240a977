package http

import (
	"net/http"

	"gascrm-backend/internal/handlers"
	"gascrm-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	clientHandler *handlers.ClientHandler,
	activityHandler *handlers.ActivityHandler,
	notificationHandler *handlers.NotificationHandler,
	dashboardHandler *handlers.DashboardHandler,
	exportHandler *handlers.ExportHandler,
	reportHandler *handlers.ReportHandler,
	logsHandler *handlers.LogsHandler,
	backupHandler *handlers.BackupHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Request metrics live on the router so labels use route templates
	r.Use(middleware.MetricsMiddleware)

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Logout
	logoutAPI := r.PathPrefix("/api/logout").Subrouter()
	logoutAPI.Use(authMiddleware.Authenticate)
	logoutAPI.HandleFunc("", authHandler.Logout).Methods("POST")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.GetUser)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.UpdateUser)).ServeHTTP).Methods("PUT")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.DeleteUser)).ServeHTTP).Methods("DELETE")
	usersAPI.HandleFunc("/{id}/status", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.SetUserStatus)).ServeHTTP).Methods("PATCH")

	// Protected API routes - Clients
	clientsAPI := r.PathPrefix("/api/clients").Subrouter()
	clientsAPI.Use(authMiddleware.Authenticate)
	clientsAPI.HandleFunc("", clientHandler.ListClients).Methods("GET")
	clientsAPI.HandleFunc("", clientHandler.CreateClient).Methods("POST")
	clientsAPI.HandleFunc("/{id}", clientHandler.GetClient).Methods("GET")
	clientsAPI.HandleFunc("/{id}", clientHandler.UpdateClient).Methods("PUT")
	clientsAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(clientHandler.DeleteClient)).ServeHTTP).Methods("DELETE")
	clientsAPI.HandleFunc("/{id}/activities", activityHandler.ListActivities).Methods("GET")
	clientsAPI.HandleFunc("/{id}/activities", activityHandler.AppendActivity).Methods("POST")

	// Protected API routes - Notifications
	notificationsAPI := r.PathPrefix("/api/notifications").Subrouter()
	notificationsAPI.Use(authMiddleware.Authenticate)
	notificationsAPI.HandleFunc("", notificationHandler.ListNotifications).Methods("GET")
	notificationsAPI.HandleFunc("/{id}/read", notificationHandler.MarkRead).Methods("PATCH")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/stats", dashboardHandler.GetStats).Methods("GET")

	// Protected API routes - Exports
	exportsAPI := r.PathPrefix("/api/exports").Subrouter()
	exportsAPI.Use(authMiddleware.Authenticate)
	exportsAPI.HandleFunc("", exportHandler.CreateExport).Methods("POST")
	exportsAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(exportHandler.ListExports)).ServeHTTP).Methods("GET")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/clients.pdf", reportHandler.ClientsPDF).Methods("GET")
	reportsAPI.HandleFunc("/clients.csv", reportHandler.ClientsCSV).Methods("GET")

	// Protected API routes - Audit and login trails (admin only)
	auditLogsAPI := r.PathPrefix("/api/audit-logs").Subrouter()
	auditLogsAPI.Use(authMiddleware.Authenticate)
	auditLogsAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(logsHandler.ListAuditLogs)).ServeHTTP).Methods("GET")

	loginLogsAPI := r.PathPrefix("/api/login-logs").Subrouter()
	loginLogsAPI.Use(authMiddleware.Authenticate)
	loginLogsAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(logsHandler.ListLoginLogs)).ServeHTTP).Methods("GET")

	// Protected API routes - Backup (admin only)
	backupAPI := r.PathPrefix("/api/backup").Subrouter()
	backupAPI.Use(authMiddleware.Authenticate)
	backupAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(backupHandler.CreateSnapshot)).ServeHTTP).Methods("POST")
	backupAPI.HandleFunc("/status", authMiddleware.RequireAdmin(http.HandlerFunc(backupHandler.GetStatus)).ServeHTTP).Methods("GET")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"

	"github.com/gestiloc/inventory-service/internal/app"
	"github.com/gestiloc/inventory-service/internal/config"
	"github.com/gestiloc/inventory-service/internal/controllers"
	"github.com/gestiloc/inventory-service/internal/middleware"
	"github.com/gestiloc/inventory-service/internal/repositories"
	"github.com/gestiloc/inventory-service/internal/routes"
	"github.com/gestiloc/inventory-service/internal/services"
	"github.com/gestiloc/inventory-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (DB pool)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize inventory-service:", err)
	}
	defer application.Close()

	// 3) Repositories
	leaseRepo := repositories.NewLeaseRepository(application.DB)
	invRepo := repositories.NewInventoryRepository(application.DB)
	dedRepo := repositories.NewDeductionRepository(application.DB)

	// 4) Services
	var sgClient *sendgrid.Client
	if cfg.SendGridAPIKey != "" {
		sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	notifier := services.NewNotificationService(sgClient, cfg.SendGridFromName, cfg.SendGridFromEmail)

	invSvc := services.NewInventoryService(invRepo, leaseRepo)
	compSvc := services.NewComparisonService(invRepo, leaseRepo, services.DefaultVetusteTable())
	dedSvc := services.NewDeductionService(invRepo, leaseRepo, dedRepo, compSvc, notifier)
	cleanupSvc := services.NewCleanupService(invRepo, dedRepo, cfg.DraftRetentionDays)

	// 5) Controllers
	healthCtrl := controllers.NewHealthController(application)
	leaseCtrl := controllers.NewLeaseController(leaseRepo)
	invCtrl := controllers.NewInventoryController(invSvc)
	compCtrl := controllers.NewComparisonController(compSvc)
	dedCtrl := controllers.NewDeductionController(dedSvc)

	// 6) Cron: purge abandoned drafts nightly
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		cleanupSvc.RunOnce(context.Background())
	}); err != nil {
		utils.Logger.Fatal("Failed to schedule draft cleanup:", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 7) Router
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)

	auth := middleware.AuthMiddleware([]byte(cfg.JWTSecret))
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(auth)

	api.HandleFunc(trim(routes.Leases), leaseCtrl.CreateLeaseHandler).Methods(http.MethodPost)
	api.HandleFunc(trim(routes.Leases), leaseCtrl.ListLeasesHandler).Methods(http.MethodGet)
	api.HandleFunc(trim(routes.LeaseByID), leaseCtrl.GetLeaseHandler).Methods(http.MethodGet)

	api.HandleFunc(trim(routes.Inventories), invCtrl.CreateInventoryHandler).Methods(http.MethodPost)
	api.HandleFunc(trim(routes.Inventories), invCtrl.ListInventoriesHandler).Methods(http.MethodGet)
	api.HandleFunc(trim(routes.InventoryByID), invCtrl.GetInventoryHandler).Methods(http.MethodGet)
	api.HandleFunc(trim(routes.InventoryByID), invCtrl.UpdateInventoryHandler).Methods(http.MethodPatch)
	api.HandleFunc(trim(routes.InventoryComplete), invCtrl.CompleteInventoryHandler).Methods(http.MethodPost)
	api.HandleFunc(trim(routes.InventorySign), invCtrl.SignInventoryHandler).Methods(http.MethodPost)

	api.HandleFunc(trim(routes.InventoryComparison), compCtrl.CompareHandler).Methods(http.MethodGet)

	api.HandleFunc(trim(routes.Deductions), dedCtrl.InitializeHandler).Methods(http.MethodPost)
	api.HandleFunc(trim(routes.Deductions), dedCtrl.GetHandler).Methods(http.MethodGet)
	api.HandleFunc(trim(routes.DeductionLine), dedCtrl.OverrideLineHandler).Methods(http.MethodPatch)
	api.HandleFunc(trim(routes.DeductionManualLine), dedCtrl.AddManualLineHandler).Methods(http.MethodPost)
	api.HandleFunc(trim(routes.DeductionManualByID), dedCtrl.RemoveManualLineHandler).Methods(http.MethodDelete)
	api.HandleFunc(trim(routes.DeductionReset), dedCtrl.ResetHandler).Methods(http.MethodPost)
	api.HandleFunc(trim(routes.DeductionValidate), dedCtrl.ValidateHandler).Methods(http.MethodPost)

	// 8) CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, c.Handler(router)); err != nil {
		utils.Logger.Fatal("Server error:", err)
	}
}

// trim strips the /api/v1 prefix the subrouter already carries.
func trim(route string) string {
	return route[len("/api/v1"):]
}

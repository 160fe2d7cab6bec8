package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-scheduler/pkg/logging"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *logging.Logger
	Redis    *redis.Client // nil disables the catalog cache
	Audit    *audit.Dispatcher
	Registry *prometheus.Registry // nil disables /metrics
}

// PolicyFromConfig builds the business-hours policy; Sundays are closed.
func PolicyFromConfig(cfg *config.Config) domain.Policy {
	return domain.Policy{
		IntervalMinutes: cfg.SlotIntervalMinutes,
		OpenHour:        cfg.BusinessOpenHour,
		CloseHour:       cfg.BusinessCloseHour,
		ClosedWeekdays:  []time.Weekday{time.Sunday},
		Location:        timezone.Location(cfg.BusinessTimezone),
	}
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var bookingMetrics *metrics.BookingMetrics
	if d.Registry != nil {
		bookingMetrics = metrics.NewBookingMetrics(d.Registry)
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	policy := PolicyFromConfig(d.Config)

	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	productCatalog := infraRepo.NewProductCatalogGormRepository(d.DB)
	directoryRepo := infraRepo.NewDirectoryGormRepository(d.DB)

	var serviceCatalog domain.ServiceCatalog = infraRepo.NewServiceCatalogGormRepository(d.DB)
	if d.Redis != nil {
		serviceCatalog = cache.NewServiceCatalog(serviceCatalog, d.Redis, d.Config.CatalogCacheTTL, d.Logger)
	}

	var auditor ucAppointment.Auditor
	if d.Audit != nil {
		auditor = d.Audit
	}

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		serviceCatalog,
		productCatalog,
		policy,
		auditor,
		bookingMetrics,
		d.Logger,
	)

	transitionUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		auditor,
		bookingMetrics,
		d.Logger,
	)

	listUC := ucAppointment.NewListAppointments(appointmentRepo)
	getUC := ucAppointment.NewGetAppointment(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, serviceCatalog, policy)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		transitionUC,
		listUC,
		getUC,
		availabilityUC,
		policy,
	)
	catalogHandler := handlers.NewCatalogHandler(serviceCatalog, productCatalog)
	directoryHandler := handlers.NewDirectoryHandler(directoryRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB), d.Config.BusinessTimezone)

	// ======================================================
	// 🔐 API PRIVADA
	// ======================================================
	secured := r.Group("/api/me")
	secured.Use(middleware.AuthMiddleware(d.Config))
	{
		secured.POST("/appointments", appointmentHandler.Create)
		secured.PUT("/appointments/:id", appointmentHandler.Update)
		secured.GET("/appointments", appointmentHandler.List)
		secured.GET("/appointments/:id", appointmentHandler.Get)
		secured.PATCH("/appointments/:id/:action", appointmentHandler.Action)

		secured.GET("/availability", appointmentHandler.Availability)
		secured.GET("/slots", appointmentHandler.Slots)

		secured.GET("/services", catalogHandler.ListServices)
		secured.GET("/products", catalogHandler.ListProducts)

		secured.GET("/customers", directoryHandler.ListCustomers)
		secured.GET("/professionals", directoryHandler.ListProfessionals)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}

package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/dealer-voicebot/internal/audit"
	"github.com/BruksfildServices01/dealer-voicebot/internal/config"
	"github.com/BruksfildServices01/dealer-voicebot/internal/handlers"
	infraRepo "github.com/BruksfildServices01/dealer-voicebot/internal/infra/repository"
	"github.com/BruksfildServices01/dealer-voicebot/internal/middleware"
	"github.com/BruksfildServices01/dealer-voicebot/internal/retrieval"
	"github.com/BruksfildServices01/dealer-voicebot/internal/tools"
	ucCalendar "github.com/BruksfildServices01/dealer-voicebot/internal/usecase/calendar"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	store := infraRepo.NewCalendarGormStore(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var retriever retrieval.Retriever = retrieval.NewHTTPClient(cfg.RetrievalURL)
	if rdb != nil {
		retriever = retrieval.NewCachedRetriever(retriever, rdb, 10*time.Minute)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucCalendar.NewResolveAvailability(store)
	bookingUC := ucCalendar.NewBookAppointment(store, availabilityUC, auditDispatcher)

	// ======================================================
	// DISPATCHER + HANDLERS
	// ======================================================
	dispatcher := tools.NewDispatcher(
		store,
		availabilityUC,
		bookingUC,
		retriever,
		cfg.RetrievalTimeout,
		cfg.Timezone,
	)

	toolsHandler := handlers.NewToolsHandler(dispatcher)

	// ======================================================
	// ROUTES
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.POST("/tools/:name", toolsHandler.Invoke)
	}
}

package main

import (
	"log"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/BruksfildServices01/dealer-voicebot/internal/audit"
	"github.com/BruksfildServices01/dealer-voicebot/internal/config"
	dbpkg "github.com/BruksfildServices01/dealer-voicebot/internal/db"
	infraRepo "github.com/BruksfildServices01/dealer-voicebot/internal/infra/repository"
	"github.com/BruksfildServices01/dealer-voicebot/internal/retrieval"
	"github.com/BruksfildServices01/dealer-voicebot/internal/tools"
	"github.com/BruksfildServices01/dealer-voicebot/internal/tools/mcptools"
	ucCalendar "github.com/BruksfildServices01/dealer-voicebot/internal/usecase/calendar"
)

const version = "0.1.0"

// Serves the same four tools as the HTTP API, but over MCP stdio for
// reasoning loops that attach as an MCP client.
func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)

	store := infraRepo.NewCalendarGormStore(db)
	auditDispatcher := audit.NewDispatcher(audit.New(db))

	var retriever retrieval.Retriever = retrieval.NewHTTPClient(cfg.RetrievalURL)
	if rdb != nil {
		retriever = retrieval.NewCachedRetriever(retriever, rdb, 10*time.Minute)
	}

	availabilityUC := ucCalendar.NewResolveAvailability(store)
	bookingUC := ucCalendar.NewBookAppointment(store, availabilityUC, auditDispatcher)

	dispatcher := tools.NewDispatcher(
		store,
		availabilityUC,
		bookingUC,
		retriever,
		cfg.RetrievalTimeout,
		cfg.Timezone,
	)

	srv := mcpserver.NewMCPServer("dealer-voicebot", version,
		mcpserver.WithToolCapabilities(true),
	)
	mcptools.Register(srv, dispatcher)

	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}

package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	server "github.com/dnmkhamed/hotel-boq/internal/adapters/http_server"
	"github.com/dnmkhamed/hotel-boq/internal/adapters/observability"
	"github.com/dnmkhamed/hotel-boq/internal/adapters/pricefeed"
	redisad "github.com/dnmkhamed/hotel-boq/internal/adapters/redis"
	"github.com/dnmkhamed/hotel-boq/internal/app"
	"github.com/dnmkhamed/hotel-boq/internal/events"
	"github.com/dnmkhamed/hotel-boq/internal/quote"
	"github.com/dnmkhamed/hotel-boq/internal/search"
	"github.com/dnmkhamed/hotel-boq/internal/seed"
	"github.com/dnmkhamed/hotel-boq/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	ds, err := seed.Load(cfg.SeedPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.SeedPath).Msg("seed file unavailable, using built-in dataset")
		ds = seed.Fallback()
	}
	log.Info().
		Int("hotels", len(ds.Hotels)).
		Int("room_types", len(ds.RoomTypes)).
		Int("rate_plans", len(ds.RatePlans)).
		Msg("dataset loaded")

	// deps
	clock := shared.SystemClock{}
	ids := shared.UUIDSource{}
	store := app.NewStore(ds)
	index := search.NewIndex(ds)
	bus := events.NewBus(clock, ids, log.Logger)
	events.AttachAnalytics(bus, log.Logger)

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	quotes := app.NewQuoteService(quote.NewCache(cfg.QuoteCache, clock), clock)
	searchSvc := app.NewSearchService(store, index, cfg.SearchLimit)
	booking := app.NewBookingService(clock, ids)
	workflow := app.NewWorkflowService(searchSvc, quotes, booking, store, bus, ids, cfg.Workers)
	reports := app.NewReportService(store, bus, cache, cfg.CacheTTL)

	if cfg.PricefeedURL != "" {
		feed := pricefeed.New(cfg.PricefeedURL, cfg.PricefeedRPS)
		poller := pricefeed.NewPoller(feed, bus, log.Logger, cfg.PricefeedInterval)
		go poller.Run(context.Background())
		log.Info().Str("url", cfg.PricefeedURL).Dur("interval", cfg.PricefeedInterval).Msg("price feed poller started")
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Store:    store,
		Search:   searchSvc,
		Quotes:   quotes,
		Booking:  booking,
		Workflow: workflow,
		Reports:  reports,
		Bus:      bus,
		Clock:    clock,
		IDs:      ids,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

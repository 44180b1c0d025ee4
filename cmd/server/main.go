package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/knupi/practice-reservation/internal/booking"
	"github.com/knupi/practice-reservation/internal/config"
	"github.com/knupi/practice-reservation/internal/database"
	"github.com/knupi/practice-reservation/internal/handler"
	"github.com/knupi/practice-reservation/internal/middleware"
	"github.com/knupi/practice-reservation/internal/model"
	"github.com/knupi/practice-reservation/internal/queue"
	"github.com/knupi/practice-reservation/internal/repository"
	"github.com/knupi/practice-reservation/internal/router"
	queuepublisher "github.com/knupi/practice-reservation/internal/service"
	"github.com/knupi/practice-reservation/internal/timeslot"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	store := repository.NewReservationRepo(db)
	resources := timeslot.NewResourceSet(cfg.Pianos)
	admin := model.Holder{Name: cfg.AdminName, ID: cfg.AdminID}

	engine := booking.NewEngine(booking.Policy{
		Resources:      resources,
		HolderIDLength: cfg.HolderIDLength,
		Admin:          admin,
	})
	identity := booking.NewIdentity(admin, store)
	svc := booking.NewService(store, engine, identity, cfg.BookingWindowDays, queuepublisher.Sink{})

	// Background consumer appending reservation events to logs/. It keeps
	// reconnecting on its own; a missing broker never blocks the API.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	// Redis is optional: rate limiting and caching degrade to no-ops when
	// the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response caching disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e,
		handler.NewReservationHandler(svc, identity),
		handler.NewPianoHandler(resources, store),
		handler.NewRankingHandler(svc, cfg.RankingSize),
		rateLimit, cache,
	)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

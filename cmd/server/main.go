package main // Entry point

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trainee-seat-reservation/internal/availability"
	"github.com/iliyamo/trainee-seat-reservation/internal/config"
	"github.com/iliyamo/trainee-seat-reservation/internal/database"
	"github.com/iliyamo/trainee-seat-reservation/internal/handler"
	"github.com/iliyamo/trainee-seat-reservation/internal/middleware"
	"github.com/iliyamo/trainee-seat-reservation/internal/notifier"
	"github.com/iliyamo/trainee-seat-reservation/internal/queue"
	"github.com/iliyamo/trainee-seat-reservation/internal/repository"
	"github.com/iliyamo/trainee-seat-reservation/internal/router"
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

	// Redis is optional: with no client the cache and rate limiter
	// become pass-throughs.
	rdb := config.NewRedisClient()

	layouts := repository.NewLayoutRepo(db)
	bookings := repository.NewBookingRepo(db)
	marks := repository.NewUnavailableRepo(db)
	holidays := repository.NewHolidayRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	archive := repository.NewArchiveRepo(db)

	resolver := availability.New(layouts, bookings, marks, notifier.New())

	// Consume booking notifications in the background; the loop
	// reconnects on its own when the broker drops.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// The response cache is handed to the router, which mounts it only
	// on shared read routes behind authentication.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.Register(e, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, tokens),
		Layouts:  handler.NewLayoutHandler(layouts),
		Bookings: handler.NewBookingHandler(resolver, bookings, users),
		Seats:    handler.NewSeatHandler(resolver, marks, layouts),
		Holidays: handler.NewHolidayHandler(holidays),
		Reports:  handler.NewReportHandler(bookings),
		Users:    handler.NewUserAdminHandler(users, archive),
	}, cfg.JWTSecret, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

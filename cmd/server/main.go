package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"trip-itinerary-service/internal/adapters/cache"
	"trip-itinerary-service/internal/adapters/distance"
	"trip-itinerary-service/internal/adapters/events"
	"trip-itinerary-service/internal/adapters/repositories"
	"trip-itinerary-service/internal/adapters/signals"
	"trip-itinerary-service/internal/api"
	"trip-itinerary-service/internal/config"
	"trip-itinerary-service/internal/platform/db"
	"trip-itinerary-service/internal/platform/logger"
	"trip-itinerary-service/internal/ports"
	"trip-itinerary-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis, ORS) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	logg, err := logger.New(config.Get("LOG_MODE", "prod"))
	if err != nil {
		log.Fatal(err)
	}
	defer logg.Sync()

	port := config.Get("PORT", "8080")
	seedPath := config.Get("SEED_PATH", "data/seeds/trips.json")

	conn, repo, err := openRepository(logg)
	if err != nil {
		logg.Fatal("open repository", "err", err)
	}
	defer conn.Close()

	// Schema and demo seed run on every start so local runs work from an
	// empty database.
	if err := repositories.InitSchema(conn); err != nil {
		logg.Fatal("init schema", "err", err)
	}
	if err := repositories.SeedFromJSON(context.Background(), repo, seedPath); err != nil {
		logg.Fatal("seed", "err", err)
	}

	rdb := openRedis(logg)

	var (
		store       signals.Store   = signals.NewMemorySignalStore()
		sink        ports.EventSink = events.NopSink{}
		matrixCache *cache.RedisMatrixCache
	)
	if rdb != nil {
		signalTTL := time.Duration(config.GetInt("SIGNAL_TTL_HOURS", 12)) * time.Hour
		store = signals.NewRedisSignalStore(rdb, signalTTL)
		sink = events.NewRedisEventSink(rdb, config.Get("EVENT_CHANNEL", events.DefaultChannel), logg)
		matrixCache = cache.NewRedisMatrixCache(rdb, 24*time.Hour)
	}

	provider := openMatrixProvider(logg, matrixCache)
	planner := services.NewPlanner(logg, provider)

	builders := []services.SuggestionBuilder{
		services.WeatherBuilder{},
		services.CrowdBuilder{},
		services.NewTransitBuilder(config.GetInt("TRANSIT_DELAY_THRESHOLD_MIN", services.DefaultTransitDelayThresholdMin)),
		services.NewCommunityBuilder(float64(config.GetInt("HAZARD_RADIUS_M", 1500)) / 1000),
	}
	svc := services.NewReplanService(logg, repo, store, sink, planner, builders)

	router := api.NewRouter(logg, repo, store, svc)

	logg.Info("server listening", "addr", ":"+port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logg.Fatal("server stopped", "err", srv.ListenAndServe())
}

// openRepository prefers Postgres when DATABASE_URL is set and falls back to
// a local SQLite file otherwise.
func openRepository(logg *logger.Logger) (*sql.DB, ports.TripRepository, error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		logg.Info("storage ready", "driver", "pgx")
		return conn, repositories.NewSQLTripRepository(conn), nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, nil, err
	}
	logg.Info("storage ready", "driver", "sqlite", "path", dbPath)
	return conn, repositories.NewSqliteTripRepository(conn), nil
}

// openRedis returns nil when no REDIS_ADDR is configured, in which case the
// service runs with in-memory signals and no event publishing.
func openRedis(logg *logger.Logger) *goredis.Client {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		logg.Warn("REDIS_ADDR not set, using in-memory signal store")
		return nil
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

// openMatrixProvider returns nil when no ORS_API_KEY is configured; the
// planner then estimates travel times from straight-line distance.
func openMatrixProvider(logg *logger.Logger, matrixCache *cache.RedisMatrixCache) ports.DistanceMatrixProvider {
	apiKey := strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	if apiKey == "" {
		logg.Warn("ORS_API_KEY not set, travel times use distance estimates")
		return nil
	}
	provider, err := distance.NewORSMatrixProvider(apiKey, matrixCache, logg)
	if err != nil {
		logg.Fatal("matrix provider", "err", err)
	}
	return provider
}

package main

import (
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/vehicle-cost-advisor/internal/commute"
	"github.com/ukydev/vehicle-cost-advisor/internal/db"
	"github.com/ukydev/vehicle-cost-advisor/internal/handlers"
	"github.com/ukydev/vehicle-cost-advisor/internal/maintenance"
	"github.com/ukydev/vehicle-cost-advisor/internal/middleware"
	"github.com/ukydev/vehicle-cost-advisor/internal/refdata"
	"github.com/ukydev/vehicle-cost-advisor/internal/region"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})

	// Reference data is load-bearing: refuse to start on a bad table
	// rather than serve undefined pricing.
	tables, err := refdata.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load reference data")
	}
	log.WithField("version", tables.Version).Info("Reference data loaded")

	resolver, err := region.NewResolver(tables, envInt("REGION_CACHE_SIZE", 0))
	if err != nil {
		log.WithError(err).Fatal("Failed to build region resolver")
	}
	pricing := region.NewPricingTable(tables)
	schedule := maintenance.NewSchedule(tables)
	predictor := maintenance.NewPredictor(resolver, pricing, schedule)

	var fuelSource commute.FuelPriceSource
	if gasURL := os.Getenv("GAS_PRICE_URL"); gasURL != "" {
		fuelSource = commute.NewHTTPFuelPriceSource(gasURL)
		log.WithField("url", gasURL).Info("Live gas price source configured")
	}
	estimator := commute.NewEstimator(resolver, pricing, fuelSource)

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "vehicle_cost_advisor"
	}
	store := db.NewMongoStore(client.Database(dbName))

	vehicleHandler := handlers.NewVehicleHandler(store, resolver)
	forecastHandler := handlers.NewForecastHandler(store, predictor)
	commuteHandler := handlers.NewCommuteHandler(store, store, estimator)
	regionHandler := handlers.NewRegionHandler(resolver, pricing)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/regions/resolve", regionHandler.Resolve)

	mux.HandleFunc("POST /api/vehicles", vehicleHandler.Create)
	mux.HandleFunc("GET /api/vehicles", vehicleHandler.List)
	mux.HandleFunc("GET /api/vehicles/{id}", vehicleHandler.Get)
	mux.HandleFunc("PUT /api/vehicles/{id}", vehicleHandler.Update)
	mux.HandleFunc("DELETE /api/vehicles/{id}", vehicleHandler.Delete)
	mux.HandleFunc("POST /api/vehicles/{id}/checkin", vehicleHandler.Checkin)

	mux.HandleFunc("GET /api/vehicles/{id}/forecast", forecastHandler.Forecast)
	mux.HandleFunc("POST /api/vehicles/{id}/commute", commuteHandler.Create)
	mux.HandleFunc("GET /api/vehicles/{id}/commute", commuteHandler.List)
	mux.HandleFunc("DELETE /api/commutes/{id}", commuteHandler.Delete)

	authMiddleware := middleware.NewAuthMiddleware()
	rateLimiter := middleware.NewRateLimitMiddleware()
	handler := rateLimiter.RateLimit(envInt("RATE_LIMIT", 120), 60)(authMiddleware.Authenticate(mux))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

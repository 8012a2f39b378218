// Package server boots the application: config, database, cache, storage,
// logging sinks, middleware stack, routes, and finally the HTTP listener.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/routes"
	"github.com/mymenu/mymenu/config"
	"github.com/mymenu/mymenu/pkg/cache"
	"github.com/mymenu/mymenu/pkg/database"
	"github.com/mymenu/mymenu/pkg/logger"
	"github.com/mymenu/mymenu/pkg/metrics"
	"github.com/mymenu/mymenu/pkg/middleware"
	"github.com/mymenu/mymenu/pkg/reqid"
	"github.com/mymenu/mymenu/pkg/router"
	"github.com/mymenu/mymenu/pkg/storage"
)

// Start runs the full boot sequence and blocks serving HTTP.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// Redis is optional: throttling and caching degrade gracefully.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, continuing without cache", "error", err)
	}

	storage.Connect()

	if uri := config.MongoLogURI(); uri != "" {
		mh, err := logger.NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			logger.AttachMongo(mh)
			defer mh.Close()
		}
	}

	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Restaurant{},
		&models.AccessLink{},
		&models.Menu{},
		&models.Category{},
		&models.Dish{},
		&models.DishCategory{},
	); err != nil {
		return fmt.Errorf("server: automigrate: %w", err)
	}

	r, err := BuildRouter()
	if err != nil {
		return err
	}

	addr := ":" + config.AppPort()
	logger.Info("mymenu listening", "addr", addr, "env", config.AppEnv())
	return http.ListenAndServe(addr, r.Handler())
}

// BuildRouter assembles the middleware stack and all routes on the connected
// database. Split from Start so tests can mount the exact production handler.
func BuildRouter() (*router.Router, error) {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)

	if err := routes.Register(r, database.DB); err != nil {
		return nil, err
	}
	r.HandleFunc("/metrics", metrics.Handler())

	return r, nil
}

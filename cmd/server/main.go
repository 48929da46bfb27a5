package main

import (
	"budget_tracker/internal/api"        // Custom package for HTTP handlers
	"budget_tracker/internal/auth"       // Custom package for authentication
	"budget_tracker/internal/config"     // Custom package for configuration
	"budget_tracker/internal/db"         // Custom package for database access
	"budget_tracker/internal/logging"    // Custom package for logger setup
	"budget_tracker/internal/middleware" // Custom package for middleware
	"budget_tracker/internal/session"    // Custom package for sessions
	"budget_tracker/internal/store"      // Custom package for persistence
	"context"                            // context package is needed for Redis operations
	"os"                                 // Log output

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	logging.Setup(cfg, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	if generated, err := cfg.EnsureSessionSecret(); err != nil {
		logrus.Fatalf("failed to prepare session secret: %v", err)
	} else if generated {
		logrus.Warn("SESSION_SECRET not set; using a random secret, sessions will not survive a restart")
	}

	// Connect to the database and bring the schema up to date
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	sessionStore := newSessionStore(cfg, gdb)
	users := store.NewCredentials(gdb)
	sessions := session.NewManager(sessionStore, cfg.SessionSecret, cfg.SessionTTL)
	svc, err := auth.NewService(users, sessions, cfg.BcryptCost)
	if err != nil {
		logrus.Fatalf("failed to set up auth service: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(api.Deps{
		Auth:       svc,
		Users:      users,
		Ledger:     store.NewLedger(gdb),
		Gate:       middleware.NewGate(svc, cfg.IsProd),
		SessionTTL: cfg.SessionTTL,
		Health: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":            cfg.AppPort,        // Listen port
		"db_driver":       cfg.DBDriver,       // Database driver
		"session_backend": cfg.SessionBackend, // Session backend
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}

// newSessionStore picks the session backend from configuration
func newSessionStore(cfg *config.Config, gdb *gorm.DB) session.Store {
	if cfg.SessionBackend != config.SessionBackendRedis {
		return store.NewSessions(gdb)
	}
	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	return session.NewRedisStore(redisClient)
}

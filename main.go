package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"homefood-api/config"
	"homefood-api/handlers"
	"homefood-api/models"
	"homefood-api/reports"
	"homefood-api/routes"
	"homefood-api/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := config.NewLogger(cfg.LogLevel)
	slog.SetDefault(log)

	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	log.Info("database connected and migrated", "path", cfg.DBPath)

	st := store.New(db, log, cfg.StoreTimeout)
	rp := reports.NewService(st, log)
	handlers.Init(st, rp, log)

	if err := seedAdmin(st, cfg, log); err != nil {
		log.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware for the mobile client
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Home Food Order API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r)

	log.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// seedAdmin creates the bootstrap admin account when the users table is
// empty and an admin password is configured.
func seedAdmin(st *store.Store, cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()
	n, err := st.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if cfg.AdminPassword == "" {
		log.Warn("no users exist and HOMEFOOD_ADMIN_PASSWORD is unset; login will be impossible")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := st.CreateUser(ctx, &admin); err != nil {
		return err
	}
	log.Info("bootstrap admin created", "email", admin.Email)
	return nil
}
